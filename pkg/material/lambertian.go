package material

import (
	"github.com/df07/go-scatter/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo Texture // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material sampling its albedo from tex
func NewLambertian(tex Texture) (*Lambertian, error) {
	if err := requireTexture(KindLambertian, "albedo", tex); err != nil {
		return nil, err
	}
	return &Lambertian{Albedo: tex}, nil
}

// NewSolidLambertian creates a new lambertian material with solid color
func NewSolidLambertian(albedo core.Vec3) (*Lambertian, error) {
	tex, err := NewSolidColor(albedo)
	if err != nil {
		return nil, err
	}
	return NewLambertian(tex)
}

func (l *Lambertian) Kind() Kind { return KindLambertian }
func (l *Lambertian) sealed()    {}

// Scatter implements diffuse scattering. The incoming direction is ignored
// and the material never absorbs; energy loss is carried by the attenuation.
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Normal plus a point in the unit sphere approximates a cosine-weighted hemisphere
	scatterDirection := hit.Normal.Add(core.SamplePointInUnitSphere(sampler.Get3D()))
	scatterDirection = nonDegenerate(scatterDirection, hit.Normal).Normalize()

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo.Evaluate(hit.UV, hit.Point).Clamp(0, 1),
	}, true
}
