package material

import (
	"github.com/df07/go-scatter/pkg/core"
)

// Isotropic is the phase function of a homogeneous participating medium:
// light leaves in a uniformly random direction over the full sphere.
type Isotropic struct {
	Albedo Texture
}

// NewIsotropic creates an isotropic phase function tinted by tex
func NewIsotropic(tex Texture) (*Isotropic, error) {
	if err := requireTexture(KindIsotropic, "albedo", tex); err != nil {
		return nil, err
	}
	return &Isotropic{Albedo: tex}, nil
}

func (i *Isotropic) Kind() Kind { return KindIsotropic }
func (i *Isotropic) sealed()    {}

// Scatter ignores the incoming direction and never absorbs
func (i *Isotropic) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := nonDegenerate(core.SampleOnUnitSphere(sampler.Get2D()), hit.Normal)
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: i.Albedo.Evaluate(hit.UV, hit.Point).Clamp(0, 1),
	}, true
}
