package material

import (
	"math"

	"github.com/df07/go-scatter/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Vec3 // Metal color
	Fuzzness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material. Fuzzness is clamped to [0, 1];
// the albedo must lie in [0, 1] per channel.
func NewMetal(albedo core.Vec3, fuzzness float64) (*Metal, error) {
	if !albedo.IsFinite() || !albedo.InUnitRange() {
		return nil, configError(KindMetal.String(), "albedo", "%v is outside [0, 1]", albedo)
	}
	if math.IsNaN(fuzzness) {
		return nil, configError(KindMetal.String(), "fuzz", "NaN")
	}
	// Clamp fuzzness to valid range
	fuzzness = math.Max(0.0, math.Min(fuzzness, 1.0))
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}, nil
}

func (m *Metal) Kind() Kind { return KindMetal }
func (m *Metal) sealed()    {}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Calculate perfect reflection direction
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)

	// Add fuzziness by perturbing the reflection direction
	if m.Fuzzness > 0 {
		perturbation := core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzzness)
		reflected = reflected.Add(perturbation)
	}

	// Perturbed into the surface: absorbed
	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, nonDegenerate(reflected, hit.Normal)),
		Attenuation: m.Albedo,
	}, true
}
