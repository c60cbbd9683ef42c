package material

import (
	"fmt"

	"github.com/df07/go-scatter/pkg/core"
)

// Scatter evaluates m at a hit. It returns false when the path is absorbed;
// otherwise the caller continues tracing result.Scattered and multiplies its
// throughput by result.Attenuation.
//
// The only state consumed is entropy drawn from sampler.
func Scatter(m Material, rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m := m.(type) {
	case *Lambertian:
		return m.Scatter(rayIn, hit, sampler)
	case *Metal:
		return m.Scatter(rayIn, hit, sampler)
	case *Dielectric:
		return m.Scatter(rayIn, hit, sampler)
	case *Isotropic:
		return m.Scatter(rayIn, hit, sampler)
	case *DiffuseLight:
		return m.Scatter(rayIn, hit, sampler)
	}
	panic(fmt.Sprintf("material: Scatter called with %T", m))
}

// Emitted returns the light emitted by m at a hit. It is black for every
// material except DiffuseLight.
func Emitted(m Material, hit HitRecord) core.Vec3 {
	switch m := m.(type) {
	case *DiffuseLight:
		return m.Emitted(hit)
	case *Lambertian, *Metal, *Dielectric, *Isotropic:
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	panic(fmt.Sprintf("material: Emitted called with %T", m))
}

// nonDegenerate returns dir unless it is near zero or not finite, in which case the normal is used
func nonDegenerate(dir, normal core.Vec3) core.Vec3 {
	if dir.NearZero() || !dir.IsFinite() {
		return normal
	}
	return dir
}
