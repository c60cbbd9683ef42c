package material

import (
	"github.com/df07/go-scatter/pkg/core"
)

// Material is the closed set of scattering laws: *Lambertian, *Metal,
// *Dielectric, *Isotropic and *DiffuseLight. It is sealed; use the
// package-level Scatter and Emitted functions to evaluate one.
//
// Materials are immutable after construction and safe for concurrent use.
type Material interface {
	// Kind identifies which of the five laws this material implements
	Kind() Kind

	sealed()
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation, each channel in [0, 1]
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, facing against the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	UV        core.Vec2 // Surface parametric coordinates
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
