package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/material"
)

// ConstantMedium fills a closed convex boundary with a homogeneous
// participating medium such as fog or smoke. Rays inside it scatter at an
// exponentially distributed distance using an isotropic phase function.
type ConstantMedium struct {
	Boundary      Hittable
	PhaseFunction *material.Isotropic
	negInvDensity float64
}

// NewConstantMedium creates a medium of the given density scattering with phase
func NewConstantMedium(boundary Hittable, density float64, phase *material.Isotropic) (*ConstantMedium, error) {
	if boundary == nil {
		return nil, fmt.Errorf("constant medium: boundary is nil")
	}
	if !(density > 0) || math.IsInf(density, 0) {
		return nil, fmt.Errorf("constant medium: density %v is not a finite positive number", density)
	}
	if phase == nil {
		return nil, fmt.Errorf("constant medium: phase function is nil")
	}
	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: phase,
		negInvDensity: -1.0 / density,
	}, nil
}

// Density returns the extinction coefficient of the medium
func (m *ConstantMedium) Density() float64 {
	return -1.0 / m.negInvDensity
}

// Hit samples a scattering event inside the medium
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*Intersection, bool) {
	// Entry and exit along the full line
	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+0.0001, math.Inf(1), sampler)
	if !ok {
		return nil, false
	}

	t1 := math.Max(entry.T, tMin)
	t2 := math.Min(exit.T, tMax)
	if t1 >= t2 {
		return nil, false
	}
	t1 = math.Max(t1, 0)

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(1-sampler.Get1D())
	if hitDistance > distanceInsideBoundary {
		return nil, false
	}

	hit := &Intersection{Material: m.PhaseFunction}
	hit.T = t1 + hitDistance/rayLength
	hit.Point = ray.At(hit.T)
	// Volumes have no surface; any unit normal will do
	hit.Normal = core.NewVec3(1, 0, 0)
	hit.FrontFace = true

	return hit, true
}
