package integrator

import (
	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe for concurrent use with distinct samplers.
type Integrator interface {
	RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3
}

var _ Integrator = (*PathTracingIntegrator)(nil)
