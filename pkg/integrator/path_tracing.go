package integrator

import (
	"math"

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/geometry"
	"github.com/df07/go-scatter/pkg/material"
)

// shadowEpsilon offsets the start of each bounce to avoid self-intersection
const shadowEpsilon = 0.001

// Background is a vertical gradient used when a ray escapes the scene
type Background struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// UniformBackground returns a background of a single color
func UniformBackground(c core.Vec3) Background {
	return Background{Top: c, Bottom: c}
}

// Config controls path termination
type Config struct {
	MaxDepth   int // Maximum number of bounces
	Background Background

	// RussianRouletteMinBounces enables probabilistic termination after this
	// many bounces. Zero disables it. Materials never terminate paths
	// stochastically themselves.
	RussianRouletteMinBounces int
}

// DefaultConfig returns a sky-blue background and 50 bounces
func DefaultConfig() Config {
	return Config{
		MaxDepth: 50,
		Background: Background{
			Top:    core.NewVec3(0.5, 0.7, 1.0),
			Bottom: core.NewVec3(1.0, 1.0, 1.0),
		},
	}
}

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the radiance arriving along ray. It follows scattered
// rays until a material absorbs the path, the ray escapes, or MaxDepth is
// reached.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	color := core.Vec3{X: 0, Y: 0, Z: 0}
	throughput := core.NewVec3(1, 1, 1)

	for bounce := 0; bounce < pt.config.MaxDepth; bounce++ {
		hit, isHit := world.Hit(ray, shadowEpsilon, math.Inf(1), sampler)
		if !isHit {
			return color.Add(throughput.MultiplyVec(pt.backgroundGradient(ray)))
		}

		emitted := material.Emitted(hit.Material, hit.HitRecord)
		color = color.Add(throughput.MultiplyVec(emitted))

		scatter, didScatter := material.Scatter(hit.Material, ray, hit.HitRecord, sampler)
		if !didScatter {
			return color
		}
		throughput = throughput.MultiplyVec(scatter.Attenuation)

		terminate, compensation := pt.applyRussianRoulette(bounce, throughput, sampler)
		if terminate {
			return color
		}
		throughput = throughput.Multiply(compensation)

		ray = scatter.Scattered
	}

	// Bounce limit reached, no more light is gathered
	return color
}

// applyRussianRoulette determines if a path should be terminated and returns the compensation factor
func (pt *PathTracingIntegrator) applyRussianRoulette(bounce int, throughput core.Vec3, sampler core.Sampler) (bool, float64) {
	minBounces := pt.config.RussianRouletteMinBounces
	if minBounces <= 0 || bounce < minBounces {
		return false, 1.0
	}

	// Conservative bounds: survivalProb between 0.5 and 0.95
	survivalProb := math.Min(0.95, math.Max(0.5, throughput.Luminance()))

	if sampler.Get1D() > survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}

// backgroundGradient returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) backgroundGradient(r core.Ray) core.Vec3 {
	bg := pt.config.Background
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)
	return bg.Bottom.Multiply(1.0 - t).Add(bg.Top.Multiply(t))
}
