package geometry

import (
	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/material"
)

// Intersection is a hit record together with the material that was hit
type Intersection struct {
	material.HitRecord
	Material material.Material
}

// Hittable is anything a ray can intersect. The sampler is only consumed
// by participating media, which scatter at a random distance.
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*Intersection, bool)
}
