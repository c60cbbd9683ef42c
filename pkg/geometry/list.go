package geometry

import (
	"github.com/df07/go-scatter/pkg/core"
)

// HittableList intersects each member and keeps the closest hit
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list from objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
}

// Hit returns the closest intersection in [tMin, tMax]
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*Intersection, bool) {
	var closest *Intersection
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar, sampler); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}
