package geometry

import (
	"math"

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/material"
)

// Box is a closed rectangular box made of 6 outward-facing quads, optionally
// rotated about the vertical axis through its center
type Box struct {
	Center   core.Vec3         // Center point of the box
	Size     core.Vec3         // Half-extents along each axis
	RotateY  float64           // Rotation about +Y in radians
	Material material.Material // Material for all faces
	faces    [6]*Quad
}

// NewBox creates a box with the given center, half-extents, rotation about
// the Y axis and material
func NewBox(center, size core.Vec3, rotateY float64, mat material.Material) *Box {
	box := &Box{
		Center:   center,
		Size:     size,
		RotateY:  rotateY,
		Material: mat,
	}
	box.generateFaces()
	return box
}

// NewAxisAlignedBox creates a new axis-aligned box (no rotation)
func NewAxisAlignedBox(center, size core.Vec3, mat material.Material) *Box {
	return NewBox(center, size, 0, mat)
}

// generateFaces creates the 6 quad faces of the box
func (b *Box) generateFaces() {
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}

	sin, cos := math.Sincos(b.RotateY)
	for i, c := range corners {
		scaled := c.MultiplyVec(b.Size)
		rotated := core.NewVec3(
			cos*scaled.X+sin*scaled.Z,
			scaled.Y,
			-sin*scaled.X+cos*scaled.Z,
		)
		corners[i] = rotated.Add(b.Center)
	}

	// Edge order makes U × V point out of the box on every face
	edges := [6][3]int{
		{4, 5, 7}, // front (Z+)
		{1, 0, 2}, // back (Z-)
		{5, 1, 6}, // right (X+)
		{0, 4, 3}, // left (X-)
		{3, 7, 2}, // top (Y+)
		{4, 0, 5}, // bottom (Y-)
	}
	for i, e := range edges {
		b.faces[i] = NewQuad(
			corners[e[0]],
			corners[e[1]].Subtract(corners[e[0]]),
			corners[e[2]].Subtract(corners[e[0]]),
			b.Material,
		)
	}
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*Intersection, bool) {
	var closestHit *Intersection
	closestT := tMax

	for _, face := range b.faces {
		if hit, isHit := face.Hit(ray, tMin, closestT, sampler); isHit {
			closestT = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
