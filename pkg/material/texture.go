package material

import (
	"math"

	"github.com/df07/go-scatter/pkg/core"
)

// Texture provides spatially-varying colors for materials.
// Implementations must be immutable and safe for concurrent use.
type Texture interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) (*SolidColor, error) {
	if !color.IsFinite() {
		return nil, configError(textureSubject, "color", "%v is not finite", color)
	}
	return &SolidColor{Color: color}, nil
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two textures on a 3D lattice of cubes
// with edge length Scale.
type CheckerTexture struct {
	Even     Texture
	Odd      Texture
	invScale float64
}

// NewCheckerTexture creates a spatial checker pattern
func NewCheckerTexture(scale float64, even, odd Texture) (*CheckerTexture, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, configError(textureSubject, "checker scale", "%v is not a finite positive number", scale)
	}
	if even == nil || odd == nil {
		return nil, configError(textureSubject, "checker", "both textures are required")
	}
	return &CheckerTexture{Even: even, Odd: odd, invScale: 1.0 / scale}, nil
}

// Evaluate picks Even or Odd depending on the parity of the cell containing point
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	x := int(math.Floor(c.invScale * point.X))
	y := int(math.Floor(c.invScale * point.Y))
	z := int(math.Floor(c.invScale * point.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}
