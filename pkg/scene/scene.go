package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/geometry"
	"github.com/df07/go-scatter/pkg/integrator"
	"github.com/df07/go-scatter/pkg/material"
	"github.com/df07/go-scatter/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name       string
	World      *geometry.HittableList
	Camera     renderer.CameraConfig
	Background integrator.Background
}

// Preview layout
const (
	previewRadius  = 0.5
	previewSpacing = 1.25
	fogDensity     = 2.0
	groundSize     = 200.0
)

// NewGroundQuad creates a large horizontal quad centered at the given point
// with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z+size/2)
	// u × v = (size,0,0) × (0,0,-size) = (0,size²,0)
	u := core.NewVec3(size, 0, 0)
	v := core.NewVec3(0, 0, -size)
	return geometry.NewQuad(corner, u, v, mat)
}

// NewPreviewScene lays out one sphere per library material in a row on a
// ground quad. A material named "ground" is used for the floor and left out
// of the row. Isotropic materials fill a turned cube of constant-density fog.
func NewPreviewScene(lib *Library, aspectRatio float64) (*Scene, error) {
	ground, ok := lib.Materials["ground"]
	if !ok {
		var err error
		ground, err = material.NewSolidLambertian(core.NewVec3(0.5, 0.5, 0.5))
		if err != nil {
			return nil, err
		}
	}

	world := geometry.NewHittableList(NewGroundQuad(core.NewVec3(0, 0, 0), groundSize, ground))

	var names []string
	for _, name := range lib.MaterialNames() {
		if name != "ground" {
			names = append(names, name)
		}
	}

	rowWidth := float64(len(names)-1) * previewSpacing
	for i, name := range names {
		center := core.NewVec3(-rowWidth/2+float64(i)*previewSpacing, previewRadius, 0)
		object, err := previewObject(lib.Materials[name], center)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		world.Add(object)
	}

	distance := max(3.0, rowWidth*1.2)
	return &Scene{
		Name:  lib.Name,
		World: world,
		Camera: renderer.CameraConfig{
			Center:      core.NewVec3(0, distance*0.4, distance),
			LookAt:      core.NewVec3(0, previewRadius, 0),
			Up:          core.NewVec3(0, 1, 0),
			AspectRatio: aspectRatio,
			VFov:        40,
		},
		Background: integrator.DefaultConfig().Background,
	}, nil
}

func previewObject(mat material.Material, center core.Vec3) (geometry.Hittable, error) {
	phase, ok := mat.(*material.Isotropic)
	if !ok {
		return geometry.NewSphere(center, previewRadius, mat), nil
	}
	// The boundary material is never consulted
	half := core.NewVec3(previewRadius, previewRadius, previewRadius)
	boundary := geometry.NewBox(center, half, math.Pi/6, phase)
	return geometry.NewConstantMedium(boundary, fogDensity, phase)
}

// DefaultLibraryConfig returns a library exercising every scattering law
func DefaultLibraryConfig() LibraryConfig {
	return LibraryConfig{
		Name:        "Material Showcase",
		Description: "One sphere per scattering law on a checkered floor",
		Textures: map[string]TextureConfig{
			"light-grey": {Type: "solid", Color: [3]float64{0.8, 0.8, 0.8}},
			"dark-grey":  {Type: "solid", Color: [3]float64{0.2, 0.2, 0.25}},
			"floor":      {Type: "checker", Even: "light-grey", Odd: "dark-grey", Scale: 0.5},
			"warm-white": {Type: "solid", Color: [3]float64{4, 3.6, 3}},
		},
		Materials: map[string]MaterialConfig{
			"ground":  {Type: "lambertian", Texture: "floor"},
			"brushed": {Type: "metal", Albedo: [3]float64{0.8, 0.6, 0.2}, Fuzz: 0.3},
			"fog":     {Type: "isotropic", Albedo: [3]float64{0.9, 0.9, 0.9}},
			"glass":   {Type: "dielectric", IR: 1.5},
			"lamp":    {Type: "diffuse_light", Texture: "warm-white"},
			"matte":   {Type: "lambertian", Albedo: [3]float64{0.65, 0.25, 0.2}},
			"mirror":  {Type: "metal", Albedo: [3]float64{0.9, 0.9, 0.9}},
		},
	}
}
