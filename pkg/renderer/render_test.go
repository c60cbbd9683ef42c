package renderer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/geometry"
	"github.com/df07/go-scatter/pkg/integrator"
	"github.com/df07/go-scatter/pkg/material"
)

// constantIntegrator returns the same color for every ray
type constantIntegrator struct {
	color core.Vec3
}

func (c constantIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	return c.color
}

func testConfig() Config {
	return Config{
		Width:           8,
		Height:          6,
		SamplesPerPixel: 4,
		TileSize:        4,
		Workers:         3,
		Seed:            7,
		Gamma:           2.0,
	}
}

func testCamera(config Config) *Camera {
	return NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 1, 3),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: float64(config.Width) / float64(config.Height),
		VFov:        40,
	})
}

// diffuseWorld is a grey sphere resting on a checkered ground
func diffuseWorld(t *testing.T) geometry.Hittable {
	t.Helper()
	sphere, err := material.NewSolidLambertian(core.NewVec3(0.7, 0.3, 0.3))
	if err != nil {
		t.Fatal(err)
	}
	even, _ := material.NewSolidColor(core.NewVec3(0.9, 0.9, 0.9))
	odd, _ := material.NewSolidColor(core.NewVec3(0.1, 0.1, 0.1))
	checker, err := material.NewCheckerTexture(2, even, odd)
	if err != nil {
		t.Fatal(err)
	}
	ground, err := material.NewLambertian(checker)
	if err != nil {
		t.Fatal(err)
	}
	return geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0.5, 0), 0.5, sphere),
		geometry.NewQuad(core.NewVec3(-50, 0, 50), core.NewVec3(100, 0, 0), core.NewVec3(0, 0, -100), ground),
	)
}

func pathTracer() integrator.Integrator {
	cfg := integrator.DefaultConfig()
	cfg.MaxDepth = 8
	return integrator.NewPathTracingIntegrator(cfg)
}

func mustRenderer(t *testing.T, config Config, integ integrator.Integrator) *Renderer {
	t.Helper()
	r, err := NewRenderer(config, integ, core.NopLogger{})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestRender_UniformBackground(t *testing.T) {
	config := testConfig()
	cfg := integrator.DefaultConfig()
	cfg.Background = integrator.UniformBackground(core.NewVec3(0.25, 0.25, 0.25))
	r := mustRenderer(t, config, integrator.NewPathTracingIntegrator(cfg))

	img, stats, err := r.Render(context.Background(), geometry.NewHittableList(), testCamera(config))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// sqrt(0.25) = 0.5 after gamma 2
	for y := 0; y < config.Height; y++ {
		for x := 0; x < config.Width; x++ {
			c := img.RGBAAt(x, y)
			if c.R != 127 || c.G != 127 || c.B != 127 || c.A != 255 {
				t.Fatalf("Pixel (%d,%d): expected (127,127,127,255), got %v", x, y, c)
			}
		}
	}

	if stats.TotalPixels != 48 {
		t.Errorf("Expected 48 pixels, got %d", stats.TotalPixels)
	}
	if stats.TotalSamples != 48*4 {
		t.Errorf("Expected %d samples, got %d", 48*4, stats.TotalSamples)
	}
	if stats.Tiles != 4 {
		t.Errorf("Expected 4 tiles, got %d", stats.Tiles)
	}
	if stats.AverageSamples != 4 {
		t.Errorf("Expected 4 samples per pixel, got %f", stats.AverageSamples)
	}
}

func TestRender_DeterministicAcrossWorkerCounts(t *testing.T) {
	world := diffuseWorld(t)
	var images []*image.RGBA

	for _, workers := range []int{1, 2, 5} {
		config := testConfig()
		config.Width, config.Height = 16, 12
		config.SamplesPerPixel = 8
		config.TileSize = 5
		config.Workers = workers

		img, _, err := mustRenderer(t, config, pathTracer()).Render(context.Background(), world, testCamera(config))
		if err != nil {
			t.Fatalf("Render with %d workers: %v", workers, err)
		}
		images = append(images, img)
	}

	for i := 1; i < len(images); i++ {
		if !bytes.Equal(images[0].Pix, images[i].Pix) {
			t.Errorf("Image %d differs from the single-worker render", i)
		}
	}
}

func TestRender_SeedChangesNoise(t *testing.T) {
	world := diffuseWorld(t)
	config := testConfig()
	config.Width, config.Height = 16, 12

	a, _, err := mustRenderer(t, config, pathTracer()).Render(context.Background(), world, testCamera(config))
	if err != nil {
		t.Fatal(err)
	}
	config.Seed++
	b, _, err := mustRenderer(t, config, pathTracer()).Render(context.Background(), world, testCamera(config))
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(a.Pix, b.Pix) {
		t.Error("Expected different seeds to produce different noise")
	}
}

func TestRender_CanceledContext(t *testing.T) {
	config := testConfig()
	r := mustRenderer(t, config, pathTracer())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, _, err := r.Render(ctx, diffuseWorld(t), testCamera(config))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image from a canceled render")
	}
}

func TestRender_DiscardsNonFiniteSamples(t *testing.T) {
	config := testConfig()
	r := mustRenderer(t, config, constantIntegrator{color: core.NewVec3(math.NaN(), 0, 0)})

	img, stats, err := r.Render(context.Background(), geometry.NewHittableList(), testCamera(config))
	if err != nil {
		t.Fatal(err)
	}
	if stats.DiscardedSamples != 48*4 {
		t.Errorf("Expected every sample discarded, got %d", stats.DiscardedSamples)
	}
	if c := img.RGBAAt(3, 3); c.R != 0 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("Expected opaque black, got %v", c)
	}
}

func TestRender_AdaptiveStopsConstantPixels(t *testing.T) {
	config := testConfig()
	config.SamplesPerPixel = 50
	config.AdaptiveThreshold = 0.01
	config.AdaptiveMinSamples = 0.1
	r := mustRenderer(t, config, constantIntegrator{color: core.NewVec3(0.5, 0.5, 0.5)})

	_, stats, err := r.Render(context.Background(), geometry.NewHittableList(), testCamera(config))
	if err != nil {
		t.Fatal(err)
	}
	if stats.MaxSamplesUsed != 5 || stats.MinSamples != 5 {
		t.Errorf("Expected every pixel to stop at 5 samples, got min %d max %d", stats.MinSamples, stats.MaxSamplesUsed)
	}
}

func TestNewRenderer_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero samples", func(c *Config) { c.SamplesPerPixel = 0 }},
		{"zero tile size", func(c *Config) { c.TileSize = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"zero gamma", func(c *Config) { c.Gamma = 0 }},
		{"NaN gamma", func(c *Config) { c.Gamma = math.NaN() }},
		{"negative threshold", func(c *Config) { c.AdaptiveThreshold = -0.1 }},
		{"min samples above one", func(c *Config) { c.AdaptiveMinSamples = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			tt.modify(&config)
			_, err := NewRenderer(config, pathTracer(), nil)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	t.Run("nil integrator", func(t *testing.T) {
		_, err := NewRenderer(testConfig(), nil, nil)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestNewRenderer_DefaultWorkers(t *testing.T) {
	config := DefaultConfig()
	r := mustRenderer(t, config, pathTracer())
	if r.Config().Workers <= 0 {
		t.Errorf("Expected a positive worker count, got %d", r.Config().Workers)
	}
}
