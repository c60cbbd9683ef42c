package renderer

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/geometry"
	"github.com/df07/go-scatter/pkg/integrator"
)

// TileRenderer renders rectangular regions of an image using an integrator
type TileRenderer struct {
	world      geometry.Hittable
	camera     *Camera
	integrator integrator.Integrator
	config     Config
}

// NewTileRenderer creates a new tile renderer for the given world and camera
func NewTileRenderer(world geometry.Hittable, camera *Camera, integratorInst integrator.Integrator, config Config) *TileRenderer {
	return &TileRenderer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		config:     config,
	}
}

// RenderTileBounds renders the pixels within bounds into img. Tiles must not
// overlap; the sampler must be owned by the calling goroutine.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, img *image.RGBA, sampler core.Sampler) (RenderStats, error) {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MinSamples:  tr.config.SamplesPerPixel,
		Tiles:       1,
	}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			var ps PixelStats
			discarded := tr.samplePixel(i, j, &ps, sampler)

			stats.TotalSamples += ps.SampleCount
			stats.DiscardedSamples += discarded
			stats.MinSamples = min(stats.MinSamples, ps.SampleCount)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, ps.SampleCount)

			img.SetRGBA(i, j, toRGBA(ps.GetColor(), tr.config.Gamma))
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats, nil
}

// samplePixel takes up to SamplesPerPixel samples for pixel (i, j), where
// j counts rows from the top of the image. Returns the number of non-finite
// samples that were dropped.
func (tr *TileRenderer) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler) int {
	width := float64(tr.config.Width)
	height := float64(tr.config.Height)
	discarded := 0

	for taken := 0; taken < tr.config.SamplesPerPixel; taken++ {
		if tr.shouldStopSampling(ps) {
			break
		}
		jitter := sampler.Get2D()
		s := (float64(i) + jitter.X) / width
		t := (float64(tr.config.Height-1-j) + jitter.Y) / height

		c := tr.integrator.RayColor(tr.camera.GetRay(s, t), tr.world, sampler)
		if !c.IsFinite() {
			discarded++
			continue
		}
		ps.AddSample(c)
	}
	return discarded
}

// shouldStopSampling reports whether the relative luminance error of a pixel
// has dropped below the adaptive threshold
func (tr *TileRenderer) shouldStopSampling(ps *PixelStats) bool {
	if tr.config.AdaptiveThreshold <= 0 {
		return false
	}

	minSamples := max(1, int(float64(tr.config.SamplesPerPixel)*tr.config.AdaptiveMinSamples))
	if ps.SampleCount < minSamples {
		return false
	}

	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	variance := ps.Variance()

	// Dark pixels have no meaningful relative error
	if mean <= 1e-8 {
		return variance < 1e-6
	}

	return math.Sqrt(variance)/mean < tr.config.AdaptiveThreshold
}

// toRGBA converts a linear color to an 8-bit gamma-corrected pixel
func toRGBA(c core.Vec3, gamma float64) color.RGBA {
	c = c.Clamp(0, 1).GammaCorrect(gamma)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}
