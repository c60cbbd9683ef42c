package renderer

import (
	"image"
	"time"

	"github.com/df07/go-scatter/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	AverageSamples   float64       // Average samples per pixel
	MinSamples       int           // Fewest samples taken by any pixel
	MaxSamplesUsed   int           // Most samples taken by any pixel
	DiscardedSamples int           // Samples dropped because they were not finite
	Tiles            int           // Number of tiles rendered
	Duration         time.Duration // Wall time of the render
}

// add merges the counters of a finished tile
func (rs *RenderStats) add(other RenderStats) {
	if rs.Tiles == 0 || other.MinSamples < rs.MinSamples {
		rs.MinSamples = other.MinSamples
	}
	rs.MaxSamplesUsed = max(rs.MaxSamplesUsed, other.MaxSamplesUsed)
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.DiscardedSamples += other.DiscardedSamples
	rs.Tiles += other.Tiles
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator for convergence
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Variance returns the luminance variance of the samples taken so far
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	v := ps.LuminanceSqAccum/n - mean*mean
	if v < 0 {
		return 0
	}
	return v
}

// CalculateAverageLuminance returns the mean perceptual luminance of an image,
// treating 8-bit channel values as linear in [0,1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += core.NewVec3(
				float64(c.R)/255.0,
				float64(c.G)/255.0,
				float64(c.B)/255.0,
			).Luminance()
		}
	}
	return total / float64(pixels)
}
