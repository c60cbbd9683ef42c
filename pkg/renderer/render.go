package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/geometry"
	"github.com/df07/go-scatter/pkg/integrator"
)

// ErrInvalidConfig is wrapped by every renderer configuration error
var ErrInvalidConfig = errors.New("renderer: invalid config")

// Config contains rendering configuration
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int     // Maximum rays per pixel
	TileSize        int     // Edge length of a square tile in pixels
	Workers         int     // Concurrent tiles; 0 uses runtime.NumCPU()
	Seed            int64   // Base seed; tile n is sampled with Seed+n
	Gamma           float64 // Output gamma

	// AdaptiveThreshold stops sampling a pixel once its relative luminance
	// error falls below it. Zero takes every sample.
	AdaptiveThreshold float64
	// AdaptiveMinSamples is the fraction of SamplesPerPixel always taken
	// before adaptive stopping is considered.
	AdaptiveMinSamples float64
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:              400,
		Height:             225,
		SamplesPerPixel:    100,
		TileSize:           32,
		Workers:            0,
		Seed:               42,
		Gamma:              2.0,
		AdaptiveThreshold:  0,
		AdaptiveMinSamples: 0.1,
	}
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidConfig, c.TileSize)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	case !(c.Gamma > 0):
		return fmt.Errorf("%w: gamma must be positive, got %v", ErrInvalidConfig, c.Gamma)
	case c.AdaptiveThreshold < 0:
		return fmt.Errorf("%w: adaptive threshold must not be negative, got %v", ErrInvalidConfig, c.AdaptiveThreshold)
	case c.AdaptiveMinSamples < 0 || c.AdaptiveMinSamples > 1:
		return fmt.Errorf("%w: adaptive min samples must be in [0,1], got %v", ErrInvalidConfig, c.AdaptiveMinSamples)
	}
	return nil
}

// Renderer splits an image into tiles and renders them in parallel
type Renderer struct {
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRenderer validates config and creates a renderer. A nil logger
// discards output.
func NewRenderer(config Config, integratorInst integrator.Integrator, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if integratorInst == nil {
		return nil, fmt.Errorf("%w: integrator is required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	if config.Workers == 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Renderer{config: config, integrator: integratorInst, logger: logger}, nil
}

// Config returns the effective configuration
func (r *Renderer) Config() Config {
	return r.config
}

// Render traces world through camera. Every tile owns a sampler seeded from
// the tile index, so the output depends only on the seed and not on how the
// tiles were scheduled.
func (r *Renderer) Render(ctx context.Context, world geometry.Hittable, camera *Camera) (*image.RGBA, RenderStats, error) {
	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, r.config.Width, r.config.Height))
	tiles := NewTileGrid(r.config.Width, r.config.Height, r.config.TileSize)
	tileStats := make([]RenderStats, len(tiles))
	tr := NewTileRenderer(world, camera, r.integrator, r.config)

	r.logger.Printf("Rendering %dx%d at %d spp: %d tiles on %d workers\n",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, len(tiles), r.config.Workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)

	for index, bounds := range tiles {
		if gctx.Err() != nil {
			break
		}
		index, bounds := index, bounds
		g.Go(func() error {
			sampler := core.NewSeededSampler(r.config.Seed + int64(index))
			stats, err := tr.RenderTileBounds(gctx, bounds, img, sampler)
			if err != nil {
				return fmt.Errorf("tile %d: %w", index, err)
			}
			tileStats[index] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, RenderStats{}, err
	}
	// errgroup only reports errors from goroutines that ran
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	var total RenderStats
	for _, s := range tileStats {
		total.add(s)
	}
	if total.TotalPixels > 0 {
		total.AverageSamples = float64(total.TotalSamples) / float64(total.TotalPixels)
	}
	total.Duration = time.Since(start)

	r.logger.Printf("Render complete in %v: %.1f samples/pixel, %d discarded\n",
		total.Duration, total.AverageSamples, total.DiscardedSamples)

	return img, total, nil
}

// NewTileGrid covers a width x height image with row-major tiles of at most
// size x size pixels
func NewTileGrid(width, height, size int) []image.Rectangle {
	var tiles []image.Rectangle
	for y := 0; y < height; y += size {
		for x := 0; x < width; x += size {
			tiles = append(tiles, image.Rect(x, y, min(x+size, width), min(y+size, height)))
		}
	}
	return tiles
}
