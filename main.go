package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/integrator"
	"github.com/df07/go-scatter/pkg/renderer"
	"github.com/df07/go-scatter/pkg/scene"
)

// options holds the parsed command line
type options struct {
	configPath   string
	libraryDir   string
	outPath      string
	width        int
	height       int
	spp          int
	depth        int
	rrMinBounces int
	workers      int
	seed         int64
	list         bool
}

func parseOptions(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("scatter", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Material library JSON (default: built-in showcase)")
	fs.StringVar(&opts.libraryDir, "libraries", "libraries", "Directory scanned by -list")
	fs.StringVar(&opts.outPath, "out", "", "Output PNG (default: output/render_<timestamp>.png)")
	fs.IntVar(&opts.width, "width", 400, "Image width in pixels")
	fs.IntVar(&opts.height, "height", 225, "Image height in pixels")
	fs.IntVar(&opts.spp, "spp", 50, "Samples per pixel")
	fs.IntVar(&opts.depth, "depth", 25, "Maximum bounce depth")
	fs.IntVar(&opts.rrMinBounces, "rr", 0, "Bounces before Russian roulette starts (0 disables)")
	fs.IntVar(&opts.workers, "workers", 0, "Concurrent tiles (0 uses all CPUs)")
	fs.Int64Var(&opts.seed, "seed", 42, "Random seed")
	fs.BoolVar(&opts.list, "list", false, "List material libraries and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.depth <= 0 {
		return options{}, fmt.Errorf("depth must be positive, got %d", opts.depth)
	}
	if opts.rrMinBounces < 0 {
		return options{}, fmt.Errorf("rr must not be negative, got %d", opts.rrMinBounces)
	}
	return opts, nil
}

// loadLibrary builds the library at path, or the built-in one when path is empty
func loadLibrary(path string, logger core.Logger) (*scene.Library, error) {
	cfg := scene.DefaultLibraryConfig()
	if path != "" {
		var err error
		cfg, err = scene.LoadLibraryConfig(path)
		if err != nil {
			return nil, err
		}
	}
	return scene.BuildLibrary(cfg, logger)
}

// createOutputPath creates the parent directory of the output file
func createOutputPath(out string, now time.Time) (string, error) {
	if out == "" {
		out = filepath.Join("output", fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}
	return out, nil
}

func listLibraries(dir string, logger core.Logger) error {
	libraries, err := scene.ListLibraries(dir, logger)
	if err != nil {
		return err
	}
	if len(libraries) == 0 {
		fmt.Printf("No libraries found in %s\n", dir)
		return nil
	}
	for _, lib := range libraries {
		fmt.Printf("  %-24s %2d materials  %s\n", lib.DisplayName, lib.Materials, lib.FilePath)
		if lib.Description != "" {
			fmt.Printf("  %-24s %s\n", "", lib.Description)
		}
	}
	return nil
}

func run(ctx context.Context, opts options, logger core.Logger) (string, error) {
	lib, err := loadLibrary(opts.configPath, logger)
	if err != nil {
		return "", err
	}

	preview, err := scene.NewPreviewScene(lib, float64(opts.width)/float64(opts.height))
	if err != nil {
		return "", err
	}

	integratorConfig := integrator.DefaultConfig()
	integratorConfig.MaxDepth = opts.depth
	integratorConfig.RussianRouletteMinBounces = opts.rrMinBounces
	integratorConfig.Background = preview.Background

	renderConfig := renderer.DefaultConfig()
	renderConfig.Width = opts.width
	renderConfig.Height = opts.height
	renderConfig.SamplesPerPixel = opts.spp
	renderConfig.Workers = opts.workers
	renderConfig.Seed = opts.seed

	r, err := renderer.NewRenderer(renderConfig, integrator.NewPathTracingIntegrator(integratorConfig), logger)
	if err != nil {
		return "", err
	}
	effective := r.Config()
	logger.Printf("Rendering %dx%d at %d spp with %d workers\n",
		effective.Width, effective.Height, effective.SamplesPerPixel, effective.Workers)

	img, stats, err := r.Render(ctx, preview.World, renderer.NewCamera(preview.Camera))
	if err != nil {
		return "", err
	}
	logger.Printf("Samples per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	filename, err := createOutputPath(opts.outPath, time.Now())
	if err != nil {
		return "", err
	}
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("error saving PNG: %w", err)
	}
	return filename, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger := core.NewDefaultLogger()

	if opts.list {
		if err := listLibraries(opts.libraryDir, logger); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Starting material preview render...")
	filename, err := run(ctx, opts, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}
