package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp" // BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/material"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Format string // Decoder name reported by image.Decode
	Pixels []core.Vec3
}

// LoadImageOptions controls how images are prepared for use as textures
type LoadImageOptions struct {
	// MaxDimension downsamples images whose width or height exceeds it,
	// preserving aspect ratio. Zero disables resampling.
	MaxDimension int
}

// LoadImage loads a PNG, JPEG, BMP, TIFF or WebP image and converts it to Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	return LoadImageWithOptions(filename, LoadImageOptions{})
}

// LoadImageWithOptions loads an image and applies opts
func LoadImageWithOptions(filename string, opts LoadImageOptions) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects the format from the file header)
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	if opts.MaxDimension > 0 {
		img = downsample(img, opts.MaxDimension)
	}

	data := toImageData(img)
	data.Format = format
	return data, nil
}

// LoadImageTexture loads an image file as a texture
func LoadImageTexture(filename string, opts LoadImageOptions) (*material.ImageTexture, error) {
	data, err := LoadImageWithOptions(filename, opts)
	if err != nil {
		return nil, err
	}
	texture, err := material.NewImageTexture(data.Width, data.Height, data.Pixels)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", filename, err)
	}
	return texture, nil
}

// downsample scales img so neither side exceeds maxDim
func downsample(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxDim && height <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(max(width, height))
	newWidth := max(1, int(float64(width)*scale+0.5))
	newHeight := max(1, int(float64(height)*scale+0.5))

	dst := image.NewRGBA64(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

func toImageData(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}
