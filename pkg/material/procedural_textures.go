package material

import (
	"github.com/df07/go-scatter/pkg/core"
)

// NewCheckerboardTexture creates a UV-space checkerboard of checkSize pixel
// squares. Unlike CheckerTexture it follows the surface parameterization.
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) (*ImageTexture, error) {
	if checkSize <= 0 {
		return nil, configError(textureSubject, "check size", "%d is not positive", checkSize)
	}
	if width <= 0 || height <= 0 {
		return nil, configError(textureSubject, "image size", "%dx%d is empty", width, height)
	}
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			color := color2
			if (x/checkSize+y/checkSize)%2 == 0 {
				color = color1
			}
			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewUVDebugTexture maps U to red and V to green
func NewUVDebugTexture(width, height int) (*ImageTexture, error) {
	if width < 2 || height < 2 {
		return nil, configError(textureSubject, "image size", "%dx%d is smaller than 2x2", width, height)
	}
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := float64(x) / float64(width-1)
			// Row 0 is the top of the image, where V is 1
			v := 1 - float64(y)/float64(height-1)
			pixels[y*width+x] = core.NewVec3(u, v, 0.0)
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewGradientTexture creates a vertical gradient from color1 (top) to color2 (bottom)
func NewGradientTexture(width, height int, color1, color2 core.Vec3) (*ImageTexture, error) {
	if width <= 0 || height < 2 {
		return nil, configError(textureSubject, "image size", "%dx%d needs at least 2 rows", width, height)
	}
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		t := float64(y) / float64(height-1)
		color := color1.Multiply(1.0 - t).Add(color2.Multiply(t))

		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}
