package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/loaders"
	"github.com/df07/go-scatter/pkg/material"
)

var (
	// ErrUnknownTexture is returned when a handle names no texture in the library
	ErrUnknownTexture = errors.New("unknown texture")
	// ErrUnknownMaterial is returned when a handle names no material in the library
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrTextureCycle is returned when checker textures reference each other in a loop
	ErrTextureCycle = errors.New("texture reference cycle")
	// ErrInvalidLibrary is returned for malformed library documents
	ErrInvalidLibrary = errors.New("invalid library")
)

// TextureConfig describes one named texture
type TextureConfig struct {
	Type         string     `json:"type"`                   // solid, checker, image, checkerboard, gradient or uv_debug
	Color        [3]float64 `json:"color,omitempty"`        // solid; first color of checkerboard and gradient
	Color2       [3]float64 `json:"color2,omitempty"`       // second color of checkerboard and gradient
	Even         string     `json:"even,omitempty"`         // checker: texture name
	Odd          string     `json:"odd,omitempty"`          // checker: texture name
	Scale        float64    `json:"scale,omitempty"`        // checker cell size
	Path         string     `json:"path,omitempty"`         // image, relative to the library file
	MaxDimension int        `json:"maxDimension,omitempty"` // image downsampling limit
	Width        int        `json:"width,omitempty"`        // procedural image size, default 64
	Height       int        `json:"height,omitempty"`
	CheckSize    int        `json:"checkSize,omitempty"` // checkerboard square in pixels, default 8
}

const (
	defaultProceduralSize = 64
	defaultCheckSize      = 8
)

// MaterialConfig describes one named material. Texture-driven materials use
// Texture when set and a solid Albedo otherwise.
type MaterialConfig struct {
	Type    string     `json:"type"` // lambertian, metal, dielectric, isotropic or diffuse_light
	Texture string     `json:"texture,omitempty"`
	Albedo  [3]float64 `json:"albedo,omitempty"`
	Fuzz    float64    `json:"fuzz,omitempty"`
	IR      float64    `json:"ir,omitempty"`
}

// LibraryConfig is the JSON description of a set of textures and materials
type LibraryConfig struct {
	Name        string                    `json:"name,omitempty"`
	Description string                    `json:"description,omitempty"`
	Textures    map[string]TextureConfig  `json:"textures"`
	Materials   map[string]MaterialConfig `json:"materials"`

	// BaseDir resolves relative image paths. Set by LoadLibraryConfig.
	BaseDir string `json:"-"`
}

// Library holds built textures and materials by name. Textures referenced
// from several places are shared, not copied.
type Library struct {
	Name      string
	Textures  map[string]material.Texture
	Materials map[string]material.Material
}

// ParseLibraryConfig decodes a library document, rejecting unknown fields
func ParseLibraryConfig(r io.Reader) (LibraryConfig, error) {
	var cfg LibraryConfig
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return LibraryConfig{}, fmt.Errorf("%w: %v", ErrInvalidLibrary, err)
	}
	return cfg, nil
}

// LoadLibraryConfig reads a library document from disk
func LoadLibraryConfig(path string) (LibraryConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return LibraryConfig{}, fmt.Errorf("failed to open library %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := ParseLibraryConfig(file)
	if err != nil {
		return LibraryConfig{}, fmt.Errorf("failed to parse library %s: %w", path, err)
	}
	cfg.BaseDir = filepath.Dir(path)
	return cfg, nil
}

// BuildLibrary constructs every texture and material of cfg. Names are
// processed in sorted order so the first reported error is stable.
func BuildLibrary(cfg LibraryConfig, logger core.Logger) (*Library, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}

	b := &libraryBuilder{
		cfg:      cfg,
		logger:   logger,
		textures: make(map[string]material.Texture, len(cfg.Textures)),
		visiting: make(map[string]bool),
	}

	for _, name := range sortedKeys(cfg.Textures) {
		if _, err := b.texture(name); err != nil {
			return nil, err
		}
	}

	materials := make(map[string]material.Material, len(cfg.Materials))
	for _, name := range sortedKeys(cfg.Materials) {
		m, err := b.material(cfg.Materials[name])
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = m
	}

	logger.Printf("Built library %q: %d textures, %d materials\n", cfg.Name, len(b.textures), len(materials))

	return &Library{Name: cfg.Name, Textures: b.textures, Materials: materials}, nil
}

// Material looks up a material by name
func (l *Library) Material(name string) (material.Material, error) {
	m, ok := l.Materials[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMaterial, name)
	}
	return m, nil
}

// Texture looks up a texture by name
func (l *Library) Texture(name string) (material.Texture, error) {
	tex, ok := l.Textures[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTexture, name)
	}
	return tex, nil
}

// MaterialNames returns material names in sorted order
func (l *Library) MaterialNames() []string {
	return sortedKeys(l.Materials)
}

type libraryBuilder struct {
	cfg      LibraryConfig
	logger   core.Logger
	textures map[string]material.Texture
	visiting map[string]bool
}

// texture builds a named texture once, resolving checker children first
func (b *libraryBuilder) texture(name string) (material.Texture, error) {
	if tex, ok := b.textures[name]; ok {
		return tex, nil
	}
	tc, ok := b.cfg.Textures[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTexture, name)
	}
	if b.visiting[name] {
		return nil, fmt.Errorf("%w at %q", ErrTextureCycle, name)
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	tex, err := b.buildTexture(tc)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", name, err)
	}
	b.textures[name] = tex
	return tex, nil
}

func (b *libraryBuilder) buildTexture(tc TextureConfig) (material.Texture, error) {
	switch tc.Type {
	case "solid":
		return material.NewSolidColor(vec(tc.Color))
	case "checker":
		even, err := b.texture(tc.Even)
		if err != nil {
			return nil, err
		}
		odd, err := b.texture(tc.Odd)
		if err != nil {
			return nil, err
		}
		scale := tc.Scale
		if scale == 0 {
			scale = 1
		}
		return material.NewCheckerTexture(scale, even, odd)
	case "image":
		if tc.Path == "" {
			return nil, fmt.Errorf("%w: image texture needs a path", ErrInvalidLibrary)
		}
		path := tc.Path
		if !filepath.IsAbs(path) && b.cfg.BaseDir != "" {
			path = filepath.Join(b.cfg.BaseDir, path)
		}
		tex, err := loaders.LoadImageTexture(path, loaders.LoadImageOptions{MaxDimension: tc.MaxDimension})
		if err != nil {
			return nil, err
		}
		b.logger.Printf("Loaded image texture %s (%dx%d)\n", path, tex.Width, tex.Height)
		return tex, nil
	case "checkerboard":
		width, height := proceduralSize(tc)
		checkSize := tc.CheckSize
		if checkSize == 0 {
			checkSize = defaultCheckSize
		}
		return material.NewCheckerboardTexture(width, height, checkSize, vec(tc.Color), vec(tc.Color2))
	case "gradient":
		width, height := proceduralSize(tc)
		return material.NewGradientTexture(width, height, vec(tc.Color), vec(tc.Color2))
	case "uv_debug":
		width, height := proceduralSize(tc)
		return material.NewUVDebugTexture(width, height)
	default:
		return nil, fmt.Errorf("%w: unknown texture type %q", ErrInvalidLibrary, tc.Type)
	}
}

func (b *libraryBuilder) material(mc MaterialConfig) (material.Material, error) {
	kind, err := material.ParseKind(mc.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLibrary, err)
	}

	switch kind {
	case material.KindMetal:
		return material.NewMetal(vec(mc.Albedo), mc.Fuzz)
	case material.KindDielectric:
		return material.NewDielectric(mc.IR)
	}

	tex, err := b.materialTexture(mc)
	if err != nil {
		return nil, err
	}

	switch kind {
	case material.KindLambertian:
		return material.NewLambertian(tex)
	case material.KindIsotropic:
		return material.NewIsotropic(tex)
	default:
		return material.NewDiffuseLight(tex)
	}
}

func (b *libraryBuilder) materialTexture(mc MaterialConfig) (material.Texture, error) {
	if mc.Texture != "" {
		return b.texture(mc.Texture)
	}
	return material.NewSolidColor(vec(mc.Albedo))
}

func proceduralSize(tc TextureConfig) (int, int) {
	width, height := tc.Width, tc.Height
	if width == 0 {
		width = defaultProceduralSize
	}
	if height == 0 {
		height = defaultProceduralSize
	}
	return width, height
}

func vec(c [3]float64) core.Vec3 {
	return core.NewVec3(c[0], c[1], c[2])
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
