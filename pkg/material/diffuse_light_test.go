package material

import (
	"errors"
	"testing"

	"github.com/df07/go-scatter/pkg/core"
)

func TestDiffuseLight_NeverScatters(t *testing.T) {
	light, err := NewDiffuseLight(mustSolid(t, core.NewVec3(4, 4, 4)))
	if err != nil {
		t.Fatalf("NewDiffuseLight: %v", err)
	}
	sampler := newTestSampler(42)

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)),
		core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)),
		core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0)),
	}
	for _, ray := range rays {
		for _, frontFace := range []bool{true, false} {
			hit := upHit()
			hit.FrontFace = frontFace
			if _, scattered := light.Scatter(ray, hit, sampler); scattered {
				t.Errorf("DiffuseLight scattered ray %v (front face %t)", ray, frontFace)
			}
		}
	}
}

func TestDiffuseLight_EmitsFromBothSides(t *testing.T) {
	emission := core.NewVec3(15, 12, 4)
	light, err := NewDiffuseLight(mustSolid(t, emission))
	if err != nil {
		t.Fatalf("NewDiffuseLight: %v", err)
	}

	front := upHit()
	back := upHit()
	back.FrontFace = false
	back.Normal = core.NewVec3(0, -1, 0)

	if got := light.Emitted(front); !got.Equals(emission) {
		t.Errorf("Front face: expected %v, got %v", emission, got)
	}
	if got := light.Emitted(back); !got.Equals(emission) {
		t.Errorf("Back face: expected %v, got %v", emission, got)
	}
}

func TestDiffuseLight_TexturedEmission(t *testing.T) {
	warm := core.NewVec3(5, 3, 1)
	cool := core.NewVec3(1, 3, 5)
	light, err := NewDiffuseLight(mustImageTexture(t, 2, 1, []core.Vec3{warm, cool}))
	if err != nil {
		t.Fatalf("NewDiffuseLight: %v", err)
	}

	hit := upHit()
	hit.UV = core.NewVec2(0.25, 0.5)
	if got := light.Emitted(hit); !got.Equals(warm) {
		t.Errorf("Expected %v, got %v", warm, got)
	}
	hit.UV = core.NewVec2(0.75, 0.5)
	if got := light.Emitted(hit); !got.Equals(cool) {
		t.Errorf("Expected %v, got %v", cool, got)
	}
}

func TestNewDiffuseLight_NilTexture(t *testing.T) {
	if _, err := NewDiffuseLight(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
