package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-scatter/pkg/core"
)

func TestBox_HitFromEachSide(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3), grey(t))

	tests := []struct {
		name   string
		origin core.Vec3
		dir    core.Vec3
		t      float64
		normal core.Vec3
	}{
		{"front", core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1), 7, core.NewVec3(0, 0, 1)},
		{"back", core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1), 7, core.NewVec3(0, 0, -1)},
		{"right", core.NewVec3(10, 0, 0), core.NewVec3(-1, 0, 0), 9, core.NewVec3(1, 0, 0)},
		{"left", core.NewVec3(-10, 0, 0), core.NewVec3(1, 0, 0), 9, core.NewVec3(-1, 0, 0)},
		{"top", core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0), 8, core.NewVec3(0, 1, 0)},
		{"bottom", core.NewVec3(0, -10, 0), core.NewVec3(0, 1, 0), 8, core.NewVec3(0, -1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := box.Hit(core.NewRay(tt.origin, tt.dir), 0.001, 100, newTestSampler(1))
			if !ok {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-tt.t) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.t, hit.T)
			}
			if !hit.FrontFace {
				t.Error("Expected an outward-facing hit")
			}
			if hit.Normal.Subtract(tt.normal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.normal, hit.Normal)
			}
		})
	}
}

func TestBox_HitFromInside(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), grey(t))

	hit, ok := box.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), 0.001, 100, newTestSampler(1))
	if !ok {
		t.Fatal("Expected to hit the inside of the box")
	}
	if hit.FrontFace {
		t.Error("Expected a back-face hit from inside")
	}
	if math.Abs(hit.T-1) > 1e-9 {
		t.Errorf("Expected t=1, got %f", hit.T)
	}
}

func TestBox_RotateY(t *testing.T) {
	// A unit cube turned 45 degrees has its leading edge at z = sqrt(2);
	// for 0 < x < sqrt(2) the front surface is z = sqrt(2) - x
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), math.Pi/4, grey(t))

	hit, ok := box.Hit(core.NewRay(core.NewVec3(0.2, 0, 10), core.NewVec3(0, 0, -1)), 0.001, 100, newTestSampler(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	expected := 10 - (math.Sqrt2 - 0.2)
	if math.Abs(hit.T-expected) > 1e-6 {
		t.Errorf("Expected t=%f, got %f", expected, hit.T)
	}

	if _, ok := box.Hit(core.NewRay(core.NewVec3(1.5, 0, 10), core.NewVec3(0, 0, -1)), 0.001, 100, newTestSampler(1)); ok {
		t.Error("Expected a miss beside the rotated cube")
	}
}

func TestBox_Miss(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), grey(t))
	if _, ok := box.Hit(core.NewRay(core.NewVec3(0, 5, 10), core.NewVec3(0, 0, -1)), 0.001, 100, newTestSampler(1)); ok {
		t.Error("Expected miss")
	}
}

func TestBox_AsMediumBoundary(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), grey(t))
	medium, err := NewConstantMedium(box, 1000, fogPhase(t, core.NewVec3(1, 1, 1)))
	if err != nil {
		t.Fatal(err)
	}

	hit, ok := medium.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), 0.001, 100, newTestSampler(3))
	if !ok {
		t.Fatal("Expected a dense medium to scatter")
	}
	if hit.Point.Z > 1 || hit.Point.Z < -1 {
		t.Errorf("Expected the scattering point inside the box, got %v", hit.Point)
	}
}
