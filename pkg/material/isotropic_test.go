package material

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-scatter/pkg/core"
)

func TestIsotropic_ScattersOverFullSphere(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	isotropic, err := NewIsotropic(mustSolid(t, albedo))
	if err != nil {
		t.Fatalf("NewIsotropic: %v", err)
	}
	sampler := newTestSampler(42)
	hit := upHit()
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	const trials = 20000
	below := 0
	var mean core.Vec3
	for i := 0; i < trials; i++ {
		result, scattered := isotropic.Scatter(rayIn, hit, sampler)
		if !scattered {
			t.Fatalf("Isotropic absorbed on trial %d", i)
		}
		if !result.Attenuation.Equals(albedo) {
			t.Fatalf("Expected attenuation %v, got %v", albedo, result.Attenuation)
		}
		dir := result.Scattered.Direction
		checkDirection(t, "isotropic", dir)
		if math.Abs(dir.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", dir.Length())
		}
		if !result.Scattered.Origin.Equals(hit.Point) {
			t.Fatalf("Expected origin %v, got %v", hit.Point, result.Scattered.Origin)
		}
		if dir.Dot(hit.Normal) < 0 {
			below++
		}
		mean = mean.Add(dir)
	}

	// Unlike Lambertian, half of the directions go against the normal
	fraction := float64(below) / trials
	if math.Abs(fraction-0.5) > 0.02 {
		t.Errorf("Expected ~50%% of directions below the surface, got %.3f", fraction)
	}
	if mean.Multiply(1.0/trials).Length() > 0.03 {
		t.Errorf("Expected mean direction near zero, got %v", mean.Multiply(1.0/trials))
	}
}

func TestIsotropic_IgnoresIncomingDirection(t *testing.T) {
	isotropic, err := NewIsotropic(mustSolid(t, core.NewVec3(0.5, 0.5, 0.5)))
	if err != nil {
		t.Fatalf("NewIsotropic: %v", err)
	}
	a, _ := isotropic.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), upHit(), newTestSampler(9))
	b, _ := isotropic.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(5, 2, -3)), upHit(), newTestSampler(9))
	if !a.Scattered.Direction.Equals(b.Scattered.Direction) {
		t.Errorf("Same draws should give the same direction: %v vs %v", a.Scattered.Direction, b.Scattered.Direction)
	}
}

func TestNewIsotropic_NilTexture(t *testing.T) {
	if _, err := NewIsotropic(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
