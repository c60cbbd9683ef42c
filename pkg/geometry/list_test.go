package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-scatter/pkg/core"
)

func TestHittableList_ClosestHit(t *testing.T) {
	near := grey(t)
	far := grey(t)
	list := NewHittableList(
		NewSphere(core.NewVec3(0, 0, -10), 1, far),
		NewSphere(core.NewVec3(0, 0, -4), 1, near),
	)

	hit, ok := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 100, newTestSampler(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected closest hit at t=3, got %f", hit.T)
	}
	if hit.Material != near {
		t.Error("Expected the nearer sphere's material")
	}
}

func TestHittableList_Empty(t *testing.T) {
	list := NewHittableList()
	if _, ok := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 100, newTestSampler(1)); ok {
		t.Error("Empty list should never be hit")
	}

	list.Add(NewSphere(core.NewVec3(0, 0, -2), 0.5, grey(t)))
	if _, ok := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 100, newTestSampler(1)); !ok {
		t.Error("Expected hit after Add")
	}
}
