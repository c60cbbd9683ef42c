package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-scatter/pkg/core"
)

// sequenceSampler replays a fixed list of values, cycling when exhausted
type sequenceSampler struct {
	values []float64
	next   int
}

func newSequenceSampler(values ...float64) *sequenceSampler {
	return &sequenceSampler{values: values}
}

func (s *sequenceSampler) draw() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *sequenceSampler) Get1D() float64 { return s.draw() }
func (s *sequenceSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.draw(), s.draw())
}
func (s *sequenceSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.draw(), s.draw(), s.draw())
}

func newTestSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func mustSolid(t *testing.T, color core.Vec3) *SolidColor {
	t.Helper()
	solid, err := NewSolidColor(color)
	if err != nil {
		t.Fatalf("NewSolidColor(%v): %v", color, err)
	}
	return solid
}

// upHit is a front-facing hit at the origin on the XZ plane
func upHit() HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		UV:        core.NewVec2(0.5, 0.5),
	}
}

func checkDirection(t *testing.T, label string, dir core.Vec3) {
	t.Helper()
	if !dir.IsFinite() {
		t.Fatalf("%s: scattered direction not finite: %v", label, dir)
	}
	if dir.NearZero() {
		t.Fatalf("%s: scattered direction is degenerate: %v", label, dir)
	}
}
