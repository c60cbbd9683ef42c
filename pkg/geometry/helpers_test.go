package geometry

import (
	"math/rand"
	"testing"

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/material"
)

func newTestSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func grey(t *testing.T) material.Material {
	t.Helper()
	m, err := material.NewSolidLambertian(core.NewVec3(0.5, 0.5, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func solid(t *testing.T, c core.Vec3) material.Texture {
	t.Helper()
	tex, err := material.NewSolidColor(c)
	if err != nil {
		t.Fatal(err)
	}
	return tex
}
