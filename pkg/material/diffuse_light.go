package material

import (
	"github.com/df07/go-scatter/pkg/core"
)

// DiffuseLight represents a light-emitting material
type DiffuseLight struct {
	Emit Texture // Emitted radiance, may exceed 1
}

// NewDiffuseLight creates a new emissive material
func NewDiffuseLight(tex Texture) (*DiffuseLight, error) {
	if err := requireTexture(KindDiffuseLight, "emit", tex); err != nil {
		return nil, err
	}
	return &DiffuseLight{Emit: tex}, nil
}

func (e *DiffuseLight) Kind() Kind { return KindDiffuseLight }
func (e *DiffuseLight) sealed()    {}

// Scatter never continues the path: lights absorb all incoming rays
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the emitted light at the hit. Both faces emit.
func (e *DiffuseLight) Emitted(hit HitRecord) core.Vec3 {
	return e.Emit.Evaluate(hit.UV, hit.Point)
}
