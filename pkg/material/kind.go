package material

import "fmt"

// Kind tags the scattering law of a material
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
	KindIsotropic
	KindDiffuseLight
)

var kindNames = [...]string{
	KindLambertian:   "lambertian",
	KindMetal:        "metal",
	KindDielectric:   "dielectric",
	KindIsotropic:    "isotropic",
	KindDiffuseLight: "diffuse_light",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a configuration name such as "metal" to its Kind
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown material type %q", name)
}
