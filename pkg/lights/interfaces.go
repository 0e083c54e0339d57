package lights

import "github.com/df07/go-matcap-loop/pkg/core"

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypeAmbient     LightType = "ambient"
	LightTypeHemisphere  LightType = "hemisphere"
)

// Light is any light that can be placed in a scene
type Light interface {
	Type() LightType
}

// IndirectLight contributes irradiance that depends only on the surface normal
type IndirectLight interface {
	Light

	// Irradiance returns the light arriving at a surface with the given
	// world-space unit normal
	Irradiance(normal core.Vec3) core.Vec3
}
