package lights

import (
	"github.com/df07/go-matcap-loop/pkg/core"
)

// Ambient lights every surface equally
type Ambient struct {
	Color     core.Vec3
	Intensity float64
}

func NewAmbient(color core.Vec3, intensity float64) *Ambient {
	return &Ambient{Color: color, Intensity: intensity}
}

func (a *Ambient) Type() LightType {
	return LightTypeAmbient
}

func (a *Ambient) Irradiance(normal core.Vec3) core.Vec3 {
	return a.Color.Multiply(a.Intensity)
}

// Hemisphere blends from the ground color to the sky color as the surface
// normal turns toward Up
type Hemisphere struct {
	Sky       core.Vec3
	Ground    core.Vec3
	Intensity float64
	Up        core.Vec3
}

func NewHemisphere(sky, ground core.Vec3, intensity float64) *Hemisphere {
	return &Hemisphere{
		Sky:       sky,
		Ground:    ground,
		Intensity: intensity,
		Up:        core.NewVec3(0, 1, 0),
	}
}

func (h *Hemisphere) Type() LightType {
	return LightTypeHemisphere
}

func (h *Hemisphere) Irradiance(normal core.Vec3) core.Vec3 {
	weight := 0.5*normal.Dot(h.Up.Normalize()) + 0.5
	return h.Ground.Lerp(h.Sky, weight).Multiply(h.Intensity)
}
