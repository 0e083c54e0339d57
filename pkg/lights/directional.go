package lights

import (
	"github.com/df07/go-matcap-loop/pkg/core"
)

// ShadowCamera is the orthographic volume a directional light casts shadows in,
// expressed in the light's view space. Near may be negative to include
// casters behind the light position.
type ShadowCamera struct {
	Near, Far                float64
	Left, Right, Top, Bottom float64
}

// NewShadowCamera returns a symmetric shadow volume of half-size extent
func NewShadowCamera(near, far, extent float64) ShadowCamera {
	return ShadowCamera{
		Near:   near,
		Far:    far,
		Left:   -extent,
		Right:  extent,
		Top:    extent,
		Bottom: -extent,
	}
}

// Directional is a light infinitely far away shining from Position toward Target
type Directional struct {
	Color      core.Vec3
	Intensity  float64
	Position   core.Vec3
	Target     core.Vec3
	CastShadow bool
	Shadow     ShadowCamera
}

// NewDirectional creates a directional light shining straight down, with the
// default shadow volume
func NewDirectional(color core.Vec3, intensity float64) *Directional {
	return &Directional{
		Color:     color,
		Intensity: intensity,
		Position:  core.NewVec3(0, 1, 0),
		Shadow:    NewShadowCamera(0.5, 500, 5),
	}
}

func (d *Directional) Type() LightType {
	return LightTypeDirectional
}

// Radiance returns color scaled by intensity
func (d *Directional) Radiance() core.Vec3 {
	return d.Color.Multiply(d.Intensity)
}

// Direction returns the unit vector from the surface toward the light for a
// light placed at position and aimed at target (both in world space)
func Direction(position, target core.Vec3) core.Vec3 {
	dir := position.Subtract(target).Normalize()
	if dir.LengthSquared() == 0 {
		return core.NewVec3(0, 1, 0)
	}
	return dir
}

// InShadowVolume reports whether point lies inside the shadow camera of a light
// placed at position and aimed at target
func (d *Directional) InShadowVolume(position, target, point core.Vec3) bool {
	view := core.NewLookAt(position, target, core.NewVec3(0, 1, 0))
	p := view.MulPoint(point)
	depth := -p.Z

	s := d.Shadow
	return p.X >= s.Left && p.X <= s.Right &&
		p.Y >= s.Bottom && p.Y <= s.Top &&
		depth >= s.Near && depth <= s.Far
}
