package material

import (
	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/df07/go-matcap-loop/pkg/shader"
)

// Matcap is a standard material whose diffuse color is looked up in a matcap
// texture by the view-space reflection vector, plus an additive rim term.
// One instance is shared by every mesh that should look alike.
type Matcap struct {
	Standard
	Texture ColorSource
}

// NewMatcap creates a matcap-patched standard material. The base color is
// kept for hosts that compile the shader program; the lookup replaces it.
func NewMatcap(color core.Vec3, roughness float64, texture ColorSource) *Matcap {
	return &Matcap{
		Standard: Standard{
			Color:     color,
			Metalness: 0.1,
			Roughness: roughness,
		},
		Texture: texture,
	}
}

// Program returns the composed shader program for GPU hosts
func (m *Matcap) Program() (shader.Program, error) {
	return shader.Compose(shader.StandardProgram(), shader.MatcapVariant())
}

// Diffuse evaluates the patched diffuse color at the interaction
func (m *Matcap) Diffuse(si SurfaceInteraction) core.Vec3 {
	e := toShader(si.ViewPosition).Normalize()
	n := toShader(si.ViewNormal).Normalize()

	u, v := shader.MatcapUV(e, n)
	color := m.Texture.Evaluate(core.NewVec2(float64(u), float64(v)))

	// vViewPosition is the vector from the surface to the eye
	rim := shader.Rim(n, toShader(si.ViewPosition.Negate()))
	boost := float64(shader.RimStrength * rim)
	return color.Add(core.NewVec3(boost, boost, boost))
}

// Shade implements Material
func (m *Matcap) Shade(si SurfaceInteraction, lighting Lighting) core.Vec3 {
	return m.shadeDiffuse(m.Diffuse(si), si, lighting)
}

func toShader(v core.Vec3) shader.Vec3 {
	return shader.NewVec3(v.X, v.Y, v.Z)
}
