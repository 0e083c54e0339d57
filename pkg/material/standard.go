package material

import (
	"math"

	"github.com/df07/go-matcap-loop/pkg/core"
)

// Standard is a metalness/roughness material with a Lambert diffuse lobe and
// a Blinn-Phong specular lobe whose exponent follows roughness.
type Standard struct {
	Color     core.Vec3
	Metalness float64
	Roughness float64
}

// NewStandard creates a standard material
func NewStandard(color core.Vec3, metalness, roughness float64) *Standard {
	return &Standard{
		Color:     color,
		Metalness: metalness,
		Roughness: roughness,
	}
}

// Shade implements Material using the base color as diffuse
func (s *Standard) Shade(si SurfaceInteraction, lighting Lighting) core.Vec3 {
	return s.shadeDiffuse(s.Color, si, lighting)
}

// Shininess returns the Blinn-Phong exponent for the roughness
func (s *Standard) Shininess() float64 {
	r4 := math.Pow(max(s.Roughness, 0.01), 4)
	return math.Max(2/r4-2, 1)
}

// shadeDiffuse lights an arbitrary diffuse color with this material's
// metalness and roughness, so patched materials can swap the diffuse input.
func (s *Standard) shadeDiffuse(diffuse core.Vec3, si SurfaceInteraction, lighting Lighting) core.Vec3 {
	normal := si.ViewNormal.Normalize()
	viewDir := si.ViewPosition.Negate().Normalize()

	albedo := diffuse.Multiply(1 - s.Metalness)
	specularColor := core.NewVec3(0.04, 0.04, 0.04).Lerp(diffuse, s.Metalness)
	shininess := s.Shininess()

	irradiance := lighting.Indirect
	specular := core.Vec3{}
	for _, light := range lighting.Direct {
		nl := math.Max(normal.Dot(light.Direction), 0) * light.Visibility
		if nl == 0 {
			continue
		}
		irradiance = irradiance.Add(light.Color.Multiply(nl))

		h := light.Direction.Add(viewDir).Normalize()
		highlight := math.Pow(math.Max(normal.Dot(h), 0), shininess) * nl
		specular = specular.Add(light.Color.MultiplyVec(specularColor).Multiply(highlight))
	}

	return albedo.MultiplyVec(irradiance).Add(specular).Clamp(0, 1)
}
