package shader

import "github.com/chewxy/math32"

// Vec3 is a float32 vector matching GLSL vec3 precision
type Vec3 struct {
	X, Y, Z float32
}

// NewVec3 converts float64 components into a GLSL-precision vector
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{float32(x), float32(y), float32(z)}
}

func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Normalize follows GLSL normalize; a zero vector stays zero here instead of NaN
func (v Vec3) Normalize() Vec3 {
	l := math32.Sqrt(v.Dot(v))
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Reflect is GLSL reflect(i, n): i - 2*dot(n, i)*n
func Reflect(i, n Vec3) Vec3 {
	return i.Sub(n.Scale(2 * n.Dot(i)))
}

// SmoothStep is GLSL smoothstep
func SmoothStep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	t = math32.Max(0, math32.Min(1, t))
	return t * t * (3 - 2*t)
}

// matcapScale is 2*sqrt(2): the projection of a unit reflection vector onto the matcap disk
const matcapScale float32 = 2.82842712474619

// MatcapUV maps the view-space eye vector e and normal n to matcap texture
// coordinates (spherical environment map projection).
// When the reflection points straight away from the viewer the projection
// degenerates and the disk center is returned.
func MatcapUV(e, n Vec3) (u, v float32) {
	r := Reflect(e, n)
	m := matcapScale * math32.Sqrt(r.Z+1)
	if m == 0 || math32.IsNaN(m) {
		return 0.5, 0.5
	}
	return r.X/m + 0.5, r.Y/m + 0.5
}

// Rim computes the additive edge highlight factor from the interpolated
// view-space normal and vViewPosition (the vector from the surface to the eye).
// The absolute value lets back-facing normals brighten like front-facing ones.
func Rim(normal, viewPosition Vec3) float32 {
	rim := math32.Max(0, math32.Abs(normal.Normalize().Dot(viewPosition.Negate().Normalize())))
	return SmoothStep(0.25, 0.75, 1-rim)
}

// RimStrength is the weight of the rim term added to the diffuse color
const RimStrength float32 = 0.5
