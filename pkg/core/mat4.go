package core

import "math"

// Mat4 is a row-major 4x4 affine transform: M[row*4+col]
type Mat4 [16]float64

// Identity returns the identity matrix
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// NewRotationXYZ returns the rotation for Euler angles applied in XYZ order,
// i.e. Rx * Ry * Rz, so a vector is rotated about Z first.
func NewRotationXYZ(rotation Vec3) Mat4 {
	a, b := math.Cos(rotation.X), math.Sin(rotation.X)
	c, d := math.Cos(rotation.Y), math.Sin(rotation.Y)
	e, f := math.Cos(rotation.Z), math.Sin(rotation.Z)

	ae, af, be, bf := a*e, a*f, b*e, b*f

	return Mat4{
		c * e, -c * f, d, 0,
		af + be*d, ae - bf*d, -b * c, 0,
		bf - ae*d, be + af*d, a * c, 0,
		0, 0, 0, 1,
	}
}

// Compose builds translation * rotation(XYZ) * scale
func Compose(position, rotation, scale Vec3) Mat4 {
	m := NewRotationXYZ(rotation)
	for row := 0; row < 3; row++ {
		m[row*4+0] *= scale.X
		m[row*4+1] *= scale.Y
		m[row*4+2] *= scale.Z
	}
	m[3] = position.X
	m[7] = position.Y
	m[11] = position.Z
	return m
}

// Mul returns m * other
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * other[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// MulPoint transforms a point (w=1)
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		Y: m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		Z: m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// MulDirection transforms a direction (w=0), ignoring translation
func (m Mat4) MulDirection(d Vec3) Vec3 {
	return Vec3{
		X: m[0]*d.X + m[1]*d.Y + m[2]*d.Z,
		Y: m[4]*d.X + m[5]*d.Y + m[6]*d.Z,
		Z: m[8]*d.X + m[9]*d.Y + m[10]*d.Z,
	}
}

// MulTransposeDirection multiplies d by the transpose of the upper 3x3.
// Called on an inverse matrix it transforms normals by the inverse transpose.
func (m Mat4) MulTransposeDirection(d Vec3) Vec3 {
	return Vec3{
		X: m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		Y: m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		Z: m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// Inverse returns the inverse of an affine matrix and false when it is singular
func (m Mat4) Inverse() (Mat4, bool) {
	// Invert the upper 3x3 and apply it to the negated translation.
	a00, a01, a02 := m[0], m[1], m[2]
	a10, a11, a12 := m[4], m[5], m[6]
	a20, a21, a22 := m[8], m[9], m[10]

	c00 := a11*a22 - a12*a21
	c01 := a02*a21 - a01*a22
	c02 := a01*a12 - a02*a11
	det := a00*c00 + a10*c01 + a20*c02
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}
	inv := 1.0 / det

	var out Mat4
	out[0] = c00 * inv
	out[1] = c01 * inv
	out[2] = c02 * inv
	out[4] = (a12*a20 - a10*a22) * inv
	out[5] = (a00*a22 - a02*a20) * inv
	out[6] = (a02*a10 - a00*a12) * inv
	out[8] = (a10*a21 - a11*a20) * inv
	out[9] = (a01*a20 - a00*a21) * inv
	out[10] = (a00*a11 - a01*a10) * inv

	t := Vec3{m[3], m[7], m[11]}
	out[3] = -(out[0]*t.X + out[1]*t.Y + out[2]*t.Z)
	out[7] = -(out[4]*t.X + out[5]*t.Y + out[6]*t.Z)
	out[11] = -(out[8]*t.X + out[9]*t.Y + out[10]*t.Z)
	out[15] = 1
	return out, true
}

// NewLookAt returns a world-to-view matrix for an eye at position looking at target.
// View space follows the usual convention: the camera looks down -Z with +Y up.
func NewLookAt(position, target, up Vec3) Mat4 {
	forward := target.Subtract(position).Normalize()
	if forward.LengthSquared() == 0 {
		forward = NewVec3(0, 0, -1)
	}
	right := forward.Cross(up).Normalize()
	if right.LengthSquared() == 0 {
		// up is parallel to the view direction; pick any perpendicular
		right = forward.Cross(NewVec3(0, 0, 1)).Normalize()
		if right.LengthSquared() == 0 {
			right = forward.Cross(NewVec3(1, 0, 0)).Normalize()
		}
	}
	trueUp := right.Cross(forward)

	return Mat4{
		right.X, right.Y, right.Z, -right.Dot(position),
		trueUp.X, trueUp.Y, trueUp.Z, -trueUp.Dot(position),
		-forward.X, -forward.Y, -forward.Z, forward.Dot(position),
		0, 0, 0, 1,
	}
}
