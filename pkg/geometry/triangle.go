package geometry

import (
	"github.com/df07/go-matcap-loop/pkg/core"
)

// Triangle represents a single triangle with per-vertex normals
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	N0, N1, N2 core.Vec3 // Vertex normals
	normal     core.Vec3 // Cached geometric normal
	bbox       core.AABB // Cached bounding box
}

// NewTriangle creates a flat-shaded triangle; all vertex normals equal the face normal
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	n := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return NewSmoothTriangle(v0, v1, v2, n, n, n)
}

// NewSmoothTriangle creates a triangle whose shading normal is interpolated
// from the vertex normals
func NewSmoothTriangle(v0, v1, v2, n0, n1, n2 core.Vec3) *Triangle {
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		N0:     n0.Normalize(),
		N1:     n1.Normalize(),
		N2:     n2.Normalize(),
		normal: v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
		bbox:   core.NewAABBFromPoints(v0, v1, v2),
	}
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, hit *HitRecord) bool {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false
	}

	tParam := f * edge2.Dot(q)
	if tParam <= tMin || tParam >= tMax {
		return false
	}

	normal := t.N0.Multiply(1 - u - v).Add(t.N1.Multiply(u)).Add(t.N2.Multiply(v)).Normalize()
	if normal.LengthSquared() == 0 {
		normal = t.normal
	}

	hit.T = tParam
	hit.Point = ray.At(tParam)
	hit.Normal = normal
	hit.FrontFace = ray.Direction.Dot(t.normal) < 0
	hit.Instance = nil
	return true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// GetNormal returns the triangle's geometric normal
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}
