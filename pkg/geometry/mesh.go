package geometry

import (
	"github.com/df07/go-matcap-loop/pkg/core"
)

// Mesh is indexed triangle geometry with per-vertex normals. It owns a BVH
// over its triangles and is immutable after construction, so any number of
// instances may share one Mesh.
type Mesh struct {
	Positions []core.Vec3
	Normals   []core.Vec3
	Indices   []int // each group of 3 indices forms a triangle

	triangles []Shape
	bvh       *BVH
	bbox      core.AABB
}

// NewMesh creates a mesh from vertex positions, matching vertex normals and
// triangle indices. Structurally invalid input panics.
func NewMesh(positions, normals []core.Vec3, indices []int) *Mesh {
	if len(indices)%3 != 0 {
		panic("Face indices must be a multiple of 3")
	}
	if len(normals) != len(positions) {
		panic("Number of normals must match number of positions")
	}

	triangles := make([]Shape, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if i0 >= len(positions) || i1 >= len(positions) || i2 >= len(positions) ||
			i0 < 0 || i1 < 0 || i2 < 0 {
			panic("Face index out of bounds")
		}

		triangles = append(triangles, NewSmoothTriangle(
			positions[i0], positions[i1], positions[i2],
			normals[i0], normals[i1], normals[i2],
		))
	}

	return &Mesh{
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
		triangles: triangles,
		bvh:       NewBVH(triangles),
		bbox:      core.NewAABBFromPoints(positions...),
	}
}

// Hit tests the ray against the mesh in mesh space
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64, hit *HitRecord) bool {
	return m.bvh.Hit(ray, tMin, tMax, hit)
}

// BoundingBox returns the mesh-space bounding box
func (m *Mesh) BoundingBox() core.AABB {
	return m.bbox
}

// GetTriangleCount returns the number of triangles in this mesh
func (m *Mesh) GetTriangleCount() int {
	return len(m.triangles)
}

// meshBuilder accumulates vertices and quads for the tessellators
type meshBuilder struct {
	positions []core.Vec3
	normals   []core.Vec3
	indices   []int
}

func (b *meshBuilder) vertex(position, normal core.Vec3) int {
	b.positions = append(b.positions, position)
	b.normals = append(b.normals, normal)
	return len(b.positions) - 1
}

func (b *meshBuilder) triangle(a, c, d int) {
	b.indices = append(b.indices, a, c, d)
}

// quad adds two triangles for corners in counter-clockwise order
func (b *meshBuilder) quad(a, c, d, e int) {
	b.triangle(a, c, d)
	b.triangle(a, d, e)
}

func (b *meshBuilder) build() *Mesh {
	return NewMesh(b.positions, b.normals, b.indices)
}
