package scene

import (
	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/df07/go-matcap-loop/pkg/geometry"
	"github.com/df07/go-matcap-loop/pkg/material"
)

// Transform is the local placement of a node relative to its parent.
// Rotation holds Euler angles in radians applied in XYZ order.
type Transform struct {
	Position core.Vec3
	Rotation core.Vec3
	Scale    core.Vec3
}

// NewTransform returns the identity placement
func NewTransform() Transform {
	return Transform{Scale: core.NewVec3(1, 1, 1)}
}

// Matrix returns the local-to-parent matrix
func (t Transform) Matrix() core.Mat4 {
	return core.Compose(t.Position, t.Rotation, t.Scale)
}

// Mesh places shared geometry with a shared material. Geometry and material
// are referenced, never owned, so many meshes may point at the same ones.
type Mesh struct {
	Transform
	Geometry      *geometry.Mesh
	Material      material.Material
	CastShadow    bool
	ReceiveShadow bool
}

// NewMesh creates a mesh node at the parent's origin
func NewMesh(geom *geometry.Mesh, mat material.Material) *Mesh {
	return &Mesh{
		Transform: NewTransform(),
		Geometry:  geom,
		Material:  mat,
	}
}

// Group is a rigid node whose children move with it
type Group struct {
	Transform
	Index  int // Position j along the loop, -1 for structural groups
	Groups []*Group
	Meshes []*Mesh
}

// NewGroup creates an empty group at the parent's origin
func NewGroup() *Group {
	return &Group{Transform: NewTransform(), Index: -1}
}

// AddGroup attaches a child group
func (g *Group) AddGroup(child *Group) {
	g.Groups = append(g.Groups, child)
}

// AddMesh attaches a mesh
func (g *Group) AddMesh(mesh *Mesh) {
	g.Meshes = append(g.Meshes, mesh)
}

// MeshCount returns the number of meshes in this group and all descendants
func (g *Group) MeshCount() int {
	count := len(g.Meshes)
	for _, child := range g.Groups {
		count += child.MeshCount()
	}
	return count
}

// collect appends one instance per mesh with its world matrix
func (g *Group) collect(parent core.Mat4, out []*geometry.Instance) []*geometry.Instance {
	world := parent.Mul(g.Matrix())
	for i, mesh := range g.Meshes {
		inst := geometry.NewInstance(mesh.Geometry, world.Mul(mesh.Matrix()), mesh.Material)
		inst.CastShadow = mesh.CastShadow
		inst.ReceiveShadow = mesh.ReceiveShadow
		inst.Group = g.Index
		inst.Part = i
		out = append(out, inst)
	}
	for _, child := range g.Groups {
		out = child.collect(world, out)
	}
	return out
}
