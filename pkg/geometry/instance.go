package geometry

import (
	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/df07/go-matcap-loop/pkg/material"
)

// Instance places a shared mesh in the world with its own transform and material
type Instance struct {
	Mesh          *Mesh
	Material      material.Material
	CastShadow    bool
	ReceiveShadow bool
	Group         int // Index of the owning loop group, -1 when it has none
	Part          int // Position among the owning group's meshes

	world   core.Mat4
	inverse core.Mat4
	bbox    core.AABB
}

// NewInstance creates an instance of mesh under the world matrix. A singular
// matrix (zero scale) yields an instance that is never hit.
func NewInstance(mesh *Mesh, world core.Mat4, mat material.Material) *Instance {
	inverse, ok := world.Inverse()
	inst := &Instance{
		Mesh:     mesh,
		Material: mat,
		Group:    -1,
		world:    world,
		inverse:  inverse,
		bbox:     mesh.BoundingBox().Transform(world),
	}
	if !ok {
		inst.Mesh = nil
	}
	return inst
}

// World returns the instance's world matrix
func (inst *Instance) World() core.Mat4 {
	return inst.world
}

// Hit transforms the ray into mesh space, which keeps t comparable across
// instances because the direction is not renormalized.
func (inst *Instance) Hit(ray core.Ray, tMin, tMax float64, hit *HitRecord) bool {
	if inst.Mesh == nil {
		return false
	}

	local := core.NewRay(inst.inverse.MulPoint(ray.Origin), inst.inverse.MulDirection(ray.Direction))
	if !inst.Mesh.Hit(local, tMin, tMax, hit) {
		return false
	}

	hit.Point = ray.At(hit.T)
	hit.Normal = inst.inverse.MulTransposeDirection(hit.Normal).Normalize()
	hit.Instance = inst
	return true
}

// BoundingBox returns the world-space bounding box
func (inst *Instance) BoundingBox() core.AABB {
	return inst.bbox
}
