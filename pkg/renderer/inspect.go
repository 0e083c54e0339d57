package renderer

import (
	"math"

	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/df07/go-matcap-loop/pkg/geometry"
	"github.com/df07/go-matcap-loop/pkg/material"
)

// InspectResult describes the first surface seen through a pixel
type InspectResult struct {
	Hit       bool
	Instance  int // Index into Snapshot.Instances, -1 on a miss
	Group     int // Loop group of the hit mesh, -1 on a miss or outside the loop
	Mesh      int // Position within the group, -1 whenever Group is
	Point     core.Vec3
	Normal    core.Vec3 // World space, facing the camera
	Distance  float64
	FrontFace bool
	Color     core.Vec3 // Shaded color before clamping
	Material  material.Material
}

// Inspect casts a single ray through the center of pixel (x, y) and reports
// what it hits. Shading matches Render, including shadows.
func Inspect(scene Scene, camera *Camera, x, y int) InspectResult {
	frame := newFrameContext(scene.Snapshot(), camera)
	ray := camera.GetRay(x, y, 0.5, 0.5)

	var hit geometry.HitRecord
	if !frame.world.Hit(ray, hitEpsilon, math.Inf(1), &hit) {
		return InspectResult{Instance: -1, Group: -1, Mesh: -1}
	}

	var si material.SurfaceInteraction
	si.SetFaceNormal(ray, hit.Normal)

	var stats RenderStats
	result := InspectResult{
		Hit:       true,
		Instance:  -1,
		Group:     -1,
		Mesh:      -1,
		Point:     hit.Point,
		Normal:    si.Normal,
		Distance:  hit.T,
		FrontFace: si.FrontFace,
		Color:     frame.shade(ray, hit, &stats),
		Material:  hit.Instance.Material,
	}
	if hit.Instance.Group >= 0 {
		result.Group = hit.Instance.Group
		result.Mesh = hit.Instance.Part
	}
	for i, inst := range frame.snapshot.Instances {
		if inst == hit.Instance {
			result.Instance = i
			break
		}
	}
	return result
}
