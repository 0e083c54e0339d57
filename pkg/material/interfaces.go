package material

import (
	"github.com/df07/go-matcap-loop/pkg/core"
)

// Material shades a surface point seen by the camera
type Material interface {
	// Shade returns the final color for the interaction under the given lighting.
	// All vectors are in view space.
	Shade(si SurfaceInteraction, lighting Lighting) core.Vec3
}

// SurfaceInteraction contains information about a visible surface point
type SurfaceInteraction struct {
	Point         core.Vec3 // World-space point of intersection
	Normal        core.Vec3 // World-space shading normal, facing the ray
	T             float64   // Parameter t along the ray
	FrontFace     bool      // Whether ray hit the front face
	Material      Material  // Material of the hit object
	ViewPosition  core.Vec3 // View-space position (model-view * position)
	ViewNormal    core.Vec3 // View-space interpolated vertex normal, unit length
	ReceiveShadow bool      // Whether shadows may darken this point
}

// SetFaceNormal sets the normal vector and determines front/back face
func (si *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.Normal = outwardNormal
	} else {
		si.Normal = outwardNormal.Negate()
	}
}

// DirectLight is one directional contribution at a surface point
type DirectLight struct {
	Direction  core.Vec3 // View-space unit vector from the surface toward the light
	Color      core.Vec3 // Light color scaled by intensity
	Visibility float64   // 0 fully shadowed, 1 unoccluded
}

// Lighting is the light arriving at a surface point
type Lighting struct {
	Indirect core.Vec3 // Ambient and hemisphere irradiance at the normal
	Direct   []DirectLight
}
