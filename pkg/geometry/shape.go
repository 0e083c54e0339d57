package geometry

import (
	"github.com/df07/go-matcap-loop/pkg/core"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Interpolated vertex normal, outward facing, unit length
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face of the triangle
	Instance  *Instance // Instance that was hit, nil for bare meshes
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit fills hit and returns true when the ray hits in (tMin, tMax).
	// hit is left untouched on a miss.
	Hit(ray core.Ray, tMin, tMax float64, hit *HitRecord) bool
	BoundingBox() core.AABB
}
