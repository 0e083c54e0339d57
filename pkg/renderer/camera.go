package renderer

import (
	"math"

	"github.com/df07/go-matcap-loop/pkg/core"
)

// Camera is a perspective camera with an externally mutable field of view,
// zoom and position. Orientation is fixed when LookAt is called, so moving
// the camera afterwards translates it without re-aiming.
type Camera struct {
	Fov      float64 // Vertical field of view in degrees
	Zoom     float64
	Position core.Vec3
	Up       core.Vec3

	width, height int
	aspect        float64
	tanHalfFov    float64   // tan of half the effective vertical fov
	rotation      core.Mat4 // world-to-view rotation set by LookAt
}

// NewCamera creates a camera at the origin looking down -Z
func NewCamera(width, height int) *Camera {
	c := &Camera{
		Fov:      50,
		Zoom:     1,
		Up:       core.NewVec3(0, 1, 0),
		rotation: core.Identity(),
	}
	c.SetSize(width, height)
	return c
}

// SetSize sets the image size in pixels and derives the aspect ratio
func (c *Camera) SetSize(width, height int) {
	c.width = max(width, 1)
	c.height = max(height, 1)
	c.SetAspect(float64(c.width) / float64(c.height))
}

// SetAspect overrides the aspect ratio (width over height)
func (c *Camera) SetAspect(aspect float64) {
	c.aspect = aspect
	c.UpdateProjectionMatrix()
}

// Size returns the image size in pixels
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}

// UpdateProjectionMatrix must be called after Fov or Zoom change
func (c *Camera) UpdateProjectionMatrix() {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	c.tanHalfFov = math.Tan(c.Fov*math.Pi/360) / zoom
}

// EffectiveFov returns the vertical field of view in degrees after zoom
func (c *Camera) EffectiveFov() float64 {
	return 2 * math.Atan(c.tanHalfFov) * 180 / math.Pi
}

// LookAt turns the camera toward target from its current position
func (c *Camera) LookAt(target core.Vec3) {
	view := core.NewLookAt(c.Position, target, c.Up)
	view[3], view[7], view[11] = 0, 0, 0
	c.rotation = view
}

// ViewMatrix returns the world-to-view transform
func (c *Camera) ViewMatrix() core.Mat4 {
	m := c.rotation
	t := m.MulDirection(c.Position)
	m[3], m[7], m[11] = -t.X, -t.Y, -t.Z
	return m
}

// Forward returns the world-space viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.rotation.MulTransposeDirection(core.NewVec3(0, 0, -1))
}

// GetRay returns the ray through pixel (x, y) at sub-pixel offset (ox, oy)
// in [0,1). Pixel (0,0) is the top-left corner of the image.
func (c *Camera) GetRay(x, y int, ox, oy float64) core.Ray {
	ndcX := (float64(x)+ox)/float64(c.width)*2 - 1
	ndcY := 1 - (float64(y)+oy)/float64(c.height)*2

	viewDir := core.NewVec3(ndcX*c.tanHalfFov*c.aspect, ndcY*c.tanHalfFov, -1)
	return core.NewRay(c.Position, c.rotation.MulTransposeDirection(viewDir).Normalize())
}
