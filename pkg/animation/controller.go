// Package animation drives the loop: once per displayed frame it poses every
// group from the elapsed time and issues a single render call.
package animation

import (
	"image"
	"math/rand"
	"time"

	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/df07/go-matcap-loop/pkg/renderer"
	"github.com/df07/go-matcap-loop/pkg/scene"
)

// LoopDuration is the period of the animation
const LoopDuration = 3 * time.Second

const (
	jitterAmount     = 0.01
	driftPointCount  = 64
	lemniscateRadius = 4.0
)

// Renderer draws a scene from a camera
type Renderer interface {
	Render(scene renderer.Scene, camera *renderer.Camera) renderer.RenderStats
}

// CanvasProvider is implemented by renderers that draw into an image
type CanvasProvider interface {
	Canvas() image.Image
}

// Options toggles the optional per-frame perturbations. The zero value
// renders the plain loop.
type Options struct {
	EnableJitter     bool  // Nudge both directional lights randomly every frame
	EnableOrbitDrift bool  // Wobble the whole scene along points on a small sphere
	Seed             int64 // Seed for the jitter noise
	Logger           core.Logger
}

// Controller poses the scene's groups and renders one frame per Draw call.
// It references, but does not own, the scene, renderer and camera. It is
// not safe for concurrent use.
type Controller struct {
	scene    *scene.Scene
	renderer Renderer
	camera   *renderer.Camera
	options  Options
	clock    func() time.Time

	random       *rand.Rand
	spherePoints []core.Vec3
	frame        int
}

// NewController creates a controller that reads the wall clock with time.Now
func NewController(s *scene.Scene, r Renderer, camera *renderer.Camera, options Options) *Controller {
	if options.Logger == nil {
		options.Logger = core.NopLogger{}
	}

	c := &Controller{
		scene:    s,
		renderer: r,
		camera:   camera,
		options:  options,
		clock:    time.Now,
		random:   rand.New(rand.NewSource(options.Seed)),
	}
	if options.EnableOrbitDrift {
		c.spherePoints = core.PointsOnSphere(driftPointCount)
		options.Logger.Printf("Orbit drift enabled (%d points)\n", driftPointCount)
	}
	if options.EnableJitter {
		options.Logger.Printf("Light jitter enabled (seed %d)\n", options.Seed)
	}
	return c
}

// SetClock replaces the clock Draw reads the current time from
func (c *Controller) SetClock(clock func() time.Time) {
	c.clock = clock
}

// Draw renders the frame for the current time relative to startTime
func (c *Controller) Draw(startTime time.Time) renderer.RenderStats {
	return c.DrawAt(c.clock().Sub(startTime))
}

// DrawAt updates the scene for the given elapsed time and renders exactly once
func (c *Controller) DrawAt(elapsed time.Duration) renderer.RenderStats {
	c.Update(elapsed)
	return c.renderer.Render(c.scene, c.camera)
}

// Update poses every group for the given elapsed time and applies the
// enabled perturbations without rendering
func (c *Controller) Update(elapsed time.Duration) {
	c.PoseGroups(elapsed)

	if c.options.EnableJitter {
		c.jitterLights()
	}
	if c.options.EnableOrbitDrift {
		c.frame = (c.frame + 1) % driftPointCount
		c.scene.Position = c.spherePoints[c.frame].Multiply(jitterAmount)
	}
}

// PoseGroups places every group at its loop pose for the given elapsed
// time. Lights, the scene offset, the jitter noise and the drift counter
// are left untouched.
func (c *Controller) PoseGroups(elapsed time.Duration) {
	t := Phase(elapsed)

	n := len(c.scene.Groups)
	for _, g := range c.scene.Groups {
		pose := Pose(t, g.Index, n)
		g.Position = pose.Position
		g.Rotation = pose.Rotation
	}
}

// jitterLights places the directional lights near their jitter anchors
func (c *Controller) jitterLights() {
	anchors := []core.Vec3{core.NewVec3(1, 1, 1), core.NewVec3(1, 2, 1)}
	for i, light := range c.scene.Directional {
		if i >= len(anchors) {
			break
		}
		light.Position = anchors[i].Add(core.NewVec3(c.noise(), c.noise(), c.noise()))
	}
}

func (c *Controller) noise() float64 {
	return (c.random.Float64()*2 - 1) * jitterAmount
}

// Canvas returns the renderer's surface, or nil when it has none
func (c *Controller) Canvas() image.Image {
	if provider, ok := c.renderer.(CanvasProvider); ok {
		return provider.Canvas()
	}
	return nil
}

// Phase maps elapsed time to the loop parameter t in [0,1). The reduction
// is done on integer nanoseconds so elapsed and elapsed+LoopDuration give
// the same t bit for bit.
func Phase(elapsed time.Duration) float64 {
	phase := elapsed % LoopDuration
	if phase < 0 {
		phase += LoopDuration
	}
	return float64(phase) / float64(LoopDuration)
}

// GroupPose is the transform of one group at one instant
type GroupPose struct {
	Phase    float64   // Per-group phase tt in [0,1)
	Position core.Vec3
	Rotation core.Vec3 // Euler XYZ in radians
}

// Pose returns the transform of group j of n at loop parameter t. Groups
// are spread evenly along the figure-eight, bouncing three times per loop.
func Pose(t float64, j, n int) GroupPose {
	tt := core.Mod(t+float64(j)/float64(n), 1)
	p := core.Lemniscate(tt * core.Tau)
	y := 2 - 4*core.Parabola(core.Mod(3*tt+t, 1), 4)

	return GroupPose{
		Phase:    tt,
		Position: core.NewVec3(lemniscateRadius*p.X, y, lemniscateRadius*p.Y),
		Rotation: core.NewVec3(tt*core.Tau, tt*core.Tau, 2*tt*core.Tau),
	}
}
