package renderer

import (
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/df07/go-matcap-loop/pkg/geometry"
	"github.com/df07/go-matcap-loop/pkg/lights"
	"github.com/df07/go-matcap-loop/pkg/material"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Camera rays per pixel, rounded down to a perfect square
	TileSize        int // Size of each square tile in pixels
	NumWorkers      int // Number of parallel workers (0 = use CPU count)
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 4,
		TileSize:        32,
		NumWorkers:      0,
	}
}

const (
	hitEpsilon = 1e-4
	shadowBias = 1e-3
)

// fallbackMaterial shades instances that carry no material
var fallbackMaterial material.Material = material.NewStandard(core.NewVec3(0.8, 0.8, 0.8), 0, 1)

// Raytracer renders scene snapshots into an owned RGBA canvas. It is a
// deterministic ray caster: primary rays, direct lighting and shadow rays.
type Raytracer struct {
	width, height int
	config        SamplingConfig
	canvas        *image.RGBA
	tiles         []*Tile
	workerPool    *WorkerPool
	logger        core.Logger

	mu        sync.Mutex
	lastStats RenderStats
}

// NewRaytracer creates a raytracer and starts its worker pool. Call Close
// when done.
func NewRaytracer(width, height int, config SamplingConfig, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultSamplingConfig().TileSize
	}
	config.SamplesPerPixel = squareSamples(config.SamplesPerPixel)
	if logger == nil {
		logger = core.NopLogger{}
	}

	tiles := NewTileGrid(width, height, config.TileSize)
	workerPool := NewWorkerPool(config.NumWorkers)

	return &Raytracer{
		width:      width,
		height:     height,
		config:     config,
		canvas:     image.NewRGBA(image.Rect(0, 0, width, height)),
		tiles:      tiles,
		workerPool: workerPool,
		logger:     logger,
	}
}

// squareSamples rounds n down to a perfect square of at least 1
func squareSamples(n int) int {
	k := int(math.Sqrt(float64(max(n, 1))))
	return k * k
}

// Canvas returns the surface frames are rendered into. The image is reused
// and overwritten by every Render call.
func (rt *Raytracer) Canvas() image.Image {
	return rt.canvas
}

// Config returns the effective sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// LastStats returns statistics of the most recent frame
func (rt *Raytracer) LastStats() RenderStats {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.lastStats
}

// Close stops the worker pool once the current frame is done. Render must
// not be called afterwards.
func (rt *Raytracer) Close() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.workerPool.Stop()
}

// Render draws one frame of scene as seen from camera into the canvas
func (rt *Raytracer) Render(scene Scene, camera *Camera) RenderStats {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	frame := newFrameContext(scene.Snapshot(), camera)

	stats := rt.workerPool.RenderTiles(rt.tiles, frame, rt.canvas, rt.config.SamplesPerPixel)
	stats.finalize(time.Since(start))

	rt.lastStats = stats
	rt.logger.Printf("Rendered %dx%d frame: %d instances, %d samples, %d shadow rays in %v\n",
		rt.width, rt.height, len(frame.snapshot.Instances), stats.TotalSamples, stats.ShadowRays, stats.Duration)
	return stats
}

// frameContext is the read-only per-frame state shared by all tile workers
type frameContext struct {
	snapshot Snapshot
	camera   *Camera
	view     core.Mat4
	world    *geometry.BVH // every instance
	casters  *geometry.BVH // instances that cast shadows
	clear    color.RGBA
}

func newFrameContext(snapshot Snapshot, camera *Camera) *frameContext {
	all := make([]geometry.Shape, 0, len(snapshot.Instances))
	var casters []geometry.Shape
	for _, inst := range snapshot.Instances {
		all = append(all, inst)
		if inst.CastShadow {
			casters = append(casters, inst)
		}
	}

	return &frameContext{
		snapshot: snapshot,
		camera:   camera,
		view:     camera.ViewMatrix(),
		world:    geometry.NewBVH(all),
		casters:  geometry.NewBVH(casters),
		clear:    vec3ToColor(snapshot.ClearColor, snapshot.ClearAlpha),
	}
}

// rayColor returns the color seen along a camera ray and whether it hit anything
func (f *frameContext) rayColor(ray core.Ray, stats *RenderStats) (core.Vec3, bool) {
	var hit geometry.HitRecord
	if !f.world.Hit(ray, hitEpsilon, math.Inf(1), &hit) {
		return f.snapshot.ClearColor, false
	}
	return f.shade(ray, hit, stats), true
}

// shade lights a surface hit with every light in the snapshot
func (f *frameContext) shade(ray core.Ray, hit geometry.HitRecord, stats *RenderStats) core.Vec3 {
	inst := hit.Instance
	mat := inst.Material
	if mat == nil {
		mat = fallbackMaterial
	}

	si := material.SurfaceInteraction{
		Point:         hit.Point,
		T:             hit.T,
		Material:      mat,
		ViewPosition:  f.view.MulPoint(hit.Point),
		ViewNormal:    f.view.MulDirection(hit.Normal).Normalize(),
		ReceiveShadow: inst.ReceiveShadow,
	}
	si.SetFaceNormal(ray, hit.Normal)

	var lighting material.Lighting
	for _, light := range f.snapshot.Indirect {
		lighting.Indirect = lighting.Indirect.Add(light.Irradiance(hit.Normal))
	}

	for _, placed := range f.snapshot.Directional {
		light := placed.Light
		direction := lights.Direction(placed.Position, placed.Target)

		visibility := 1.0
		if light.CastShadow && inst.ReceiveShadow && light.InShadowVolume(placed.Position, placed.Target, hit.Point) {
			stats.ShadowRays++
			if f.occluded(placed, direction, si.Normal, hit.Point) {
				visibility = 0
			}
		}

		lighting.Direct = append(lighting.Direct, material.DirectLight{
			Direction:  f.view.MulDirection(direction).Normalize(),
			Color:      light.Radiance(),
			Visibility: visibility,
		})
	}

	return mat.Shade(si, lighting)
}

// occluded traces a shadow ray toward a directional light. Only casters in
// front of the shadow camera's near plane can block it.
func (f *frameContext) occluded(placed PlacedDirectional, direction, normal, point core.Vec3) bool {
	origin := point.Add(normal.Multiply(shadowBias))

	// Depth along the light's view axis, measured from its position
	depth := point.Subtract(placed.Position).Dot(direction.Negate())
	tMax := depth - placed.Light.Shadow.Near
	if tMax <= 0 {
		return false
	}

	var hit geometry.HitRecord
	return f.casters.Hit(core.NewRay(origin, direction), hitEpsilon, tMax, &hit)
}

// vec3ToColor converts a linear color to RGBA with clamping
func vec3ToColor(c core.Vec3, alpha float64) color.RGBA {
	c = c.Clamp(0.0, 1.0)
	alpha = max(0, min(1, alpha))
	return color.RGBA{
		R: uint8(math.Round(255 * c.X)),
		G: uint8(math.Round(255 * c.Y)),
		B: uint8(math.Round(255 * c.Z)),
		A: uint8(math.Round(255 * alpha)),
	}
}
