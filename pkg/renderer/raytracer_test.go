package renderer

import (
	"image"
	"math"
	"testing"

	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/df07/go-matcap-loop/pkg/geometry"
	"github.com/df07/go-matcap-loop/pkg/lights"
	"github.com/df07/go-matcap-loop/pkg/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticScene returns the same snapshot every frame
type staticScene struct {
	snapshot Snapshot
}

func (s *staticScene) Snapshot() Snapshot { return s.snapshot }

// squareMesh is a square in the XY plane facing +Z
func squareMesh(minX, minY, maxX, maxY, z float64) *geometry.Mesh {
	n := core.NewVec3(0, 0, 1)
	return geometry.NewMesh(
		[]core.Vec3{
			core.NewVec3(minX, minY, z),
			core.NewVec3(maxX, minY, z),
			core.NewVec3(maxX, maxY, z),
			core.NewVec3(minX, maxY, z),
		},
		[]core.Vec3{n, n, n, n},
		[]int{0, 1, 2, 0, 2, 3},
	)
}

func instanceOf(mesh *geometry.Mesh, mat material.Material) *geometry.Instance {
	inst := geometry.NewInstance(mesh, core.Identity(), mat)
	inst.CastShadow = true
	inst.ReceiveShadow = true
	return inst
}

func smallCamera(size int) *Camera {
	camera := NewCamera(size, size)
	camera.Fov = 90
	camera.UpdateProjectionMatrix()
	camera.Position = core.NewVec3(0, 0, 5)
	camera.LookAt(core.Vec3{})
	return camera
}

func TestSquareSamples(t *testing.T) {
	tests := []struct{ in, out int }{{0, 1}, {1, 1}, {3, 1}, {4, 4}, {8, 4}, {9, 9}, {16, 16}}
	for _, tt := range tests {
		assert.Equal(t, tt.out, squareSamples(tt.in), "input %d", tt.in)
	}
}

func TestTileGridCoversImage(t *testing.T) {
	tiles := NewTileGrid(70, 33, 32)
	require.Len(t, tiles, 6)

	covered := 0
	for i, tile := range tiles {
		assert.Equal(t, i, tile.ID)
		covered += tile.Bounds.Dx() * tile.Bounds.Dy()
	}
	assert.Equal(t, 70*33, covered)
	assert.Equal(t, image.Rect(64, 32, 70, 33), tiles[5].Bounds)
}

func TestRenderEmptySceneClears(t *testing.T) {
	rt := NewRaytracer(10, 6, SamplingConfig{SamplesPerPixel: 4, TileSize: 4, NumWorkers: 2}, nil)
	defer rt.Close()

	scene := &staticScene{Snapshot{ClearColor: core.NewVec3(0.2, 0.4, 0.6), ClearAlpha: 1}}
	stats := rt.Render(scene, smallCamera(10))

	canvas := rt.Canvas().(*image.RGBA)
	for y := 0; y < 6; y++ {
		for x := 0; x < 10; x++ {
			c := canvas.RGBAAt(x, y)
			require.Equal(t, [4]uint8{51, 102, 153, 255}, [4]uint8{c.R, c.G, c.B, c.A})
		}
	}
	assert.Equal(t, 60, stats.TotalPixels)
	assert.Equal(t, 0, stats.PrimaryHits)
	assert.Equal(t, 6, stats.Tiles)
}

func TestRenderAmbientPlane(t *testing.T) {
	rt := NewRaytracer(16, 16, SamplingConfig{SamplesPerPixel: 4, TileSize: 8}, nil)
	defer rt.Close()

	mat := material.NewStandard(core.NewVec3(0.5, 0.5, 0.5), 0, 1)
	scene := &staticScene{Snapshot{
		Instances:  []*geometry.Instance{instanceOf(squareMesh(-10, -10, 10, 10, 0), mat)},
		Indirect:   []lights.IndirectLight{lights.NewAmbient(core.NewVec3(1, 1, 1), 1)},
		ClearAlpha: 1,
	}}

	stats := rt.Render(scene, smallCamera(16))

	canvas := rt.Canvas().(*image.RGBA)
	c := canvas.RGBAAt(8, 8)
	assert.Equal(t, [4]uint8{128, 128, 128, 255}, [4]uint8{c.R, c.G, c.B, c.A})

	assert.Equal(t, 256, stats.TotalPixels)
	assert.Equal(t, 1024, stats.TotalSamples)
	assert.Equal(t, 1024, stats.PrimaryHits)
	assert.Equal(t, 4, stats.Tiles)
	assert.InDelta(t, 4.0, stats.AverageSamples, 1e-12)
	assert.Equal(t, stats, rt.LastStats())
}

func TestRenderIsDeterministic(t *testing.T) {
	rt := NewRaytracer(24, 24, SamplingConfig{SamplesPerPixel: 4, TileSize: 8, NumWorkers: 3}, nil)
	defer rt.Close()

	mat := material.NewMatcap(core.NewColorHex(0x808080), 0.5, material.NewStudioMatcap(16))
	box := geometry.NewInstance(geometry.NewRoundedBox(2, 2, 1, 0.2, 3),
		core.Compose(core.Vec3{}, core.NewVec3(0.3, 0.5, 0.1), core.NewVec3(1, 1, 1)), mat)
	light := lights.NewDirectional(core.NewVec3(1, 1, 1), 0.5)
	scene := &staticScene{Snapshot{
		Instances:   []*geometry.Instance{box},
		Directional: []PlacedDirectional{{Light: light, Position: core.NewVec3(-1, 1, 1)}},
		Indirect:    []lights.IndirectLight{lights.NewAmbient(core.NewColorHex(0x808080), 0.5)},
		ClearAlpha:  1,
	}}

	rt.Render(scene, smallCamera(24))
	first := append([]uint8(nil), rt.Canvas().(*image.RGBA).Pix...)
	rt.Render(scene, smallCamera(24))
	assert.Equal(t, first, rt.Canvas().(*image.RGBA).Pix)
}

func shadowTestFrame(shadow lights.ShadowCamera) *frameContext {
	mat := material.NewStandard(core.NewVec3(0.5, 0.5, 0.5), 0, 1)
	receiver := instanceOf(squareMesh(-10, -10, 10, 10, 0), mat)
	occluder := instanceOf(squareMesh(-1.5, -0.5, -0.5, 0.5, 1), mat)

	light := lights.NewDirectional(core.NewVec3(1, 1, 1), 1)
	light.CastShadow = true
	light.Shadow = shadow

	snapshot := Snapshot{
		Instances:   []*geometry.Instance{receiver, occluder},
		Directional: []PlacedDirectional{{Light: light, Position: core.NewVec3(-3, 0, 3)}},
		ClearAlpha:  1,
	}
	return newFrameContext(snapshot, smallCamera(8))
}

func rayTo(point core.Vec3) core.Ray {
	origin := core.NewVec3(0, 0, 5)
	return core.NewRay(origin, point.Subtract(origin).Normalize())
}

func TestShadowRays(t *testing.T) {
	frame := shadowTestFrame(lights.NewShadowCamera(-2, 10, 7))
	var stats RenderStats

	shadowed, hit := frame.rayColor(rayTo(core.NewVec3(0, 0.3, 0)), &stats)
	require.True(t, hit)
	lit, hit := frame.rayColor(rayTo(core.NewVec3(2, 0.3, 0)), &stats)
	require.True(t, hit)

	assert.Equal(t, core.Vec3{}, shadowed)
	assert.Greater(t, lit.X, 0.0)
	assert.InDelta(t, 0.5*math.Sqrt(0.5), lit.X, 0.05)
	assert.Equal(t, 2, stats.ShadowRays)
}

func TestShadowOnlyInsideShadowVolume(t *testing.T) {
	// The receiver at the origin is 4.24 units from the light, past the far plane
	frame := shadowTestFrame(lights.NewShadowCamera(-2, 1, 7))
	var stats RenderStats

	c, hit := frame.rayColor(rayTo(core.NewVec3(0, 0.3, 0)), &stats)
	require.True(t, hit)
	assert.Greater(t, c.X, 0.0)
	assert.Equal(t, 0, stats.ShadowRays)
}

func TestShadowIgnoresNonCasters(t *testing.T) {
	frame := shadowTestFrame(lights.NewShadowCamera(-2, 10, 7))
	frame.snapshot.Instances[1].CastShadow = false
	frame = newFrameContext(frame.snapshot, frame.camera)

	var stats RenderStats
	c, _ := frame.rayColor(rayTo(core.NewVec3(0, 0.3, 0)), &stats)
	assert.Greater(t, c.X, 0.0)
}

func TestVec3ToColor(t *testing.T) {
	c := vec3ToColor(core.NewVec3(-1, 0.5, 2), 1)
	assert.Equal(t, [4]uint8{0, 128, 255, 255}, [4]uint8{c.R, c.G, c.B, c.A})
}
