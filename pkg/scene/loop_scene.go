package scene

import (
	"math"

	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/df07/go-matcap-loop/pkg/geometry"
	"github.com/df07/go-matcap-loop/pkg/lights"
	"github.com/df07/go-matcap-loop/pkg/material"
	"github.com/df07/go-matcap-loop/pkg/renderer"
)

const (
	// GroupCount is the number of animated groups
	GroupCount = 5
	// SatellitesPerGroup is the number of prisms around each center box
	SatellitesPerGroup = 4

	satelliteRadius = 1.5
	shadowExtent    = 7.0
)

// LoopGeometry is the geometry shared by every group
type LoopGeometry struct {
	Box *geometry.Mesh
	Hex *geometry.Mesh
}

// NewLoopGeometry tessellates the center box and the satellite prism once
func NewLoopGeometry() LoopGeometry {
	return LoopGeometry{
		Box: geometry.NewRoundedBox(1, 1, 0.5, 0.1, 5),
		Hex: geometry.NewRoundedPolygonPrism(1, 0.5, 6, 10, 0.1, 5, 10),
	}
}

// NewLoopScene builds five identical groups, each a rounded box with four
// hex prisms arranged around it, all sharing mat. Two shadow-casting
// directional lights, an ambient light and a hemisphere light light them.
func NewLoopScene(mat material.Material) *Scene {
	s := NewScene()
	geom := NewLoopGeometry()

	for j := 0; j < GroupCount; j++ {
		g := newLoopGroup(j, geom, mat)
		s.Root.AddGroup(g)
		s.Groups = append(s.Groups, g)
	}

	key := newShadowLight(core.NewVec3(-1, 1, 1))
	fill := newShadowLight(core.NewVec3(1, 2, 1))
	s.AddDirectional(key)
	s.AddDirectional(fill)

	s.AddIndirect(lights.NewAmbient(core.NewColorHex(0x808080), 0.5))
	s.AddIndirect(lights.NewHemisphere(core.NewColorHex(0xcefeff), core.NewColorHex(0xb3eaf0), 0.5))

	s.ClearColor = core.Vec3{}
	s.ClearAlpha = 1
	return s
}

// newLoopGroup creates group j: one center box with its satellites
func newLoopGroup(j int, geom LoopGeometry, mat material.Material) *Group {
	g := NewGroup()
	g.Index = j

	center := NewMesh(geom.Box, mat)
	center.CastShadow, center.ReceiveShadow = true, true
	g.AddMesh(center)

	for s := 0; s < SatellitesPerGroup; s++ {
		angle := float64(s) * core.Tau / SatellitesPerGroup

		side := NewMesh(geom.Hex, mat)
		side.Position = core.NewVec3(satelliteRadius*math.Cos(angle), satelliteRadius*math.Sin(angle), -0.25)
		side.Scale = core.NewVec3(0.15, 0.15, 1)
		side.Rotation.Z = angle + math.Pi/2
		side.CastShadow, side.ReceiveShadow = true, true
		g.AddMesh(side)
	}
	return g
}

func newShadowLight(position core.Vec3) *lights.Directional {
	light := lights.NewDirectional(core.NewVec3(1, 1, 1), 0.5)
	light.Position = position
	light.CastShadow = true
	light.Shadow = lights.NewShadowCamera(-2, 10, shadowExtent)
	return light
}

// NewLoopCamera returns the camera the loop is framed for: fov 90 at
// (0,0,7) looking at the origin
func NewLoopCamera(width, height int) *renderer.Camera {
	camera := renderer.NewCamera(width, height)
	camera.Zoom = 1
	camera.Fov = 90
	camera.UpdateProjectionMatrix()
	camera.Position = core.NewVec3(0, 0, 7)
	camera.LookAt(core.Vec3{})
	return camera
}
