package scene

import (
	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/df07/go-matcap-loop/pkg/geometry"
	"github.com/df07/go-matcap-loop/pkg/lights"
	"github.com/df07/go-matcap-loop/pkg/renderer"
)

// Scene contains all the elements needed for rendering. The scene itself
// is the top node: its Transform moves the content and the directional
// lights together.
type Scene struct {
	Transform
	Root        *Group   // All content
	Groups      []*Group // Animated groups in phase order
	Directional []*lights.Directional
	Indirect    []lights.IndirectLight
	ClearColor  core.Vec3
	ClearAlpha  float64
}

// NewScene creates an empty scene with a black opaque background
func NewScene() *Scene {
	return &Scene{
		Transform:  NewTransform(),
		Root:       NewGroup(),
		ClearAlpha: 1,
	}
}

// AddDirectional adds a directional light to the scene
func (s *Scene) AddDirectional(light *lights.Directional) {
	s.Directional = append(s.Directional, light)
}

// AddIndirect adds an ambient or hemisphere light to the scene
func (s *Scene) AddIndirect(light lights.IndirectLight) {
	s.Indirect = append(s.Indirect, light)
}

// MeshCount returns the total number of meshes in the scene
func (s *Scene) MeshCount() int {
	return s.Root.MeshCount()
}

// Snapshot implements renderer.Scene
func (s *Scene) Snapshot() renderer.Snapshot {
	world := s.Matrix()

	snapshot := renderer.Snapshot{
		Instances:  s.Root.collect(world, make([]*geometry.Instance, 0, s.MeshCount())),
		Indirect:   s.Indirect,
		ClearColor: s.ClearColor,
		ClearAlpha: s.ClearAlpha,
	}
	for _, light := range s.Directional {
		// The target is not part of the scene and stays put in world space
		snapshot.Directional = append(snapshot.Directional, renderer.PlacedDirectional{
			Light:    light,
			Position: world.MulPoint(light.Position),
			Target:   light.Target,
		})
	}
	return snapshot
}
