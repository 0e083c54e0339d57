package renderer

import (
	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/df07/go-matcap-loop/pkg/geometry"
	"github.com/df07/go-matcap-loop/pkg/lights"
)

// Scene interface to avoid circular imports
type Scene interface {
	// Snapshot flattens the scene graph with current world transforms
	Snapshot() Snapshot
}

// PlacedDirectional is a directional light with its world-space placement
type PlacedDirectional struct {
	Light    *lights.Directional
	Position core.Vec3
	Target   core.Vec3
}

// Snapshot is the renderable state of a scene at one instant
type Snapshot struct {
	Instances   []*geometry.Instance
	Directional []PlacedDirectional
	Indirect    []lights.IndirectLight
	ClearColor  core.Vec3
	ClearAlpha  float64
}
