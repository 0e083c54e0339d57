package material

import (
	"github.com/df07/go-matcap-loop/pkg/core"
)

// ColorSource provides colors indexed by 2D texture coordinates
type ColorSource interface {
	// Evaluate returns the color at UV, with V=0 at the bottom edge
	Evaluate(uv core.Vec2) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV
func (s *SolidColor) Evaluate(uv core.Vec2) core.Vec3 {
	return s.Color
}
