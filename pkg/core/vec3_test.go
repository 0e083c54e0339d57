package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Reflect(t *testing.T) {
	tests := []struct {
		name     string
		incident Vec3
		normal   Vec3
		expected Vec3
	}{
		{"head on", NewVec3(0, 0, -1), NewVec3(0, 0, 1), NewVec3(0, 0, 1)},
		{"grazing 45 degrees", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"parallel to surface", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.incident.Reflect(tt.normal).ApproxEquals(tt.expected, 1e-12),
				"expected %v, got %v", tt.expected, tt.incident.Reflect(tt.normal))
		})
	}
}

func TestNewColorHex(t *testing.T) {
	gray := NewColorHex(0x808080)
	assert.InDelta(t, 128.0/255.0, gray.X, 1e-12)
	assert.Equal(t, gray.X, gray.Y)
	assert.Equal(t, gray.Y, gray.Z)

	sky := NewColorHex(0xcefeff)
	assert.InDelta(t, 0xce/255.0, sky.X, 1e-12)
	assert.InDelta(t, 0xfe/255.0, sky.Y, 1e-12)
	assert.InDelta(t, 1.0, sky.Z, 1e-12)
}

func TestVec3NormalizeZero(t *testing.T) {
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 1.0, NewVec3(3, 4, 12).Normalize().Length(), 1e-12)
}

func TestVec3Lerp(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(2, 4, -6)
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.True(t, a.Lerp(b, 0.5).ApproxEquals(NewVec3(1, 2, -3), 1e-12))
}

func TestAABBHit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	assert.True(t, box.Hit(NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0, math.Inf(1)))
	assert.False(t, box.Hit(NewRay(NewVec3(0, 3, 5), NewVec3(0, 0, -1)), 0, math.Inf(1)))
	assert.False(t, box.Hit(NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), 0, math.Inf(1)), "box is behind the ray")
}

func TestAABBTransform(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	moved := box.Transform(Compose(NewVec3(5, 0, 0), Vec3{}, NewVec3(2, 1, 1)))

	assert.True(t, moved.Min.ApproxEquals(NewVec3(3, -1, -1), 1e-12))
	assert.True(t, moved.Max.ApproxEquals(NewVec3(7, 1, 1), 1e-12))
}
