package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotationXYZ(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		rotation Vec3
		expected Vec3
	}{
		{"no rotation", NewVec3(1, 0, 0), NewVec3(0, 0, 0), NewVec3(1, 0, 0)},
		{"90 degrees around Z", NewVec3(1, 0, 0), NewVec3(0, 0, math.Pi/2), NewVec3(0, 1, 0)},
		{"90 degrees around Y", NewVec3(1, 0, 0), NewVec3(0, math.Pi/2, 0), NewVec3(0, 0, -1)},
		{"90 degrees around X", NewVec3(0, 1, 0), NewVec3(math.Pi/2, 0, 0), NewVec3(0, 0, 1)},
		// Z is applied first, then Y: (1,0,0) -> (0,1,0) -> (0,1,0)
		{"Z then Y", NewVec3(1, 0, 0), NewVec3(0, math.Pi/2, math.Pi/2), NewVec3(0, 1, 0)},
		// Z first, then X: (1,0,0) -> (0,1,0) -> (0,0,1)
		{"Z then X", NewVec3(1, 0, 0), NewVec3(math.Pi/2, 0, math.Pi/2), NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRotationXYZ(tt.rotation).MulDirection(tt.vector)
			assert.True(t, got.ApproxEquals(tt.expected, 1e-12), "expected %v, got %v", tt.expected, got)
		})
	}
}

func TestComposeAndInverse(t *testing.T) {
	m := Compose(NewVec3(1, 2, 3), NewVec3(0.3, -1.2, 2.5), NewVec3(0.15, 0.15, 1))
	inv, ok := m.Inverse()
	require.True(t, ok)

	p := NewVec3(-0.4, 0.7, 2.2)
	back := inv.MulPoint(m.MulPoint(p))
	assert.True(t, back.ApproxEquals(p, 1e-9), "expected %v, got %v", p, back)

	product := m.Mul(inv)
	identity := Identity()
	for i := range product {
		assert.InDelta(t, identity[i], product[i], 1e-9, "element %d", i)
	}
}

func TestInverseSingular(t *testing.T) {
	_, ok := Compose(Vec3{}, Vec3{}, NewVec3(1, 0, 1)).Inverse()
	assert.False(t, ok)
}

func TestNormalTransformStaysPerpendicular(t *testing.T) {
	m := Compose(Vec3{}, NewVec3(0, 0, math.Pi/4), NewVec3(0.15, 0.15, 1))
	inv, ok := m.Inverse()
	require.True(t, ok)

	// A surface spanned by tangent with normal n must stay perpendicular after a non-uniform scale
	tangent := NewVec3(1, -1, 0)
	normal := NewVec3(1, 1, 0).Normalize()

	worldTangent := m.MulDirection(tangent)
	worldNormal := inv.MulTransposeDirection(normal)
	assert.InDelta(t, 0, worldTangent.Dot(worldNormal), 1e-12)
}

func TestLookAt(t *testing.T) {
	view := NewLookAt(NewVec3(0, 0, 7), Vec3{}, NewVec3(0, 1, 0))

	assert.True(t, view.MulPoint(Vec3{}).ApproxEquals(NewVec3(0, 0, -7), 1e-12))
	assert.True(t, view.MulPoint(NewVec3(0, 0, 7)).ApproxEquals(Vec3{}, 1e-12))
	assert.True(t, view.MulDirection(NewVec3(1, 0, 0)).ApproxEquals(NewVec3(1, 0, 0), 1e-12))
}
