package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcapUVHeadOn(t *testing.T) {
	// Looking straight down -Z at a surface facing the camera samples the disk center
	u, v := MatcapUV(Vec3{0, 0, -1}, Vec3{0, 0, 1})
	assert.InDelta(t, 0.5, u, 1e-6)
	assert.InDelta(t, 0.5, v, 1e-6)
}

func TestMatcapUVTiltedNormal(t *testing.T) {
	// A normal tilted toward +X moves the lookup toward the right of the disk
	n := Vec3{1, 0, 1}.Normalize()
	u, v := MatcapUV(Vec3{0, 0, -1}, n)
	assert.Greater(t, u, float32(0.5))
	assert.InDelta(t, 0.5, v, 1e-6)
	assert.LessOrEqual(t, u, float32(1))

	// Symmetric tilt toward -Y moves the lookup down
	n = Vec3{0, -1, 1}.Normalize()
	_, v = MatcapUV(Vec3{0, 0, -1}, n)
	assert.Less(t, v, float32(0.5))
}

func TestMatcapUVDegenerate(t *testing.T) {
	// Reflection pointing straight away from the viewer
	u, v := MatcapUV(Vec3{0, 0, -1}, Vec3{1, 0, 0})
	assert.Equal(t, float32(0.5), u)
	assert.Equal(t, float32(0.5), v)
}

func TestRim(t *testing.T) {
	tests := []struct {
		name         string
		normal       Vec3
		viewPosition Vec3
		expected     float32
	}{
		{"facing viewer", Vec3{0, 0, 1}, Vec3{0, 0, 5}, 0},
		{"facing away uses abs", Vec3{0, 0, -1}, Vec3{0, 0, 5}, 0},
		{"grazing", Vec3{1, 0, 0}, Vec3{0, 0, 5}, 1},
		{"unnormalized inputs", Vec3{0, 0, 3}, Vec3{0, 0, 0.1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Rim(tt.normal, tt.viewPosition), 1e-6)
		})
	}
}

func TestRimMidpoint(t *testing.T) {
	// 1 - |cos| = 0.5 sits at the middle of the smoothstep
	n := Vec3{0.8660254, 0, 0.5}
	assert.InDelta(t, 0.5, Rim(n, Vec3{0, 0, 1}), 1e-5)
}

func TestSmoothStep(t *testing.T) {
	assert.Equal(t, float32(0), SmoothStep(0.25, 0.75, 0.1))
	assert.Equal(t, float32(1), SmoothStep(0.25, 0.75, 0.9))
	assert.InDelta(t, 0.5, SmoothStep(0.25, 0.75, 0.5), 1e-7)
}
