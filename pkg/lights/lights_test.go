package lights

import (
	"testing"

	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestDirection(t *testing.T) {
	dir := Direction(core.NewVec3(-1, 1, 1), core.Vec3{})
	assert.InDelta(t, 1.0, dir.Length(), 1e-12)
	assert.True(t, dir.ApproxEquals(core.NewVec3(-1, 1, 1).Normalize(), 1e-12))

	// Coincident position and target fall back to straight down
	assert.Equal(t, core.NewVec3(0, 1, 0), Direction(core.Vec3{}, core.Vec3{}))
}

func TestDirectionalRadiance(t *testing.T) {
	light := NewDirectional(core.NewVec3(1, 1, 1), 0.5)
	assert.Equal(t, LightTypeDirectional, light.Type())
	assert.Equal(t, core.NewVec3(0.5, 0.5, 0.5), light.Radiance())
}

func TestInShadowVolume(t *testing.T) {
	light := NewDirectional(core.NewVec3(1, 1, 1), 0.5)
	light.Shadow = NewShadowCamera(-2, 10, 7)
	position := core.NewVec3(0, 0, 5)
	target := core.Vec3{}

	tests := []struct {
		name   string
		point  core.Vec3
		inside bool
	}{
		{"origin", core.NewVec3(0, 0, 0), true},
		{"behind light within near", core.NewVec3(0, 0, 6.5), true},
		{"behind light past near", core.NewVec3(0, 0, 7.5), false},
		{"beyond far", core.NewVec3(0, 0, -5.5), false},
		{"lateral edge", core.NewVec3(6.9, -6.9, 0), true},
		{"lateral outside", core.NewVec3(7.1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inside, light.InShadowVolume(position, target, tt.point))
		})
	}
}

func TestAmbient(t *testing.T) {
	light := NewAmbient(core.NewColorHex(0x808080), 0.5)
	assert.Equal(t, LightTypeAmbient, light.Type())

	a := light.Irradiance(core.NewVec3(0, 1, 0))
	b := light.Irradiance(core.NewVec3(0, -1, 0))
	assert.Equal(t, a, b)
	assert.InDelta(t, 0.5*128.0/255.0, a.X, 1e-12)
}

func TestHemisphere(t *testing.T) {
	sky := core.NewColorHex(0xcefeff)
	ground := core.NewColorHex(0xb3eaf0)
	light := NewHemisphere(sky, ground, 0.5)

	tests := []struct {
		name     string
		normal   core.Vec3
		expected core.Vec3
	}{
		{"up", core.NewVec3(0, 1, 0), sky.Multiply(0.5)},
		{"down", core.NewVec3(0, -1, 0), ground.Multiply(0.5)},
		{"horizon", core.NewVec3(1, 0, 0), sky.Add(ground).Multiply(0.25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, light.Irradiance(tt.normal).ApproxEquals(tt.expected, 1e-12))
		})
	}
}
