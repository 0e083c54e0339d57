package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLemniscatePeriodic(t *testing.T) {
	for _, theta := range []float64{0, 0.1, 1, math.Pi / 2, math.Pi, 4.2, 6} {
		a := Lemniscate(theta)
		b := Lemniscate(theta + Tau)
		assert.InDelta(t, a.X, b.X, 1e-12, "theta=%v", theta)
		assert.InDelta(t, a.Y, b.Y, 1e-12, "theta=%v", theta)
	}
}

func TestLemniscateShape(t *testing.T) {
	assert.Equal(t, NewVec2(1, 0), Lemniscate(0))

	// The crossing point of the figure-eight is the origin
	center := Lemniscate(math.Pi / 2)
	assert.InDelta(t, 0, center.X, 1e-12)
	assert.InDelta(t, 0, center.Y, 1e-12)

	opposite := Lemniscate(math.Pi)
	assert.InDelta(t, -1, opposite.X, 1e-12)
}

func TestParabola(t *testing.T) {
	assert.Equal(t, 0.0, Parabola(0, 4))
	assert.Equal(t, 0.0, Parabola(1, 4))
	assert.Equal(t, 1.0, Parabola(0.5, 4))
	assert.InDelta(t, math.Pow(0.75, 4), Parabola(0.25, 4), 1e-12)
}

func TestMod(t *testing.T) {
	assert.Equal(t, 0.25, Mod(1.25, 1))
	assert.Equal(t, 0.75, Mod(-0.25, 1))
	assert.Equal(t, 0.0, Mod(3, 3))
}

func TestPointsOnSphere(t *testing.T) {
	points := PointsOnSphere(64)
	assert.Len(t, points, 64)
	for i, p := range points {
		assert.InDelta(t, 1, p.Length(), 1e-9, "point %d", i)
	}
	assert.Empty(t, PointsOnSphere(0))
}
