package core

import "math"

// Tau is a full turn in radians
const Tau = 2 * math.Pi

// Mod returns x modulo m in [0, m) for positive m
func Mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// Parabola maps x in [0,1] to a bump that is 0 at both ends and 1 at x=0.5.
// k controls the steepness of the bump.
func Parabola(x, k float64) float64 {
	return math.Pow(4*x*(1-x), k)
}

// Lemniscate returns the point at angle t on the lemniscate of Bernoulli,
// a figure-eight spanning [-1,1] on X.
func Lemniscate(t float64) Vec2 {
	sin, cos := math.Sincos(t)
	scale := 1 / (1 + sin*sin)
	return Vec2{
		X: cos * scale,
		Y: sin * cos * scale,
	}
}

// PointsOnSphere distributes n points evenly over the unit sphere
// along a golden-angle spiral.
func PointsOnSphere(n int) []Vec3 {
	points := make([]Vec3, n)
	if n == 0 {
		return points
	}
	increment := math.Pi * (3 - math.Sqrt(5))
	offset := 2.0 / float64(n)
	for i := 0; i < n; i++ {
		y := float64(i)*offset - 1 + offset/2
		r := math.Sqrt(math.Max(0, 1-y*y))
		phi := float64(i) * increment
		points[i] = NewVec3(math.Cos(phi)*r, y, math.Sin(phi)*r)
	}
	return points
}
