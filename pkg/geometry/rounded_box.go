package geometry

import (
	"math"

	"github.com/df07/go-matcap-loop/pkg/core"
)

// boxFace describes one face of the box by axis indices. u x v = normal.
type boxFace struct {
	normal, u, v int
	sign         float64
}

var boxFaces = []boxFace{
	{normal: 0, u: 1, v: 2, sign: 1},
	{normal: 0, u: 2, v: 1, sign: -1},
	{normal: 1, u: 2, v: 0, sign: 1},
	{normal: 1, u: 0, v: 2, sign: -1},
	{normal: 2, u: 0, v: 1, sign: 1},
	{normal: 2, u: 1, v: 0, sign: -1},
}

// NewRoundedBox creates a box centered at the origin whose edges and corners
// are rounded with the given radius, using segments steps per quarter arc.
// The radius is clamped to half the smallest dimension.
func NewRoundedBox(width, height, depth, radius float64, segments int) *Mesh {
	half := [3]float64{width / 2, height / 2, depth / 2}
	radius = math.Max(0, math.Min(radius, math.Min(half[0], math.Min(half[1], half[2]))))
	segments = max(segments, 1)

	var inner [3]float64
	var samples [3][]float64
	for axis := range half {
		inner[axis] = half[axis] - radius
		samples[axis] = roundedSamples(half[axis], radius, segments)
	}

	b := &meshBuilder{}
	for _, face := range boxFaces {
		us, vs := samples[face.u], samples[face.v]
		first := len(b.positions)

		for j, sv := range vs {
			for _, su := range us {
				var p [3]float64
				p[face.normal] = face.sign * half[face.normal]
				p[face.u] = su
				p[face.v] = sv

				// Project the flat face point onto the rounded surface around
				// the inner box
				var q [3]float64
				for axis := range p {
					q[axis] = math.Max(-inner[axis], math.Min(inner[axis], p[axis]))
				}
				core3 := core.NewVec3(q[0], q[1], q[2])
				normal := core.NewVec3(p[0]-q[0], p[1]-q[1], p[2]-q[2]).Normalize()
				if normal.LengthSquared() == 0 {
					var n [3]float64
					n[face.normal] = face.sign
					normal = core.NewVec3(n[0], n[1], n[2])
				}
				b.vertex(core3.Add(normal.Multiply(radius)), normal)
			}
			if j == 0 {
				continue
			}
			row := first + j*len(us)
			prev := row - len(us)
			for i := 0; i+1 < len(us); i++ {
				b.quad(prev+i, prev+i+1, row+i+1, row+i)
			}
		}
	}
	return b.build()
}

// roundedSamples places grid lines along one axis: flat across the inner
// extent and following a quarter circle over each rounded band.
func roundedSamples(half, radius float64, segments int) []float64 {
	if radius <= 0 {
		return []float64{-half, half}
	}

	inner := half - radius
	samples := make([]float64, 0, 2*segments+2)
	for k := 0; k <= segments; k++ {
		angle := float64(k) / float64(segments) * math.Pi / 2
		samples = append(samples, -inner-radius*math.Cos(angle))
	}
	for k := 0; k <= segments; k++ {
		if k == 0 && inner == 0 {
			continue
		}
		angle := float64(k) / float64(segments) * math.Pi / 2
		samples = append(samples, inner+radius*math.Sin(angle))
	}
	return samples
}
