package material

import (
	"math"

	"github.com/df07/go-matcap-loop/pkg/core"
)

// NewCheckerboardTexture creates a procedural checkerboard pattern texture
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewStudioMatcap renders a lit sphere into a square matcap texture: a soft
// key light from the upper left, a cool fill from below and a bright
// specular highlight. Texels outside the sphere take the edge color.
func NewStudioMatcap(size int) *ImageTexture {
	pixels := make([]core.Vec3, size*size)

	key := core.NewVec3(-0.5, 0.6, 0.62).Normalize()
	fill := core.NewVec3(0.3, -0.8, 0.5).Normalize()
	half := core.NewVec3(0, 0, 1).Add(key).Normalize()

	base := core.NewVec3(0.18, 0.2, 0.24)
	keyColor := core.NewVec3(0.85, 0.82, 0.78)
	fillColor := core.NewVec3(0.2, 0.3, 0.42)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// Disk coordinates in [-1,1], +Y up
			dx := (float64(x)+0.5)/float64(size)*2 - 1
			dy := 1 - (float64(y)+0.5)/float64(size)*2
			r2 := dx*dx + dy*dy
			if r2 > 1 {
				scale := 1 / math.Sqrt(r2)
				dx, dy, r2 = dx*scale, dy*scale, 1
			}
			n := core.NewVec3(dx, dy, math.Sqrt(1-r2))

			color := base.
				Add(keyColor.Multiply(math.Max(0, n.Dot(key)))).
				Add(fillColor.Multiply(math.Max(0, n.Dot(fill)))).
				Add(core.NewVec3(1, 1, 1).Multiply(math.Pow(math.Max(0, n.Dot(half)), 40) * 0.6))

			pixels[y*size+x] = color.Clamp(0, 1)
		}
	}

	return NewImageTexture(size, size, pixels)
}
