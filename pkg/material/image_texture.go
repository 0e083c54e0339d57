package material

import (
	"math"

	"github.com/df07/go-matcap-loop/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 is the top of the image
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	if len(pixels) != width*height {
		panic("pixel count must equal width*height")
	}
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture with bilinear filtering and clamp-to-edge
// addressing. V=0 is the bottom of the image, matching flipped GL uploads.
func (t *ImageTexture) Evaluate(uv core.Vec2) core.Vec3 {
	u := clamp01(uv.X)
	v := clamp01(uv.Y)

	// Texel centers sit at half-integer coordinates
	x := u*float64(t.Width) - 0.5
	y := (1.0-v)*float64(t.Height) - 0.5

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	c00 := t.at(x0, y0)
	c10 := t.at(x0+1, y0)
	c01 := t.at(x0, y0+1)
	c11 := t.at(x0+1, y0+1)

	top := c00.Lerp(c10, fx)
	bottom := c01.Lerp(c11, fx)
	return top.Lerp(bottom, fy)
}

// at returns the texel at integer coordinates, clamped to the image bounds
func (t *ImageTexture) at(x, y int) core.Vec3 {
	x = max(0, min(t.Width-1, x))
	y = max(0, min(t.Height-1, y))
	return t.Pixels[y*t.Width+x]
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0.5
	}
	return max(0, min(1, x))
}
