package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"golang.org/x/image/draw"

	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/df07/go-matcap-loop/pkg/material"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 is the top of the image
}

// LoadImage loads a PNG or JPEG image and converts it to Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	img, err := decodeFile(filename)
	if err != nil {
		return nil, err
	}
	return toImageData(toRGBA(img, img.Bounds().Dx(), img.Bounds().Dy())), nil
}

// LoadImageScaled loads an image and resamples it to width x height with a
// Catmull-Rom filter
func LoadImageScaled(filename string, width, height int) (*ImageData, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	img, err := decodeFile(filename)
	if err != nil {
		return nil, err
	}
	return toImageData(toRGBA(img, width, height)), nil
}

// NewMatcapTexture loads a matcap image as a texture. A positive size
// resamples it to size x size first.
func NewMatcapTexture(filename string, size int) (*material.ImageTexture, error) {
	var data *ImageData
	var err error
	if size > 0 {
		data, err = LoadImageScaled(filename, size, size)
	} else {
		data, err = LoadImage(filename)
	}
	if err != nil {
		return nil, fmt.Errorf("loading matcap: %w", err)
	}
	return material.NewImageTexture(data.Width, data.Height, data.Pixels), nil
}

func decodeFile(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Auto-detects PNG/JPEG from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}
	return img, nil
}

// toRGBA normalizes any decoded image (paletted, YCbCr, 16-bit) into 8-bit
// RGBA at the requested size
func toRGBA(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	}
	return dst
}

func toImageData(img *image.RGBA) *ImageData {
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			pixels[y*width+x] = core.NewVec3(
				float64(c.R)/255.0,
				float64(c.G)/255.0,
				float64(c.B)/255.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}
