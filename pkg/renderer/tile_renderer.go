package renderer

import (
	"image"
	"math"

	"github.com/df07/go-matcap-loop/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// renderTileBounds renders the pixels within bounds into canvas. Tiles never
// overlap, so concurrent calls write disjoint pixels.
func renderTileBounds(bounds image.Rectangle, frame *frameContext, canvas *image.RGBA, samplesPerPixel int) RenderStats {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		Tiles:       1,
	}

	// Stratified sub-pixel grid, identical for every pixel and frame
	grid := int(math.Sqrt(float64(samplesPerPixel)))
	grid = max(grid, 1)
	inv := 1.0 / float64(grid)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var accum core.Vec3
			hits := 0
			for sy := 0; sy < grid; sy++ {
				for sx := 0; sx < grid; sx++ {
					ray := frame.camera.GetRay(x, y, (float64(sx)+0.5)*inv, (float64(sy)+0.5)*inv)
					c, hit := frame.rayColor(ray, &stats)
					accum = accum.Add(c)
					if hit {
						hits++
					}
				}
			}

			samples := grid * grid
			stats.TotalSamples += samples
			stats.PrimaryHits += hits

			if hits == 0 {
				canvas.SetRGBA(x, y, frame.clear)
				continue
			}
			// Partially covered pixels blend coverage into alpha like the clear color
			alpha := (float64(hits) + float64(samples-hits)*frame.snapshot.ClearAlpha) / float64(samples)
			canvas.SetRGBA(x, y, vec3ToColor(accum.Multiply(1.0/float64(samples)), alpha))
		}
	}

	return stats
}
