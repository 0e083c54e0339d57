package renderer

import "time"

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of camera samples taken
	AverageSamples float64       // Average samples per pixel
	PrimaryHits    int           // Camera samples that hit geometry
	ShadowRays     int           // Shadow rays traced toward directional lights
	Tiles          int           // Tiles rendered
	Duration       time.Duration // Wall time of the frame
}

// Merge adds the counters of a tile into the frame totals
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.PrimaryHits += other.PrimaryHits
	s.ShadowRays += other.ShadowRays
	s.Tiles += other.Tiles
}

// finalize calculates derived statistics after all tiles are merged
func (s *RenderStats) finalize(duration time.Duration) {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
	s.Duration = duration
}
