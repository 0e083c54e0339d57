// Package app assembles the loop from a config: matcap texture, scene,
// camera, raytracer and animation controller.
package app

import (
	"image"
	"image/draw"

	"github.com/df07/go-matcap-loop/pkg/animation"
	"github.com/df07/go-matcap-loop/pkg/config"
	"github.com/df07/go-matcap-loop/pkg/core"
	"github.com/df07/go-matcap-loop/pkg/loaders"
	"github.com/df07/go-matcap-loop/pkg/material"
	"github.com/df07/go-matcap-loop/pkg/renderer"
	"github.com/df07/go-matcap-loop/pkg/scene"
)

// Loop bundles everything needed to draw frames of the animation
type Loop struct {
	Scene      *scene.Scene
	Camera     *renderer.Camera
	Raytracer  *renderer.Raytracer
	Controller *animation.Controller
}

// New builds the loop described by cfg. The caller must Close it.
func New(cfg config.Config, logger core.Logger) (*Loop, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	texture, err := NewMatcap(cfg)
	if err != nil {
		return nil, err
	}

	mat := material.NewMatcap(core.NewColorHex(0x808080), 0.5, texture)
	s := scene.NewLoopScene(mat)
	camera := scene.NewLoopCamera(cfg.Width, cfg.Height)

	rt := renderer.NewRaytracer(cfg.Width, cfg.Height, renderer.SamplingConfig{
		SamplesPerPixel: cfg.SamplesPerPixel,
		TileSize:        cfg.TileSize,
		NumWorkers:      cfg.Workers,
	}, logger)

	controller := animation.NewController(s, rt, camera, animation.Options{
		EnableJitter:     cfg.EnableJitter,
		EnableOrbitDrift: cfg.EnableOrbitDrift,
		Seed:             cfg.Seed,
		Logger:           logger,
	})

	logger.Printf("Loop ready: %d meshes, %dx%d, %d spp\n",
		s.MeshCount(), cfg.Width, cfg.Height, rt.Config().SamplesPerPixel)

	return &Loop{
		Scene:      s,
		Camera:     camera,
		Raytracer:  rt,
		Controller: controller,
	}, nil
}

// NewMatcap loads the configured matcap image, or generates the studio
// matcap when no path is set
func NewMatcap(cfg config.Config) (*material.ImageTexture, error) {
	if cfg.Matcap == "" {
		size := cfg.MatcapSize
		if size <= 0 {
			size = config.Default().MatcapSize
		}
		return material.NewStudioMatcap(size), nil
	}
	return loaders.NewMatcapTexture(cfg.Matcap, cfg.MatcapSize)
}

// Close stops the raytracer's workers
func (l *Loop) Close() {
	l.Raytracer.Close()
}

// Snapshot copies the current canvas. The raytracer reuses its canvas, so
// frames that outlive the next draw must be copied.
func (l *Loop) Snapshot() *image.RGBA {
	canvas := l.Raytracer.Canvas()
	bounds := canvas.Bounds()
	frame := image.NewRGBA(bounds)
	draw.Draw(frame, bounds, canvas, bounds.Min, draw.Src)
	return frame
}
