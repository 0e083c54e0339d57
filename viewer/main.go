// Command viewer shows the loop in a desktop window. Every window refresh
// renders the frame for the current time.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/df07/go-matcap-loop/pkg/app"
	"github.com/df07/go-matcap-loop/pkg/config"
	"github.com/df07/go-matcap-loop/pkg/core"
)

type viewer struct {
	loop   *app.Loop
	start  time.Time
	frame  *ebiten.Image
	width  int
	height int
}

func newViewer(loop *app.Loop) *viewer {
	width, height := loop.Camera.Size()
	return &viewer{
		loop:   loop,
		start:  time.Now(),
		width:  width,
		height: height,
	}
}

func (v *viewer) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if ebiten.IsKeyPressed(ebiten.KeyR) {
		v.start = time.Now()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	v.loop.Controller.Draw(v.start)

	canvas, ok := v.loop.Raytracer.Canvas().(*image.RGBA)
	if !ok {
		return
	}
	if v.frame == nil {
		v.frame = ebiten.NewImage(v.width, v.height)
	}
	v.frame.WritePixels(canvas.Pix)
	screen.DrawImage(v.frame, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

func main() {
	configPath := flag.String("config", "", "TOML config file (optional)")
	scale := flag.Int("scale", 1, "Window scale factor")
	verbose := flag.Bool("verbose", false, "Log every rendered frame")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	var logger core.Logger = core.NopLogger{}
	if *verbose {
		logger = core.NewDefaultLogger()
	}

	loop, err := app.New(cfg, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer loop.Close()

	ebiten.SetWindowTitle("Matcap Loop")
	ebiten.SetWindowSize(cfg.Width*max(1, *scale), cfg.Height*max(1, *scale))
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(newViewer(loop)); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
