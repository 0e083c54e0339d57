package main

import (
	"flag"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-matcap-loop/pkg/animation"
	"github.com/df07/go-matcap-loop/pkg/app"
	"github.com/df07/go-matcap-loop/pkg/config"
	"github.com/df07/go-matcap-loop/pkg/core"
)

// cliFlags holds the command line overrides applied on top of the config file
type cliFlags struct {
	width, height, samples, frames int
	matcap                         string
	jitter, drift                  bool
}

func main() {
	defaults := config.Default()

	// Parse command line flags
	configPath := flag.String("config", "", "TOML config file (optional)")
	var overrides cliFlags
	flag.IntVar(&overrides.width, "width", defaults.Width, "Image width in pixels")
	flag.IntVar(&overrides.height, "height", defaults.Height, "Image height in pixels")
	flag.IntVar(&overrides.samples, "samples", defaults.SamplesPerPixel, "Camera rays per pixel")
	flag.IntVar(&overrides.frames, "frames", defaults.Frames, "Frames rendered over one loop")
	flag.StringVar(&overrides.matcap, "matcap", "", "Matcap image (default: built-in studio matcap)")
	flag.BoolVar(&overrides.jitter, "jitter", false, "Jitter the directional lights every frame")
	flag.BoolVar(&overrides.drift, "drift", false, "Drift the scene along a small sphere")
	gifPath := flag.String("gif", "", "Write an animated GIF to this path instead of PNG frames")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Matcap Loop")
		fmt.Println("Usage: matcap-loop [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Output will be saved to output/loop/frame_NNN.png unless -gif is given")
		return
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := loadConfig(*configPath, overrides, set)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *gifPath, core.NewDefaultLogger()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, and applies the flags that were
// set explicitly on the command line
func loadConfig(path string, overrides cliFlags, set map[string]bool) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if set["width"] {
		cfg.Width = overrides.width
	}
	if set["height"] {
		cfg.Height = overrides.height
	}
	if set["samples"] {
		cfg.SamplesPerPixel = overrides.samples
	}
	if set["frames"] {
		cfg.Frames = overrides.frames
	}
	if set["matcap"] {
		cfg.Matcap = overrides.matcap
	}
	if set["jitter"] {
		cfg.EnableJitter = overrides.jitter
	}
	if set["drift"] {
		cfg.EnableOrbitDrift = overrides.drift
	}

	return cfg, cfg.Validate()
}

func run(cfg config.Config, gifPath string, logger core.Logger) error {
	fmt.Println("Starting Matcap Loop...")

	loop, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer loop.Close()

	startTime := time.Now()
	if gifPath != "" {
		err = exportGIF(loop, cfg, gifPath)
	} else {
		var files []string
		files, err = exportPNG(loop, cfg, filepath.Join("output", "loop"))
		if err == nil {
			fmt.Printf("Saved %d frames, first %s\n", len(files), files[0])
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("Loop of %d frames completed in %v\n", cfg.Frames, time.Since(startTime))
	return nil
}

// frameTime returns the elapsed time of frame i when a loop is split into
// frames evenly spaced steps
func frameTime(i, frames int) time.Duration {
	return animation.LoopDuration * time.Duration(i) / time.Duration(frames)
}

// gifDelay returns how long frame i of frames is shown, in the GIF's
// centiseconds. Each frame ends where frameTime places the next one, rounded
// down, so the delays always add up to exactly one LoopDuration.
func gifDelay(i, frames int) int {
	loop := int(animation.LoopDuration / (10 * time.Millisecond))
	return loop*(i+1)/frames - loop*i/frames
}

// exportPNG renders one loop into outputDir. Frames are rendered in order
// while earlier frames are encoded in the background.
func exportPNG(loop *app.Loop, cfg config.Config, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU() + 1)

	files := make([]string, cfg.Frames)
	for i := 0; i < cfg.Frames; i++ {
		loop.Controller.DrawAt(frameTime(i, cfg.Frames))
		frame := loop.Snapshot()

		filename := filepath.Join(outputDir, fmt.Sprintf("frame_%03d.png", i))
		files[i] = filename
		g.Go(func() error {
			return savePNG(filename, frame)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func savePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("saving PNG %s: %w", filename, err)
	}
	return file.Close()
}

// exportGIF renders one loop into an endlessly repeating animated GIF.
// Palette quantization runs in the background like PNG encoding.
func exportGIF(loop *app.Loop, cfg config.Config, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU() + 1)

	anim := &gif.GIF{
		Image: make([]*image.Paletted, cfg.Frames),
		Delay: make([]int, cfg.Frames),
	}
	for i := 0; i < cfg.Frames; i++ {
		i := i
		loop.Controller.DrawAt(frameTime(i, cfg.Frames))
		frame := loop.Snapshot()

		anim.Delay[i] = gifDelay(i, cfg.Frames)
		g.Go(func() error {
			paletted := image.NewPaletted(frame.Bounds(), palette.Plan9)
			draw.FloydSteinberg.Draw(paletted, frame.Bounds(), frame, frame.Bounds().Min)
			anim.Image[i] = paletted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := gif.EncodeAll(file, anim); err != nil {
		return fmt.Errorf("saving GIF %s: %w", path, err)
	}
	fmt.Printf("Loop saved as %s\n", path)
	return file.Close()
}
