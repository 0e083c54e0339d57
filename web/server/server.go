package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-matcap-loop/pkg/animation"
	"github.com/df07/go-matcap-loop/pkg/app"
	"github.com/df07/go-matcap-loop/pkg/config"
	"github.com/df07/go-matcap-loop/pkg/renderer"
)

// Server streams frames of the loop over HTTP. All clients share one loop;
// draws are serialized.
type Server struct {
	cfg       config.Config
	staticDir string
	console   *Console
	upgrader  websocket.Upgrader

	mu    sync.Mutex // guards loop and frame
	loop  *app.Loop
	start time.Time
	frame int
}

// NewServer builds the loop described by cfg. Log output is echoed to out
// when it is not nil. Call Close when done.
func NewServer(cfg config.Config, staticDir string, out io.Writer) (*Server, error) {
	console := NewConsole()
	loop, err := app.New(cfg, NewWebLogger("loop", console, out))
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:       cfg,
		staticDir: staticDir,
		console:   console,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		loop:  loop,
		start: time.Now(),
	}, nil
}

// FrameResult is one rendered and encoded frame
type FrameResult struct {
	Index   int
	Elapsed time.Duration
	Phase   float64
	PNG     []byte
	Stats   renderer.RenderStats
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	ShadowRays     int     `json:"shadowRays"`
	RenderMs       int64   `json:"renderMs"`
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		AverageSamples: stats.AverageSamples,
		ShadowRays:     stats.ShadowRays,
		RenderMs:       stats.Duration.Milliseconds(),
	}
}

// Handler returns the router for the static files and API endpoints
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/frame", s.handleFrame)
	mux.HandleFunc("/api/stream", s.handleStream)
	mux.HandleFunc("/api/ws", s.handleWebSocket)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start serves on the configured port until the listener fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Close stops the loop's render workers
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop.Close()
}

// Elapsed returns the time since the server started, the clock live
// frames follow
func (s *Server) Elapsed() time.Duration {
	return time.Since(s.start)
}

// RenderFrame draws the frame for elapsed and encodes it as PNG. Encoding
// happens outside the draw lock.
func (s *Server) RenderFrame(elapsed time.Duration) (FrameResult, error) {
	s.mu.Lock()
	stats := s.loop.Controller.DrawAt(elapsed)
	img := s.loop.Snapshot()
	index := s.frame
	s.frame++
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return FrameResult{}, fmt.Errorf("encoding frame: %w", err)
	}

	return FrameResult{
		Index:   index,
		Elapsed: elapsed,
		Phase:   animation.Phase(elapsed),
		PNG:     buf.Bytes(),
		Stats:   stats,
	}, nil
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleConfig returns the loop settings the client needs to lay out its view
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	s.mu.Lock()
	meshes := s.loop.Scene.MeshCount()
	s.mu.Unlock()

	response := map[string]interface{}{
		"width":            s.cfg.Width,
		"height":           s.cfg.Height,
		"fps":              s.cfg.FPS,
		"samplesPerPixel":  s.cfg.SamplesPerPixel,
		"loopDurationMs":   animation.LoopDuration.Milliseconds(),
		"meshes":           meshes,
		"enableJitter":     s.cfg.EnableJitter,
		"enableOrbitDrift": s.cfg.EnableOrbitDrift,
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// handleFrame renders a single PNG frame. ?t=<seconds> picks the loop time,
// otherwise the live clock is used.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	elapsed, err := parseElapsed(r.URL.Query(), s.Elapsed())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	frame, err := s.RenderFrame(elapsed)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Loop-Phase", strconv.FormatFloat(frame.Phase, 'f', 6, 64))
	w.WriteHeader(http.StatusOK)
	w.Write(frame.PNG)
}

// parseElapsed reads the optional t parameter in seconds
func parseElapsed(values url.Values, live time.Duration) (time.Duration, error) {
	if values.Get("t") == "" {
		return live, nil
	}
	seconds, err := parseFloatParam(values, "t", 0, 0, 1e6)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if math.IsNaN(parsed) || parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
