package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// FrameUpdate represents a single streamed frame sent via SSE
type FrameUpdate struct {
	Frame     int     `json:"frame"`     // Sequence number within this stream
	Phase     float64 `json:"phase"`     // Loop parameter in [0,1)
	ImageData string  `json:"imageData"` // Base64 encoded PNG
	Stats     Stats   `json:"stats"`
	ElapsedMs int64   `json:"elapsedMs"` // Time since the stream started
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleStream streams live frames at the configured fps via SSE.
// ?frames=<n> stops after n frames; 0 streams until the client leaves.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Events from every producer go through one channel; this goroutine is
	// the only writer.
	sseEventChan := make(chan SSEEvent, 100)

	limit, err := parseIntParam(r.URL.Query(), "frames", 0, 0, 100000)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := s.console.Subscribe(50)
	defer s.console.Unsubscribe(consoleChan)
	go s.streamConsoleMessages(ctx, consoleChan, sseEventChan)

	go s.streamFrames(ctx, sseEventChan, limit)

	s.writeSSEEvents(ctx, w, sseEventChan)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// streamFrames renders a frame every tick and queues it, then queues a
// complete event once limit frames are sent
func (s *Server) streamFrames(ctx context.Context, sseEventChan chan<- SSEEvent, limit int) {
	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.FPS))
	defer ticker.Stop()

	startTime := time.Now()
	for sent := 0; limit == 0 || sent < limit; sent++ {
		frame, err := s.RenderFrame(s.Elapsed())
		if err != nil {
			s.queueEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: err.Error()})
			return
		}

		data, err := json.Marshal(FrameUpdate{
			Frame:     sent,
			Phase:     frame.Phase,
			ImageData: base64.StdEncoding.EncodeToString(frame.PNG),
			Stats:     newStats(frame.Stats),
			ElapsedMs: time.Since(startTime).Milliseconds(),
		})
		if err != nil {
			s.queueEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: err.Error()})
			return
		}
		if !s.queueEvent(ctx, sseEventChan, SSEEvent{Type: "frame", Data: string(data)}) {
			return
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}

	s.queueEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: "Stream completed"})
}

// queueEvent blocks until the event is queued or the client disconnects
func (s *Server) queueEvent(ctx context.Context, sseEventChan chan<- SSEEvent, event SSEEvent) bool {
	select {
	case sseEventChan <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

// writeSSEEvents writes queued events until a complete or error event is
// written or the client disconnects
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	for {
		select {
		case event := <-sseEventChan:
			if err := s.sendSSEEvent(w, event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if event.Type == "complete" || event.Type == "error" {
				return
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}

// streamConsoleMessages forwards console messages to the SSE channel
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				// Channel closed
				return
			}

			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}
