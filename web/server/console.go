package server

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/df07/go-matcap-loop/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// Console fans log messages out to every subscribed stream. Slow
// subscribers miss messages rather than block the logger.
type Console struct {
	mu          sync.Mutex
	subscribers map[chan ConsoleMessage]struct{}
}

// NewConsole creates a console with no subscribers
func NewConsole() *Console {
	return &Console{subscribers: make(map[chan ConsoleMessage]struct{})}
}

// Subscribe returns a channel receiving every message published from now on
func (c *Console) Subscribe(buffer int) chan ConsoleMessage {
	ch := make(chan ConsoleMessage, buffer)
	c.mu.Lock()
	c.subscribers[ch] = struct{}{}
	c.mu.Unlock()
	return ch
}

// Unsubscribe stops delivery to ch and closes it
func (c *Console) Unsubscribe(ch chan ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.subscribers[ch]; ok {
		delete(c.subscribers, ch)
		close(ch)
	}
}

// Publish delivers msg to every subscriber without blocking
func (c *Console) Publish(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ch := range c.subscribers {
		select {
		case ch <- msg:
		default:
			// Subscriber full, skip
		}
	}
}

// WebLogger implements core.Logger by publishing messages to a console
type WebLogger struct {
	source  string
	console *Console
	out     io.Writer
}

// NewWebLogger creates a logger tagged with source. Messages are echoed to
// out when it is not nil.
func NewWebLogger(source string, console *Console, out io.Writer) core.Logger {
	return &WebLogger{
		source:  source,
		console: console,
		out:     out,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	if wl.out != nil {
		fmt.Fprint(wl.out, message)
	}

	if wl.console != nil {
		wl.console.Publish(ConsoleMessage{
			Message:   message,
			Source:    wl.source,
			Timestamp: time.Now(),
			Level:     "info",
		})
	}
}
