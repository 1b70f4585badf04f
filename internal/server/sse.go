package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/empowr-credit/internal/mock"
	"github.com/jonathan/empowr-credit/internal/types"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteProgress sends a progress event
func (s *SSEWriter) WriteProgress(p mock.Progress) {
	s.WriteEvent("progress", p) //nolint:errcheck
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string, fields map[string]string) {
	s.WriteEvent("error", ErrorResponse{Error: message, Fields: fields}) //nolint:errcheck
}

// WriteComplete sends the scored result
func (s *SSEWriter) WriteComplete(score types.CreditScore) {
	s.WriteEvent("complete", score) //nolint:errcheck
}
