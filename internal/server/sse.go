package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSE event names used by POST /generate/stream.
const (
	eventProgress = "progress"
	eventResult   = "result"
	eventError    = "error"
)

// sseWriter writes Server-Sent Events and flushes after each one.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &sseWriter{w: w, flusher: flusher}, nil
}

func (s *sseWriter) writeEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// writeError sends the error event. The status has already gone out as 200,
// so the code travels in the payload.
func (s *sseWriter) writeError(status int, message string) error {
	return s.writeEvent(eventError, map[string]any{"error": message, "status": status})
}
