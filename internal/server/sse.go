package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// sseWriter frames the outward event stream: every payload is one
// `data: <JSON>\n\n` frame, flushed immediately so deltas reach the client
// with upstream granularity, and the stream always ends with the literal
// [DONE] sentinel.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSEWriter(c *gin.Context) (*sseWriter, bool) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		return nil, false
	}
	h := c.Writer.Header()
	h.Set("Content-Type", "text/event-stream; charset=utf-8")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	flusher.Flush()
	return &sseWriter{w: c.Writer, flusher: flusher}, true
}

func (s *sseWriter) frame(v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Chunk forwards one text delta. Satisfies services.Sink.
func (s *sseWriter) Chunk(text string) error {
	return s.frame(map[string]string{"chunk": text})
}

// Updated delivers the full replacement artifact with its confirmation.
// Satisfies services.ChatSink.
func (s *sseWriter) Updated(testCases, confirmation string) error {
	return s.frame(map[string]string{
		"updated_test_cases": testCases,
		"confirmation":       confirmation,
	})
}

func (s *sseWriter) Error(message string) {
	_ = s.frame(map[string]string{"error": message})
}

// Done terminates the stream so the client read loop always ends.
func (s *sseWriter) Done() {
	_, _ = fmt.Fprint(s.w, "data: [DONE]\n\n")
	s.flusher.Flush()
}
