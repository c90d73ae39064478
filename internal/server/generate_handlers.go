package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"caseforge/internal/services"
)

type generateRequest struct {
	Requirements     string `json:"requirements"`
	FormatType       string `json:"format_type"`
	Context          string `json:"context"`
	ExampleCase      string `json:"example_case"`
	ProjectID        string `json:"project_id"`
	RequirementID    string `json:"requirement_id"`
	RequirementTitle string `json:"requirement_title"`
}

func (r generateRequest) toService() services.GenerationRequest {
	return services.GenerationRequest{
		Requirements:     r.Requirements,
		FormatType:       r.FormatType,
		Context:          r.Context,
		ExampleCase:      r.ExampleCase,
		ProjectID:        r.ProjectID,
		RequirementID:    r.RequirementID,
		RequirementTitle: r.RequirementTitle,
	}
}

func (s *Server) generateTestCases(c *gin.Context) {
	var body generateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	testCases, err := s.services.Generation.Generate(c.Request.Context(), currentUser(c), body.toService())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"test_cases": testCases})
}

func (s *Server) generateTestCasesStream(c *gin.Context) {
	var body generateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s.runStream(c, func(ctx context.Context, sink *sseWriter) error {
		return s.services.Generation.GenerateStream(ctx, currentUser(c), body.toService(), sink)
	})
}

func (s *Server) generateForRequirement(c *gin.Context) {
	// The body only carries optional format overrides; absent is fine.
	var body generateRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	requirementID := c.Param("id")
	s.runStream(c, func(ctx context.Context, sink *sseWriter) error {
		return s.services.Generation.GenerateForRequirement(
			ctx, currentUser(c), requirementID, body.FormatType, body.ExampleCase, sink)
	})
}

// runStream drives a streaming producer over SSE. Configuration and
// upstream failures become an error frame; the [DONE] sentinel goes out in
// every case so the client's read loop terminates. A canceled context means
// the client disconnected and there is no one left to tell.
func (s *Server) runStream(c *gin.Context, produce func(context.Context, *sseWriter) error) {
	sink, ok := newSSEWriter(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}
	if err := produce(c.Request.Context(), sink); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("stream aborted", "path", c.FullPath(), "error", err)
		sink.Error(errMessage(err))
	}
	sink.Done()
}
