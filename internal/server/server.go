package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"caseforge/internal/config"
	llmclient "caseforge/internal/llm/client"
	"caseforge/internal/logger"
	"caseforge/internal/services"
)

// Server binds the service layer to HTTP. All domain decisions live in
// internal/services; handlers only parse requests, enforce auth, and map
// errors to status codes.
type Server struct {
	cfg      *config.Config
	services *services.Services
	log      *logger.Logger
}

func New(cfg *config.Config, svcs *services.Services, log *logger.Logger) *Server {
	return &Server{cfg: cfg, services: svcs, log: log}
}

const (
	msgNoAPIKey     = "No API key configured. Please add an API key in settings."
	msgUpstreamAuth = "Authentication failed with the AI provider. Please check your API key."
	msgRateLimited  = "API rate limit exceeded. Please try again later."
)

// errMessage renders an error the way the frontend expects: provider
// problems get stable human-readable strings, everything else passes
// through verbatim.
func errMessage(err error) string {
	switch {
	case errors.Is(err, llmclient.ErrNoAPIKey):
		return msgNoAPIKey
	case errors.Is(err, llmclient.ErrUpstreamAuth):
		return msgUpstreamAuth
	case errors.Is(err, llmclient.ErrRateLimited):
		return msgRateLimited
	default:
		return err.Error()
	}
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, llmclient.ErrNoAPIKey):
		return http.StatusBadRequest
	case errors.Is(err, llmclient.ErrUpstreamAuth):
		return http.StatusUnauthorized
	case errors.Is(err, llmclient.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := errStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": errMessage(err)})
}
