package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type apiKeyRequest struct {
	APIKey    string `json:"api_key" binding:"required"`
	ProjectID string `json:"project_id"`
}

func (s *Server) saveAPIKey(c *gin.Context) {
	var body apiKeyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key is required"})
		return
	}
	if err := s.services.APIKeys.Save(currentUser(c), body.ProjectID, body.APIKey); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "API key saved"})
}

// getAPIKey reports whether a usable credential exists for the caller; the
// key itself never leaves the server.
func (s *Server) getAPIKey(c *gin.Context) {
	_, err := s.services.APIKeys.Resolve(currentUser(c), c.Query("project_id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"has_key": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_key": true})
}

func (s *Server) listAPIKeys(c *gin.Context) {
	keys, err := s.services.APIKeys.List(currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"api_keys": keys})
}

func (s *Server) deleteAPIKey(c *gin.Context) {
	if err := s.services.APIKeys.Delete(currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "API key deleted"})
}
