package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"caseforge/internal/services"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email"`
}

func (s *Server) register(c *gin.Context) {
	var body credentialsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	user, err := s.services.Auth.Register(body.Username, body.Email, body.Password, "user")
	if err != nil {
		s.fail(c, err)
		return
	}
	s.log.Info("user registered", "username", user.Username)
	c.JSON(http.StatusCreated, gin.H{"username": user.Username, "role": user.Role})
}

func (s *Server) login(c *gin.Context) {
	var body credentialsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	user, token, err := s.services.Auth.Login(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrAccessDenied) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": user.Username,
		"role":     user.Role,
	})
}

// logout exists for frontend symmetry; sessions are stateless tokens so
// there is nothing to revoke server-side.
func (s *Server) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (s *Server) checkSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      currentUser(c),
		"role":          c.GetString(ctxRole),
	})
}
