package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type projectRequest struct {
	Name    string `json:"name"`
	Context string `json:"context"`
}

func (s *Server) createProject(c *gin.Context) {
	var body projectRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	project, err := s.services.Projects.Create(currentUser(c), body.Name, body.Context)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (s *Server) listProjects(c *gin.Context) {
	projects, err := s.services.Projects.List(currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (s *Server) getProject(c *gin.Context) {
	project, err := s.services.Projects.Get(currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

type projectUpdateRequest struct {
	Name    *string `json:"name"`
	Context *string `json:"context"`
}

func (s *Server) updateProject(c *gin.Context) {
	var body projectUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := s.services.Projects.Update(currentUser(c), c.Param("id"), body.Name, body.Context); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project updated"})
}

func (s *Server) deleteProject(c *gin.Context) {
	if err := s.services.Projects.Delete(currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

func (s *Server) listCollaborators(c *gin.Context) {
	collabs, err := s.services.Projects.Collaborators(currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collaborators": collabs})
}

type collaboratorRequest struct {
	Username string `json:"username" binding:"required"`
}

func (s *Server) addCollaborator(c *gin.Context) {
	var body collaboratorRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}
	collab, err := s.services.Projects.AddCollaborator(currentUser(c), c.Param("id"), body.Username)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, collab)
}

func (s *Server) removeCollaborator(c *gin.Context) {
	err := s.services.Projects.RemoveCollaborator(currentUser(c), c.Param("id"), c.Param("username"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "collaborator removed"})
}
