package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caseforge/internal/services"
)

type requirementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

func (s *Server) createRequirement(c *gin.Context) {
	var body requirementRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req, autoPriority, err := s.services.Requirements.Create(currentUser(c), c.Param("id"), services.RequirementInput{
		Title:       body.Title,
		Description: body.Description,
		Category:    body.Category,
		Priority:    body.Priority,
		Status:      body.Status,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"requirement":        req,
		"detected_priority":  autoPriority,
		"priority_generated": req.PriorityAutoGenerated,
	})
}

func (s *Server) listRequirements(c *gin.Context) {
	reqs, err := s.services.Requirements.ListByProject(currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requirements": reqs})
}

func (s *Server) getRequirement(c *gin.Context) {
	req, err := s.services.Requirements.Get(currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

type requirementUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
}

func (s *Server) updateRequirement(c *gin.Context) {
	var body requirementUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req, err := s.services.Requirements.Update(currentUser(c), c.Param("id"), services.RequirementUpdate{
		Title:       body.Title,
		Description: body.Description,
		Category:    body.Category,
		Priority:    body.Priority,
		Status:      body.Status,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (s *Server) deleteRequirement(c *gin.Context) {
	if err := s.services.Requirements.Delete(currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "requirement deleted"})
}
