package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"caseforge/internal/repositories"
	"caseforge/internal/services"
)

func (s *Server) listHistory(c *gin.Context) {
	filter := repositories.HistoryFilter{
		ProjectID:     c.Query("project_id"),
		RequirementID: c.Query("requirement_id"),
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Skip = n
		}
	}
	records, err := s.services.History.List(currentUser(c), filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records})
}

func (s *Server) getHistory(c *gin.Context) {
	record, err := s.services.History.Get(currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) deleteHistory(c *gin.Context) {
	if err := s.services.History.Delete(currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "history entry deleted"})
}

type saveTestCasesRequest struct {
	TestCases        string `json:"test_cases" binding:"required"`
	Requirements     string `json:"requirements"`
	ProjectID        string `json:"project_id"`
	RequirementID    string `json:"requirement_id"`
	RequirementTitle string `json:"requirement_title"`
}

func (s *Server) saveTestCases(c *gin.Context) {
	var body saveTestCasesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "test_cases is required"})
		return
	}
	record, err := s.services.History.SaveManual(currentUser(c), services.ManualSave{
		TestCases:        body.TestCases,
		Requirements:     body.Requirements,
		ProjectID:        body.ProjectID,
		RequirementID:    body.RequirementID,
		RequirementTitle: body.RequirementTitle,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "test cases saved", "history_id": record.ID})
}

func (s *Server) updateTestCases(c *gin.Context) {
	var body saveTestCasesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "test_cases is required"})
		return
	}
	record, err := s.services.History.UpdateManual(currentUser(c), c.Param("id"), services.ManualSave{
		TestCases:        body.TestCases,
		Requirements:     body.Requirements,
		ProjectID:        body.ProjectID,
		RequirementID:    body.RequirementID,
		RequirementTitle: body.RequirementTitle,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "test cases updated", "history_id": record.ID})
}
