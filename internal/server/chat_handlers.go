package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"caseforge/internal/llm/prompt"
	"caseforge/internal/services"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message          string        `json:"message"`
	TestCases        string        `json:"test_cases"`
	ProjectID        string        `json:"project_id"`
	RequirementID    string        `json:"requirement_id"`
	RequirementTitle string        `json:"requirement_title"`
	Requirements     string        `json:"requirements"`
	ChatHistory      []chatMessage `json:"chat_history"`
	DirectMode       bool          `json:"direct_mode"`
	ActiveHistoryID  string        `json:"active_history_id"`
}

func (s *Server) chatWithAssistant(c *gin.Context) {
	var body chatRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	history := make([]prompt.Exchange, 0, len(body.ChatHistory))
	for _, m := range body.ChatHistory {
		history = append(history, prompt.Exchange{Role: m.Role, Content: m.Content})
	}
	turn := services.ChatTurn{
		Message:          body.Message,
		TestCases:        body.TestCases,
		ProjectID:        body.ProjectID,
		RequirementID:    body.RequirementID,
		RequirementTitle: body.RequirementTitle,
		Requirements:     body.Requirements,
		History:          history,
		DirectMode:       body.DirectMode,
		ActiveHistoryID:  body.ActiveHistoryID,
	}
	s.runStream(c, func(ctx context.Context, sink *sseWriter) error {
		return s.services.Chat.Chat(ctx, currentUser(c), turn, sink)
	})
}
