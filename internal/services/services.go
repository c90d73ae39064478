package services

import (
	"gorm.io/gorm"

	"caseforge/internal/config"
	llmclient "caseforge/internal/llm/client"
	"caseforge/internal/logger"
	"caseforge/internal/repositories"
)

// Services aggregates all domain services backed by the database.
// Fields use plural names (e.g., Projects) to align with Go conventions
// seen in service/store containers.
type Services struct {
	Auth         AuthService
	Projects     ProjectService
	Requirements RequirementService
	APIKeys      APIKeyService
	History      HistoryService
	Generation   GenerationService
	Chat         ChatService
}

// New constructs the service container using repositories backed by db. The
// LLM client factory defaults to the real provider clients; tests swap it.
func New(db *gorm.DB, cfg *config.Config, log *logger.Logger) *Services {
	return NewWithClientFactory(db, cfg, log, llmclient.New)
}

func NewWithClientFactory(db *gorm.DB, cfg *config.Config, log *logger.Logger, newClient ClientFactory) *Services {
	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	collabRepo := repositories.NewCollaboratorRepository(db)
	requirementRepo := repositories.NewRequirementRepository(db)
	apiKeyRepo := repositories.NewAPIKeyRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)

	apiKeys := NewAPIKeyService(apiKeyRepo, cfg.FallbackAPIKey)
	history := NewHistoryService(historyRepo, log)

	return &Services{
		Auth:         NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL),
		Projects:     NewProjectService(projectRepo, requirementRepo, collabRepo, userRepo),
		Requirements: NewRequirementService(requirementRepo, projectRepo),
		APIKeys:      apiKeys,
		History:      history,
		Generation: NewGenerationService(history, apiKeys, requirementRepo, projectRepo,
			newClient, cfg.LLMProvider, cfg.LLMModel, log),
		Chat: NewChatService(history, apiKeys, projectRepo, requirementRepo,
			newClient, cfg.LLMProvider, cfg.LLMModel, log),
	}
}
