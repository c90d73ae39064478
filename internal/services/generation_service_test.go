package services_test

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmclient "caseforge/internal/llm/client"
	"caseforge/internal/logger"
	"caseforge/internal/models"
	"caseforge/internal/services"
	"caseforge/internal/tests/mocks"
)

type genFixture struct {
	historyRepo *mocks.HistoryRepository
	apiKeyRepo  *mocks.APIKeyRepository
	projects    *mocks.ProjectRepository
	reqs        *mocks.RequirementRepository
	svc         services.GenerationService
}

func newGenFixture(t *testing.T, client llmclient.Client) *genFixture {
	t.Helper()
	f := &genFixture{
		historyRepo: &mocks.HistoryRepository{},
		apiKeyRepo: &mocks.APIKeyRepository{
			FindScopedFn: func(user, projectID string) (*models.APIKey, error) {
				return &models.APIKey{Key: "sk-test"}, nil
			},
		},
		projects: &mocks.ProjectRepository{},
		reqs:     &mocks.RequirementRepository{},
	}
	log := logger.NewNop()
	history := services.NewHistoryService(f.historyRepo, log)
	apiKeys := services.NewAPIKeyService(f.apiKeyRepo, "")
	factory := func(ctx context.Context, cfg llmclient.Config) (llmclient.Client, error) {
		return client, nil
	}
	f.svc = services.NewGenerationService(history, apiKeys, f.reqs, f.projects, factory, "claude", "", log)
	return f
}

func TestGenerateRequiresRequirements(t *testing.T) {
	f := newGenFixture(t, &mocks.LLMClient{})

	_, err := f.svc.Generate(context.Background(), "alice", services.GenerationRequest{Requirements: "  "})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestGenerateSavesArtifact(t *testing.T) {
	client := &mocks.LLMClient{
		CompleteFn: func(ctx context.Context, messages []*schema.Message) (string, error) {
			return "Test Case 1: ...", nil
		},
	}
	f := newGenFixture(t, client)

	var created *models.HistoryRecord
	f.historyRepo.CreateFn = func(r *models.HistoryRecord) error {
		created = r
		return nil
	}

	text, err := f.svc.Generate(context.Background(), "alice", services.GenerationRequest{
		Requirements: "the user can reset their password",
		ProjectID:    "p1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Test Case 1: ...", text)

	require.NotNil(t, created)
	assert.Equal(t, models.HistoryKindArtifact, created.Kind)
	assert.Equal(t, models.UpdateTypeGenerated, created.UpdateType)
	assert.Equal(t, "the user can reset their password", created.Requirements)
	assert.Equal(t, "p1", created.ProjectID)
}

func TestGenerateDeliversDespiteSaveFailure(t *testing.T) {
	client := &mocks.LLMClient{
		CompleteFn: func(ctx context.Context, messages []*schema.Message) (string, error) {
			return "output", nil
		},
	}
	f := newGenFixture(t, client)
	f.historyRepo.CreateFn = func(r *models.HistoryRecord) error {
		return assert.AnError
	}

	text, err := f.svc.Generate(context.Background(), "alice", services.GenerationRequest{Requirements: "r"})
	require.NoError(t, err)
	assert.Equal(t, "output", text)
}

func TestGenerateStreamOrderAndAccumulation(t *testing.T) {
	stream := mocks.NewScriptedStream("Test ", "Case ", "1")
	f := newGenFixture(t, mocks.StreamClient(stream))

	var created *models.HistoryRecord
	f.historyRepo.CreateFn = func(r *models.HistoryRecord) error {
		created = r
		return nil
	}

	sink := &recordingSink{}
	err := f.svc.GenerateStream(context.Background(), "alice", services.GenerationRequest{Requirements: "r"}, sink)
	require.NoError(t, err)

	assert.Equal(t, []string{"Test ", "Case ", "1"}, sink.chunks)
	require.NotNil(t, created)
	assert.Equal(t, "Test Case 1", created.TestCases)
	assert.True(t, stream.Closed)
}

func TestGenerateStreamDisconnectStoresNothing(t *testing.T) {
	stream := mocks.NewScriptedStream("partial", "rest")
	f := newGenFixture(t, mocks.StreamClient(stream))

	saved := false
	f.historyRepo.CreateFn = func(r *models.HistoryRecord) error {
		saved = true
		return nil
	}

	sink := &recordingSink{chunkErr: assert.AnError}
	err := f.svc.GenerateStream(context.Background(), "alice", services.GenerationRequest{Requirements: "r"}, sink)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, saved, "aborted stream must not persist a partial artifact")
	assert.True(t, stream.Closed)
}

func TestGenerateForRequirementLinksRecord(t *testing.T) {
	stream := mocks.NewScriptedStream("cases")
	f := newGenFixture(t, mocks.StreamClient(stream))
	f.reqs.FindByIDFn = func(id string) (*models.Requirement, error) {
		return &models.Requirement{
			ID:          id,
			ProjectID:   "p1",
			Title:       "Login",
			Description: "the user can log in with email",
		}, nil
	}
	f.projects.FindAccessibleFn = func(id, username string) (*models.Project, error) {
		return &models.Project{ID: id}, nil
	}

	var created *models.HistoryRecord
	f.historyRepo.CreateFn = func(r *models.HistoryRecord) error {
		created = r
		return nil
	}

	err := f.svc.GenerateForRequirement(context.Background(), "alice", "r1", "gherkin", "", &recordingSink{})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "r1", created.RequirementID)
	assert.Equal(t, "Login", created.RequirementTitle)
	assert.Equal(t, "the user can log in with email", created.Requirements)
	assert.Equal(t, "p1", created.ProjectID)
}

func TestGenerateForRequirementDeniedWithoutAccess(t *testing.T) {
	f := newGenFixture(t, &mocks.LLMClient{})
	f.reqs.FindByIDFn = func(id string) (*models.Requirement, error) {
		return &models.Requirement{ID: id, ProjectID: "p1"}, nil
	}
	// FindAccessible returns nil: caller neither owns nor collaborates.

	err := f.svc.GenerateForRequirement(context.Background(), "alice", "r1", "", "", &recordingSink{})
	assert.ErrorIs(t, err, services.ErrAccessDenied)
}

func TestGenerateForRequirementUnknownID(t *testing.T) {
	f := newGenFixture(t, &mocks.LLMClient{})

	err := f.svc.GenerateForRequirement(context.Background(), "alice", "missing", "", "", &recordingSink{})
	assert.ErrorIs(t, err, services.ErrNotFound)
}
