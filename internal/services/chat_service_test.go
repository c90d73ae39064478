package services_test

import (
	"context"
	"errors"
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

// recordingSink captures everything the service pushes outward.
type recordingSink struct {
	chunks        []string
	updated       string
	confirmation  string
	updatedCalled bool
	chunkErr      error
}

func (s *recordingSink) Chunk(text string) error {
	if s.chunkErr != nil {
		return s.chunkErr
	}
	s.chunks = append(s.chunks, text)
	return nil
}

func (s *recordingSink) Updated(testCases, confirmation string) error {
	s.updatedCalled = true
	s.updated = testCases
	s.confirmation = confirmation
	return nil
}

type chatFixture struct {
	historyRepo *mocks.HistoryRepository
	apiKeyRepo  *mocks.APIKeyRepository
	projects    *mocks.ProjectRepository
	reqs        *mocks.RequirementRepository
	svc         services.ChatService
}

func newChatFixture(t *testing.T, client llmclient.Client) *chatFixture {
	t.Helper()
	f := &chatFixture{
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
	f.svc = services.NewChatService(history, apiKeys, f.projects, f.reqs, factory, "claude", "", log)
	return f
}

func TestChatStreamsAndAppliesArtifact(t *testing.T) {
	stream := mocks.NewScriptedStream(
		"Here is the update:\n",
		"```\nTest Case 1: new version\n",
		"```",
	)
	f := newChatFixture(t, mocks.StreamClient(stream))

	var created []*models.HistoryRecord
	f.historyRepo.CreateFn = func(r *models.HistoryRecord) error {
		created = append(created, r)
		return nil
	}

	sink := &recordingSink{}
	turn := services.ChatTurn{
		Message:   "please update case 1",
		TestCases: "Test Case 1: old version",
	}
	err := f.svc.Chat(context.Background(), "alice", turn, sink)
	require.NoError(t, err)

	// Deltas arrive in upstream order before the artifact frame.
	assert.Equal(t, []string{
		"Here is the update:\n",
		"```\nTest Case 1: new version\n",
		"```",
	}, sink.chunks)
	assert.True(t, sink.updatedCalled)
	assert.Equal(t, "Test Case 1: new version", sink.updated)
	assert.Equal(t, services.ConfirmApplied, sink.confirmation)
	assert.True(t, stream.Closed)

	// One artifact record plus one chat exchange.
	require.Len(t, created, 2)
	assert.Equal(t, models.HistoryKindArtifact, created[0].Kind)
	assert.Equal(t, "Test Case 1: new version", created[0].TestCases)
	assert.Equal(t, models.HistoryKindChat, created[1].Kind)
	assert.Equal(t, "please update case 1", created[1].Message)
}

func TestChatIdenticalArtifactIsNoop(t *testing.T) {
	stream := mocks.NewScriptedStream("```\nsame body\n```")
	f := newChatFixture(t, mocks.StreamClient(stream))

	var created []*models.HistoryRecord
	f.historyRepo.CreateFn = func(r *models.HistoryRecord) error {
		created = append(created, r)
		return nil
	}

	sink := &recordingSink{}
	turn := services.ChatTurn{Message: "anything to improve?", TestCases: "same body"}
	err := f.svc.Chat(context.Background(), "alice", turn, sink)
	require.NoError(t, err)

	assert.False(t, sink.updatedCalled, "identical artifact must not emit an update frame")
	// Only the chat exchange is recorded.
	require.Len(t, created, 1)
	assert.Equal(t, models.HistoryKindChat, created[0].Kind)
}

func TestChatNoFencedBlockIsPlainConversation(t *testing.T) {
	stream := mocks.NewScriptedStream("Sure, these cases look complete.")
	f := newChatFixture(t, mocks.StreamClient(stream))

	sink := &recordingSink{}
	err := f.svc.Chat(context.Background(), "alice", services.ChatTurn{Message: "review please", TestCases: "x"}, sink)
	require.NoError(t, err)
	assert.False(t, sink.updatedCalled)
	assert.Equal(t, []string{"Sure, these cases look complete."}, sink.chunks)
}

func TestChatSaveFailureStillDeliversArtifact(t *testing.T) {
	stream := mocks.NewScriptedStream("```\nnew body\n```")
	f := newChatFixture(t, mocks.StreamClient(stream))

	f.historyRepo.CreateFn = func(r *models.HistoryRecord) error {
		if r.Kind == models.HistoryKindArtifact {
			return errors.New("db locked")
		}
		return nil
	}

	sink := &recordingSink{}
	err := f.svc.Chat(context.Background(), "alice", services.ChatTurn{Message: "m", TestCases: "old"}, sink)
	require.NoError(t, err)

	assert.True(t, sink.updatedCalled)
	assert.Equal(t, "new body", sink.updated)
	assert.Equal(t, services.ConfirmSaveFailure, sink.confirmation)
}

func TestChatEmptyMessageRejected(t *testing.T) {
	f := newChatFixture(t, &mocks.LLMClient{})

	err := f.svc.Chat(context.Background(), "alice", services.ChatTurn{Message: "   "}, &recordingSink{})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestChatMissingCredential(t *testing.T) {
	f := newChatFixture(t, &mocks.LLMClient{})
	f.apiKeyRepo.FindScopedFn = func(user, projectID string) (*models.APIKey, error) {
		return nil, nil
	}

	err := f.svc.Chat(context.Background(), "alice", services.ChatTurn{Message: "m"}, &recordingSink{})
	assert.ErrorIs(t, err, llmclient.ErrNoAPIKey)
}

func TestChatClientGoneRecordsPartialExchange(t *testing.T) {
	stream := mocks.NewScriptedStream("partial ", "answer ", "```\nnever applied\n```")
	f := newChatFixture(t, mocks.StreamClient(stream))

	var created []*models.HistoryRecord
	f.historyRepo.CreateFn = func(r *models.HistoryRecord) error {
		created = append(created, r)
		return nil
	}

	sink := &recordingSink{chunkErr: errors.New("broken pipe")}
	err := f.svc.Chat(context.Background(), "alice", services.ChatTurn{Message: "m", TestCases: "old"}, sink)
	assert.ErrorIs(t, err, context.Canceled)

	assert.False(t, sink.updatedCalled, "partial output must not be applied")
	require.Len(t, created, 1)
	assert.Equal(t, models.HistoryKindChat, created[0].Kind)
	assert.Equal(t, "partial ", created[0].Response)
	assert.True(t, stream.Closed)
}

func TestChatIncludesProjectAndRequirementContext(t *testing.T) {
	var prompted []*schema.Message
	client := &mocks.LLMClient{
		StreamFn: func(ctx context.Context, messages []*schema.Message) (llmclient.Stream, error) {
			prompted = messages
			return mocks.NewScriptedStream("ok"), nil
		},
	}
	f := newChatFixture(t, client)
	f.projects.FindAccessibleFn = func(id, username string) (*models.Project, error) {
		return &models.Project{ID: id, Name: "Billing", Context: "invoice flows"}, nil
	}
	f.reqs.FindByIDFn = func(id string) (*models.Requirement, error) {
		return &models.Requirement{ID: id, Title: "Refunds", Description: "refunds within 30 days"}, nil
	}

	turn := services.ChatTurn{
		Message:       "add a refund edge case",
		ProjectID:     "p1",
		RequirementID: "r1",
	}
	err := f.svc.Chat(context.Background(), "alice", turn, &recordingSink{})
	require.NoError(t, err)

	require.NotEmpty(t, prompted)
	last := prompted[len(prompted)-1].Content
	assert.Contains(t, last, "Billing")
	assert.Contains(t, last, "invoice flows")
	assert.Contains(t, last, "Refunds")
	assert.Contains(t, last, "refunds within 30 days")
	assert.Contains(t, last, "add a refund edge case")
}
