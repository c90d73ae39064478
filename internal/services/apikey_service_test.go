package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmclient "caseforge/internal/llm/client"
	"caseforge/internal/models"
	"caseforge/internal/repositories"
	"caseforge/internal/services"
	"caseforge/internal/tests/mocks"
)

func TestResolvePrefersProjectKey(t *testing.T) {
	repo := &mocks.APIKeyRepository{
		FindScopedFn: func(user, projectID string) (*models.APIKey, error) {
			if projectID == "p1" {
				return &models.APIKey{Key: "sk-project"}, nil
			}
			return &models.APIKey{Key: "sk-default"}, nil
		},
	}
	svc := services.NewAPIKeyService(repo, "sk-env")

	key, err := svc.Resolve("alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, "sk-project", key)
}

func TestResolveFallsBackToDefaultKey(t *testing.T) {
	repo := &mocks.APIKeyRepository{
		FindScopedFn: func(user, projectID string) (*models.APIKey, error) {
			if projectID == "" {
				return &models.APIKey{Key: "sk-default"}, nil
			}
			return nil, nil
		},
	}
	svc := services.NewAPIKeyService(repo, "sk-env")

	key, err := svc.Resolve("alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, "sk-default", key)
}

func TestResolveFallsBackToEnvKey(t *testing.T) {
	svc := services.NewAPIKeyService(&mocks.APIKeyRepository{}, "sk-env")

	key, err := svc.Resolve("alice", "")
	require.NoError(t, err)
	assert.Equal(t, "sk-env", key)
}

func TestResolveNoKeyAnywhere(t *testing.T) {
	svc := services.NewAPIKeyService(&mocks.APIKeyRepository{}, "")

	_, err := svc.Resolve("alice", "p1")
	assert.ErrorIs(t, err, llmclient.ErrNoAPIKey)
}

func TestListMasksKeys(t *testing.T) {
	repo := &mocks.APIKeyRepository{
		ListByUserFn: func(user string) ([]models.APIKey, error) {
			return []models.APIKey{
				{ID: "k1", Key: "sk-ant-REDACTED"},
				{ID: "k2", Key: "short"},
			}, nil
		},
	}
	svc := services.NewAPIKeyService(repo, "")

	keys, err := svc.List("alice")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, "sk-ant-a...tkey", keys[0].Preview)
	assert.Equal(t, "***masked***", keys[1].Preview)
	for _, k := range keys {
		assert.NotContains(t, k.Preview, "verylongsecret")
	}
}

func TestDeleteUnownedKey(t *testing.T) {
	repo := &mocks.APIKeyRepository{
		DeleteOwnedFn: func(id, user string) error {
			return repositories.ErrNotFound
		},
	}
	svc := services.NewAPIKeyService(repo, "")

	err := svc.Delete("alice", "k1")
	assert.True(t, errors.Is(err, services.ErrNotFound))
}
