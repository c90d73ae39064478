package services

import (
	"errors"
	"fmt"
	"strings"

	llmclient "caseforge/internal/llm/client"
	"caseforge/internal/models"
	"caseforge/internal/repositories"
)

// MaskedKey is what listings expose: never the key itself.
type MaskedKey struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id,omitempty"`
	Preview   string `json:"preview"`
	CreatedAt string `json:"created_at"`
}

type APIKeyService interface {
	// Resolve returns the credential to use for (user, projectID):
	// project-scoped key, else the user's default key, else the process-wide
	// fallback. llmclient.ErrNoAPIKey when none exists.
	Resolve(user, projectID string) (string, error)
	Save(user, projectID, key string) error
	List(user string) ([]MaskedKey, error)
	Delete(user, id string) error
}

type apiKeyService struct {
	keys        repositories.APIKeyRepository
	fallbackKey string
}

func NewAPIKeyService(keys repositories.APIKeyRepository, fallbackKey string) APIKeyService {
	return &apiKeyService{keys: keys, fallbackKey: fallbackKey}
}

func (s *apiKeyService) Resolve(user, projectID string) (string, error) {
	if projectID != "" {
		key, err := s.keys.FindScoped(user, projectID)
		if err != nil {
			return "", err
		}
		if key != nil && key.Key != "" {
			return key.Key, nil
		}
	}

	key, err := s.keys.FindScoped(user, "")
	if err != nil {
		return "", err
	}
	if key != nil && key.Key != "" {
		return key.Key, nil
	}

	if s.fallbackKey != "" {
		return s.fallbackKey, nil
	}
	return "", llmclient.ErrNoAPIKey
}

func (s *apiKeyService) Save(user, projectID, key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: API key is required", ErrInvalidInput)
	}
	return s.keys.Save(&models.APIKey{
		User:      user,
		ProjectID: projectID,
		Key:       key,
	})
}

func (s *apiKeyService) List(user string) ([]MaskedKey, error) {
	keys, err := s.keys.ListByUser(user)
	if err != nil {
		return nil, err
	}
	out := make([]MaskedKey, 0, len(keys))
	for _, k := range keys {
		out = append(out, MaskedKey{
			ID:        k.ID,
			ProjectID: k.ProjectID,
			Preview:   maskKey(k.Key),
			CreatedAt: k.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out, nil
}

func (s *apiKeyService) Delete(user, id string) error {
	err := s.keys.DeleteOwned(id, user)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func maskKey(key string) string {
	if len(key) <= 12 {
		return "***masked***"
	}
	return key[:8] + "..." + key[len(key)-4:]
}
