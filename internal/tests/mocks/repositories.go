// Package mocks provides hand-rolled function-field test doubles. Each mock
// delegates to an optional func field and falls back to a zero-value answer,
// so tests only wire the calls they care about.
package mocks

import (
	"caseforge/internal/models"
	"caseforge/internal/repositories"
)

type UserRepository struct {
	CreateFn         func(user *models.User) error
	FindByUsernameFn func(username string) (*models.User, error)
	ListFn           func(limit, offset int) ([]models.User, error)
}

func (m *UserRepository) Create(user *models.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(user)
	}
	return nil
}

func (m *UserRepository) FindByUsername(username string) (*models.User, error) {
	if m.FindByUsernameFn != nil {
		return m.FindByUsernameFn(username)
	}
	return nil, nil
}

func (m *UserRepository) List(limit, offset int) ([]models.User, error) {
	if m.ListFn != nil {
		return m.ListFn(limit, offset)
	}
	return nil, nil
}

type ProjectRepository struct {
	CreateFn         func(project *models.Project) error
	FindAccessibleFn func(id, username string) (*models.Project, error)
	FindOwnedFn      func(id, username string) (*models.Project, error)
	ListForUserFn    func(username string) ([]models.Project, error)
	UpdateFn         func(id string, updates map[string]interface{}) error
	DeleteFn         func(id string) error
}

func (m *ProjectRepository) Create(project *models.Project) error {
	if m.CreateFn != nil {
		return m.CreateFn(project)
	}
	return nil
}

func (m *ProjectRepository) FindAccessible(id, username string) (*models.Project, error) {
	if m.FindAccessibleFn != nil {
		return m.FindAccessibleFn(id, username)
	}
	return nil, nil
}

func (m *ProjectRepository) FindOwned(id, username string) (*models.Project, error) {
	if m.FindOwnedFn != nil {
		return m.FindOwnedFn(id, username)
	}
	return nil, nil
}

func (m *ProjectRepository) ListForUser(username string) ([]models.Project, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(username)
	}
	return nil, nil
}

func (m *ProjectRepository) Update(id string, updates map[string]interface{}) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(id, updates)
	}
	return nil
}

func (m *ProjectRepository) Delete(id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	return nil
}

type CollaboratorRepository struct {
	ListByProjectFn   func(projectID string) ([]models.Collaborator, error)
	FindFn            func(projectID, username string) (*models.Collaborator, error)
	AddFn             func(collab *models.Collaborator) error
	RemoveFn          func(projectID, username string) error
	RemoveByProjectFn func(projectID string) error
}

func (m *CollaboratorRepository) ListByProject(projectID string) ([]models.Collaborator, error) {
	if m.ListByProjectFn != nil {
		return m.ListByProjectFn(projectID)
	}
	return nil, nil
}

func (m *CollaboratorRepository) Find(projectID, username string) (*models.Collaborator, error) {
	if m.FindFn != nil {
		return m.FindFn(projectID, username)
	}
	return nil, nil
}

func (m *CollaboratorRepository) Add(collab *models.Collaborator) error {
	if m.AddFn != nil {
		return m.AddFn(collab)
	}
	return nil
}

func (m *CollaboratorRepository) Remove(projectID, username string) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(projectID, username)
	}
	return nil
}

func (m *CollaboratorRepository) RemoveByProject(projectID string) error {
	if m.RemoveByProjectFn != nil {
		return m.RemoveByProjectFn(projectID)
	}
	return nil
}

type RequirementRepository struct {
	CreateFn          func(req *models.Requirement) error
	FindByIDFn        func(id string) (*models.Requirement, error)
	ListByProjectFn   func(projectID string) ([]models.Requirement, error)
	UpdateFn          func(id string, updates map[string]interface{}) error
	DeleteFn          func(id string) error
	DeleteByProjectFn func(projectID string) error
}

func (m *RequirementRepository) Create(req *models.Requirement) error {
	if m.CreateFn != nil {
		return m.CreateFn(req)
	}
	return nil
}

func (m *RequirementRepository) FindByID(id string) (*models.Requirement, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(id)
	}
	return nil, nil
}

func (m *RequirementRepository) ListByProject(projectID string) ([]models.Requirement, error) {
	if m.ListByProjectFn != nil {
		return m.ListByProjectFn(projectID)
	}
	return nil, nil
}

func (m *RequirementRepository) Update(id string, updates map[string]interface{}) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(id, updates)
	}
	return nil
}

func (m *RequirementRepository) Delete(id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	return nil
}

func (m *RequirementRepository) DeleteByProject(projectID string) error {
	if m.DeleteByProjectFn != nil {
		return m.DeleteByProjectFn(projectID)
	}
	return nil
}

type APIKeyRepository struct {
	FindScopedFn  func(user, projectID string) (*models.APIKey, error)
	SaveFn        func(key *models.APIKey) error
	ListByUserFn  func(user string) ([]models.APIKey, error)
	DeleteOwnedFn func(id, user string) error
}

func (m *APIKeyRepository) FindScoped(user, projectID string) (*models.APIKey, error) {
	if m.FindScopedFn != nil {
		return m.FindScopedFn(user, projectID)
	}
	return nil, nil
}

func (m *APIKeyRepository) Save(key *models.APIKey) error {
	if m.SaveFn != nil {
		return m.SaveFn(key)
	}
	return nil
}

func (m *APIKeyRepository) ListByUser(user string) ([]models.APIKey, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(user)
	}
	return nil, nil
}

func (m *APIKeyRepository) DeleteOwned(id, user string) error {
	if m.DeleteOwnedFn != nil {
		return m.DeleteOwnedFn(id, user)
	}
	return nil
}

type HistoryRepository struct {
	CreateFn              func(record *models.HistoryRecord) error
	UpdateArtifactOwnedFn func(id, user string, updates map[string]interface{}) error
	FindOwnedFn           func(id, user string) (*models.HistoryRecord, error)
	ListArtifactsFn       func(user string, filter repositories.HistoryFilter) ([]models.HistoryRecord, error)
	DeleteOwnedFn         func(id, user string) error
}

func (m *HistoryRepository) Create(record *models.HistoryRecord) error {
	if m.CreateFn != nil {
		return m.CreateFn(record)
	}
	return nil
}

func (m *HistoryRepository) UpdateArtifactOwned(id, user string, updates map[string]interface{}) error {
	if m.UpdateArtifactOwnedFn != nil {
		return m.UpdateArtifactOwnedFn(id, user, updates)
	}
	return nil
}

func (m *HistoryRepository) FindOwned(id, user string) (*models.HistoryRecord, error) {
	if m.FindOwnedFn != nil {
		return m.FindOwnedFn(id, user)
	}
	return nil, nil
}

func (m *HistoryRepository) ListArtifacts(user string, filter repositories.HistoryFilter) ([]models.HistoryRecord, error) {
	if m.ListArtifactsFn != nil {
		return m.ListArtifactsFn(user, filter)
	}
	return nil, nil
}

func (m *HistoryRepository) DeleteOwned(id, user string) error {
	if m.DeleteOwnedFn != nil {
		return m.DeleteOwnedFn(id, user)
	}
	return nil
}
