package services

import (
	"fmt"
	"strings"
	"time"

	"caseforge/internal/models"
	"caseforge/internal/repositories"
)

type ProjectService interface {
	Create(user, name, context string) (*models.Project, error)
	List(user string) ([]models.Project, error)
	// Get returns the project when user owns or collaborates on it.
	Get(user, id string) (*models.Project, error)
	Update(user, id string, name, context *string) error
	// Delete removes the project and cascades to its requirements and
	// collaborators. Owner only.
	Delete(user, id string) error

	Collaborators(user, projectID string) ([]models.Collaborator, error)
	AddCollaborator(owner, projectID, username string) (*models.Collaborator, error)
	RemoveCollaborator(owner, projectID, username string) error
}

type projectService struct {
	projects     repositories.ProjectRepository
	requirements repositories.RequirementRepository
	collabs      repositories.CollaboratorRepository
	users        repositories.UserRepository
}

func NewProjectService(
	projects repositories.ProjectRepository,
	requirements repositories.RequirementRepository,
	collabs repositories.CollaboratorRepository,
	users repositories.UserRepository,
) ProjectService {
	return &projectService{
		projects:     projects,
		requirements: requirements,
		collabs:      collabs,
		users:        users,
	}
}

func (s *projectService) Create(user, name, context string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	project := &models.Project{
		User:    user,
		Name:    name,
		Context: context,
		IsOwner: true,
	}
	if err := s.projects.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) List(user string) ([]models.Project, error) {
	projects, err := s.projects.ListForUser(user)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].IsOwner = projects[i].User == user
	}
	return projects, nil
}

func (s *projectService) Get(user, id string) (*models.Project, error) {
	project, err := s.projects.FindAccessible(id, user)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	project.IsOwner = project.User == user
	return project, nil
}

func (s *projectService) Update(user, id string, name, context *string) error {
	project, err := s.projects.FindOwned(id, user)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}

	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if context != nil {
		updates["context"] = *context
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	return s.projects.Update(id, updates)
}

func (s *projectService) Delete(user, id string) error {
	project, err := s.projects.FindOwned(id, user)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}
	if err := s.projects.Delete(id); err != nil {
		return err
	}
	if err := s.requirements.DeleteByProject(id); err != nil {
		return err
	}
	return s.collabs.RemoveByProject(id)
}

func (s *projectService) Collaborators(user, projectID string) ([]models.Collaborator, error) {
	project, err := s.projects.FindAccessible(projectID, user)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return s.collabs.ListByProject(projectID)
}

func (s *projectService) AddCollaborator(owner, projectID, username string) (*models.Collaborator, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: collaborator username is required", ErrInvalidInput)
	}
	project, err := s.projects.FindOwned(projectID, owner)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	user, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
	}

	existing, err := s.collabs.Find(projectID, user.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user is already a collaborator", ErrAlreadyExists)
	}

	collab := &models.Collaborator{
		ProjectID: projectID,
		Username:  user.Username,
		Email:     user.Email,
		AddedBy:   owner,
		AddedAt:   time.Now().UTC(),
	}
	if collab.Email == "" {
		collab.Email = user.Username
	}
	if err := s.collabs.Add(collab); err != nil {
		return nil, err
	}
	return collab, nil
}

func (s *projectService) RemoveCollaborator(owner, projectID, username string) error {
	project, err := s.projects.FindOwned(projectID, owner)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}
	return s.collabs.Remove(projectID, username)
}
