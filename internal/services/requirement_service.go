package services

import (
	"fmt"
	"strings"
	"time"

	"caseforge/internal/heuristics"
	"caseforge/internal/models"
	"caseforge/internal/repositories"
)

// RequirementInput creates a requirement. Priority is optional: when blank,
// the keyword heuristic supplies it and the record is flagged auto-generated.
type RequirementInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Status      string
}

// RequirementUpdate edits a requirement. Nil fields are left untouched.
// Supplying Priority explicitly clears the auto-generated flag; editing the
// description while the flag is set (or without an explicit priority)
// recomputes the heuristic and keeps the flag.
type RequirementUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
	Status      *string
}

type RequirementService interface {
	Create(user, projectID string, input RequirementInput) (*models.Requirement, string, error)
	Get(user, id string) (*models.Requirement, error)
	ListByProject(user, projectID string) ([]models.Requirement, error)
	Update(user, id string, update RequirementUpdate) (*models.Requirement, error)
	Delete(user, id string) error
}

type requirementService struct {
	requirements repositories.RequirementRepository
	projects     repositories.ProjectRepository
}

func NewRequirementService(
	requirements repositories.RequirementRepository,
	projects repositories.ProjectRepository,
) RequirementService {
	return &requirementService{requirements: requirements, projects: projects}
}

// Create returns the stored requirement and the heuristic priority that was
// detected for the description, whether or not it was used.
func (s *requirementService) Create(user, projectID string, input RequirementInput) (*models.Requirement, string, error) {
	project, err := s.projects.FindAccessible(projectID, user)
	if err != nil {
		return nil, "", err
	}
	if project == nil {
		return nil, "", ErrNotFound
	}

	autoPriority := heuristics.DetectPriority(input.Description)
	priority := input.Priority
	if priority == "" {
		priority = autoPriority
	}

	req := &models.Requirement{
		User:                  user,
		ProjectID:             projectID,
		Title:                 strings.TrimSpace(input.Title),
		Description:           input.Description,
		Category:              valueOr(input.Category, "functionality"),
		Status:                valueOr(input.Status, "draft"),
		Priority:              priority,
		PriorityAutoGenerated: priority == autoPriority,
	}
	if err := s.requirements.Create(req); err != nil {
		return nil, "", err
	}
	return req, autoPriority, nil
}

func (s *requirementService) Get(user, id string) (*models.Requirement, error) {
	req, err := s.findAccessible(user, id)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *requirementService) ListByProject(user, projectID string) ([]models.Requirement, error) {
	project, err := s.projects.FindAccessible(projectID, user)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return s.requirements.ListByProject(projectID)
}

func (s *requirementService) Update(user, id string, update RequirementUpdate) (*models.Requirement, error) {
	req, err := s.findAccessible(user, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Description != nil {
		updates["description"] = *update.Description
		autoPriority := heuristics.DetectPriority(*update.Description)
		if req.PriorityAutoGenerated || update.Priority == nil {
			updates["priority"] = autoPriority
			updates["priority_auto_generated"] = true
		}
	}
	if update.Priority != nil {
		updates["priority"] = *update.Priority
		updates["priority_auto_generated"] = false
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Status != nil {
		updates["status"] = *update.Status
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
		if err := s.requirements.Update(id, updates); err != nil {
			return nil, err
		}
	}

	updated, err := s.requirements.FindByID(id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

func (s *requirementService) Delete(user, id string) error {
	if _, err := s.findAccessible(user, id); err != nil {
		return err
	}
	return s.requirements.Delete(id)
}

// findAccessible loads a requirement and checks the caller can reach its
// project. ErrNotFound for a missing requirement, ErrAccessDenied for a
// requirement in a foreign project.
func (s *requirementService) findAccessible(user, id string) (*models.Requirement, error) {
	req, err := s.requirements.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}
	project, err := s.projects.FindAccessible(req.ProjectID, user)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: requirement %s", ErrAccessDenied, id)
	}
	return req, nil
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
