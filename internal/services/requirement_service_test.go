package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseforge/internal/models"
	"caseforge/internal/services"
	"caseforge/internal/tests/mocks"
)

func strptr(s string) *string { return &s }

func accessibleProjects() *mocks.ProjectRepository {
	return &mocks.ProjectRepository{
		FindAccessibleFn: func(id, username string) (*models.Project, error) {
			return &models.Project{ID: id, User: username}, nil
		},
	}
}

func TestCreateRequirementUsesHeuristicPriority(t *testing.T) {
	var created *models.Requirement
	reqs := &mocks.RequirementRepository{
		CreateFn: func(r *models.Requirement) error {
			created = r
			return nil
		},
	}
	svc := services.NewRequirementService(reqs, accessibleProjects())

	req, detected, err := svc.Create("alice", "p1", services.RequirementInput{
		Title:       "Login lockout",
		Description: "The system must lock accounts immediately after repeated failures. This is critical for security.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, detected)
	assert.Equal(t, models.PriorityHigh, req.Priority)
	assert.True(t, req.PriorityAutoGenerated)
	assert.Equal(t, "functionality", created.Category)
	assert.Equal(t, "draft", created.Status)
}

func TestCreateRequirementExplicitPriorityWins(t *testing.T) {
	reqs := &mocks.RequirementRepository{}
	svc := services.NewRequirementService(reqs, accessibleProjects())

	req, detected, err := svc.Create("alice", "p1", services.RequirementInput{
		Description: "must be done immediately, critical",
		Priority:    models.PriorityLow,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, detected)
	assert.Equal(t, models.PriorityLow, req.Priority)
	assert.False(t, req.PriorityAutoGenerated)
}

func TestUpdateDescriptionRecomputesAutoPriority(t *testing.T) {
	stored := &models.Requirement{
		ID:                    "r1",
		ProjectID:             "p1",
		Description:           "critical security requirement",
		Priority:              models.PriorityHigh,
		PriorityAutoGenerated: true,
	}
	var updates map[string]interface{}
	reqs := &mocks.RequirementRepository{
		FindByIDFn: func(id string) (*models.Requirement, error) { return stored, nil },
		UpdateFn: func(id string, u map[string]interface{}) error {
			updates = u
			return nil
		},
	}
	svc := services.NewRequirementService(reqs, accessibleProjects())

	_, err := svc.Update("alice", "r1", services.RequirementUpdate{
		Description: strptr("an optional nice to have improvement"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.PriorityLow, updates["priority"])
	assert.Equal(t, true, updates["priority_auto_generated"])
}

func TestUpdateExplicitPriorityClearsFlag(t *testing.T) {
	stored := &models.Requirement{
		ID:                    "r1",
		ProjectID:             "p1",
		Priority:              models.PriorityMedium,
		PriorityAutoGenerated: true,
	}
	var updates map[string]interface{}
	reqs := &mocks.RequirementRepository{
		FindByIDFn: func(id string) (*models.Requirement, error) { return stored, nil },
		UpdateFn: func(id string, u map[string]interface{}) error {
			updates = u
			return nil
		},
	}
	svc := services.NewRequirementService(reqs, accessibleProjects())

	_, err := svc.Update("alice", "r1", services.RequirementUpdate{
		Priority: strptr(models.PriorityHigh),
	})
	require.NoError(t, err)

	assert.Equal(t, models.PriorityHigh, updates["priority"])
	assert.Equal(t, false, updates["priority_auto_generated"])
}

func TestUpdateDescriptionWithExplicitPriority(t *testing.T) {
	stored := &models.Requirement{
		ID:                    "r1",
		ProjectID:             "p1",
		PriorityAutoGenerated: true,
	}
	var updates map[string]interface{}
	reqs := &mocks.RequirementRepository{
		FindByIDFn: func(id string) (*models.Requirement, error) { return stored, nil },
		UpdateFn: func(id string, u map[string]interface{}) error {
			updates = u
			return nil
		},
	}
	svc := services.NewRequirementService(reqs, accessibleProjects())

	_, err := svc.Update("alice", "r1", services.RequirementUpdate{
		Description: strptr("must be fixed immediately, security critical"),
		Priority:    strptr(models.PriorityLow),
	})
	require.NoError(t, err)

	// The caller's explicit choice beats the recomputed heuristic.
	assert.Equal(t, models.PriorityLow, updates["priority"])
	assert.Equal(t, false, updates["priority_auto_generated"])
}

func TestRequirementAccessScoping(t *testing.T) {
	reqs := &mocks.RequirementRepository{
		FindByIDFn: func(id string) (*models.Requirement, error) {
			if id == "r1" {
				return &models.Requirement{ID: "r1", ProjectID: "foreign"}, nil
			}
			return nil, nil
		},
	}
	projects := &mocks.ProjectRepository{} // nothing accessible
	svc := services.NewRequirementService(reqs, projects)

	_, err := svc.Get("alice", "r1")
	assert.ErrorIs(t, err, services.ErrAccessDenied)

	_, err = svc.Get("alice", "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
