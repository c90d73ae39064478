package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	llmclient "caseforge/internal/llm/client"
	"caseforge/internal/llm/prompt"
	"caseforge/internal/logger"
	"caseforge/internal/repositories"
)

// GenerationRequest is one test-case generation call. Transient, never
// persisted as-is.
type GenerationRequest struct {
	Requirements     string
	FormatType       string
	Context          string
	ExampleCase      string
	ProjectID        string
	RequirementID    string
	RequirementTitle string
}

// ChatTurn is one assistant chat call.
type ChatTurn struct {
	Message          string
	TestCases        string
	ProjectID        string
	RequirementID    string
	RequirementTitle string
	Requirements     string
	History          []prompt.Exchange
	DirectMode       bool
	ActiveHistoryID  string
}

// Sink receives forwarded stream output. A Chunk error means the client is
// gone; the producer stops and releases the upstream stream.
type Sink interface {
	Chunk(text string) error
}

// ClientFactory builds a completion client bound to one resolved credential.
type ClientFactory func(ctx context.Context, cfg llmclient.Config) (llmclient.Client, error)

type GenerationService interface {
	// Generate runs one blocking completion and stores the artifact.
	Generate(ctx context.Context, user string, req GenerationRequest) (string, error)
	// GenerateStream streams deltas into sink and stores the artifact once
	// the upstream stream completes. Nothing is stored on error or
	// disconnect.
	GenerateStream(ctx context.Context, user string, req GenerationRequest, sink Sink) error
	// GenerateForRequirement is GenerateStream driven by a stored
	// requirement: its description is the requirements text and its title
	// the functional context, and the record links back to it.
	GenerateForRequirement(ctx context.Context, user, requirementID, formatType, exampleCase string, sink Sink) error
}

type generationService struct {
	history      HistoryService
	apiKeys      APIKeyService
	requirements repositories.RequirementRepository
	projects     repositories.ProjectRepository
	newClient    ClientFactory
	provider     string
	model        string
	log          *logger.Logger
}

func NewGenerationService(
	history HistoryService,
	apiKeys APIKeyService,
	requirements repositories.RequirementRepository,
	projects repositories.ProjectRepository,
	newClient ClientFactory,
	provider, model string,
	log *logger.Logger,
) GenerationService {
	return &generationService{
		history:      history,
		apiKeys:      apiKeys,
		requirements: requirements,
		projects:     projects,
		newClient:    newClient,
		provider:     provider,
		model:        model,
		log:          log.With("service", "generation"),
	}
}

func (s *generationService) Generate(ctx context.Context, user string, req GenerationRequest) (string, error) {
	if strings.TrimSpace(req.Requirements) == "" {
		return "", fmt.Errorf("%w: no requirements provided", ErrInvalidInput)
	}

	cli, err := s.client(ctx, user, req.ProjectID)
	if err != nil {
		return "", err
	}

	instruction := prompt.Generation(prompt.Request{
		Requirements: req.Requirements,
		FormatType:   req.FormatType,
		Context:      req.Context,
		ExampleCase:  req.ExampleCase,
	})
	text, err := cli.Complete(ctx, []*schema.Message{schema.UserMessage(instruction)})
	if err != nil {
		return "", err
	}

	// Durability failure is surfaced in logs only; the produced artifact is
	// still delivered.
	if _, err := s.history.SaveGenerated(user, req, text); err != nil {
		s.log.Error("failed to save generated test cases", "user", user, "error", err)
	}
	return text, nil
}

func (s *generationService) GenerateStream(ctx context.Context, user string, req GenerationRequest, sink Sink) error {
	if strings.TrimSpace(req.Requirements) == "" {
		return fmt.Errorf("%w: no requirements provided", ErrInvalidInput)
	}

	cli, err := s.client(ctx, user, req.ProjectID)
	if err != nil {
		return err
	}

	instruction := prompt.Generation(prompt.Request{
		Requirements: req.Requirements,
		FormatType:   req.FormatType,
		Context:      req.Context,
		ExampleCase:  req.ExampleCase,
	})
	full, err := s.pump(ctx, cli, []*schema.Message{schema.UserMessage(instruction)}, sink)
	if err != nil {
		return err
	}

	if _, err := s.history.SaveGenerated(user, req, full); err != nil {
		s.log.Error("failed to save streamed test cases", "user", user, "error", err)
	}
	return nil
}

func (s *generationService) GenerateForRequirement(ctx context.Context, user, requirementID, formatType, exampleCase string, sink Sink) error {
	requirement, err := s.requirements.FindByID(requirementID)
	if err != nil {
		return err
	}
	if requirement == nil {
		return ErrNotFound
	}
	project, err := s.projects.FindAccessible(requirement.ProjectID, user)
	if err != nil {
		return err
	}
	if project == nil {
		return fmt.Errorf("%w: requirement %s", ErrAccessDenied, requirementID)
	}

	return s.GenerateStream(ctx, user, GenerationRequest{
		Requirements:     requirement.Description,
		FormatType:       formatType,
		Context:          requirement.Title,
		ExampleCase:      exampleCase,
		ProjectID:        requirement.ProjectID,
		RequirementID:    requirement.ID,
		RequirementTitle: requirement.Title,
	}, sink)
}

// pump forwards every delta to sink and returns the accumulated text after
// the upstream stop event. A sink failure or context cancellation releases
// the upstream stream and reports context.Canceled; partial output is
// discarded by the callers.
func (s *generationService) pump(ctx context.Context, cli llmclient.Client, messages []*schema.Message, sink Sink) (string, error) {
	stream, err := cli.Stream(ctx, messages)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var full strings.Builder
	for {
		if ctx.Err() != nil {
			return "", context.Canceled
		}
		event, err := stream.Recv()
		if err != nil {
			return "", err
		}
		switch event.Type {
		case llmclient.EventDelta:
			if event.Text == "" {
				continue
			}
			full.WriteString(event.Text)
			if err := sink.Chunk(event.Text); err != nil {
				return "", context.Canceled
			}
		case llmclient.EventStop:
			return full.String(), nil
		}
	}
}

func (s *generationService) client(ctx context.Context, user, projectID string) (llmclient.Client, error) {
	key, err := s.apiKeys.Resolve(user, projectID)
	if err != nil {
		return nil, err
	}
	return s.newClient(ctx, llmclient.Config{
		Provider: s.provider,
		APIKey:   key,
		Model:    s.model,
	})
}
