package services

import (
	"context"
	"fmt"
	"strings"

	"caseforge/internal/artifact"
	"caseforge/internal/heuristics"
	llmclient "caseforge/internal/llm/client"
	"caseforge/internal/llm/prompt"
	"caseforge/internal/logger"
	"caseforge/internal/repositories"
)

// Confirmation strings delivered with an applied artifact. The second is
// used when the artifact could not be durably saved; the artifact itself is
// still delivered.
const (
	ConfirmApplied     = "Modifications appliquées."
	ConfirmSaveFailure = "Modifications appliquées, mais erreur de sauvegarde."
)

// ChatSink extends Sink with the end-of-turn artifact frame.
type ChatSink interface {
	Sink
	Updated(testCases, confirmation string) error
}

type ChatService interface {
	// Chat drives one assistant turn: stream the reply into sink, then on
	// completion extract a candidate replacement artifact, reconcile it into
	// history and emit the updated_test_cases frame. The raw exchange is
	// recorded regardless of whether an artifact update occurred.
	Chat(ctx context.Context, user string, turn ChatTurn, sink ChatSink) error
}

type chatService struct {
	history      HistoryService
	apiKeys      APIKeyService
	projects     repositories.ProjectRepository
	requirements repositories.RequirementRepository
	newClient    ClientFactory
	provider     string
	model        string
	log          *logger.Logger
}

func NewChatService(
	history HistoryService,
	apiKeys APIKeyService,
	projects repositories.ProjectRepository,
	requirements repositories.RequirementRepository,
	newClient ClientFactory,
	provider, model string,
	log *logger.Logger,
) ChatService {
	return &chatService{
		history:      history,
		apiKeys:      apiKeys,
		projects:     projects,
		requirements: requirements,
		newClient:    newClient,
		provider:     provider,
		model:        model,
		log:          log.With("service", "chat"),
	}
}

func (s *chatService) Chat(ctx context.Context, user string, turn ChatTurn, sink ChatSink) error {
	if strings.TrimSpace(turn.Message) == "" {
		return fmt.Errorf("%w: no message provided", ErrInvalidInput)
	}

	key, err := s.apiKeys.Resolve(user, turn.ProjectID)
	if err != nil {
		return err
	}
	cli, err := s.newClient(ctx, llmclient.Config{Provider: s.provider, APIKey: key, Model: s.model})
	if err != nil {
		return err
	}

	turnPrompt := s.composeTurn(user, turn)
	messages := prompt.Messages(turn.History, turnPrompt)

	stream, err := cli.Stream(ctx, messages)
	if err != nil {
		return err
	}
	defer stream.Close()

	var full strings.Builder
	for {
		if ctx.Err() != nil {
			// Client gone mid-stream: drop any partial artifact but keep the
			// raw exchange up to this point.
			s.history.RecordExchange(user, turn, full.String())
			return context.Canceled
		}
		event, recvErr := stream.Recv()
		if recvErr != nil {
			s.history.RecordExchange(user, turn, full.String())
			return recvErr
		}
		if event.Type == llmclient.EventStop {
			break
		}
		if event.Text == "" {
			continue
		}
		full.WriteString(event.Text)
		if err := sink.Chunk(event.Text); err != nil {
			s.history.RecordExchange(user, turn, full.String())
			return context.Canceled
		}
	}

	response := full.String()
	s.applyArtifact(user, turn, response, sink)
	s.history.RecordExchange(user, turn, response)
	return nil
}

// applyArtifact runs the completion hook: extract a fenced candidate, decide
// update-vs-noop, reconcile into history and emit the artifact frame. A
// persistence failure downgrades the confirmation but never suppresses the
// frame.
func (s *chatService) applyArtifact(user string, turn ChatTurn, response string, sink ChatSink) {
	candidate, ok := artifact.Extract(response)
	if !ok || !artifact.IsUpdate(candidate, turn.TestCases) {
		return
	}

	confirmation := ConfirmApplied
	if err := s.history.ApplyArtifact(user, turn, candidate); err != nil {
		s.log.Error("failed to save updated test cases", "user", user, "error", err)
		confirmation = ConfirmSaveFailure
	}
	if err := sink.Updated(candidate, confirmation); err != nil {
		s.log.Warn("client disconnected before artifact frame", "user", user)
	}
}

// composeTurn resolves optional project/requirement linkage and builds the
// turn instruction. Lookup failures degrade to a context without the
// corresponding section rather than failing the turn.
func (s *chatService) composeTurn(user string, turn ChatTurn) string {
	cc := prompt.ChatContext{
		Message:        turn.Message,
		TestCases:      turn.TestCases,
		DirectMode:     turn.DirectMode,
		IsModification: heuristics.IsModificationRequest(turn.Message),
	}

	if turn.ProjectID != "" {
		project, err := s.projects.FindAccessible(turn.ProjectID, user)
		if err != nil {
			s.log.Warn("project lookup failed for chat context", "project_id", turn.ProjectID, "error", err)
		}
		if project != nil {
			cc.HasProject = true
			cc.ProjectName = project.Name
			cc.ProjectContext = project.Context
		}
	}
	if turn.RequirementID != "" {
		requirement, err := s.requirements.FindByID(turn.RequirementID)
		if err != nil {
			s.log.Warn("requirement lookup failed for chat context", "requirement_id", turn.RequirementID, "error", err)
		}
		if requirement != nil {
			cc.HasRequirement = true
			cc.RequirementTitle = requirement.Title
			cc.RequirementDescription = requirement.Description
		}
	}

	return prompt.Chat(cc)
}
