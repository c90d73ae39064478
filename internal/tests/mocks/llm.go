package mocks

import (
	"context"
	"io"

	"github.com/cloudwego/eino/schema"

	llmclient "caseforge/internal/llm/client"
)

// LLMClient is a scripted completion client.
type LLMClient struct {
	CompleteFn func(ctx context.Context, messages []*schema.Message) (string, error)
	StreamFn   func(ctx context.Context, messages []*schema.Message) (llmclient.Stream, error)
}

func (m *LLMClient) Complete(ctx context.Context, messages []*schema.Message) (string, error) {
	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, messages)
	}
	return "", nil
}

func (m *LLMClient) Stream(ctx context.Context, messages []*schema.Message) (llmclient.Stream, error) {
	if m.StreamFn != nil {
		return m.StreamFn(ctx, messages)
	}
	return NewScriptedStream(), nil
}

// ScriptedStream replays a fixed sequence of deltas, then a stop event, then
// io.EOF. Closed tracks resource release.
type ScriptedStream struct {
	deltas []string
	pos    int
	done   bool
	Closed bool
	// RecvErr, when set, is returned instead of the next event.
	RecvErr error
}

func NewScriptedStream(deltas ...string) *ScriptedStream {
	return &ScriptedStream{deltas: deltas}
}

func (s *ScriptedStream) Recv() (llmclient.Event, error) {
	if s.RecvErr != nil {
		return llmclient.Event{}, s.RecvErr
	}
	if s.pos < len(s.deltas) {
		text := s.deltas[s.pos]
		s.pos++
		return llmclient.Event{Type: llmclient.EventDelta, Text: text}, nil
	}
	if !s.done {
		s.done = true
		return llmclient.Event{Type: llmclient.EventStop}, nil
	}
	return llmclient.Event{}, io.EOF
}

func (s *ScriptedStream) Close() {
	s.Closed = true
}

// StreamClient returns a client whose Stream call always yields stream.
func StreamClient(stream llmclient.Stream) *LLMClient {
	return &LLMClient{
		StreamFn: func(context.Context, []*schema.Message) (llmclient.Stream, error) {
			return stream, nil
		},
	}
}
