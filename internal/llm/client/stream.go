package client

import (
	"errors"
	"io"

	"github.com/cloudwego/eino/schema"
)

type EventType int

const (
	// EventDelta carries one incremental text fragment.
	EventDelta EventType = iota
	// EventStop is the terminal event of a completed stream.
	EventStop
)

// Event is one item of a completion stream: a text delta or the stop marker.
// Upstream failures surface as errors from Recv, not as events.
type Event struct {
	Type EventType
	Text string
}

// Stream yields events in upstream order. After EventStop or an error the
// stream is exhausted; Close releases the upstream source and is safe to call
// at any point, including after client disconnect.
type Stream interface {
	Recv() (Event, error)
	Close()
}

type einoStream struct {
	reader  *schema.StreamReader[*schema.Message]
	stopped bool
}

func (s *einoStream) Recv() (Event, error) {
	if s.stopped {
		return Event{}, io.EOF
	}
	msg, err := s.reader.Recv()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.stopped = true
			return Event{Type: EventStop}, nil
		}
		s.stopped = true
		return Event{}, Classify(err)
	}
	return Event{Type: EventDelta, Text: msg.Content}, nil
}

func (s *einoStream) Close() {
	s.reader.Close()
}
