package diagnostics

import (
	"context"
	"time"

	"edemy/internal/qerrors"

	"github.com/google/uuid"
)

// Emitter is an out-of-band channel for failed batch commits. Operators watch it; students never see it.
type Emitter interface {
	Emit(ctx context.Context, err *qerrors.ConsistencyWriteError)
}

// Event is the record published for each failed commit.
type Event struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Op        string                 `json:"op"`
	UserID    string                 `json:"userId"`
	Paths     []string               `json:"paths"`
	Payload   map[string]interface{} `json:"payload"`
	Error     string                 `json:"error"`
}

// NewEvent builds an Event from a failed commit.
func NewEvent(err *qerrors.ConsistencyWriteError) *Event {
	e := &Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Op:        err.Op,
		UserID:    err.UserID,
		Paths:     err.Paths,
		Payload:   err.Payload,
	}
	if err.Err != nil {
		e.Error = err.Err.Error()
	}
	return e
}

// Multi fans every error out to each of its emitters in order.
type Multi []Emitter

func (m Multi) Emit(ctx context.Context, err *qerrors.ConsistencyWriteError) {
	for _, e := range m {
		if e == nil {
			continue
		}
		e.Emit(ctx, err)
	}
}

// Discard drops every error.
type Discard struct{}

func (Discard) Emit(context.Context, *qerrors.ConsistencyWriteError) {}
