// Package audit records the destructive lifecycle operations run against
// tenant entities. Events are recorded before the operation they describe.
package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Set of operations that produce an audit event.
const (
	OpDelete        = "DELETE"
	OpCascadeDelete = "CASCADE_DELETE"
	OpDeactivate    = "DEACTIVATE"
)

// Set of entity kinds an event can reference.
const (
	KindCompany   = "company"
	KindUser      = "user"
	KindDashboard = "dashboard"
)

// Event is a single audit record.
type Event struct {
	Operation  string
	EntityKind string
	EntityID   uuid.UUID
	Detail     map[string]any
	Timestamp  time.Time
}

// NewEvent constructs an event stamped with the current time.
func NewEvent(op string, kind string, id uuid.UUID, detail map[string]any) Event {
	return Event{
		Operation:  op,
		EntityKind: kind,
		EntityID:   id,
		Detail:     detail,
		Timestamp:  time.Now().UTC(),
	}
}

// Recorder is the behavior required to persist or emit audit events. A
// returned error tells the caller to abort the audited operation.
type Recorder interface {
	Record(ctx context.Context, evt Event) error
}

// RecorderFunc adapts an ordinary function to the Recorder interface.
type RecorderFunc func(ctx context.Context, evt Event) error

// Record implements the Recorder interface.
func (f RecorderFunc) Record(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// =============================================================================

// Multi fans an event out to every recorder, in order. All recorders are
// attempted and the joined errors are returned.
type Multi []Recorder

// Record implements the Recorder interface.
func (m Multi) Record(ctx context.Context, evt Event) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
