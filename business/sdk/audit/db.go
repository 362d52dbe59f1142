package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/sdk/sqldb"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// DBRecorder writes audit events into the audit_log table. It always uses
// its own connection so an event survives the rollback of the transaction
// that it describes.
type DBRecorder struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewDBRecorder constructs a recorder backed by the database.
func NewDBRecorder(log *logger.Logger, db sqlx.ExtContext) *DBRecorder {
	return &DBRecorder{
		log: log,
		db:  db,
	}
}

type eventDB struct {
	ID         uuid.UUID `db:"audit_id"`
	Operation  string    `db:"operation"`
	EntityKind string    `db:"entity_kind"`
	EntityID   uuid.UUID `db:"entity_id"`
	Detail     string    `db:"detail"`
	CreatedAt  time.Time `db:"created_at"`
}

// Record implements the Recorder interface.
func (r *DBRecorder) Record(ctx context.Context, evt Event) error {
	detail := []byte("{}")
	if len(evt.Detail) > 0 {
		var err error
		detail, err = json.Marshal(evt.Detail)
		if err != nil {
			return fmt.Errorf("marshal detail: %w", err)
		}
	}

	dbEvt := eventDB{
		ID:         uuid.New(),
		Operation:  evt.Operation,
		EntityKind: evt.EntityKind,
		EntityID:   evt.EntityID,
		Detail:     string(detail),
		CreatedAt:  evt.Timestamp,
	}

	const q = `
	INSERT INTO audit_log
		(audit_id, operation, entity_kind, entity_id, detail, created_at)
	VALUES
		(:audit_id, :operation, :entity_kind, :entity_id, :detail, :created_at)`

	if err := sqldb.NamedExecContext(ctx, r.log, r.db, q, dbEvt); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}
