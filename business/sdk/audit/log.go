package audit

import (
	"context"

	"github.com/jcpaschoal/biadmin/foundation/logger"
)

// LogRecorder writes audit events to the service log.
type LogRecorder struct {
	log *logger.Logger
}

// NewLogRecorder constructs a recorder that logs.
func NewLogRecorder(log *logger.Logger) *LogRecorder {
	return &LogRecorder{
		log: log,
	}
}

// Record implements the Recorder interface.
func (r *LogRecorder) Record(ctx context.Context, evt Event) error {
	r.log.Info(ctx, "audit", "operation", evt.Operation, "kind", evt.EntityKind, "id", evt.EntityID, "detail", evt.Detail, "ts", evt.Timestamp)
	return nil
}
