package audit_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/sdk/audit"
	"github.com/jcpaschoal/biadmin/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLog(w io.Writer) *logger.Logger {
	return logger.New(w, logger.LevelInfo, "TEST", func(context.Context) string { return "" })
}

func TestDBRecorder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := audit.NewDBRecorder(testLog(io.Discard), sqlx.NewDb(db, "postgres"))

	evt := audit.NewEvent(audit.OpCascadeDelete, audit.KindCompany, uuid.New(), map[string]any{"users": 2})

	mock.ExpectExec("INSERT INTO audit_log").
		WithArgs(sqlmock.AnyArg(), audit.OpCascadeDelete, audit.KindCompany, evt.EntityID, `{"users":2}`, evt.Timestamp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, rec.Record(context.Background(), evt))

	mock.ExpectExec("INSERT INTO audit_log").
		WithArgs(sqlmock.AnyArg(), audit.OpDeactivate, audit.KindUser, sqlmock.AnyArg(), "{}", sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))

	err = rec.Record(context.Background(), audit.NewEvent(audit.OpDeactivate, audit.KindUser, uuid.New(), nil))
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogRecorder(t *testing.T) {
	var buf bytes.Buffer
	rec := audit.NewLogRecorder(testLog(&buf))

	id := uuid.New()
	require.NoError(t, rec.Record(context.Background(), audit.NewEvent(audit.OpDelete, audit.KindDashboard, id, nil)))

	assert.Contains(t, buf.String(), id.String())
	assert.Contains(t, buf.String(), audit.OpDelete)
}

func TestMulti(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	var calls []string
	recorder := func(name string, err error) audit.Recorder {
		return audit.RecorderFunc(func(context.Context, audit.Event) error {
			calls = append(calls, name)
			return err
		})
	}

	m := audit.Multi{recorder("a", errA), recorder("ok", nil), recorder("b", errB)}

	err := m.Record(context.Background(), audit.NewEvent(audit.OpDelete, audit.KindUser, uuid.New(), nil))
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, []string{"a", "ok", "b"}, calls)

	assert.NoError(t, audit.Multi{recorder("ok", nil)}.Record(context.Background(), audit.Event{}))
}
