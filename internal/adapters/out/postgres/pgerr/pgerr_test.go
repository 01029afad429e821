package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"roadside/internal/adapters/out/postgres/pgerr"
	"roadside/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWrap(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		wantIs    error
		retryable bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: pgerr.SerializationFailure},
			wantIs: errs.ErrTransactionFailed, retryable: true},
		{name: "deadlock", err: &pgconn.PgError{Code: pgerr.DeadlockDetected},
			wantIs: errs.ErrTransactionFailed, retryable: true},
		{name: "concurrent insert", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerr.UniqueViolation}),
			wantIs: errs.ErrTransactionFailed, retryable: true},
		{name: "foreign key", err: &pgconn.PgError{Code: pgerr.ForeignKeyViolation},
			wantIs: errs.ErrValueIsInvalid},
		{name: "numeric overflow", err: &pgconn.PgError{Code: "22003"},
			wantIs: errs.ErrValueIsInvalid},
		{name: "plain error", err: errors.New("connection refused"),
			wantIs: errs.ErrTransactionFailed},
		{name: "not found", err: gorm.ErrRecordNotFound, wantIs: gorm.ErrRecordNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := pgerr.Wrap("save order", tc.err)

			require.ErrorIs(t, wrapped, tc.wantIs)
			assert.Equal(t, tc.retryable, pgerr.IsRetryable(tc.err))
		})
	}
}

func TestWrap_KeepsCauseReachable(t *testing.T) {
	cause := &pgconn.PgError{Code: pgerr.SerializationFailure, Message: "could not serialize access"}

	wrapped := pgerr.Wrap("commit", cause)

	var pgErr *pgconn.PgError
	require.ErrorAs(t, wrapped, &pgErr)
	assert.Equal(t, pgerr.SerializationFailure, pgErr.Code)
	assert.Contains(t, wrapped.Error(), "commit")
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, pgerr.Wrap("noop", nil))
}
