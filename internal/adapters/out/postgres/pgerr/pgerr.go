// Package pgerr translates database failures into the domain error taxonomy.
//
// Not-found is left for repositories to report with the entity id. Constraint
// and data violations caused by the written values become ValueIsInvalidError.
// Everything else, including serialization failures, deadlocks and lost
// connections, becomes a TransactionFailedError the caller may retry.
package pgerr

import (
	"errors"
	"strings"

	"roadside/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes the translation cares about.
const (
	NotNullViolation     = "23502"
	ForeignKeyViolation  = "23503"
	UniqueViolation      = "23505"
	CheckViolation       = "23514"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"

	dataExceptionClass = "22"
)

// Wrap classifies err raised by op. A nil error stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if isInvalidValue(err) {
		return errs.NewValueIsInvalidErrorWithCause(op, err)
	}
	return errs.NewTransactionFailedError(op, err)
}

// Code returns the SQLSTATE of err, or "" when err did not come from the server.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsRetryable reports whether repeating the whole transaction can succeed.
func IsRetryable(err error) bool {
	switch Code(err) {
	case SerializationFailure, DeadlockDetected, LockNotAvailable, UniqueViolation:
		return true
	}
	return pgconn.SafeToRetry(err) || pgconn.Timeout(err)
}

func isInvalidValue(err error) bool {
	code := Code(err)
	switch code {
	case NotNullViolation, ForeignKeyViolation, CheckViolation:
		return true
	}
	return strings.HasPrefix(code, dataExceptionClass)
}
