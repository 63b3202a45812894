package service

import (
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrSelfFollow    = errors.New("cannot subscribe to yourself")
	ErrNotPermitted  = errors.New("not permitted")

	ErrLoginUserNotFound         = errors.New("user not found")
	ErrLoginPasswordDoesNotMatch = errors.New("password does not match")
)

// ValidationError rejects a request before any row is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

const pgUniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a natural-key collision coming
// back from the store. Two concurrent adds of the same pair race on
// get-or-create; the loser sees the unique index instead of the existing row.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
