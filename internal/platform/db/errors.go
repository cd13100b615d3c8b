package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store-boundary outcomes. Repos return these so handlers can translate
// business failures to HTTP statuses without inspecting driver errors.
var (
	// ErrNotFound covers both a genuinely missing row and a row outside the
	// caller's site scope; the two are indistinguishable on purpose.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers unique violations (duplicate email) and blocked
	// deletes (a site still referenced as someone's primary site).
	ErrConflict = errors.New("conflict")

	// ErrNoFields is returned by partial updates whose patch sets nothing.
	ErrNoFields = errors.New("nothing to update")

	// ErrInvalid marks a validation failure rejected before any store call.
	ErrInvalid = errors.New("invalid input")
)

type taggedError struct {
	msg string
	tag error
}

func (e *taggedError) Error() string        { return e.msg }
func (e *taggedError) Is(target error) bool { return target == e.tag }

// Invalidf builds a validation error carrying a caller-facing message.
func Invalidf(format string, a ...interface{}) error {
	return &taggedError{msg: fmt.Sprintf(format, a...), tag: ErrInvalid}
}

// Conflictf builds a conflict error carrying a caller-facing message.
func Conflictf(format string, a ...interface{}) error {
	return &taggedError{msg: fmt.Sprintf(format, a...), tag: ErrConflict}
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// TranslateError maps driver-level errors to store-boundary outcomes.
// Anything it does not recognize passes through and surfaces as a 500.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			return ErrConflict
		}
	}
	return err
}
