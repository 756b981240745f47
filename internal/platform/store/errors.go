package store

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

// ValidationError reports missing, empty or malformed caller input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NotFoundError reports that a fetched or scoping record does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Entity) }

// IntegrityError reports a foreign-key or uniqueness violation raised by the store.
type IntegrityError struct {
	Constraint string
	Detail     string
	Err        error
}

func (e *IntegrityError) Error() string {
	if e.Detail != "" {
		return "integrity violation: " + e.Detail
	}
	if e.Constraint != "" {
		return "integrity violation: " + e.Constraint
	}
	return "integrity violation"
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// Invalid is shorthand for a ValidationError with a formatted reason.
func Invalid(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFound is shorthand for a NotFoundError.
func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// Postgres SQLSTATE codes the store translates.
const (
	codeForeignKeyViolation  = "23503"
	codeUniqueViolation      = "23505"
	codeNotNullViolation     = "23502"
	codeCheckViolation       = "23514"
	codeInvalidDatetime      = "22007"
	codeDatetimeOverflow     = "22008"
	codeInvalidTextRepr      = "22P02"
	codeNumericOutOfRange    = "22003"
	codeStringDataRightTrunc = "22001"
)

// Translate converts a raw pgx error into the store taxonomy. Errors that are
// already classified, and errors it does not recognise, are returned as-is.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeForeignKeyViolation, codeUniqueViolation:
		return &IntegrityError{Constraint: pgErr.ConstraintName, Detail: pgErr.Detail, Err: err}
	case codeNotNullViolation:
		return &ValidationError{Reason: fmt.Sprintf("missing required field: %s", pgErr.ColumnName)}
	case codeCheckViolation:
		return &ValidationError{Reason: fmt.Sprintf("constraint %s rejected the value", pgErr.ConstraintName)}
	case codeInvalidDatetime, codeDatetimeOverflow, codeInvalidTextRepr,
		codeNumericOutOfRange, codeStringDataRightTrunc:
		return &ValidationError{Reason: pgErr.Message}
	}
	return err
}

// TranslateRow is Translate for single-row fetches: pgx.ErrNoRows becomes a
// NotFoundError for the given entity.
func TranslateRow(err error, entity string, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound(entity, id)
	}
	return Translate(err)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsIntegrity reports whether err is, or wraps, an IntegrityError.
func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}

// HTTPError maps a store error onto the response a handler should return.
func HTTPError(err error) error {
	var (
		ve *ValidationError
		nf *NotFoundError
		ie *IntegrityError
	)
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Reason)
	case errors.As(err, &nf):
		return echo.NewHTTPError(http.StatusNotFound, nf.Error())
	case errors.As(err, &ie):
		return echo.NewHTTPError(http.StatusConflict, ie.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
