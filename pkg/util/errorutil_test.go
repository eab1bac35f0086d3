package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	original := NewUnauthorized("nope")
	mapped := ToDomainError(original)
	assert.Equal(t, "UNAUTHORIZED", mapped.Code)
	assert.Equal(t, http.StatusForbidden, mapped.HTTPStatus)
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	mapped := ToDomainError(pgErr)
	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	assert.Equal(t, "users_email_key", mapped.Details["constraint"])
}

func TestToDomainErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "products_category_id_fkey"}
	mapped := ToDomainError(pgErr)
	assert.Equal(t, "VALIDATION_FAILED", mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
}

func TestToDomainErrorUnknownBecomesInternal(t *testing.T) {
	mapped := ToDomainError(errors.New("disk on fire"))
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	// Internal detail is never leaked in the public message.
	assert.Equal(t, "internal server error", mapped.Message)
}

func TestValidationErrorCarriesFieldDetails(t *testing.T) {
	err := NewValidationError("invalid input", map[string]any{"price": "price must be greater than 0"})
	mapped := ToDomainError(err)
	require.NotNil(t, mapped)
	assert.Equal(t, "VALIDATION_FAILED", mapped.Code)
	assert.Equal(t, "price must be greater than 0", mapped.Details["price"])
}

func TestUnauthenticatedVsUnauthorized(t *testing.T) {
	unauthn := ToDomainError(NewUnauthenticated("no session"))
	assert.Equal(t, http.StatusUnauthorized, unauthn.HTTPStatus)

	unauthz := ToDomainError(NewUnauthorized("insufficient role"))
	assert.Equal(t, http.StatusForbidden, unauthz.HTTPStatus)
}
