package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrUnauthorized,
		ErrNotFound,
		ErrValidation,
		ErrForbidden,
		ErrUnavailable,
		ErrRequest,
		ErrContract,
		ErrNoQuotes,
		ErrCanceled,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestUnauthorizedError(t *testing.T) {
	tests := []struct {
		name        string
		operation   string
		status      int
		expectedMsg string
	}{
		{
			name:        "rejected by server",
			operation:   "ListQuotes",
			status:      401,
			expectedMsg: "ListQuotes: session rejected (status 401)",
		},
		{
			name:        "refused locally",
			operation:   "LikeQuote",
			expectedMsg: "LikeQuote: no active session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUnauthorizedError(tt.operation, tt.status)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrUnauthorized)
			assert.True(t, IsUnauthorized(err))
			assert.True(t, IsUnauthorized(fmt.Errorf("wrapped: %w", err)))
		})
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		id          string
		expectedMsg string
	}{
		{
			name:        "with entity and ID",
			entity:      "quote",
			id:          "12",
			expectedMsg: `quote with id "12" not found`,
		},
		{
			name:        "with entity only",
			entity:      "session",
			expectedMsg: "session not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.entity, tt.id)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.entity, notFound.Entity)
			assert.Equal(t, tt.id, notFound.ID)
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Run("single field", func(t *testing.T) {
		err := NewValidationError("content", "Quote content is required")

		assert.Equal(t, "validation failed for content: Quote content is required", err.Error())
		assert.True(t, IsValidation(err))

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Quote content is required", ve.Summary())
	})

	t.Run("remote messages are joined", func(t *testing.T) {
		err := NewValidationErrors("The given data was invalid.",
			[]string{"content is too short", "author is required"},
			map[string][]string{"content": {"content is too short"}})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "content is too short, author is required", ve.Summary())
		assert.Equal(t, "validation failed: content is too short, author is required", err.Error())
		assert.Equal(t, []string{"content is too short"}, ve.Fields["content"])
	})

	t.Run("message only", func(t *testing.T) {
		err := NewValidationErrors("bad input", nil, nil)
		assert.Equal(t, "validation failed: bad input", err.Error())
	})
}

func TestForbiddenError(t *testing.T) {
	err := NewForbiddenError("CreateTag", "admin role required")

	assert.Equal(t, `operation "CreateTag" forbidden: admin role required`, err.Error())
	assert.True(t, IsForbidden(err))
	assert.False(t, IsUnauthorized(err))

	assert.Equal(t, `operation "x" forbidden`, NewForbiddenError("x", "").Error())
}

func TestUnavailableError(t *testing.T) {
	err := NewUnavailableError("youquote-api", "connection refused")

	assert.Equal(t, `service "youquote-api" unavailable: connection refused`, err.Error())
	assert.True(t, IsUnavailable(err))
	assert.Equal(t, `service "youquote-api" unavailable`, NewUnavailableError("youquote-api", "").Error())
}

func TestRequestError(t *testing.T) {
	err := NewRequestError("CreateQuote", 400, "bad request")

	assert.Equal(t, "CreateQuote failed with status 400: bad request", err.Error())
	require.ErrorIs(t, err, ErrRequest)

	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 400, re.Status)
}

func TestContractError(t *testing.T) {
	cause := errors.New("expected array")
	err := NewContractError("ListQuotes", cause)

	assert.True(t, IsContract(err))
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "expected array")

	assert.True(t, IsContract(NewContractError("ListTags", nil)))
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, IsCanceled(fmt.Errorf("delete: %w", ErrCanceled)))
	assert.False(t, IsCanceled(ErrNotFound))
}
