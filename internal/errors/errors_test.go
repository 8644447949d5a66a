package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := &AppError{Code: ErrCodeValidation, Message: "name is required"}
		assert.Equal(t, "name is required", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &AppError{Code: ErrCodeNetwork, Message: "update user", Cause: cause}
		assert.Equal(t, "update user: connection refused", err.Error())
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("row missing")
	err := Wrap(cause, ErrCodeNotFound, "user lookup")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"NotFound", NotFound("missing"), ErrCodeNotFound},
		{"NotFoundf", NotFoundf("user %d missing", 42), ErrCodeNotFound},
		{"Validation", Validation("bad input"), ErrCodeValidation},
		{"Validationf", Validationf("bad %s", "name"), ErrCodeValidation},
		{"InvalidCredentials", InvalidCredentials("rejected"), ErrCodeInvalidCredentials},
		{"Network", Network("unreachable"), ErrCodeNetwork},
		{"Server", Server("boom"), ErrCodeServer},
		{"Serverf", Serverf("boom %d", 1), ErrCodeServer},
		{"UnsupportedLocale", UnsupportedLocale("XX"), ErrCodeUnsupportedLocale},
		{"UnsupportedLocalef", UnsupportedLocalef("code %q", "XX"), ErrCodeUnsupportedLocale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("fullName", "must not be empty")

	assert.Equal(t, ErrCodeValidation, err.Code)
	assert.Equal(t, "fullName", err.Field)
	assert.Equal(t, "fullName", GetField(err))
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeServer, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeServer, "ignored %d", 1))
}

func TestWrapf_PreservesCause(t *testing.T) {
	cause := errors.New("tcp refused")
	err := Wrapf(cause, ErrCodeNetwork, "rates for %s", "EUR")

	require.NotNil(t, err)
	assert.Equal(t, ErrCodeNetwork, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "rates for EUR")
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"IsNotFound matches", NotFound("x"), IsNotFound, true},
		{"IsNotFound rejects other code", Validation("x"), IsNotFound, false},
		{"IsValidation matches", Validation("x"), IsValidation, true},
		{"IsInvalidCredentials matches", InvalidCredentials("x"), IsInvalidCredentials, true},
		{"IsNetwork matches", Network("x"), IsNetwork, true},
		{"IsServer matches", Server("x"), IsServer, true},
		{"IsUnsupportedLocale matches", UnsupportedLocale("x"), IsUnsupportedLocale, true},
		{"plain error never matches", errors.New("x"), IsServer, false},
		{"nil never matches", nil, IsNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

func TestPredicates_WrappedChain(t *testing.T) {
	inner := NotFound("user 42")
	outer := fmt.Errorf("resolve session: %w", inner)

	assert.True(t, IsNotFound(outer))
	assert.Equal(t, ErrCodeNotFound, GetCode(outer))
}

func TestGetCode_NonAppError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Equal(t, "", GetField(errors.New("plain")))
}
