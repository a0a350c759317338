package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := New("WLT_001", "Wallet not found", http.StatusNotFound)
	assert.Equal(t, "[WLT_001] Wallet not found", e.Error())
}

func TestAppError_ErrorWithWrapped(t *testing.T) {
	inner := errors.New("connection refused")
	e := Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, inner)
	assert.Contains(t, e.Error(), "connection refused")
	assert.Equal(t, inner, e.Unwrap())
}

func TestAppError_ErrorsIs(t *testing.T) {
	inner := errors.New("boom")
	e := InternalError(fmt.Errorf("commit tx: %w", inner))
	assert.True(t, errors.Is(e, inner))
}

func TestConflictMapsToPreconditionFailed(t *testing.T) {
	e := ErrTransactionConflict()
	assert.Equal(t, http.StatusPreconditionFailed, e.HTTPStatus)
	assert.Equal(t, "WLT_002", e.Code)
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err    *AppError
		code   string
		status int
	}{
		{ErrWalletNotFound(), "WLT_001", http.StatusNotFound},
		{ErrInvalidAmount("bad"), "WLT_003", http.StatusBadRequest},
		{ErrUnknownTransactionType("Bonus"), "WLT_004", http.StatusBadRequest},
		{ErrPlayerNotFound(), "PLR_001", http.StatusNotFound},
		{ErrPlayerNameConflict("Jim"), "PLR_002", http.StatusConflict},
		{ErrPlayerUnderage(), "PLR_003", http.StatusBadRequest},
		{ErrInvalidCredentials(), "AUTH_001", http.StatusUnauthorized},
		{ErrInvalidToken(), "AUTH_002", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.status, tc.err.HTTPStatus)
	}
}
