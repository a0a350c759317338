package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(t *testing.T, s interface{}) error {
	t.Helper()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v.Struct(s)
}

func TestApplyTransactionRequest_Binding(t *testing.T) {
	valid := ApplyTransactionRequest{
		TransactionID: "c6b8f6a0-8a3e-4a4e-9d1f-0f3a5b8c9d2e",
		Type:          "DEPOSIT",
		Amount:        "10.50",
	}
	assert.NoError(t, validate(t, valid))

	badID := valid
	badID.TransactionID = "not-a-uuid"
	assert.Error(t, validate(t, badID))

	badAmount := valid
	badAmount.Amount = "ten dollars"
	assert.Error(t, validate(t, badAmount))

	// Off-granularity amounts pass binding; the engine rejects and logs
	// them so the rejection replays on retry.
	offGranularity := valid
	offGranularity.Amount = "0.001"
	assert.NoError(t, validate(t, offGranularity))

	missing := ApplyTransactionRequest{}
	assert.Error(t, validate(t, missing))
}

func TestRegisterPlayerRequest_Binding(t *testing.T) {
	valid := RegisterPlayerRequest{
		ID:        "c6b8f6a0-8a3e-4a4e-9d1f-0f3a5b8c9d2e",
		Name:      "alice",
		BirthDate: "1990-06-15",
	}
	assert.NoError(t, validate(t, valid))

	badDate := valid
	badDate.BirthDate = "15/06/1990"
	assert.Error(t, validate(t, badDate))

	parsed, err := valid.ParseBirthDate()
	require.NoError(t, err)
	assert.Equal(t, 1990, parsed.Year())
}
