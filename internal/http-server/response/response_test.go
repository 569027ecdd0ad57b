package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	resp := OK()
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
}

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]int{"chargeable_days": 4})
	assert.Equal(t, StatusOK, resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("failed to decode request")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "failed to decode request", resp.Error)
}

func TestValidationError(t *testing.T) {
	type req struct {
		ClientID string `validate:"required,uuid"`
		Quantity int    `validate:"required,gt=0"`
	}

	err := validator.New().Struct(req{})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "ClientID")
	assert.Contains(t, resp.Error, "required")
}
