package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	cause := errors.New("db down")
	err := NewServer(cause)

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "Internal server error", ge.Msg())
	assert.Equal(t, TypeServer, ge.Type())
	assert.Equal(t, http.StatusInternalServerError, ge.StatusCode())
	assert.ErrorIs(t, err, cause)
}

func TestNewBusiness(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeTooManyRequest, http.StatusTooManyRequests},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			var ge *Error
			require.ErrorAs(t, NewBusiness("nope", tt.code), &ge)
			assert.Equal(t, tt.want, ge.StatusCode())
			assert.Equal(t, "nope", ge.Error())
			assert.Equal(t, TypeBusiness, ge.Type())
		})
	}
}

func TestNewInvalidInput(t *testing.T) {
	var ge *Error
	require.ErrorAs(t, NewInvalidInput(nil, "email", "already used"), &ge)
	assert.Equal(t, http.StatusBadRequest, ge.StatusCode())
	assert.Equal(t, map[string]string{"email": "already used"}, ge.Fields())
	assert.Equal(t, "Validation error", ge.Msg())

	require.ErrorAs(t, NewInvalidInput(nil, "dangling"), &ge)
	assert.Equal(t, CodeInvalidFormat, ge.Code())
}

func TestNewInvalidFormat(t *testing.T) {
	var ge *Error
	require.ErrorAs(t, NewInvalidFormat(), &ge)
	assert.Equal(t, "Invalid request body", ge.Msg())

	require.ErrorAs(t, NewInvalidFormat("bad query"), &ge)
	assert.Equal(t, "bad query", ge.Msg())
	assert.Equal(t, "validation", ge.Type().String())
}
