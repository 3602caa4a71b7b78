package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cause := errors.New("boom")
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(NewInvalidInput("bad", cause)))
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(NewNotFound("slot", "x")))
	assert.Equal(t, http.StatusServiceUnavailable, ToHTTPStatus(NewUnavailable("down", cause)))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(NewInternal("oops", cause)))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(cause))
}

func TestAppError_UnwrapsBaseAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternal("write failed", cause)

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, NewNotFound("slot", "x"), ErrNotFound)
}

func TestAppError_ToJSON(t *testing.T) {
	body := NewInvalidInput("items[0]: blank", nil).ToJSON()
	assert.Equal(t, "invalid input", body["error"])
	assert.Equal(t, "items[0]: blank", body["details"])

	body = NewInternal("secret path /var/db", nil).ToJSON()
	assert.NotContains(t, body, "details")
}
