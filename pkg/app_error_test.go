package pkg

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("boom")
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)

	assert.ErrorIs(t, appErr, cause)
	assert.Equal(t, "INTERNAL_ERROR: An internal error occurred: boom", appErr.Error())
	assert.Nil(t, appErr.ToHTTPError().Details)

	base := NewDomainErrorSimple("INVALID_TRANSITION", "Invalid transition", http.StatusConflict)
	withStatus := base.WithDetail("current_status", "held")
	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]any{"current_status": "held"}, withStatus.ToHTTPError().Details)
	assert.Equal(t, http.StatusConflict, withStatus.HTTPStatus)
}
