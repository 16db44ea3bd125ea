package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	cases := []struct {
		err    *Error
		kind   Kind
		status int
		msg    string
	}{
		{NotFound("admin"), KindNotFound, http.StatusNotFound, "The admin was not found"},
		{EmailTaken("a@x.com"), KindEmailTaken, http.StatusConflict, "The email a@x.com is already taken"},
		{BadRequest(""), KindBadRequest, http.StatusBadRequest, "The request data is not valid"},
		{NotModified("category", "restored"), KindInternal, http.StatusInternalServerError, "The category was not restored"},
		{Unavailable("busy", nil), KindUnavailable, http.StatusServiceUnavailable, "busy"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, tc.err.Kind)
		assert.Equal(t, tc.status, tc.err.Status)
		assert.Equal(t, tc.msg, tc.err.Error())
	}
}

func TestInternalKeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("Error 1062: Duplicate entry")
	err := fmt.Errorf("service: %w", Internal("Error while storing admin", cause))

	var derr *Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "Error while storing admin", derr.Message)
	assert.ErrorIs(t, err, cause)
}
