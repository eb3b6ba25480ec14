package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validationf("missing %s", "name"), http.StatusBadRequest},
		{Transitionf("bad"), http.StatusBadRequest},
		{Unauthorizedf("no token"), http.StatusUnauthorized},
		{Forbiddenf("nope"), http.StatusForbidden},
		{NotFoundf("Booking not found"), http.StatusNotFound},
		{Conflictf("changed"), http.StatusConflict},
		{Store("insert failed", errors.New("boom")), http.StatusInternalServerError},
		{StoreCode("duplicate", "23505", errors.New("boom")), http.StatusBadRequest},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	base := NotFoundf("Resource not found")
	wrapped := fmt.Errorf("create booking: %w", base)

	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, NotFound))
	assert.False(t, Is(wrapped, Forbidden))
	assert.Equal(t, BackingStore, KindOf(errors.New("x")))
}

func TestStoreUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Store("query resources", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "query resources: connection reset", err.Error())
}
