package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errThingMissing = NotFound("Thing not found")

func TestStatusFor(t *testing.T) {
	status, msg := StatusFor(errThingMissing)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Thing not found", msg)

	status, msg = StatusFor(fmt.Errorf("loading: %w", errThingMissing))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Thing not found", msg)

	status, msg = StatusFor(errors.New("db exploded"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", msg)
}

func TestWrapKeepsIdentity(t *testing.T) {
	cause := errors.New("rpc timeout")
	err := Internal("Chain call failed").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	status, _ := StatusFor(err)
	assert.Equal(t, http.StatusInternalServerError, status)

	sentinel := Internal("Chain call failed")
	wrapped := sentinel.Wrap(cause)
	assert.ErrorIs(t, wrapped, sentinel)
	assert.Contains(t, wrapped.Error(), "rpc timeout")
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, int64(3), NewPagination(1, 10, 21).TotalPages)
	assert.Equal(t, int64(0), NewPagination(1, 10, 0).TotalPages)
}
