package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultsToInternal(t *testing.T) {
	err := New("Test.New", "error.internal", nil)
	assert.Equal(t, http.StatusInternalServerError, err.GetCode())
	assert.Equal(t, "error.internal", err.Message())
}

func TestCodeOverride(t *testing.T) {
	err := New("Test.Code", "error.notfound", nil).Code(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, err.GetCode())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsInvalidInput(err))
}

func TestInvalidInput(t *testing.T) {
	err := New("Test.Invalid", "error.invalidargument", nil).Code(http.StatusBadRequest)
	assert.True(t, IsInvalidInput(err))
	assert.False(t, IsNotFound(err))
}

func TestWrapKeepsCode(t *testing.T) {
	inner := New("Test.inner", "error.notfound", nil).Code(http.StatusNotFound)
	outer := Wrap(inner, "Test.outer", "wrapped")
	assert.Equal(t, http.StatusNotFound, outer.GetCode())
	assert.Equal(t, inner, outer.Unwrap())
}

func TestTraceAppends(t *testing.T) {
	err := New("Logic.Create", "error.internal", fmt.Errorf("boom"))
	traced := Trace("Handler.Create", err)
	assert.Contains(t, traced.Error(), "Logic.Create->Handler.Create")
}

func TestTraceWrapsPlainError(t *testing.T) {
	plain := fmt.Errorf("connection refused")
	traced := Trace("Store.Get", plain)
	assert.Equal(t, "connection refused", traced.Message())
}

func TestIsHelpersRejectPlainErrors(t *testing.T) {
	plain := fmt.Errorf("boom")
	assert.False(t, IsNotFound(plain))
	assert.False(t, IsInvalidInput(plain))
}
