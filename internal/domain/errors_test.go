package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHierarchy_Classification(t *testing.T) {
	valErr := newValidation("reject", "talk", "t1", errors.New("not Proposed"))
	assert.True(t, IsValidationError(valErr))
	assert.False(t, IsAuthError(valErr))
	assert.False(t, IsStoreError(valErr))

	authErr := newAuth("attendance", errors.New("unauthorized"))
	assert.True(t, IsAuthError(authErr))
	assert.False(t, IsValidationError(authErr))

	storeErr := newStore("talk", errors.New("connection reset"))
	assert.True(t, IsStoreError(storeErr))

	sessErr := newSession("open", errors.New("dial tcp: refused"))
	assert.True(t, IsSessionError(sessErr))
}

func TestError_UnwrapAndMessage(t *testing.T) {
	cause := errors.New("boom")
	err := newStore("attendance", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "attendance")
	assert.Contains(t, err.Error(), "boom")
}

func TestErrNoConnection_IsSessionError(t *testing.T) {
	assert.True(t, IsSessionError(ErrNoConnection))
}
