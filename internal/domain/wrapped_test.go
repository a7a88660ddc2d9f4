package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainWrapper overrides nothing, so every operation must pass through.
type plainWrapper struct {
	Wrapped
}

func TestWrappedPassThrough(t *testing.T) {
	delegate := newFakeObserver()
	delegate.includes = map[string]struct{}{"only": {}}
	wrapper := plainWrapper{Wrapped: NewWrapped(delegate)}

	assert.Equal(t, delegate.owner, wrapper.Context())
	assert.Equal(t, delegate.listener, wrapper.Listener())
	assert.Equal(t, delegate.includes, wrapper.Includes())

	project, err := wrapper.Observe("only")
	require.NoError(t, err)
	assert.IsType(t, &fakeProject{}, project)

	_, err = wrapper.Observe("only")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateProject)

	code, ok := CodeFrom(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidArgument, code)
}

func TestIncludeEverythingMeansNoRestriction(t *testing.T) {
	assert.Nil(t, IncludeEverything{}.Includes())
}

func TestWrappedDelegateAccessor(t *testing.T) {
	delegate := newFakeObserver()
	wrapper := NewWrapped(delegate)
	assert.Same(t, delegate, wrapper.Delegate())
}
