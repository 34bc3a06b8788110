package guard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakash/content-server/apperror"
)

func TestGuardAdmitsWithinLimit(t *testing.T) {
	g := New(100, 10)

	called := false
	err := g.Call("create-post", func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestGuardPropagatesInnerError(t *testing.T) {
	g := New(100, 10)

	inner := errors.New("boom")
	err := g.Call("create-post", func() error { return inner })
	assert.ErrorIs(t, err, inner)
}

func TestGuardRejectsWithoutExecuting(t *testing.T) {
	g := New(0, 1)

	require.NoError(t, g.Call("create-post", func() error { return nil }))

	called := false
	err := g.Call("create-post", func() error {
		called = true
		return nil
	})

	var overloaded *apperror.OverloadedError
	require.True(t, errors.As(err, &overloaded))
	assert.Equal(t, "create-post", overloaded.Op)
	assert.False(t, called)
}
