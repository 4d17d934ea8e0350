package host

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisposeScope_RunsLIFOOnce(t *testing.T) {
	s := NewDisposeScope()
	var order []int
	s.OnDispose(func() { order = append(order, 1) })
	s.OnDispose(func() { order = append(order, 2) })
	require.False(t, s.Disposed())

	s.Dispose()
	require.Equal(t, []int{2, 1}, order)
	require.True(t, s.Disposed())

	s.Dispose()
	require.Equal(t, []int{2, 1}, order)
}

func TestDisposeScope_RegistrationAfterDisposalRunsImmediately(t *testing.T) {
	s := NewDisposeScope()
	s.Dispose()

	ran := false
	s.OnDispose(func() { ran = true })
	require.True(t, ran)
}
