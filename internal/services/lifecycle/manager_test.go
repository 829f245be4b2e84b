package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManager_ShutdownRunsHooksInReverseOrder(t *testing.T) {
	m := New(0, nil)

	var order []string
	m.Register("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	m.Register("second", func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, m.Shutdown(context.Background()))
	require.Equal(t, []string{"second", "first"}, order)
}

func TestManager_ShutdownJoinsErrors(t *testing.T) {
	m := New(0, nil)

	failure := errors.New("port still open")
	m.Register("ok", func(ctx context.Context) error { return nil })
	m.Register("broken", func(ctx context.Context) error { return failure })

	err := m.Shutdown(context.Background())
	require.ErrorIs(t, err, failure)
}

func TestManager_ShutdownIsIdempotent(t *testing.T) {
	m := New(0, nil)

	calls := 0
	m.Register("once", func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, m.Shutdown(context.Background()))
	require.NoError(t, m.Shutdown(context.Background()))
	require.Equal(t, 1, calls)
}

func TestManager_RegisterIgnoresNil(t *testing.T) {
	m := New(0, nil)
	m.Register("nil", nil)
	require.Empty(t, m.closers)
}
