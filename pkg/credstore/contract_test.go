package credstore_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/worklane/pkg/credstore"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behaviour every backend shares.
func runContract(t *testing.T, newStore func(t *testing.T) credstore.Store) {
	t.Helper()

	t.Run("empty store reports absent", func(t *testing.T) {
		s := newStore(t)
		for _, slot := range credstore.Slots {
			_, ok := s.Get(context.Background(), slot)
			require.False(t, ok, slot)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Set(ctx, credstore.SlotAccess, "A1"))
		require.NoError(t, s.Set(ctx, credstore.SlotRefresh, "R1"))

		v, ok := s.Get(ctx, credstore.SlotAccess)
		require.True(t, ok)
		require.Equal(t, "A1", v)

		v, ok = s.Get(ctx, credstore.SlotRefresh)
		require.True(t, ok)
		require.Equal(t, "R1", v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Set(ctx, credstore.SlotAccess, "A1"))
		require.NoError(t, s.Set(ctx, credstore.SlotAccess, "A2"))

		v, _ := s.Get(ctx, credstore.SlotAccess)
		require.Equal(t, "A2", v)
	})

	t.Run("clear removes both slots", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Set(ctx, credstore.SlotAccess, "A1"))
		require.NoError(t, s.Set(ctx, credstore.SlotRefresh, "R1"))
		require.NoError(t, s.ClearAll(ctx))

		for _, slot := range credstore.Slots {
			_, ok := s.Get(ctx, slot)
			require.False(t, ok, slot)
		}
	})

	t.Run("clear on empty store", func(t *testing.T) {
		require.NoError(t, newStore(t).ClearAll(context.Background()))
	})

	t.Run("unknown slot rejected", func(t *testing.T) {
		err := newStore(t).Set(context.Background(), credstore.Slot("id_token"), "x")
		require.ErrorIs(t, err, credstore.ErrUnknownSlot)
	})
}
