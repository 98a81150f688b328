package credstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/worklane/pkg/credstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestDialRedis_BadURL(t *testing.T) {
	t.Parallel()

	_, err := credstore.DialRedis(context.Background(), "not a url")
	require.Error(t, err)
}

func TestRedisStore_UnreachableReadsAsAbsent(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	s := credstore.NewRedisStore(client, "")

	_, ok := s.Get(context.Background(), credstore.SlotAccess)
	require.False(t, ok)
	require.Error(t, s.Set(context.Background(), credstore.SlotAccess, "A1"))
	require.ErrorIs(t, s.Set(context.Background(), credstore.Slot("nope"), "A1"), credstore.ErrUnknownSlot)
}
