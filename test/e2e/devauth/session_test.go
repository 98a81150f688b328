//go:build e2e

package devauth_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/worklane/pkg/credstore"
	"github.com/aussiebroadwan/worklane/pkg/worklane"
	"github.com/stretchr/testify/require"
)

// TestExpiredAccessTokenIsRefreshed signs in with a short access lifetime,
// waits for it to lapse and checks the next call refreshes transparently.
func TestExpiredAccessTokenIsRefreshed(t *testing.T) {
	baseURL := setupServer(t, map[string]string{"WORKLANE_ACCESS_TTL": "2s"})
	ctx := context.Background()

	client, store := signedInClient(t, baseURL, "alice")
	before, _ := store.Get(ctx, credstore.SlotAccess)

	time.Sleep(3 * time.Second)

	_, err := client.Dashboard(ctx)
	require.NoError(t, err)

	after, ok := store.Get(ctx, credstore.SlotAccess)
	require.True(t, ok)
	require.NotEqual(t, before, after)
}

// TestBootstrapAfterRestartOfClient simulates a new application load sharing
// the same durable store.
func TestBootstrapAfterRestartOfClient(t *testing.T) {
	baseURL := setupServer(t, nil)
	ctx := context.Background()

	_, store := signedInClient(t, baseURL, "bob")

	fresh := worklane.New(baseURL, store)
	gate := worklane.NewSessionGate(fresh)
	require.True(t, gate.Check(ctx).Authenticated())

	require.NoError(t, fresh.Logout(ctx))
	require.False(t, worklane.NewSessionGate(fresh).Check(ctx).Authenticated())
}
