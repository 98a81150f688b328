package worklane_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/worklane/pkg/credstore"
	"github.com/aussiebroadwan/worklane/pkg/worklane"
	"github.com/stretchr/testify/require"
)

func TestRefresh_NoRefreshTokenMakesNoCall(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	store := newStore(t, "stale-access", "")
	c := worklane.New(b.srv.URL, store)

	_, err := c.Refresh(context.Background())
	require.ErrorIs(t, err, worklane.ErrNoRefreshToken)
	require.Zero(t, b.refreshCalls.Load())
	requireEmpty(t, store)
}

func TestRefresh_SuccessStoresAccessToken(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	b.setRefresh(refreshIssuing("A2", ""))
	store := newStore(t, "A1", "R1")
	c := worklane.New(b.srv.URL, store)

	got, err := c.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "A2", got)
	requireSlot(t, store, credstore.SlotAccess, "A2")
	requireSlot(t, store, credstore.SlotRefresh, "R1")
}

func TestRefresh_SendsRefreshTokenInBody(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	var sawBody refreshBody
	var sawAuth string
	b.setRefresh(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		_ = decode(r, &sawBody)
		writeJSON(w, http.StatusOK, map[string]string{"access": "A2"})
	})
	c := worklane.New(b.srv.URL, newStore(t, "A1", "R1"))

	_, err := c.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "R1", sawBody.Refresh)
	require.Empty(t, sawAuth, "refresh token must never travel as a bearer header")
}

func TestRefresh_StoresRotatedRefreshToken(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	b.setRefresh(refreshIssuing("A2", "R2"))
	store := newStore(t, "A1", "R1")
	c := worklane.New(b.srv.URL, store)

	_, err := c.Refresh(context.Background())
	require.NoError(t, err)
	requireSlot(t, store, credstore.SlotRefresh, "R2")
}

func TestRefresh_FailureClearsStore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "rejected",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{
					"detail": "Token is invalid or expired",
					"code":   "token_not_valid",
				})
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("{not json"))
			},
		},
		{
			name: "empty access",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]string{"access": ""})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newBackend(t)
			b.setRefresh(tt.handler)
			store := newStore(t, "A1", "R1")
			c := worklane.New(b.srv.URL, store)

			got, err := c.Refresh(context.Background())
			require.ErrorIs(t, err, worklane.ErrRefreshFailed)
			require.Empty(t, got)
			require.EqualValues(t, 1, b.refreshCalls.Load())
			requireEmpty(t, store)
		})
	}
}

func TestRefresh_RejectionCarriesAPIError(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	c := worklane.New(b.srv.URL, newStore(t, "A1", "R1"))

	_, err := c.Refresh(context.Background())

	var apiErr *worklane.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "token_not_valid", apiErr.Code)
}

func TestRefresh_TransportFailureClearsStore(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	url := b.srv.URL
	b.srv.Close()

	store := newStore(t, "A1", "R1")
	c := worklane.New(url, store)

	_, err := c.Refresh(context.Background())
	require.ErrorIs(t, err, worklane.ErrRefreshFailed)
	requireEmpty(t, store)
}

func TestRefresh_ConcurrentCallersShareOneExchange(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	b.setRefresh(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(entered) })
		<-release
		writeJSON(w, http.StatusOK, map[string]string{"access": "A2"})
	})
	c := worklane.New(b.srv.URL, newStore(t, "A1", "R1"))

	const callers = 8
	results := make(chan string, callers)
	errs := make(chan error, callers)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tok, err := c.Refresh(context.Background())
		results <- tok
		errs <- err
	}()
	<-entered

	for range callers - 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := c.Refresh(context.Background())
			results <- tok
			errs <- err
		}()
	}

	// Give the followers time to join the in-flight exchange.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	for tok := range results {
		require.Equal(t, "A2", tok)
	}
	require.EqualValues(t, 1, b.refreshCalls.Load())
}

func TestRefresh_CallerCancellationLeavesStore(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	release := make(chan struct{})
	b.setRefresh(func(w http.ResponseWriter, r *http.Request) {
		<-release
		writeJSON(w, http.StatusOK, map[string]string{"access": "A2"})
	})
	t.Cleanup(func() { close(release) })

	store := newStore(t, "A1", "R1")
	c := worklane.New(b.srv.URL, store)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Refresh(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	requireSlot(t, store, credstore.SlotRefresh, "R1")
}
