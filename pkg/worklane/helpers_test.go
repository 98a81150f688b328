package worklane_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/worklane/pkg/credstore"
	"github.com/aussiebroadwan/worklane/pkg/jwtx"
	"github.com/aussiebroadwan/worklane/pkg/worklane"
	"github.com/stretchr/testify/require"
)

var signer = jwtx.NewHS256([]byte("test-signing-key"), "")

// tokenExpiringAt returns a signed token of the given type with exp set.
func tokenExpiringAt(t *testing.T, tokenType string, exp time.Time) string {
	t.Helper()
	claims := jwtx.NewClaims(tokenType, 1, "", 0, exp)
	tok, err := signer.Sign(claims)
	require.NoError(t, err)
	return tok
}

func validAccess(t *testing.T) string {
	return tokenExpiringAt(t, jwtx.TokenTypeAccess, time.Now().Add(time.Hour))
}

func expiredAccess(t *testing.T) string {
	return tokenExpiringAt(t, jwtx.TokenTypeAccess, time.Now().Add(-time.Hour))
}

// backend is a scripted stand-in for the REST API.
type backend struct {
	t   *testing.T
	srv *httptest.Server

	refreshCalls atomic.Int32
	apiCalls     atomic.Int32

	mu sync.Mutex
	// refresh answers POST /api/token/refresh/.
	refresh http.HandlerFunc
	// api answers every other path.
	api http.HandlerFunc
	// requests records every non-refresh request in arrival order.
	requests []*http.Request
	bodies   []string
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{t: t}
	b.refresh = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "Token is invalid or expired",
			"code":   "token_not_valid",
		})
	}
	b.api = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
	}

	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		refresh, api := b.refresh, b.api
		b.mu.Unlock()

		if r.URL.Path == worklane.PathRefresh {
			b.refreshCalls.Add(1)
			refresh(w, r)
			return
		}

		body, _ := io.ReadAll(r.Body)

		b.mu.Lock()
		b.requests = append(b.requests, r.Clone(context.Background()))
		b.bodies = append(b.bodies, string(body))
		b.mu.Unlock()

		b.apiCalls.Add(1)
		api(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) setRefresh(h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refresh = h
}

func (b *backend) setAPI(h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.api = h
}

func (b *backend) recorded() ([]*http.Request, []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*http.Request(nil), b.requests...), append([]string(nil), b.bodies...)
}

// refreshIssuing answers refresh requests with a new access token, and a
// rotated refresh token when rotated is non-empty.
func refreshIssuing(access, rotated string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{"access": access}
		if rotated != "" {
			body["refresh"] = rotated
		}
		writeJSON(w, http.StatusOK, body)
	}
}

// requireBearer answers 401 unless the request carries want.
func requireBearer(want string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+want {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"detail": "Given token not valid for any token type",
				"code":   "token_not_valid",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
	}
}

type refreshBody struct {
	Refresh string `json:"refresh"`
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func newStore(t *testing.T, access, refresh string) *credstore.MemoryStore {
	t.Helper()
	s := credstore.NewMemoryStore()
	ctx := context.Background()
	if access != "" {
		require.NoError(t, s.Set(ctx, credstore.SlotAccess, access))
	}
	if refresh != "" {
		require.NoError(t, s.Set(ctx, credstore.SlotRefresh, refresh))
	}
	return s
}

func requireEmpty(t *testing.T, s credstore.Store) {
	t.Helper()
	for _, slot := range credstore.Slots {
		_, ok := s.Get(context.Background(), slot)
		require.False(t, ok, "slot %s should be empty", slot)
	}
}

func requireSlot(t *testing.T, s credstore.Store, slot credstore.Slot, want string) {
	t.Helper()
	got, ok := s.Get(context.Background(), slot)
	require.True(t, ok, "slot %s should be set", slot)
	require.Equal(t, want, got)
}
