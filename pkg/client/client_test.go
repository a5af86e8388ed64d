package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clinichq/clinic-backend/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "correct-horse" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "refresh-1", Path: "/", HttpOnly: true})
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-1",
			"user":         map[string]string{"id": "u1", "email": body["email"], "role": "PATIENT"},
		})
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("refreshToken")
		if err != nil || cookie.Value == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "refresh-2", Path: "/", HttpOnly: true})
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-2",
			"user":         map[string]string{"id": "u1", "email": "p@clinic.test", "role": "PATIENT"},
		})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "", Path: "/", MaxAge: -1})
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "u1", "email": "p@clinic.test", "role": "PATIENT"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func recvUser(t *testing.T, ch <-chan *session.User) *session.User {
	t.Helper()
	select {
	case u := <-ch:
		return u
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for session emission")
		return nil
	}
}

func TestClientSessionLifecycle(t *testing.T) {
	srv := authServer(t)
	store := session.NewStore()
	c, err := New(srv.URL, store)
	require.NoError(t, err)

	ch, cancel := store.Subscribe()
	defer cancel()

	ctx := context.Background()

	// Login publishes the user and the jar picks up the refresh cookie.
	require.NoError(t, c.Login(ctx, "p@clinic.test", "correct-horse"))
	u := recvUser(t, ch)
	require.NotNil(t, u)
	assert.Equal(t, "p@clinic.test", u.Email)
	assert.Equal(t, "PATIENT", u.Role)

	// Refresh works off the cookie alone and emits exactly once more.
	require.NoError(t, c.Refresh(ctx))
	u = recvUser(t, ch)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	// The rotated access token is what gets attached to later calls.
	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", me.ID)

	// Logout emits a nil user and drops local state.
	require.NoError(t, c.Logout(ctx))
	assert.Nil(t, recvUser(t, ch))
	assert.Nil(t, store.Current())
}

func TestClientLoginFailure(t *testing.T) {
	srv := authServer(t)
	store := session.NewStore()
	c, err := New(srv.URL, store)
	require.NoError(t, err)

	err = c.Login(context.Background(), "p@clinic.test", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, store.Current())
}

func TestClientRefreshWithoutCookie(t *testing.T) {
	srv := authServer(t)
	store := session.NewStore()
	c, err := New(srv.URL, store)
	require.NoError(t, err)

	err = c.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, store.Current())
}
