// internal/common/userapi/client_test.go
package userapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *MemoryTokenStore) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := NewMemoryTokenStore()
	return NewClient(srv.URL, tokens, 5*time.Second), tokens
}

func TestSignIn_StoresToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/sign_in", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "amy@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-123",
			"user":  map[string]interface{}{"id": 7, "email": "amy@example.com"},
		})
	})

	client, tokens := newTestClient(t, handler)
	ctx := context.Background()

	resp, err := client.SignIn(ctx, "amy@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, 7, resp.User.ID)

	stored, err := tokens.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", stored)
}

func TestSignIn_OverwritesPreviousToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"token": "tok-new"})
	})

	client, tokens := newTestClient(t, handler)
	ctx := context.Background()
	require.NoError(t, tokens.SetToken(ctx, "tok-old"))

	_, err := client.SignIn(ctx, "amy@example.com", "hunter2")
	require.NoError(t, err)

	stored, _ := tokens.Token(ctx)
	assert.Equal(t, "tok-new", stored)
}

func TestGetCurrentUser_NoToken_NoNetworkCall(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	client, _ := newTestClient(t, handler)

	user, err := client.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestGetCurrentUser_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/me", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{"id": 7, "email": "amy@example.com", "admin": true},
		})
	})

	client, tokens := newTestClient(t, handler)
	ctx := context.Background()
	require.NoError(t, tokens.SetToken(ctx, "tok-123"))

	user, err := client.GetCurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 7, user.ID)
	assert.True(t, user.Admin)
}

func TestGetCurrentUser_401ClearsToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
	})

	client, tokens := newTestClient(t, handler)
	ctx := context.Background()
	require.NoError(t, tokens.SetToken(ctx, "tok-stale"))

	user, err := client.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	stored, _ := tokens.Token(ctx)
	assert.Empty(t, stored)
}

func TestGetCurrentUser_NetworkFailureClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // all requests now fail to connect

	tokens := NewMemoryTokenStore()
	client := NewClient(srv.URL, tokens, time.Second)
	ctx := context.Background()
	require.NoError(t, tokens.SetToken(ctx, "tok-123"))

	user, err := client.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	stored, _ := tokens.Token(ctx)
	assert.Empty(t, stored)
}

func TestGetUsers_AttachesBearerToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/users", r.URL.Path)
		require.Equal(t, "Bearer tok-admin", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"users": []map[string]interface{}{
				{"id": 1, "email": "a@example.com"},
				{"id": 2, "email": "b@example.com"},
			},
		})
	})

	client, tokens := newTestClient(t, handler)
	ctx := context.Background()
	require.NoError(t, tokens.SetToken(ctx, "tok-admin"))

	users, err := client.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
		want string
	}{
		{
			name: "error field wins",
			body: map[string]interface{}{
				"error":   "access denied",
				"message": "secondary",
				"errors":  []string{"a", "b"},
			},
			want: "access denied",
		},
		{
			name: "message when no error",
			body: map[string]interface{}{
				"message": "not found",
				"errors":  []string{"a"},
			},
			want: "not found",
		},
		{
			name: "errors array joined",
			body: map[string]interface{}{
				"errors": []string{"email taken", "password too short"},
			},
			want: "email taken, password too short",
		},
		{
			name: "empty body falls back",
			body: map[string]interface{}{},
			want: "Request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(tt.body)
			})

			client, _ := newTestClient(t, handler)

			_, err := client.GetUsers(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		})
	}
}

func TestGetAdminDashboard(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/admin/dashboard", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Welcome to the admin dashboard",
			"user_id": 7,
		})
	})

	client, tokens := newTestClient(t, handler)
	ctx := context.Background()
	require.NoError(t, tokens.SetToken(ctx, "tok-admin"))

	dash, err := client.GetAdminDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, dash.UserID)
}
