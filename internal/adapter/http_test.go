// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/admin-panel/internal/logger"
	"github.com/MKhiriev/admin-panel/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpAPIAdapter {
	t.Helper()

	a, err := NewHTTPAPIAdapter(serverURL, 5*time.Second, logger.Nop())
	require.NoError(t, err)
	return a.(*httpAPIAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: " https://panel.example/ ", want: "https://panel.example"},
		{in: "http://127.0.0.1:9000", want: "http://127.0.0.1:9000"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogin_StoresAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/user/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.LoginRequest{Username: "root", Password: "R00t!pass"}, req)

		writeJSON(t, w, http.StatusOK, models.LoginResponse{AccessToken: "acc", RefreshToken: "ref", UserRole: "admin_master"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), "root", "R00t!pass")

	require.NoError(t, err)
	assert.Equal(t, "ref", got.RefreshToken)
	assert.Equal(t, "acc", a.Token())
}

func TestLogin_Locked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "840")
		writeJSON(t, w, http.StatusUnauthorized, models.MessageResponse{Msg: "account is locked, try again later"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), "root", "R00t!pass")

	require.ErrorIs(t, err, ErrUnauthorized)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 14*time.Minute, apiErr.RetryAfter)
	assert.Equal(t, "account is locked, try again later", apiErr.Msg)
	assert.Empty(t, a.Token())
}

func TestRefresh_ReplacesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/refresh", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.LoginResponse{AccessToken: "acc2", UserRole: "visualizador"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("acc1")

	got, err := a.Refresh(context.Background(), "ref")

	require.NoError(t, err)
	assert.Equal(t, "visualizador", got.UserRole)
	assert.Equal(t, "acc2", a.Token())
}

func TestRegister_SendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusCreated, models.RegisterResponse{Msg: "user created", UserID: 7})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(" acc ")

	got, err := a.Register(context.Background(), models.RegisterRequest{Username: "alice"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
}

func TestRegister_WeakPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, models.MessageResponse{
			Msg:        "password does not meet the policy",
			Violations: []string{"TOO_SHORT", "NO_DIGIT"},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("acc")

	_, err := a.Register(context.Background(), models.RegisterRequest{Username: "alice"})

	require.ErrorIs(t, err, ErrBadRequest)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"TOO_SHORT", "NO_DIGIT"}, apiErr.Violations)
	assert.Contains(t, err.Error(), "TOO_SHORT, NO_DIGIT")
}

func TestAuthedCalls_WithoutToken(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	_, err := a.Register(ctx, models.RegisterRequest{})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.ErrorIs(t, a.ChangePassword(ctx, "a", "b"), ErrNotLoggedIn)
	_, err = a.Profile(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	assert.Zero(t, hits.Load())
}

func TestMapHTTPError_Statuses(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   error
	}{
		{http.StatusBadRequest, `{"msg":"invalid email"}`, ErrBadRequest},
		{http.StatusUnauthorized, `{"msg":"invalid credentials"}`, ErrUnauthorized},
		{http.StatusForbidden, `{"msg":"access denied"}`, ErrForbidden},
		{http.StatusNotFound, "404 page not found", ErrNotFound},
		{http.StatusInternalServerError, "", ErrInternalServerError},
		{http.StatusTeapot, "", ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			a.SetToken("acc")

			_, err := a.Profile(context.Background())
			require.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.NotEmpty(t, apiErr.Msg)
		})
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.HealthResponse{Status: "ok", Version: "1.0.0"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("acc")

	got, err := a.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", got.Status)
}
