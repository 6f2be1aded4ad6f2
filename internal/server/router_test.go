package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/userhub/internal/auth"
	"github.com/iudanet/userhub/internal/metrics"
	"github.com/iudanet/userhub/internal/server/storage/sqlite"
	"github.com/iudanet/userhub/internal/token"
	"github.com/iudanet/userhub/pkg/api"
)

// setupTestServer собирает полный стек поверх in-memory SQLite
func setupTestServer(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	codec := token.NewCodec("test-secret", 5*time.Minute, 365*24*time.Hour)
	authService := auth.NewService(logger, store, store, codec)
	collector := metrics.NewCollector(prometheus.NewRegistry())

	return NewRouter(&RouterDeps{
		Logger:   logger,
		Codec:    codec,
		Users:    store,
		Auth:     authService,
		Profiles: store,
		Metrics:  collector,
		PageSize: 15,
	})
}

func doJSON(t *testing.T, handler http.Handler, method, target, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, handler http.Handler, username, email, password string) {
	t.Helper()

	w := doJSON(t, handler, http.MethodPost, "/user/register", "", api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func login(t *testing.T, handler http.Handler, username, password string) api.TokenResponse {
	t.Helper()

	w := doJSON(t, handler, http.MethodPost, "/user/login", "", api.LoginRequest{
		Username: username,
		Password: password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestRouter_AuthFlow(t *testing.T) {
	handler := setupTestServer(t)

	register(t, handler, "testuser1", "testemail@google.com", "password1234")

	t.Run("login returns both tokens", func(t *testing.T) {
		pair := login(t, handler, "testuser1", "password1234")
		assert.NotEmpty(t, pair.Access)
		assert.NotEmpty(t, pair.Refresh)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodPost, "/user/login", "", api.LoginRequest{
			Username: "testuser1",
			Password: "wrong-password",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp api.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Invalid username or password", resp.Error)
	})

	t.Run("refresh rotates both tokens", func(t *testing.T) {
		pair := login(t, handler, "testuser1", "password1234")

		w := doJSON(t, handler, http.MethodPost, "/user/refresh", "", api.RefreshRequest{Refresh: pair.Refresh})
		require.Equal(t, http.StatusOK, w.Code)

		var rotated api.TokenResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&rotated))
		assert.NotEmpty(t, rotated.Access)
		assert.NotEqual(t, pair.Refresh, rotated.Refresh)

		// Старый refresh token после ротации вытеснен
		w = doJSON(t, handler, http.MethodPost, "/user/refresh", "", api.RefreshRequest{Refresh: pair.Refresh})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var errResp api.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
		assert.Equal(t, "refresh token not found", errResp.Error)
	})

	t.Run("new login supersedes previous session", func(t *testing.T) {
		first := login(t, handler, "testuser1", "password1234")
		login(t, handler, "testuser1", "password1234")

		w := doJSON(t, handler, http.MethodPost, "/user/refresh", "", api.RefreshRequest{Refresh: first.Refresh})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("register with invalid fields", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodPost, "/user/register", "", api.RegisterRequest{
			Username: "x",
			Email:    "not-an-email",
			Password: "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp api.ValidationErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Contains(t, resp.Errors, "username")
		assert.Contains(t, resp.Errors, "email")
		assert.Contains(t, resp.Errors, "password")
	})
}

func TestRouter_ProfileDirectory(t *testing.T) {
	handler := setupTestServer(t)

	// Три пользователя с профилями, как в канонической фикстуре каталога
	register(t, handler, "test_user2", "testemail3@google.co.kr", "password1234")
	register(t, handler, "tester", "testemail4@google.co.kr", "tester1234")
	register(t, handler, "vasman", "testemail5@google.co.kr", "vasman12345")

	requester := login(t, handler, "test_user2", "password1234")

	createProfile := func(t *testing.T, bearer, firstName, lastName string) {
		t.Helper()
		w := doJSON(t, handler, http.MethodPost, "/user/profile", bearer, api.ProfileRequest{
			FirstName: firstName,
			LastName:  lastName,
			Caption:   "it's all about testing",
			About:     "I'm a developer",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	createProfile(t, requester.Access, "Adefemi", "oseni")
	createProfile(t, login(t, handler, "tester", "tester1234").Access, "Vester", "Mango")
	createProfile(t, login(t, handler, "vasman", "vasman12345").Access, "Adeyemi", "Boseman")

	list := func(t *testing.T, keyword string) api.ProfileListResponse {
		t.Helper()
		w := doJSON(t, handler, http.MethodGet, "/user/profile?keyword="+keyword, requester.Access, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.ProfileListResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		return resp
	}

	t.Run("two-term keyword matching only own profile yields nothing", func(t *testing.T) {
		resp := list(t, "adefemi+oseni")
		assert.Equal(t, 0, resp.Count)
		assert.Empty(t, resp.Results)
	})

	t.Run("substring keyword matches the unrelated profile", func(t *testing.T) {
		resp := list(t, "ade")
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "vasman", resp.Results[0].User.Username)
	})

	t.Run("keyword matching first name", func(t *testing.T) {
		resp := list(t, "vester")
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "tester", resp.Results[0].User.Username)
	})

	t.Run("listing requires access token", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodGet, "/user/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRouter_Infra(t *testing.T) {
	handler := setupTestServer(t)

	t.Run("healthz", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodGet, "/healthz", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
	})

	t.Run("metrics reflect handled requests", func(t *testing.T) {
		// Прогреваем счетчик хотя бы одним запросом
		doJSON(t, handler, http.MethodGet, "/healthz", "", nil)

		w := doJSON(t, handler, http.MethodGet, "/metrics", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "userhub_http_requests_total")
	})
}
