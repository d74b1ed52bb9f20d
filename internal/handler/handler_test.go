package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avc-dev/shortly/internal/cache"
	"github.com/avc-dev/shortly/internal/config"
	"github.com/avc-dev/shortly/internal/middleware"
	"github.com/avc-dev/shortly/internal/model"
	"github.com/avc-dev/shortly/internal/service"
	"github.com/avc-dev/shortly/internal/store/memory"
	"github.com/avc-dev/shortly/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router http.Handler
	store  *memory.Store
}

// newTestServer собирает полный HTTP-стек поверх хранилища в памяти.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := memory.New()
	auth := service.NewAuthService(s, "test-secret")
	gen := service.NewCodeGenerator(s)
	u := usecase.New(s, cache.NewNoop(), gen, auth, config.NewDefaultConfig(), zap.NewNop())
	h := New(u, zap.NewNop())

	r := chi.NewRouter()
	r.Use(middleware.Auth)

	r.Post("/api/shorten", h.CreateURL)
	r.Get("/api/expand/{code}", h.ExpandURL)
	r.Get("/api/stats/{code}", h.Stats)
	r.Delete("/api/url/{code}", h.DeleteURL)
	r.Post("/api/user/create", h.CreateUser)
	r.Get("/api/user/info", h.UserInfo)
	r.Get("/api/user/urls", h.UserURLs)
	r.Get("/ping", h.Ping)
	r.Get("/{code}", h.GetURL)

	return &testServer{router: r, store: s}
}

func (s *testServer) do(t *testing.T, method, target, apiKey string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) shorten(t *testing.T, apiKey string, req ShortenRequest) ShortenResponse {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/shorten", apiKey, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp ShortenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func (s *testServer) createUser(t *testing.T, email string) CreateUserResponse {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/user/create", "", CreateUserRequest{Email: email})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp CreateUserResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestCreateURL(t *testing.T) {
	t.Run("anonymous create", func(t *testing.T) {
		s := newTestServer(t)

		resp := s.shorten(t, "", ShortenRequest{URL: "https://example.com/page"})

		assert.Len(t, resp.Code, 7)
		assert.Equal(t, "https://example.com/page", resp.OriginalURL)
		assert.Equal(t, fmt.Sprintf("http://localhost:8080/%s", resp.Code), resp.ShortURL)
		assert.False(t, resp.IsCustom)
		assert.Nil(t, resp.ExpiresAt)
	})

	t.Run("custom code with expiry", func(t *testing.T) {
		s := newTestServer(t)

		resp := s.shorten(t, "", ShortenRequest{
			URL:           "https://example.com",
			CustomCode:    "my-link",
			ExpiresInDays: 30,
		})

		assert.Equal(t, "my-link", resp.Code)
		assert.True(t, resp.IsCustom)
		require.NotNil(t, resp.ExpiresAt)
	})

	t.Run("rejected inputs", func(t *testing.T) {
		s := newTestServer(t)
		s.shorten(t, "", ShortenRequest{URL: "https://example.com", CustomCode: "taken"})

		tests := []struct {
			name   string
			req    ShortenRequest
			status int
		}{
			{"invalid url", ShortenRequest{URL: "not-a-url"}, http.StatusBadRequest},
			{"blocked host", ShortenRequest{URL: "http://localhost/x"}, http.StatusBadRequest},
			{"bad custom code", ShortenRequest{URL: "https://example.com", CustomCode: "a!"}, http.StatusBadRequest},
			{"taken custom code", ShortenRequest{URL: "https://example.com", CustomCode: "taken"}, http.StatusConflict},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := s.do(t, http.MethodPost, "/api/shorten", "", tt.req)

				assert.Equal(t, tt.status, w.Code)
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

				var body errorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.NotEmpty(t, body.Error)
			})
		}
	})

	t.Run("malformed JSON body", func(t *testing.T) {
		s := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/shorten", bytes.NewBufferString(`{"url":`))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown api key", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPost, "/api/shorten", "bogus-key", ShortenRequest{URL: "https://example.com"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetURL(t *testing.T) {
	t.Run("redirect counts clicks", func(t *testing.T) {
		s := newTestServer(t)
		created := s.shorten(t, "", ShortenRequest{URL: "https://example.com/landing"})

		// Первый переход
		w := s.do(t, http.MethodGet, "/"+created.Code, "", nil)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://example.com/landing", w.Header().Get("Location"))

		// Второй переход
		w = s.do(t, http.MethodGet, "/"+created.Code, "", nil)
		require.Equal(t, http.StatusFound, w.Code)

		w = s.do(t, http.MethodGet, "/api/stats/"+created.Code, "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var stats StatsResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
		assert.Equal(t, int64(2), stats.TotalClicks)
	})

	t.Run("unknown code", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodGet, "/zzzzzzz", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("expired link gone", func(t *testing.T) {
		s := newTestServer(t)

		past := time.Now().Add(-time.Minute)
		link := &model.ShortLink{OriginalURL: "https://example.com", ShortCode: "expired1", ExpiresAt: &past}
		require.NoError(t, s.store.CreateLink(context.Background(), link))

		w := s.do(t, http.MethodGet, "/expired1", "", nil)

		assert.Equal(t, http.StatusGone, w.Code)
	})
}

func TestExpandURL(t *testing.T) {
	s := newTestServer(t)
	created := s.shorten(t, "", ShortenRequest{URL: "https://example.com/doc"})

	w := s.do(t, http.MethodGet, "/api/expand/"+created.Code, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExpandResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "https://example.com/doc", resp.OriginalURL)

	// Просмотр не считается переходом
	w = s.do(t, http.MethodGet, "/api/stats/"+created.Code, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats StatsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, int64(0), stats.TotalClicks)
}

func TestStats_Access(t *testing.T) {
	s := newTestServer(t)
	owner := s.createUser(t, "owner@example.com")
	stranger := s.createUser(t, "stranger@example.com")

	created := s.shorten(t, owner.APIKey, ShortenRequest{URL: "https://example.com"})

	tests := []struct {
		name   string
		apiKey string
		status int
	}{
		{"owner allowed", owner.APIKey, http.StatusOK},
		{"stranger forbidden", stranger.APIKey, http.StatusForbidden},
		{"anonymous forbidden", "", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/stats/"+created.Code, tt.apiKey, nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestDeleteURL(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		s := newTestServer(t)
		owner := s.createUser(t, "")
		created := s.shorten(t, owner.APIKey, ShortenRequest{URL: "https://example.com"})

		w := s.do(t, http.MethodDelete, "/api/url/"+created.Code, owner.APIKey, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = s.do(t, http.MethodGet, "/"+created.Code, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		s := newTestServer(t)
		created := s.shorten(t, "", ShortenRequest{URL: "https://example.com"})

		w := s.do(t, http.MethodDelete, "/api/url/"+created.Code, "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("foreign link looks absent", func(t *testing.T) {
		s := newTestServer(t)
		owner := s.createUser(t, "")
		stranger := s.createUser(t, "")
		created := s.shorten(t, owner.APIKey, ShortenRequest{URL: "https://example.com"})

		w := s.do(t, http.MethodDelete, "/api/url/"+created.Code, stranger.APIKey, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserEndpoints(t *testing.T) {
	t.Run("create user and inspect account", func(t *testing.T) {
		s := newTestServer(t)
		account := s.createUser(t, "me@example.com")

		assert.Len(t, account.APIKey, 32)
		assert.NotEmpty(t, account.Token)

		s.shorten(t, account.APIKey, ShortenRequest{URL: "https://example.com/a"})
		s.shorten(t, account.APIKey, ShortenRequest{URL: "https://example.com/b"})

		w := s.do(t, http.MethodGet, "/api/user/info", account.APIKey, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var info UserInfoResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&info))
		assert.Equal(t, int64(2), info.TotalURLs)
		assert.Equal(t, int64(0), info.TotalClicks)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		s := newTestServer(t)
		s.createUser(t, "dup@example.com")

		w := s.do(t, http.MethodPost, "/api/user/create", "", CreateUserRequest{Email: "dup@example.com"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("bearer token authenticates", func(t *testing.T) {
		s := newTestServer(t)
		account := s.createUser(t, "")

		req := httptest.NewRequest(http.MethodGet, "/api/user/info", nil)
		req.Header.Set("Authorization", "Bearer "+account.Token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("urls listed with paging", func(t *testing.T) {
		s := newTestServer(t)
		account := s.createUser(t, "")

		for i := 0; i < 3; i++ {
			s.shorten(t, account.APIKey, ShortenRequest{URL: fmt.Sprintf("https://example.com/%d", i)})
		}

		w := s.do(t, http.MethodGet, "/api/user/urls?limit=2", account.APIKey, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var list UserURLsResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
		assert.Equal(t, int64(3), list.Total)
		assert.Len(t, list.URLs, 2)
		assert.Equal(t, "https://example.com/2", list.URLs[0].OriginalURL)
	})

	t.Run("listing requires credential", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodGet, "/api/user/urls", "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPing(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/ping", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
