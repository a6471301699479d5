package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-manager/internal/config"
	"github.com/iliyamo/task-manager/internal/database"
	"github.com/iliyamo/task-manager/internal/utils"
)

func TestJWTAuth(t *testing.T) {
	e := echo.New()
	h := JWTAuth("secret")(func(c echo.Context) error {
		if id, ok := UserID(c); !ok || id != 7 {
			t.Fatalf("user id = %d, %v", id, ok)
		}
		return c.NoContent(http.StatusOK)
	})

	tok, err := utils.NewAccessToken("secret", 7, "alice", 5)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Token " + tok.Token, http.StatusUnauthorized},
		{"Bearer garbage", http.StatusUnauthorized},
		{"Bearer " + tok.Token, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		if err := h(e.NewContext(req, rec)); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != tc.want {
			t.Fatalf("header %q: status = %d, want %d", tc.header, rec.Code, tc.want)
		}
	}
}

func TestSessionReleasedAfterRequest(t *testing.T) {
	ctx := context.Background()
	store, err := database.Open(ctx, "sqlite:///"+filepath.Join(t.TempDir(), "mw.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	e := echo.New()
	var seen *database.Session
	h := Session(store)(func(c echo.Context) error {
		seen = SessionFrom(c)
		if seen == nil {
			t.Fatal("no session on context")
		}
		return echo.NewHTTPError(http.StatusTeapot)
	})
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		_ = h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec))
	}
	// the sqlite pool holds a single connection, so a leak would show here
	if got := store.Stats().InUse; got != 0 {
		t.Fatalf("connections in use = %d, want 0", got)
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/tasks", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/tasks")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}
	if got, want := buildRateKey(cfg, c), "rl:ip:10.0.0.1:user:anon:route:GET /v1/tasks"; got != want {
		t.Fatalf("key = %q, want %q", got, want)
	}
	c.Set(userIDKey, uint64(9))
	cfg.KeyStrategy = "user"
	if got, want := buildRateKey(cfg, c), "rl:user:9"; got != want {
		t.Fatalf("key = %q, want %q", got, want)
	}
}

func TestTokenBucketDisabledPassesThrough(t *testing.T) {
	e := echo.New()
	called := false
	h := NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil)(func(c echo.Context) error {
		called = true
		return nil
	})
	_ = h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()))
	if !called {
		t.Fatal("next handler not called")
	}
}

func TestParseDecision(t *testing.T) {
	d, ok := parseDecision([]interface{}{int64(0), int64(0), int64(1500)})
	if !ok || d.allowed || d.retryMs != 1500 {
		t.Fatalf("decision = %+v ok=%v", d, ok)
	}
	if _, ok := parseDecision("nope"); ok {
		t.Fatal("accepted malformed result")
	}
}
