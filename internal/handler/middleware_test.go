package handler_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/inkwell/internal/handler"
	"github.com/msomdec/inkwell/internal/repository/sqlite"
	"github.com/msomdec/inkwell/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type testServices struct {
	auth  *service.AuthService
	users *service.UserService
	posts *service.PostService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	hasher := service.NewBcryptHasher(4)
	tokens := service.NewTokenService([]byte(testJWTSecret), time.Hour)
	return testServices{
		auth:  service.NewAuthService(db.Users(), hasher, tokens),
		users: service.NewUserService(db.Users(), hasher),
		posts: service.NewPostService(db.Posts()),
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svcs := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, svcs.auth, svcs.users, svcs.posts)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func loginToken(t *testing.T, auth *service.AuthService, email, password string) string {
	t.Helper()
	ctx := context.Background()
	if _, err := auth.Register(ctx, email, password); err != nil {
		t.Fatalf("Register: %v", err)
	}
	session, err := auth.Login(ctx, email, password)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return session.AccessToken
}

func TestRequireAuth_ValidToken(t *testing.T) {
	svcs := newTestServices(t)
	token := loginToken(t, svcs.auth, "valid@example.com", "password123")

	var gotEmail string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := handler.IdentityFromContext(r.Context()); id != nil {
			gotEmail = id.Email
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.RequireAuth(svcs.auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotEmail != "valid@example.com" {
		t.Fatalf("expected identity valid@example.com, got %q", gotEmail)
	}
}

func TestRequireAuth_SchemeIsCaseInsensitive(t *testing.T) {
	svcs := newTestServices(t)
	token := loginToken(t, svcs.auth, "case@example.com", "password123")

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer "+token)
	w := httptest.NewRecorder()

	handler.RequireAuth(svcs.auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireAuth_Rejects(t *testing.T) {
	svcs := newTestServices(t)
	token := loginToken(t, svcs.auth, "reject@example.com", "password123")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + token},
		{"no token", "Bearer "},
		{"bare token", token},
		{"extra parts", "Bearer " + token + " extra"},
		{"garbage token", "Bearer not.a.jwt"},
		{"tampered token", "Bearer " + token[:len(token)-2] + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("inner handler should not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.RequireAuth(svcs.auth, inner).ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handler.RequestIDFromContext(r.Context())
	})

	w := httptest.NewRecorder()
	handler.RequestID(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected a generated request id in context")
	}
	if got := w.Header().Get(handler.RequestIDHeader); got != seen {
		t.Fatalf("expected response header %q, got %q", seen, got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(handler.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	handler.RequestID(inner).ServeHTTP(w, req)

	if seen != "abc-123" {
		t.Fatalf("expected incoming request id to be kept, got %q", seen)
	}
}

func TestLogging_LevelFollowsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler.Logging(logger, inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	out := buf.String()
	if !strings.Contains(out, "level=WARN") {
		t.Fatalf("expected WARN level for 404, got %q", out)
	}
	if !strings.Contains(out, "http.status=404") {
		t.Fatalf("expected status in log line, got %q", out)
	}
}

func TestRecover_ConvertsPanicTo500(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	handler.Recover(logger, inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(buf.String(), "request panic") {
		t.Fatalf("expected panic to be logged, got %q", buf.String())
	}
}

func TestWrap_SetsSecurityHeaders(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	handler.Wrap(logger, inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
	if w.Header().Get(handler.RequestIDHeader) == "" {
		t.Fatal("expected request id header")
	}
}
