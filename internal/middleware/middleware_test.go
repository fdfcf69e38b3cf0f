package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mindsync/wellness/internal/ctxkeys"
	"github.com/mindsync/wellness/internal/model"
	"github.com/mindsync/wellness/internal/repository"
	"github.com/mindsync/wellness/internal/service"
)

type stubUserRepository struct {
	users map[string]*model.User
	err   error
}

func (r *stubUserRepository) Create(ctx context.Context, user *model.User) error {
	return errors.New("not implemented")
}

func (r *stubUserRepository) ByID(ctx context.Context, id string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, repository.ErrUserNotFound
}

func (r *stubUserRepository) UpdateProfile(ctx context.Context, id string, changes model.ProfileChanges) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func newGate(repo repository.UserRepository, secret string) (func(http.Handler) http.Handler, *service.AuthService) {
	auth := service.NewAuthService(repo, service.NewEmailService("", "", "", ""), secret)
	return Authenticate(auth, service.NewUserService(repo)), auth
}

func TestAuthenticate(t *testing.T) {
	repo := &stubUserRepository{users: map[string]*model.User{
		"u1": {ID: "u1", Name: "Ann", Email: "a@x.com", PasswordHash: "hash"},
	}}
	gate, auth := newGate(repo, "test-secret")

	valid, err := auth.IssueToken("u1")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	orphan, err := auth.IssueToken("deleted")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	var seen *model.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.User(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := gate(next)

	tests := []struct {
		name    string
		header  string
		cookie  string
		status  int
		message string
	}{
		{"bearer header", "Bearer " + valid, "", http.StatusNoContent, ""},
		{"cookie fallback", "", valid, http.StatusNoContent, ""},
		{"header wins over cookie", "Bearer garbage", valid, http.StatusUnauthorized, "Invalid token, please log in again"},
		{"no token", "", "", http.StatusUnauthorized, "Not authorized, token missing"},
		{"non bearer scheme", "Basic abc", "", http.StatusUnauthorized, "Not authorized, token missing"},
		{"malformed", "Bearer garbage", "", http.StatusUnauthorized, "Invalid token, please log in again"},
		{"unknown user", "Bearer " + orphan, "", http.StatusUnauthorized, "Not authorized, user not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest("GET", "/api/users/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusNoContent {
				if seen == nil || seen.ID != "u1" {
					t.Fatalf("expected user in context, got %+v", seen)
				}
				if seen.PasswordHash != "" {
					t.Fatal("context user must not carry the password hash")
				}
				return
			}

			if seen != nil {
				t.Fatal("rejected request reached the handler")
			}
			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success || body.Message != tt.message {
				t.Fatalf("body = %+v, want message %q", body, tt.message)
			}
		})
	}
}

func TestAuthenticateStoreFailure(t *testing.T) {
	repo := &stubUserRepository{err: errors.New("connection refused")}
	gate, auth := newGate(repo, "test-secret")

	token, err := auth.IssueToken("u1")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate(http.NotFoundHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestAuthenticateMissingSecret(t *testing.T) {
	gate, _ := newGate(&stubUserRepository{}, "")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer something")
	rec := httptest.NewRecorder()
	gate(http.NotFoundHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestRecover(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), WithRequestID, Recover)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestWithRequestID(t *testing.T) {
	var got string
	h := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.RequestID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got != "abc-123" || rec.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("request id = %q, header %q", got, rec.Header().Get(RequestIDHeader))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if got == "" || got == "abc-123" {
		t.Fatalf("expected a generated id, got %q", got)
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), mw("a"), mw("b"), mw("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("order = %v", order)
	}
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	}), WithRequestID, RequestLogging)

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line struct {
		Level     string `json:"level"`
		Status    int    `json:"status"`
		Bytes     int    `json:"bytes"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if line.Level != "WARN" || line.Status != 503 || line.Bytes != 4 || line.RequestID != "req-1" {
		t.Fatalf("log line = %+v", line)
	}

	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/uploads/avatars/a.png", nil))
	if buf.Len() != 0 {
		t.Fatalf("avatar fetch was logged: %s", buf.String())
	}
}
