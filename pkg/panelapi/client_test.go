package panelapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

func newTestClient(baseURL string) API {
	return New(&mockLogger{}, Config{
		BaseURL:        baseURL,
		RequestTimeout: 2 * time.Second,
		RetryCount:     2,
		RetryDelay:     time.Millisecond,
		TokenSource:    func() string { return "session-token" },
	})
}

func TestRegisterToken(t *testing.T) {
	ctx := context.Background()

	t.Run("posts token with auth header", func(t *testing.T) {
		var gotMethod, gotPath, gotAuth, gotToken string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			var body struct {
				Token string `json:"token"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			gotToken = body.Token
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		if err := newTestClient(srv.URL).RegisterToken(ctx, "tok-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodPost || gotPath != "/notifications/register-token" {
			t.Errorf("unexpected request: %s %s", gotMethod, gotPath)
		}
		if gotAuth != "Bearer session-token" {
			t.Errorf("unexpected auth header: %q", gotAuth)
		}
		if gotToken != "tok-1" {
			t.Errorf("unexpected token in body: %q", gotToken)
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		defer srv.Close()

		if err := newTestClient(srv.URL).RegisterToken(ctx, "tok-1"); err == nil {
			t.Error("expected error on 409")
		}
	})

	t.Run("requires a token", func(t *testing.T) {
		if err := newTestClient("http://unused").RegisterToken(ctx, ""); !errors.Is(err, ErrTokenRequired) {
			t.Errorf("expected ErrTokenRequired, got %v", err)
		}
	})
}

func TestRevokeToken(t *testing.T) {
	ctx := context.Background()

	t.Run("retries until the backend accepts", func(t *testing.T) {
		var attempts int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			if r.Method != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", r.Method)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		if err := newTestClient(srv.URL).RevokeToken(ctx, "tok-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if attempts != 3 {
			t.Errorf("expected 3 attempts, got %d", attempts)
		}
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		var attempts int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		if err := newTestClient(srv.URL).RevokeToken(ctx, "tok-1"); err == nil {
			t.Error("expected error after exhausted retries")
		}
		if attempts != 3 {
			t.Errorf("expected 3 attempts, got %d", attempts)
		}
	})
}

func TestMarkSeen(t *testing.T) {
	ctx := context.Background()

	t.Run("puts the seen path", func(t *testing.T) {
		var gotMethod, gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		if err := newTestClient(srv.URL).MarkSeen(ctx, "n-17"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodPut || gotPath != "/notifications/n-17/seen" {
			t.Errorf("unexpected request: %s %s", gotMethod, gotPath)
		}
	})

	t.Run("requires an id", func(t *testing.T) {
		if err := newTestClient("http://unused").MarkSeen(ctx, ""); !errors.Is(err, ErrIDRequired) {
			t.Errorf("expected ErrIDRequired, got %v", err)
		}
	})
}
