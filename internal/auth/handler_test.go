package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/vantage-intel/vantage/internal/auth"
	"github.com/vantage-intel/vantage/internal/policy"
	"github.com/vantage-intel/vantage/internal/shared"
	"github.com/vantage-intel/vantage/internal/users"
)

type stubAccounts struct {
	user users.User
	hash string
}

func (s *stubAccounts) Authenticate(_ context.Context, username, password string) (users.User, error) {
	if username != s.user.Username {
		return users.User{}, shared.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.hash), []byte(password)) != nil {
		return users.User{}, shared.ErrInvalidCredentials
	}
	return s.user, nil
}

func newAuthHandler(t *testing.T, accounts auth.Authenticator) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionManager := shared.NewSessionManager(redisClient, "test_session", time.Hour, false)
	csrfManager := shared.NewCSRFManager("csrfsecret")
	handler := auth.NewHandler(discardLogger(), auth.NewService(accounts, nil), sessionManager, csrfManager, nil)
	return handler, sessionManager
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stubUser(t *testing.T) *stubAccounts {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := users.User{Username: "analyst_1", Role: policy.RoleAnalyst}
	u.ID = 7
	return &stubAccounts{user: u, hash: string(hashed)}
}

func TestLoginSuccess(t *testing.T) {
	handler, sessionManager := newAuthHandler(t, stubUser(t))

	body := `{"username":"analyst_1","password":"correct-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	sess, err := sessionManager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)

	res := httptest.NewRecorder()
	handler.HandleLoginForTest(res, req)
	if err := sessionManager.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", res.Code, res.Body.String())
	}

	var payload struct {
		CSRFToken string `json:"csrf_token"`
		User      struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.CSRFToken == "" {
		t.Fatal("expected csrf token in response")
	}
	if payload.User.Username != "analyst_1" || payload.User.Role != "analyst" {
		t.Fatalf("unexpected user payload: %+v", payload.User)
	}
	if sess.User() != "7" {
		t.Fatalf("session user = %q, want 7", sess.User())
	}
	if sess.Role() != "analyst" {
		t.Fatalf("session role = %q, want analyst", sess.Role())
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	handler, sessionManager := newAuthHandler(t, stubUser(t))

	body := `{"username":"analyst_1","password":"wrong-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	sess, err := sessionManager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))

	res := httptest.NewRecorder()
	handler.HandleLoginForTest(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if sess.User() != "" {
		t.Fatalf("session must stay anonymous after failed login, got %q", sess.User())
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	handler, sessionManager := newAuthHandler(t, stubUser(t))

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	sess, err := sessionManager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	sess.SetUser("7", "analyst_1", "analyst")
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)

	res := httptest.NewRecorder()
	handler.HandleLogoutForTest(res, req)
	if err := sessionManager.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var clearing bool
	// res.Result() snapshots headers at WriteHeader time, before Commit runs;
	// read the live header map so the cookie written by Commit is visible.
	for _, c := range (&http.Response{Header: res.Header()}).Cookies() {
		if c.Name == sessionManager.CookieName() && c.MaxAge < 0 {
			clearing = true
		}
	}
	if !clearing {
		t.Fatal("expected session cookie to be cleared")
	}
}
