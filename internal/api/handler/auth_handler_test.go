package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/speernotes/notes-system/internal/core/domain"
	"github.com/speernotes/notes-system/internal/core/ports"
)

type stubAuthService struct {
	present    bool
	signupErr  error
	loginToken string
	loginErr   error
	signups    []ports.SignupInput
}

func (s *stubAuthService) IsUserPresent(_ context.Context, _ string) bool {
	return s.present
}

func (s *stubAuthService) Signup(_ context.Context, input ports.SignupInput) error {
	s.signups = append(s.signups, input)
	return s.signupErr
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, error) {
	return s.loginToken, s.loginErr
}

func newAuthContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_NewUser(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","email":"alice@example.com","password":"pass123"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User registered successfully!") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if len(svc.signups) != 1 || svc.signups[0].Email != "alice@example.com" {
		t.Fatalf("signup input not forwarded: %+v", svc.signups)
	}
}

func TestAuthHandler_Signup_ExistingUser(t *testing.T) {
	svc := &stubAuthService{present: true}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","email":"alice@example.com","password":"pass123"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "User already exists!") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if len(svc.signups) != 0 {
		t.Fatalf("existing user must not be re-registered")
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthContext(t, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","email":"not-an-email","password":"pass123"}`)

	err := h.Signup(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{loginToken: "signed.jwt.token"}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"pass123"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "signed.jwt.token") {
		t.Fatalf("token missing from body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login must not propagate credential errors: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid credentials") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
