package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"schoolhub_backend/db"
	"schoolhub_backend/middleware"
	"schoolhub_backend/models"
)

type stubUserAccounts struct {
	byEmail map[string]*models.User
	nextID  int
}

func (s *stubUserAccounts) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if _, exists := s.byEmail[user.Email]; exists {
		return models.User{}, db.ErrDuplicateEmail
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	if s.byEmail == nil {
		s.byEmail = map[string]*models.User{}
	}
	s.byEmail[user.Email] = &user
	return user, nil
}

func (s *stubUserAccounts) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, db.ErrNotFound
	}
	return user, nil
}

func newAuthTestRouter(users UserAccounts, tokens *middleware.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(users, tokens)
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	return r
}

func postJSON(r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRegisterThenDuplicate(t *testing.T) {
	tokens := middleware.NewTokenService([]byte("test-secret"), time.Hour)
	r := newAuthTestRouter(&stubUserAccounts{}, tokens)

	payload := models.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "a@x.com", Password: "correct-horse",
	}

	if rec := postJSON(r, "/register", payload); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := postJSON(r, "/register", payload); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate email, got %d", rec.Code)
	}
}

func TestRegisterNeverEchoesPassword(t *testing.T) {
	tokens := middleware.NewTokenService([]byte("test-secret"), time.Hour)
	r := newAuthTestRouter(&stubUserAccounts{}, tokens)

	rec := postJSON(r, "/register", models.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "a@x.com", Password: "correct-horse",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "correct-horse") ||
		strings.Contains(rec.Body.String(), "password") {
		t.Errorf("response leaked password material: %s", rec.Body.String())
	}
}

func TestRegisterMissingFields(t *testing.T) {
	tokens := middleware.NewTokenService([]byte("test-secret"), time.Hour)
	r := newAuthTestRouter(&stubUserAccounts{}, tokens)

	rec := postJSON(r, "/register", map[string]string{"email": "a@x.com"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing fields, got %d", rec.Code)
	}
}

func TestRegisterRejectsStaffRole(t *testing.T) {
	tokens := middleware.NewTokenService([]byte("test-secret"), time.Hour)
	r := newAuthTestRouter(&stubUserAccounts{}, tokens)

	rec := postJSON(r, "/register", models.RegisterRequest{
		FirstName: "Eve", LastName: "Mallory",
		Email: "e@x.com", Password: "correct-horse", Role: "ADMIN",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for self-service admin registration, got %d", rec.Code)
	}
}

func registeredRouter(t *testing.T, tokens *middleware.TokenService) (*gin.Engine, *stubUserAccounts) {
	t.Helper()
	users := &stubUserAccounts{}
	r := newAuthTestRouter(users, tokens)
	rec := postJSON(r, "/register", models.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "a@x.com", Password: "correct-horse",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("setup register failed: %d", rec.Code)
	}
	return r, users
}

func TestLoginWrongPassword(t *testing.T) {
	tokens := middleware.NewTokenService([]byte("test-secret"), time.Hour)
	r, _ := registeredRouter(t, tokens)

	rec := postJSON(r, "/login", models.LoginRequest{Email: "a@x.com", Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	tokens := middleware.NewTokenService([]byte("test-secret"), time.Hour)
	r, _ := registeredRouter(t, tokens)

	rec := postJSON(r, "/login", models.LoginRequest{Email: "b@x.com", Password: "correct-horse"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLoginTokenRoundTrips(t *testing.T) {
	tokens := middleware.NewTokenService([]byte("test-secret"), time.Hour)
	r, users := registeredRouter(t, tokens)

	rec := postJSON(r, "/login", models.LoginRequest{Email: "a@x.com", Password: "correct-horse"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	claims, err := tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("login token failed verification: %v", err)
	}
	if claims.UserID != users.byEmail["a@x.com"].ID {
		t.Errorf("token user id %d does not match account %d", claims.UserID, users.byEmail["a@x.com"].ID)
	}
	if claims.Role != models.RoleStudent {
		t.Errorf("expected STUDENT role in token, got %s", claims.Role)
	}

	// The same token rides a cookie for browser clients.
	cookies := rec.Result().Cookies()
	found := false
	for _, cookie := range cookies {
		if cookie.Name == middleware.TokenCookieName && cookie.Value == resp.Token {
			found = true
		}
	}
	if !found {
		t.Error("expected token cookie on login response")
	}
}

func TestLoginCookieLifetimeMatchesTokenTTL(t *testing.T) {
	// The cookie and the token it carries expire together, whatever the
	// configured TTL.
	ttl := 45 * time.Minute
	tokens := middleware.NewTokenService([]byte("test-secret"), ttl)
	r, _ := registeredRouter(t, tokens)

	rec := postJSON(r, "/login", models.LoginRequest{Email: "a@x.com", Password: "correct-horse"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.TokenCookieName {
			if cookie.MaxAge != int(ttl.Seconds()) {
				t.Errorf("cookie max-age %d, want %d", cookie.MaxAge, int(ttl.Seconds()))
			}
			return
		}
	}
	t.Error("expected token cookie on login response")
}

func TestLogoutClearsCookie(t *testing.T) {
	tokens := middleware.NewTokenService([]byte("test-secret"), time.Hour)
	r := newAuthTestRouter(&stubUserAccounts{}, tokens)

	req := httptest.NewRequest("POST", "/logout", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.TokenCookieName {
			if cookie.Value != "" || cookie.MaxAge >= 0 {
				t.Errorf("expected cleared cookie, got value=%q maxage=%d", cookie.Value, cookie.MaxAge)
			}
			return
		}
	}
	t.Error("expected a token cookie clearing header")
}
