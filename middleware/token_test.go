package middleware

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"schoolhub_backend/models"
)

var testSecret = []byte("test-secret-do-not-use")

func TestIssueVerifyRoundTrip(t *testing.T) {
	service := NewTokenService(testSecret, time.Hour)

	token, err := service.Issue(42, models.RoleTeacher)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := service.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != models.RoleTeacher {
		t.Errorf("expected role TEACHER, got %s", claims.Role)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	service := NewTokenService(testSecret, time.Hour)

	// Hand-build an already-expired token with the same secret.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		UserID: 7,
		Role:   models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	tokenString, err := expired.SignedString(testSecret)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := service.Verify(tokenString); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	service := NewTokenService(testSecret, time.Hour)

	token, err := service.Issue(1, models.RoleAdmin)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := service.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	service := NewTokenService(testSecret, time.Hour)
	other := NewTokenService([]byte("a-different-secret"), time.Hour)

	token, err := other.Issue(1, models.RoleAdmin)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := service.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for foreign secret, got %v", err)
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	service := NewTokenService(testSecret, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &models.Claims{
		UserID: 1,
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := service.Verify(tokenString); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for alg=none token, got %v", err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	service := NewTokenService(testSecret, time.Hour)

	for _, input := range []string{"", "garbage", "a.b.c"} {
		if _, err := service.Verify(input); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for %q, got %v", input, err)
		}
	}
}
