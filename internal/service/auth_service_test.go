package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quizdeck/quizdeck-backend/internal/config"
)

func testAuthConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
}

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuthService(testAuthConfig())

	token, err := auth.GenerateToken("user-1", "Alice")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.Subject != "user-1" || claims.Name != "Alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateTokenRejections(t *testing.T) {
	auth := NewAuthService(testAuthConfig())

	if _, err := auth.ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}

	// Token signed with a different secret.
	other := NewAuthService(&config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour})
	token, err := other.GenerateToken("user-1", "Alice")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := auth.ValidateToken(token); err == nil {
		t.Fatal("expected error for wrong signature")
	}

	// Token without a subject is useless as an identity.
	anon := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := anon.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := auth.ValidateToken(signed); err == nil {
		t.Fatal("expected error for missing subject")
	}

	// Expired token.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signedExpired, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := auth.ValidateToken(signedExpired); err == nil {
		t.Fatal("expected error for expired token")
	}
}
