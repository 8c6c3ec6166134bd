package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse(t *testing.T) {
	m := NewManager("secret", "test-issuer")
	token, err := m.Generate("4b5f3c1e-0d2a-4c8e-9a51-3f1d2b6e7a90", "admin", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sess := claims.Session()
	if sess.UserID != "4b5f3c1e-0d2a-4c8e-9a51-3f1d2b6e7a90" || !sess.IsAdmin() {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected a token id")
	}
}

func TestParseRejectsForeignIssuer(t *testing.T) {
	token, err := NewManager("secret", "other").Generate("u1", "voter", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewManager("secret", "test-issuer").Parse(token); !errors.Is(err, jwt.ErrTokenInvalidIssuer) {
		t.Fatalf("expected invalid issuer, got %v", err)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager("secret", "")
	token, err := m.Generate("u1", "voter", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestParseRejectsEmptySubject(t *testing.T) {
	m := NewManager("secret", "")
	token, err := m.Generate("", "voter", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.Parse(token); !errors.Is(err, jwt.ErrTokenInvalidClaims) {
		t.Fatalf("expected invalid claims, got %v", err)
	}
}

func TestParseRejectsOtherSecret(t *testing.T) {
	token, err := NewManager("secret", "").Generate("u1", "voter", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewManager("another", "").Parse(token); err == nil {
		t.Fatalf("expected signature check to fail")
	}
}
