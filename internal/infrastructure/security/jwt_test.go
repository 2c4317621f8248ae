package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/user-management/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	if _, err := NewJWTService("", time.Hour); !errors.Is(err, domain.ErrConfigurationMissing) {
		t.Fatalf("expected ErrConfigurationMissing, got %v", err)
	}
}

func TestNewJWTService_DefaultTTL(t *testing.T) {
	svc, err := NewJWTService("secret", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.TTL() != DefaultTokenTTL {
		t.Fatalf("expected %v, got %v", DefaultTokenTTL, svc.TTL())
	}
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc, _ := NewJWTService("secret", time.Hour)
	name := "Alice"
	in := domain.Principal{ID: "42", Email: "alice@example.com", Name: &name, Role: domain.RolePtr(domain.RoleManager)}

	token, err := svc.Generate(in)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	out, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if out.ID != in.ID || out.Email != in.Email {
		t.Fatalf("unexpected principal: %+v", out)
	}
	if out.Name == nil || *out.Name != name {
		t.Fatalf("name not preserved: %+v", out.Name)
	}
	if out.Role == nil || *out.Role != domain.RoleManager {
		t.Fatalf("role not preserved: %+v", out.Role)
	}
}

func TestJWTService_RoundTrip_NoOptionalClaims(t *testing.T) {
	svc, _ := NewJWTService("secret", time.Hour)

	token, err := svc.Generate(domain.Principal{ID: "7", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if out.Name != nil || out.Role != nil {
		t.Fatalf("expected no optional claims, got %+v", out)
	}
}

func TestJWTService_Expired(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer, _ := NewJWTService("secret", time.Hour, WithClock(fixedClock(issued)))
	verifier, _ := NewJWTService("secret", time.Hour, WithClock(fixedClock(issued.Add(2*time.Hour))))

	token, _ := issuer.Generate(domain.Principal{ID: "1", Email: "a@b.com"})
	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTService_WrongSecret(t *testing.T) {
	a, _ := NewJWTService("secret-a", time.Hour)
	b, _ := NewJWTService("secret-b", time.Hour)

	token, _ := a.Generate(domain.Principal{ID: "1", Email: "a@b.com"})
	if _, err := b.Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTService_Malformed(t *testing.T) {
	svc, _ := NewJWTService("secret", time.Hour)
	if _, err := svc.Verify("not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	svc, _ := NewJWTService("secret", time.Hour)

	claims := jwt.MapClaims{
		"id":    "1",
		"email": "a@b.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTService_MissingExpiry(t *testing.T) {
	svc, _ := NewJWTService("secret", time.Hour)

	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    "1",
		"email": "a@b.com",
	}).SignedString([]byte("secret"))

	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTService_NotYetValid(t *testing.T) {
	svc, _ := NewJWTService("secret", time.Hour)

	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    "1",
		"email": "a@b.com",
		"exp":   time.Now().Add(2 * time.Hour).Unix(),
		"nbf":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))

	_, err := svc.Verify(signed)
	if !errors.Is(err, domain.ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
}

func TestJWTService_UnknownRole(t *testing.T) {
	svc, _ := NewJWTService("secret", time.Hour)

	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    "1",
		"email": "a@b.com",
		"role":  "root",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))

	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTService_TokenCarriesIssuedAndExpiry(t *testing.T) {
	issued := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := NewJWTService("secret", 24*time.Hour, WithClock(fixedClock(issued)))

	token, _ := svc.Generate(domain.Principal{ID: "1", Email: "a@b.com"})

	var claims jwt.RegisteredClaims
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !claims.IssuedAt.Time.Equal(issued) {
		t.Fatalf("unexpected iat: %v", claims.IssuedAt)
	}
	if !claims.ExpiresAt.Time.Equal(issued.Add(24 * time.Hour)) {
		t.Fatalf("unexpected exp: %v", claims.ExpiresAt)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected compact JWS, got %q", token)
	}
}
