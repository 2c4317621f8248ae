package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/user-management/internal/core/domain"
)

// DefaultTokenTTL is the lifetime of issued tokens when none is configured.
const DefaultTokenTTL = 24 * time.Hour

type tokenClaims struct {
	UserID string  `json:"id"`
	Email  string  `json:"email"`
	Name   *string `json:"name,omitempty"`
	Role   *string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 tokens.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type JWTOption func(*JWTService)

// WithClock overrides the time source used for iat, exp and validation.
func WithClock(now func() time.Time) JWTOption {
	return func(s *JWTService) { s.now = now }
}

// NewJWTService fails with domain.ErrConfigurationMissing when secret is
// empty. A non-positive ttl selects DefaultTokenTTL.
func NewJWTService(secret string, ttl time.Duration, opts ...JWTOption) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret: %w", domain.ErrConfigurationMissing)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *JWTService) TTL() time.Duration { return s.ttl }

func (s *JWTService) Generate(p domain.Principal) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID: p.ID,
		Email:  p.Email,
		Name:   p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	if p.Role != nil {
		role := p.Role.String()
		claims.Role = &role
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(token string) (domain.Principal, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Principal{}, classifyTokenError(err)
	}
	if claims.UserID == "" || claims.Email == "" {
		return domain.Principal{}, domain.ErrTokenInvalid
	}

	p := domain.Principal{ID: claims.UserID, Email: claims.Email, Name: claims.Name}
	if claims.Role != nil {
		role, err := domain.ParseRole(*claims.Role)
		if err != nil {
			return domain.Principal{}, domain.ErrTokenInvalid
		}
		p.Role = &role
	}
	return p, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return domain.ErrTokenInvalid
	default:
		return fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
	}
}
