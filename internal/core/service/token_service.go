package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gamevault/catalog-api/internal/core/domain"
)

// TokenService issues and decodes HS256-signed tokens. It is immutable after
// construction and safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a codec with the given symmetric key and token TTL.
// A non-positive TTL falls back to 60 minutes.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue builds a claim set valid for [now, now+TTL), with the roles joined by
// a single space, and signs it. Pure function of inputs, key, and clock.
func (s *TokenService) Issue(subject string, roles []string, now time.Time) (string, error) {
	claims := domain.Claims{
		Roles: strings.Join(roles, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(s.secret)
}

// Decode verifies the signature and structure of a token and returns its
// claims. Expiry is deliberately NOT checked here; callers run the explicit
// Claims.ValidAt check and must treat either failure as one invalid-token
// condition.
func (s *TokenService) Decode(token string) (*domain.Claims, error) {
	claims := &domain.Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
