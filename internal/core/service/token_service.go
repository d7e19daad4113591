package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/speernotes/notes-system/internal/core/domain"
	"github.com/speernotes/notes-system/internal/core/ports"
)

// TokenService issues and validates HS256-signed JWTs. The payload carries
// only the subject (user email), issued-at and expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the deployment secret. A
// non-positive TTL falls back to 24 hours.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

var _ ports.TokenService = (*TokenService)(nil)

// Issue produces a signed token for the subject, expiring after the
// configured TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate reports whether raw carries a valid signature and has not
// expired. Malformed input returns false, never an error.
func (s *TokenService) Validate(raw string) bool {
	_, err := s.parse(raw)
	return err == nil
}

// Subject returns the subject of a valid token.
func (s *TokenService) Subject(raw string) (string, error) {
	claims, err := s.parse(raw)
	if err != nil {
		return "", fmt.Errorf("extract subject: %w", domain.ErrAuthentication)
	}
	return claims.Subject, nil
}

func (s *TokenService) parse(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
