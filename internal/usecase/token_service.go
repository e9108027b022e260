package usecase

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService signs the bearer token that binds a client to its session.
// It is not a user login.
type TokenService struct {
	Secret string
	TTL    time.Duration
	Now    func() time.Time
}

func (s *TokenService) Issue(sessionID string) (string, error) {
	if s.Secret == "" {
		return "", errors.New("session secret not configured")
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	now := s.now()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.Secret))
}

// Verify returns the session id carried by a valid token.
func (s *TokenService) Verify(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(s.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrUnauthorized("invalid session token")
	}
	m, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrUnauthorized("invalid claims")
	}
	sid, _ := m["sid"].(string)
	if sid == "" {
		return "", ErrUnauthorized("missing session id")
	}
	return sid, nil
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type ErrUnauthorized string

func (e ErrUnauthorized) Error() string { return string(e) }
