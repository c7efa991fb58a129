package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer mints and verifies the bearer tokens returned by signin.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer signing with the given shared secret.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

type tokenClaims struct {
	IsTrainer bool `json:"is_trainer"`
	jwt.RegisteredClaims
}

// Issue returns a signed token for the user.
func (ti *TokenIssuer) Issue(userID uuid.UUID, isTrainer bool) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		IsTrainer: isTrainer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
}

// Verify parses a token and returns the user ID and trainer flag.
func (ti *TokenIssuer) Verify(token string) (uuid.UUID, bool, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("parsing token: %w", err)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("parsing token subject: %w", err)
	}
	return id, claims.IsTrainer, nil
}
