// Package auth issues and verifies signed identity tokens and hashes
// passwords.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/quizauth/internal/common"
)

// Identity is the verified subject of a token.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Claims is the token payload: the subject identity plus iat/exp.
type Claims struct {
	jwt.RegisteredClaims
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Issuer signs and verifies HS256 tokens with a single process-wide secret.
type Issuer struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewIssuer(secret []byte, lifetime time.Duration) *Issuer {
	if lifetime <= 0 {
		lifetime = common.DefaultTokenLifetime
	}
	return &Issuer{secret: secret, lifetime: lifetime, now: time.Now}
}

// Lifetime reports how long issued tokens stay valid.
func (i *Issuer) Lifetime() time.Duration {
	return i.lifetime
}

func (i *Issuer) Issue(id Identity) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
		},
		ID:       id.ID,
		Username: id.Username,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature and expiry. Any failure is reported as
// common.ErrInvalidToken without saying which check failed.
func (i *Issuer) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.ID == "" || claims.Username == "" {
		return nil, common.ErrInvalidToken
	}

	return &Identity{ID: claims.ID, Username: claims.Username}, nil
}
