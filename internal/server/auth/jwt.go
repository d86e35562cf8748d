// Package auth issues and checks the HS256 session tokens handed out after a
// successful authentication.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
)

// SessionClaims is the payload of a session token:
// {"username", "iat", "exp", "sub"}.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs a token for username that is valid for
// common.SessionTokenTTL from now.
func IssueSessionToken(username string, secret []byte, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", common.ErrSigningKey
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   common.SessionTokenSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(common.SessionTokenTTL)),
		},
	})

	s, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return s, nil
}

// ParseSessionToken verifies the signature and expiry of a token against now.
func ParseSessionToken(tokenString string, secret []byte, now time.Time) (*SessionClaims, error) {
	if len(secret) == 0 {
		return nil, common.ErrSigningKey
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, common.ErrTokenExpired
	}
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
