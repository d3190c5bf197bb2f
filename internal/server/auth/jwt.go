// Package auth issues and verifies the HS256 identity tokens handed out at
// login.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/mapboard/internal/common"
)

// Claims carries the standard registered claims plus the username the token
// was issued to.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// now is replaced in tests.
var now = time.Now

func GenerateToken(username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	issuedAt := now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validityDuration)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUsernameFromToken validates signature, algorithm and expiry and returns
// the username. Every failure collapses into common.ErrInvalidToken so that
// callers cannot tell expired tokens from forged ones.
func GetUsernameFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return "", errors.Join(common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Username == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Username, nil
}

// TokenManager binds the signing secret and token lifetime loaded at startup.
type TokenManager struct {
	secret   []byte
	validity time.Duration
}

func NewTokenManager(secret string, validity time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), validity: validity}
}

// Issue signs a token for username that expires after the configured validity.
func (m *TokenManager) Issue(username string) (string, error) {
	return GenerateToken(username, m.secret, m.validity)
}

// Verify returns the username carried by a valid token.
func (m *TokenManager) Verify(token string) (string, error) {
	return GetUsernameFromToken(token, m.secret)
}
