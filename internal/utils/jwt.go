package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims of a signed session token
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SignedSessionCodec issues HS256 session tokens bound to a secret
type SignedSessionCodec struct {
	secretKey       string
	expirationHours int64
}

// NewSignedSessionCodec creates a new SignedSessionCodec
func NewSignedSessionCodec(secretKey string, expirationHours int64) *SignedSessionCodec {
	return &SignedSessionCodec{secretKey: secretKey, expirationHours: expirationHours}
}

// Encode generates a signed token for username
func (sc *SignedSessionCodec) Encode(username string) (string, error) {
	if username == "" {
		return "", ErrInvalidSessionToken
	}
	now := time.Now()
	claims := &SessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour * time.Duration(sc.expirationHours))),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(sc.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Decode validates the token and returns the username it was issued for
func (sc *SignedSessionCodec) Decode(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(sc.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSessionToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Username == "" {
		return "", ErrInvalidSessionToken
	}
	return claims.Username, nil
}
