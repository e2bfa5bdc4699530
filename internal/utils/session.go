package utils

import (
	"errors"
	"fmt"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "username"

const (
	SessionModePlain  = "plain"
	SessionModeSigned = "signed"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionCodec turns a username into a cookie value and back
type SessionCodec interface {
	Encode(username string) (string, error)
	Decode(token string) (string, error)
}

// PlainSessionCodec uses the username itself as the session token.
// The token is not signed and never expires: any client that knows a
// username can present it. Use SignedSessionCodec to bind tokens to a secret.
type PlainSessionCodec struct{}

func (PlainSessionCodec) Encode(username string) (string, error) {
	if username == "" {
		return "", ErrInvalidSessionToken
	}
	return username, nil
}

func (PlainSessionCodec) Decode(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSessionToken
	}
	return token, nil
}

// NewSessionCodec picks the codec for the configured session mode
func NewSessionCodec(mode, secret string, ttlHours int64) (SessionCodec, error) {
	switch mode {
	case "", SessionModePlain:
		return PlainSessionCodec{}, nil
	case SessionModeSigned:
		if secret == "" {
			return nil, errors.New("signed sessions require a secret")
		}
		return NewSignedSessionCodec(secret, ttlHours), nil
	default:
		return nil, fmt.Errorf("unknown session mode %q", mode)
	}
}
