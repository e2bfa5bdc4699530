package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestSignedSessionCodec_Encode(t *testing.T) {
	codec := NewSignedSessionCodec("secret", 1)

	tokenString, err := codec.Encode("alice")

	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.NotEqual(t, "alice", tokenString)

	// Parse the raw claims to check expiry
	claims := &SessionClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestSignedSessionCodec_Decode(t *testing.T) {
	codec := NewSignedSessionCodec("secret", 1)

	tokenString, _ := codec.Encode("alice")
	username, err := codec.Decode(tokenString)

	assert.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestSignedSessionCodec_Encode_EmptyUsername(t *testing.T) {
	codec := NewSignedSessionCodec("secret", 1)

	_, err := codec.Encode("")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSignedSessionCodec_Decode_InvalidToken(t *testing.T) {
	codec := NewSignedSessionCodec("secret", 1)

	_, err := codec.Decode("invalid.token.string")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	// A plain username must not pass as a signed token
	_, err = codec.Decode("admin")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSignedSessionCodec_Decode_ExpiredToken(t *testing.T) {
	codec := NewSignedSessionCodec("secret", -1) // Token expires in the past

	tokenString, _ := codec.Encode("alice")

	_, err := codec.Decode(tokenString)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestSignedSessionCodec_Decode_WrongSecret(t *testing.T) {
	codec1 := NewSignedSessionCodec("secret1", 1)
	codec2 := NewSignedSessionCodec("secret2", 1)

	tokenString, _ := codec1.Encode("alice")

	_, err := codec2.Decode(tokenString)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSignedSessionCodec_Decode_InvalidSigningMethod(t *testing.T) {
	codec := NewSignedSessionCodec("secret", 1)
	claims := &SessionClaims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, claims)
	tokenString, _ := token.SignedString([]byte("secret"))

	_, err := codec.Decode(tokenString)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}
