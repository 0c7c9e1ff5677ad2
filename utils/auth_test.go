package utils

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testKey = []byte("test-signing-key")

func TestTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()
	token, err := GenerateToken("user@example.com", userID, testKey)
	require.NoError(t, err)

	claims, err := ParseToken(token, testKey)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, userID.Hex(), claims.UserID)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	token, err := GenerateToken("user@example.com", primitive.NewObjectID(), testKey)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("another-key"))
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	claims := &Claims{
		Email: "user@example.com",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	_, err = ParseToken(token, testKey)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testKey)
	assert.Error(t, err)
}

func TestParseTokenRejectsUnsignedAlg(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Email: "user@example.com"})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(raw, testKey)
	assert.Error(t, err)
}
