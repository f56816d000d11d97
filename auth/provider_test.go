package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvider() *MongoProvider {
	return &MongoProvider{secret: []byte("test-secret"), ttl: time.Hour}
}

func signedToken(t *testing.T, method jwt.SigningMethod, secret []byte, expiresAt time.Time) string {
	t.Helper()
	claims := &sessionClaims{
		SessionID: "6650f1d2a4b9c83d2f1e0a77",
		UserID:    "6650f1d2a4b9c83d2f1e0a78",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestParseToken_AcceptsOwnTokens(t *testing.T) {
	p := testProvider()

	token := signedToken(t, jwt.SigningMethodHS256, p.secret, time.Now().Add(time.Hour))
	claims, ok := p.parseToken(token)
	require.True(t, ok)
	assert.Equal(t, "6650f1d2a4b9c83d2f1e0a77", claims.SessionID)
	assert.Equal(t, "6650f1d2a4b9c83d2f1e0a78", claims.UserID)
}

func TestParseToken_OnlyAcceptsTheSigningMethodWeUse(t *testing.T) {
	p := testProvider()

	// Even with the right secret, only HS256 is acceptable.
	for _, method := range []jwt.SigningMethod{jwt.SigningMethodHS384, jwt.SigningMethodHS512} {
		token := signedToken(t, method, p.secret, time.Now().Add(time.Hour))
		_, ok := p.parseToken(token)
		assert.False(t, ok, "token signed with %s must be rejected", method.Alg())
	}
}

func TestParseToken_RejectsExpiredAndForeignTokens(t *testing.T) {
	p := testProvider()

	expired := signedToken(t, jwt.SigningMethodHS256, p.secret, time.Now().Add(-time.Minute))
	_, ok := p.parseToken(expired)
	assert.False(t, ok, "expired token must be rejected")

	foreign := signedToken(t, jwt.SigningMethodHS256, []byte("other-secret"), time.Now().Add(time.Hour))
	_, ok = p.parseToken(foreign)
	assert.False(t, ok, "token signed with another secret must be rejected")

	_, ok = p.parseToken("not-a-token")
	assert.False(t, ok, "malformed token must be rejected")
}
