package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

const (
	testSecret = "test-secret"
	testIssuer = "doneo"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runMiddleware(token string) (*fasthttp.RequestCtx, bool) {
	called := false
	handler := JWTAuth(testSecret, testIssuer, nil)(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	ctx := &fasthttp.RequestCtx{}
	if token != "" {
		ctx.Request.Header.Set("Authorization", "Bearer "+token)
	}
	handler(ctx)
	return ctx, called
}

func TestJWTAuth_ValidTokenPassesUserID(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "u1",
		"iss":     testIssuer,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	ctx, called := runMiddleware(token)
	require.True(t, called)
	require.Equal(t, "u1", string(ctx.Request.Header.Peek("X-User-ID")))
}

func TestJWTAuth_MissingTokenRejected(t *testing.T) {
	ctx, called := runMiddleware("")
	require.False(t, called)
	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestJWTAuth_WrongSecretRejected(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": "u1",
		"iss":     testIssuer,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	ctx, called := runMiddleware(token)
	require.False(t, called)
	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestJWTAuth_WrongIssuerRejected(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "u1",
		"iss":     "someone-else",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, called := runMiddleware(token)
	require.False(t, called)
}

func TestJWTAuth_ExpiredTokenRejected(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "u1",
		"iss":     testIssuer,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	_, called := runMiddleware(token)
	require.False(t, called)
}

func TestJWTAuth_MissingUserIDRejected(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, called := runMiddleware(token)
	require.False(t, called)
}
