package jwt_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
	"github.com/jrsteele09/go-talent-client/token/jwt"
	"github.com/jrsteele09/go-talent-client/token/jwt/jwttest"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func freezeTime(t *testing.T) {
	t.Helper()
	jwt.NowTimeFunc = func() time.Time { return fixedNow }
	t.Cleanup(func() { jwt.NowTimeFunc = time.Now })
}

func TestDecode_SimpleJWTClaims(t *testing.T) {
	raw := jwttest.Sign(jwtlib.MapClaims{
		"token_type": "access",
		"user_id":    42,
		"username":   "jdoe",
		"exp":        fixedNow.Add(time.Hour).Unix(),
		"iat":        fixedNow.Unix(),
		"jti":        "abc",
		"profile":    map[string]any{"role": "hr"},
	})

	identity, err := jwt.Decode(raw)

	require.NoError(t, err)
	require.Equal(t, "42", identity.Subject)
	require.Equal(t, "jdoe", identity.Username)
	require.Equal(t, "hr", identity.Role)
	require.Equal(t, "access", identity.TokenType)
	require.Equal(t, "abc", identity.JTI)
	require.True(t, identity.ExpiresAt.Equal(fixedNow.Add(time.Hour)))
	require.True(t, identity.IssuedAt.Equal(fixedNow))
}

func TestDecode_SubAndRoles(t *testing.T) {
	raw := jwttest.Sign(jwtlib.MapClaims{
		"sub":   "user-7",
		"roles": []string{"candidate", "beta"},
		"exp":   fixedNow.Add(time.Minute).Unix(),
	})

	identity, err := jwt.Decode(raw)

	require.NoError(t, err)
	require.Equal(t, "user-7", identity.Subject)
	require.Equal(t, []string{"candidate", "beta"}, identity.Roles)
	require.Equal(t, "candidate", identity.Role)
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "not-a-jwt", raw: "definitely.not.ajwt"},
		{name: "garbage", raw: "abc"},
		{name: "no-exp", raw: jwttest.Sign(jwtlib.MapClaims{"user_id": 1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jwt.Decode(tt.raw)
			require.ErrorIs(t, err, apperrors.ErrInvalidToken)
		})
	}
}

func TestIsExpired_Margin(t *testing.T) {
	freezeTime(t)

	tests := []struct {
		name    string
		exp     time.Time
		margin  time.Duration
		expired bool
	}{
		{name: "ten-seconds-left", exp: fixedNow.Add(10 * time.Second), margin: time.Second, expired: false},
		{name: "already-past", exp: fixedNow.Add(-time.Minute), margin: time.Second, expired: true},
		{name: "exactly-now", exp: fixedNow, margin: time.Second, expired: true},
		{name: "inside-margin", exp: fixedNow.Add(500 * time.Millisecond), margin: time.Second, expired: true},
		{name: "zero-margin-still-valid", exp: fixedNow.Add(time.Second), margin: 0, expired: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := jwttest.AccessToken(1, tt.exp)
			require.Equal(t, tt.expired, jwt.IsExpired(raw, tt.margin))
		})
	}
}

func TestIsExpired_MalformedCountsAsExpired(t *testing.T) {
	require.True(t, jwt.IsExpired("not-a-token", time.Second))
}
