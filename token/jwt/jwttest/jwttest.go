// Package jwttest mints signed access tokens for tests.
package jwttest

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var signingKey = []byte("jwttest-signing-key")

// Sign signs arbitrary claims with HS256
func Sign(claims jwtlib.MapClaims) string {
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	return signed
}

// AccessToken returns a simplejwt-shaped access token for userID expiring at exp
func AccessToken(userID int, exp time.Time) string {
	return Sign(jwtlib.MapClaims{
		"token_type": "access",
		"user_id":    userID,
		"exp":        exp.Unix(),
		"iat":        exp.Add(-5 * time.Minute).Unix(),
		"jti":        uuid.NewString(),
	})
}

// ExpiringIn returns an access token for userID valid for d from now
func ExpiringIn(userID int, d time.Duration) string {
	return AccessToken(userID, time.Now().Add(d))
}
