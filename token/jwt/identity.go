package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
	"github.com/jrsteele09/go-talent-client/internal/utils"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Identity is the read-only projection of an access token's claims.
// It is decoded without verifying the signature: the API is the only party
// able to verify it, the client only needs the self-reported expiry and subject.
type Identity struct {
	Subject   string    // user_id (simplejwt) or sub
	Username  string    // Optional username claim
	Role      string    // Optional role marker, e.g. "candidate" or "hr"
	Roles     []string  // Optional roles claim
	TokenType string    // token_type claim ("access" for bearer tokens)
	JTI       string    // Unique token id
	IssuedAt  time.Time // Zero when the token carries no iat
	ExpiresAt time.Time
}

// Decode extracts the identity from a raw access token without verifying it.
// Tokens without an exp claim are rejected since their validity can't be judged offline.
func Decode(rawToken string) (*Identity, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, apperrors.ErrInvalidToken
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "failed to parse token: %s", err)
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("error extracting claims")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "token missing exp claim")
	}

	identity := &Identity{
		Subject:   subject(claims),
		ExpiresAt: exp.Time,
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		identity.IssuedAt = iat.Time
	}
	identity.Username, _ = claims["username"].(string)
	identity.TokenType, _ = claims["token_type"].(string)
	identity.JTI, _ = claims["jti"].(string)

	if roles, ok := claims["roles"].([]any); ok {
		identity.Roles = utils.ToStringSlice(roles)
	}
	identity.Role = role(claims, identity.Roles)

	return identity, nil
}

// ExpiresWithin reports whether fewer than margin of validity remains.
// A token already past its expiry always reports true.
func (i *Identity) ExpiresWithin(margin time.Duration) bool {
	return i.ExpiresAt.Sub(NowTimeFunc()) < margin
}

// IsExpired is the offline expiry check used before each request.
// A token that can't be decoded can never be used, so it counts as expired.
func IsExpired(rawToken string, margin time.Duration) bool {
	identity, err := Decode(rawToken)
	if err != nil {
		return true
	}
	return identity.ExpiresWithin(margin)
}

func subject(claims jwtlib.MapClaims) string {
	for _, name := range []string{"user_id", "sub"} {
		switch v := claims[name].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case nil:
		default:
			return fmt.Sprint(v)
		}
	}
	return ""
}

func role(claims jwtlib.MapClaims, roles []string) string {
	if r, ok := claims["role"].(string); ok && r != "" {
		return r
	}
	if profile, ok := claims["profile"].(map[string]any); ok {
		if r, ok := profile["role"].(string); ok {
			return r
		}
	}
	if len(roles) > 0 {
		return roles[0]
	}
	return ""
}
