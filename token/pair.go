package token

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
)

// Pair is the credential pair issued by the API on sign-in and replaced
// wholesale on every refresh. A Pair is either complete or absent.
type Pair struct {
	Access  string `json:"access"`  // Short-lived bearer token (JWT)
	Refresh string `json:"refresh"` // Longer-lived token used only to mint a new access token
}

// RefreshRequest is the body sent to the refresh endpoint
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// LoginRequest is the body sent to the token endpoint
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate rejects pairs missing either token
func (p Pair) Validate() error {
	if strings.TrimSpace(p.Access) == "" || strings.TrimSpace(p.Refresh) == "" {
		return apperrors.ErrPartialCredential
	}
	return nil
}

// Rotate returns the pair that replaces p after a refresh. Servers that do not
// rotate refresh tokens only return an access token, so the current refresh
// token is carried forward to keep the pair complete.
func (p Pair) Rotate(next Pair) Pair {
	if next.Refresh == "" {
		next.Refresh = p.Refresh
	}
	return next
}

// ParsePair decodes a token endpoint response body
func ParsePair(data []byte) (Pair, error) {
	var p Pair
	if err := json.Unmarshal(data, &p); err != nil {
		return Pair{}, fmt.Errorf("decoding token response: %w", err)
	}
	if strings.TrimSpace(p.Access) == "" {
		return Pair{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "token response has no access token")
	}
	return p, nil
}
