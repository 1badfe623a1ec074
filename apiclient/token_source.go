package apiclient

import (
	"context"
	"net/http"

	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
	"github.com/jrsteele09/go-talent-client/token/jwt"
	"golang.org/x/oauth2"
)

var _ oauth2.TokenSource = (*tokenSource)(nil)

type tokenSource struct {
	ctx    context.Context
	client *Client
}

// TokenSource exposes the refreshing credential as an oauth2.TokenSource.
// Each Token call goes through EnsureValidCredential, so the session store is
// re-read and the access token renewed exactly as for Request.
func (c *Client) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, client: c}
}

func (ts *tokenSource) Token() (*oauth2.Token, error) {
	accessToken, err := ts.client.EnsureValidCredential(ts.ctx)
	if err != nil {
		return nil, err
	}
	if accessToken == "" {
		return nil, apperrors.ErrNoCredential
	}

	tok := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	if identity, err := jwt.Decode(accessToken); err == nil {
		tok.Expiry = identity.ExpiresAt
	}
	return tok, nil
}

// HTTPClient returns an *http.Client that authenticates every request with the
// session credential, for code that needs a plain client (file downloads,
// third-party SDKs). Unlike Request it fails when nobody is signed in.
func (c *Client) HTTPClient(ctx context.Context) *http.Client {
	return &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: c.TokenSource(ctx),
			Base:   c.httpClient.Transport,
		},
	}
}
