package ats

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-talent-client/apiclient"
	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
	"github.com/jrsteele09/go-talent-client/sessions"
	"github.com/jrsteele09/go-talent-client/token"
	"github.com/jrsteele09/go-talent-client/token/jwt"
	"github.com/rs/zerolog/log"
)

// DefaultLoginPath is where username and password are exchanged for a pair
const DefaultLoginPath = "/token/"

const (
	registerPath = "/register/"
	profilePath  = "/profile/"
)

// AccountService covers sign-up, sign-in and the current identity
type AccountService struct {
	service
	store     sessions.Store
	loginPath string
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. It does not sign in.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) error {
	return s.post(ctx, registerPath, req, nil, apiclient.Unauthenticated())
}

// Login exchanges username and password for a credential pair and persists it,
// replacing any session already stored.
func (s *AccountService) Login(ctx context.Context, username, password string) (*jwt.Identity, error) {
	resp, err := s.api.Request(ctx, http.MethodPost, s.loginPath,
		apiclient.JSON(token.LoginRequest{Username: username, Password: password}),
		apiclient.Unauthenticated(),
	)
	if err != nil {
		return nil, err
	}

	pair, err := token.ParsePair(resp.Body)
	if err != nil {
		return nil, err
	}
	identity, err := jwt.Decode(pair.Access)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, pair); err != nil {
		return nil, apperrors.Wrapf(err, "saving session")
	}

	log.Info().Str("user", identity.Subject).Msg("Signed in")
	return identity, nil
}

// Logout forgets the stored session
func (s *AccountService) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Identity decodes the stored access token. It returns ErrNoCredential when
// nobody is signed in; an expired token is still decoded.
func (s *AccountService) Identity(ctx context.Context) (*jwt.Identity, error) {
	pair, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, apperrors.ErrNoCredential
	}
	return jwt.Decode(pair.Access)
}

// SignedIn reports whether a credential pair is stored
func (s *AccountService) SignedIn(ctx context.Context) bool {
	pair, err := s.store.Get(ctx)
	return err == nil && pair != nil
}

// Profile fetches the signed-in user, including the profile role
func (s *AccountService) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := s.get(ctx, profilePath, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
