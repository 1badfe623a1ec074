package sessions

import (
	"context"

	"github.com/jrsteele09/go-talent-client/token"
)

// Store holds at most one credential pair and is the single source of truth
// for whether a user is signed in. Implementations must replace, read and
// remove the pair as one atomic value so readers never see a torn pair.
type Store interface {
	// Get returns the stored pair, or nil when signed out
	Get(ctx context.Context) (*token.Pair, error)

	// Set replaces the stored pair wholesale. Partial pairs are rejected.
	Set(ctx context.Context, pair token.Pair) error

	// Clear removes the stored pair. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
