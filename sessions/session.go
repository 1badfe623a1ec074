package sessions

import (
	"encoding/json"
	"fmt"

	"github.com/jrsteele09/go-talent-client/token"
)

// DefaultKey is the well-known key the serialized pair is stored under
const DefaultKey = "authTokens"

// Marshal serializes a complete pair for persistence
func Marshal(pair token.Pair) ([]byte, error) {
	if err := pair.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(pair)
}

// Unmarshal decodes a persisted pair. A partial pair is not a valid state,
// so it reads back as signed out (nil) rather than as an error.
func Unmarshal(data []byte) (*token.Pair, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var pair token.Pair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil, fmt.Errorf("decoding stored session: %w", err)
	}
	if pair.Validate() != nil {
		return nil, nil
	}
	return &pair, nil
}
