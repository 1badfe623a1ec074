package sessions_test

import (
	"testing"

	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
	"github.com/jrsteele09/go-talent-client/sessions"
	"github.com/jrsteele09/go-talent-client/token"
	"github.com/stretchr/testify/require"
)

func TestMarshal_RejectsPartialPair(t *testing.T) {
	_, err := sessions.Marshal(token.Pair{Access: "A1"})
	require.ErrorIs(t, err, apperrors.ErrPartialCredential)
}

func TestUnmarshal(t *testing.T) {
	data, err := sessions.Marshal(token.Pair{Access: "A1", Refresh: "R1"})
	require.NoError(t, err)
	require.JSONEq(t, `{"access":"A1","refresh":"R1"}`, string(data))

	pair, err := sessions.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, &token.Pair{Access: "A1", Refresh: "R1"}, pair)
}

func TestUnmarshal_EmptyAndPartialAreSignedOut(t *testing.T) {
	pair, err := sessions.Unmarshal(nil)
	require.NoError(t, err)
	require.Nil(t, pair)

	pair, err = sessions.Unmarshal([]byte(`{"access":"A1"}`))
	require.NoError(t, err)
	require.Nil(t, pair)
}

func TestUnmarshal_Corrupt(t *testing.T) {
	_, err := sessions.Unmarshal([]byte(`{"access":`))
	require.Error(t, err)
}
