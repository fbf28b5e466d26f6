package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	playerId := uuid.New()

	token, err := GenerateToken(playerId)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := CheckToken(token)
	require.NoError(t, err)
	assert.Equal(t, playerId, got)
}

func TestCheckTokenRejectsGarbage(t *testing.T) {
	_, err := CheckToken("not-a-token")
	assert.Error(t, err)
}
