package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeGameID(t *testing.T) {
	require.Equal(t, "ordenamiento", NormalizeGameID("game-ordenamiento"))
	require.Equal(t, "ordenamiento", NormalizeGameID("ordenamiento"))
	require.Equal(t, "", NormalizeGameID("game-"))
	require.Equal(t, "Game-ordenamiento", NormalizeGameID("Game-ordenamiento"), "prefix match is case sensitive")
}
