package service

import "strings"

const gameIDPrefix = "game-"

// NormalizeGameID strips the legacy "game-" prefix some clients still send,
// so "game-ordenamiento" and "ordenamiento" group under the same key. This
// is the only place the prefix rule lives; callers must not re-apply it.
func NormalizeGameID(gameID string) string {
	return strings.TrimPrefix(gameID, gameIDPrefix)
}
