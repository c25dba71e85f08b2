package models

import (
	"time"

	"gorm.io/datatypes"
)

// GameLevel describes one level of a game: its position in the level
// sequence and how many activities it contains. Level numbers are unique
// per game; the config map is opaque to the backend and forwarded to the
// game client as-is.
type GameLevel struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	GameID          string            `gorm:"size:128;index:idx_game_level,unique;not null" json:"game_id"`
	LevelNumber     int               `gorm:"index:idx_game_level,unique;not null" json:"level_number"`
	ActivitiesCount int               `gorm:"not null" json:"activities_count"`
	Difficulty      string            `gorm:"size:32" json:"difficulty"`
	Config          datatypes.JSONMap `gorm:"type:json" json:"config"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
