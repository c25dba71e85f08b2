package dto

import "time"

// PerGameStats summarises a student's raw activity records for one game.
type PerGameStats struct {
	GameID           string `json:"game_id"`
	CompletedCount   int    `json:"completed_count"`
	TotalTimeSeconds int    `json:"total_time_seconds"`
	AverageScore     int    `json:"average_score"`
}

// StudentStatisticsResponse maps normalized game identifiers to the per-game
// summary for one student.
type StudentStatisticsResponse struct {
	StudentID uint                    `json:"student_id"`
	Games     map[string]PerGameStats `json:"games"`
}

// GameAggregate carries all-time and recent-window metrics for one game.
type GameAggregate struct {
	GameID             string     `json:"game_id"`
	TotalSessions      int        `json:"total_sessions"`
	TotalPoints        int        `json:"total_points"`
	MaxUnlockedLevel   int        `json:"max_unlocked_level"`
	CompletionRatePct  int        `json:"completion_rate_pct"`
	AverageAccuracyPct int        `json:"average_accuracy_pct"`
	RecentSessions     int        `json:"recent_sessions"`
	RecentPoints       int        `json:"recent_points"`
	LastActivityAt     *time.Time `json:"last_activity_at"`
}

// StudentProgressResponse summarises a student's activity across every game
// they have played.
type StudentProgressResponse struct {
	StudentID        uint            `json:"student_id"`
	GameProgress     []GameAggregate `json:"game_progress"`
	TotalPoints      int             `json:"total_points"`
	TotalGamesPlayed int             `json:"total_games_played"`
}
