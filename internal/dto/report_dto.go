package dto

import "time"

// ReportMetadata collects the cross-game numbers a narrative report is
// generated from.
type ReportMetadata struct {
	TotalRecords       int        `json:"total_records"`
	TotalPoints        int        `json:"total_points"`
	CompletedLevels    int        `json:"completed_levels"`
	AverageAccuracyPct int        `json:"average_accuracy_pct"`
	TotalAttempts      int        `json:"total_attempts"`
	GamesPlayed        int        `json:"games_played"`
	RecentSessions     int        `json:"recent_sessions"`
	RecentPoints       int        `json:"recent_points"`
	LastActivityAt     *time.Time `json:"last_activity_at"`
}

// StudentReportResponse is the narrative progress report for one student.
type StudentReportResponse struct {
	StudentID    uint           `json:"student_id"`
	StudentName  string         `json:"student_name"`
	Report       string         `json:"report"`
	Provider     string         `json:"provider"`
	Model        string         `json:"model"`
	RecentDays   int            `json:"recent_days"`
	Prompt       string         `json:"prompt"`
	Metadata     ReportMetadata `json:"metadata"`
	UsedFallback bool           `json:"used_fallback"`
	GeneratedAt  time.Time      `json:"generated_at"`
}
