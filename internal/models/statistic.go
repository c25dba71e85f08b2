package models

import "time"

// GameStatistic is the append-only fact recorded each time a student plays
// an activity. Records are written by the game clients and never mutated by
// the aggregation services.
type GameStatistic struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	StudentID             uint       `gorm:"index;not null" json:"student_id"`
	GameID                string     `gorm:"size:128;index;not null" json:"game_id"`
	Level                 int        `gorm:"not null" json:"level"`
	Activity              int        `gorm:"not null" json:"activity"`
	Points                int        `json:"points"`
	TotalPoints           int        `json:"total_points"`
	Attempts              int        `json:"attempts"`
	Completed             bool       `gorm:"index" json:"completed"`
	MaxUnlockedLevel      int        `json:"max_unlocked_level"`
	CorrectAnswers        *int       `json:"correct_answers"`
	TotalQuestions        *int       `json:"total_questions"`
	CompletionTimeSeconds *int       `json:"completion_time_seconds"`
	SessionStart          *time.Time `json:"session_start"`
	SessionEnd            *time.Time `json:"session_end"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// Accuracy returns the fraction of correct answers for this record in the
// range 0..1. Records without question data contribute 0, never NaN.
func (s GameStatistic) Accuracy() float64 {
	if s.CorrectAnswers == nil || s.TotalQuestions == nil || *s.TotalQuestions <= 0 {
		return 0
	}
	return float64(*s.CorrectAnswers) / float64(*s.TotalQuestions)
}

// ActivityPosition identifies an activity by level number and 1-based
// offset within that level.
type ActivityPosition struct {
	Level    int `json:"level"`
	Activity int `json:"activity"`
}
