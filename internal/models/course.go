package models

import "time"

// Course groups students and the games assigned to them.
type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Grade     string    `gorm:"size:32" json:"grade"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Students  []Student `json:"-"`
}

// CourseGame assigns a game to a course. A course may enable any number of games.
type CourseGame struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"index:idx_course_game,unique;not null" json:"course_id"`
	GameID    string    `gorm:"size:128;index:idx_course_game,unique;not null" json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
}
