package dto

// GameProgress is the per-game rollup across a course's roster.
type GameProgress struct {
	GameID               string `json:"game_id"`
	PercentComplete      int    `json:"percent_complete"`
	TotalStudents        int    `json:"total_students"`
	StudentsWithProgress int    `json:"students_with_progress"`
}

// CourseProgressResponse aggregates class progress for every game assigned
// to a course.
type CourseProgressResponse struct {
	CourseID       uint           `json:"course_id"`
	TotalStudents  int            `json:"total_students"`
	ProgressByGame []GameProgress `json:"progress_by_game"`
}
