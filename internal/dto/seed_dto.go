package dto

// GameLevelSeed is one level definition in a seed payload.
type GameLevelSeed struct {
	GameID          string                 `json:"game_id" validate:"required,min=1,max=128"`
	LevelNumber     int                    `json:"level_number" validate:"required,min=1"`
	ActivitiesCount int                    `json:"activities_count" validate:"min=0"`
	Difficulty      string                 `json:"difficulty" validate:"omitempty,max=32"`
	Config          map[string]interface{} `json:"config"`
}

// SeedGameLevelsRequest carries a batch of level definitions to upsert.
type SeedGameLevelsRequest struct {
	Items []GameLevelSeed `json:"items" validate:"required,min=1,dive"`
}

// CourseGameSeed assigns one game to a course.
type CourseGameSeed struct {
	CourseID uint   `json:"course_id" validate:"required,min=1"`
	GameID   string `json:"game_id" validate:"required,min=1,max=128"`
}

// SeedCourseGamesRequest carries a batch of course game assignments.
type SeedCourseGamesRequest struct {
	Items []CourseGameSeed `json:"items" validate:"required,min=1,dive"`
}
