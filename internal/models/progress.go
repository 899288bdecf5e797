package models

import "time"

// LessonProgress is one user's completion record for a lesson.
// CompletedAt is nil when the lesson is not completed or the stored
// timestamp could not be read.
type LessonProgress struct {
	UserID      string     `json:"user_id"`
	LessonID    string     `json:"lesson_id"`
	CourseID    string     `json:"course_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type CourseProgress struct {
	CourseID         string `json:"course_id"`
	Title            string `json:"title"`
	CompletedLessons int    `json:"completed_lessons"`
	TotalLessons     int    `json:"total_lessons"`
	Percent          int    `json:"percent"`
}

// ProgressStats is derived from the full set of a user's progress records
// on every read. It is never stored.
type ProgressStats struct {
	CompletedLessons int              `json:"completed_lessons"`
	TotalLessons     int              `json:"total_lessons"`
	OverallPercent   int              `json:"overall_percent"`
	Courses          []CourseProgress `json:"courses"`
	CoursesCompleted int              `json:"courses_completed"`

	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	StreakActive     bool   `json:"streak_active"`
	LastActivityDate string `json:"last_activity_date,omitempty"`

	NightLessons   int `json:"night_lessons"`
	MorningLessons int `json:"morning_lessons"`
	PerfectLessons int `json:"perfect_lessons"`

	Points int  `json:"points"`
	Rank   *int `json:"rank"`
}
