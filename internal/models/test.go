package models

import "time"

type Question struct {
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Points        int      `json:"points"`
}

type Test struct {
	ID              string     `json:"id"`
	LessonID        *string    `json:"lesson_id,omitempty"`
	Title           string     `json:"title"`
	PassingScore    int        `json:"passing_score"`
	AttemptsAllowed int        `json:"attempts_allowed"` // 0 means unlimited
	Questions       []Question `json:"questions"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Answers maps a question index to the selected option. A nil value means
// the question was left unanswered.
type Answers map[int]*int

// TestAttempt is append-only. CreditedIndices holds the questions whose
// points were first credited by this attempt.
type TestAttempt struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	TestID          string    `json:"test_id"`
	AttemptNumber   int       `json:"attempt_number"`
	Answers         Answers   `json:"answers"`
	Score           int       `json:"score"`
	CorrectCount    int       `json:"correct_count"`
	PointsEarned    int       `json:"points_earned"`
	CreditedIndices []int     `json:"credited_indices"`
	CreatedAt       time.Time `json:"created_at"`
}

type SubmitResult struct {
	Attempt         TestAttempt `json:"attempt"`
	Correct         []bool      `json:"correct"`
	Passed          bool        `json:"passed"`
	CreditedIndices []int       `json:"credited_indices"` // cumulative across attempts
}
