package scoring

import (
	"errors"
	"fmt"

	"github.com/bbaxromov14/eduhelper/internal/models"
)

var ErrAttemptsExhausted = errors.New("no attempts left")

// NextAttemptNumber is one past the highest attempt number in attempts.
func NextAttemptNumber(attempts []models.TestAttempt) int {
	highest := 0
	for _, a := range attempts {
		highest = max(highest, a.AttemptNumber)
	}
	return highest + 1
}

// CheckAttemptLimit rejects a new attempt once used reaches allowed.
// allowed == 0 means unlimited.
func CheckAttemptLimit(allowed, used int) error {
	if allowed > 0 && used >= allowed {
		return ErrAttemptsExhausted
	}
	return nil
}

// BestAttempt returns the highest scoring attempt; ties go to the earlier
// attempt.
func BestAttempt(attempts []models.TestAttempt) (models.TestAttempt, bool) {
	if len(attempts) == 0 {
		return models.TestAttempt{}, false
	}
	best := attempts[0]
	for _, a := range attempts[1:] {
		if a.Score > best.Score || (a.Score == best.Score && a.AttemptNumber < best.AttemptNumber) {
			best = a
		}
	}
	return best, true
}

// PreviouslyCredited is the union of the credited indices of attempts.
func PreviouslyCredited(attempts []models.TestAttempt) map[int]bool {
	credited := make(map[int]bool)
	for _, a := range attempts {
		for _, i := range a.CreditedIndices {
			credited[i] = true
		}
	}
	return credited
}

// ValidateAnswers checks that every answered index refers to a question and
// every selected option exists.
func ValidateAnswers(questions []models.Question, answers models.Answers) error {
	for i, selected := range answers {
		if i < 0 || i >= len(questions) {
			return fmt.Errorf("answer for question %d: test has %d questions", i, len(questions))
		}
		if selected == nil {
			continue
		}
		if *selected < 0 || *selected >= len(questions[i].Options) {
			return fmt.Errorf("answer for question %d: option %d out of range", i, *selected)
		}
	}
	return nil
}
