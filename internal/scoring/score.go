// Package scoring grades test attempts and enforces the attempt rules.
package scoring

import (
	"math"
	"sort"

	"github.com/bbaxromov14/eduhelper/internal/models"
)

type Result struct {
	Score             int
	CorrectCount      int
	NewlyEarnedPoints int
	NewlyCredited     []int  // indices first credited by this attempt
	CreditedIndices   []int  // every index credited so far, including this attempt
	Correct           []bool // per question
}

// ScoreAttempt grades answers against questions. Points of a correct
// question are earned only if its index is not in previouslyCredited, so a
// question pays out at most once per user across all attempts.
func ScoreAttempt(questions []models.Question, answers models.Answers, previouslyCredited map[int]bool) Result {
	res := Result{
		Correct:         make([]bool, len(questions)),
		NewlyCredited:   []int{},
		CreditedIndices: []int{},
	}

	credited := make(map[int]bool, len(previouslyCredited)+len(questions))
	for i, ok := range previouslyCredited {
		if ok {
			credited[i] = true
		}
	}

	for i, q := range questions {
		selected, answered := answers[i]
		if !answered || selected == nil || *selected != q.CorrectOption {
			continue
		}
		res.Correct[i] = true
		res.CorrectCount++
		if credited[i] {
			continue
		}
		credited[i] = true
		res.NewlyCredited = append(res.NewlyCredited, i)
		res.NewlyEarnedPoints += q.Points
	}

	for i := range credited {
		res.CreditedIndices = append(res.CreditedIndices, i)
	}
	sort.Ints(res.CreditedIndices)

	if len(questions) > 0 {
		res.Score = int(math.Round(100 * float64(res.CorrectCount) / float64(len(questions))))
	}
	return res
}

// Passed reports whether score reaches passingScore.
func Passed(score, passingScore int) bool {
	return score >= passingScore
}
