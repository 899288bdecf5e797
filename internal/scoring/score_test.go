package scoring_test

import (
	"testing"

	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/scoring"
	"github.com/stretchr/testify/assert"
)

func opt(i int) *int { return &i }

var twoQuestions = []models.Question{
	{CorrectOption: 1, Points: 10},
	{CorrectOption: 0, Points: 5},
}

func TestScoreAttempt_AllCorrectFirstAttempt(t *testing.T) {
	res := scoring.ScoreAttempt(twoQuestions, models.Answers{0: opt(1), 1: opt(0)}, map[int]bool{})

	assert.Equal(t, 2, res.CorrectCount)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, 15, res.NewlyEarnedPoints)
	assert.Equal(t, []int{0, 1}, res.CreditedIndices)
	assert.Equal(t, []int{0, 1}, res.NewlyCredited)
	assert.Equal(t, []bool{true, true}, res.Correct)
}

func TestScoreAttempt_AlreadyCreditedEarnsNothing(t *testing.T) {
	res := scoring.ScoreAttempt(twoQuestions, models.Answers{0: opt(1), 1: opt(1)}, map[int]bool{0: true, 1: true})

	assert.Equal(t, 1, res.CorrectCount)
	assert.Equal(t, 50, res.Score)
	assert.Equal(t, 0, res.NewlyEarnedPoints)
	assert.Empty(t, res.NewlyCredited)
	assert.Equal(t, []int{0, 1}, res.CreditedIndices)
}

func TestScoreAttempt_NoDoubleCreditAcrossAttempts(t *testing.T) {
	answers := models.Answers{0: opt(1)}

	first := scoring.ScoreAttempt(twoQuestions, answers, nil)
	credited := map[int]bool{}
	for _, i := range first.CreditedIndices {
		credited[i] = true
	}
	second := scoring.ScoreAttempt(twoQuestions, answers, credited)

	assert.Equal(t, 10, first.NewlyEarnedPoints+second.NewlyEarnedPoints)
}

func TestScoreAttempt_LaterAttemptCreditsNewQuestion(t *testing.T) {
	res := scoring.ScoreAttempt(twoQuestions, models.Answers{0: opt(1), 1: opt(0)}, map[int]bool{0: true})

	assert.Equal(t, 5, res.NewlyEarnedPoints)
	assert.Equal(t, []int{1}, res.NewlyCredited)
	assert.Equal(t, []int{0, 1}, res.CreditedIndices)
}

func TestScoreAttempt_UnansweredIsWrong(t *testing.T) {
	res := scoring.ScoreAttempt(twoQuestions, models.Answers{0: nil}, nil)

	assert.Equal(t, 0, res.CorrectCount)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, []bool{false, false}, res.Correct)
	assert.Empty(t, res.CreditedIndices)
}

func TestScoreAttempt_NoQuestions(t *testing.T) {
	res := scoring.ScoreAttempt(nil, models.Answers{0: opt(0)}, nil)

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 0, res.CorrectCount)
	assert.Equal(t, 0, res.NewlyEarnedPoints)
}

func TestScoreAttempt_RoundsScore(t *testing.T) {
	questions := []models.Question{{CorrectOption: 0}, {CorrectOption: 0}, {CorrectOption: 0}}
	res := scoring.ScoreAttempt(questions, models.Answers{0: opt(0), 1: opt(0)}, nil)

	assert.Equal(t, 67, res.Score)
}

func TestPassed(t *testing.T) {
	assert.True(t, scoring.Passed(70, 70))
	assert.False(t, scoring.Passed(69, 70))
	assert.True(t, scoring.Passed(0, 0))
}
