package scoring_test

import (
	"testing"

	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextAttemptNumber(t *testing.T) {
	assert.Equal(t, 1, scoring.NextAttemptNumber(nil))
	assert.Equal(t, 4, scoring.NextAttemptNumber([]models.TestAttempt{
		{AttemptNumber: 1}, {AttemptNumber: 3}, {AttemptNumber: 2},
	}))
}

func TestCheckAttemptLimit(t *testing.T) {
	tests := []struct {
		name    string
		allowed int
		used    int
		wantErr bool
	}{
		{"unlimited", 0, 100, false},
		{"first of three", 3, 0, false},
		{"last of three", 3, 2, false},
		{"exhausted", 3, 3, true},
		{"over limit", 1, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := scoring.CheckAttemptLimit(tt.allowed, tt.used)
			if tt.wantErr {
				assert.ErrorIs(t, err, scoring.ErrAttemptsExhausted)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBestAttempt(t *testing.T) {
	_, ok := scoring.BestAttempt(nil)
	assert.False(t, ok)

	best, ok := scoring.BestAttempt([]models.TestAttempt{
		{AttemptNumber: 1, Score: 50},
		{AttemptNumber: 2, Score: 80},
		{AttemptNumber: 3, Score: 80},
		{AttemptNumber: 4, Score: 20},
	})
	require.True(t, ok)
	assert.Equal(t, 2, best.AttemptNumber)
}

func TestPreviouslyCredited(t *testing.T) {
	credited := scoring.PreviouslyCredited([]models.TestAttempt{
		{CreditedIndices: []int{0, 2}},
		{CreditedIndices: []int{1}},
		{},
	})

	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true}, credited)
}

func TestValidateAnswers(t *testing.T) {
	questions := []models.Question{
		{Options: []string{"a", "b"}},
		{Options: []string{"a", "b", "c"}},
	}

	assert.NoError(t, scoring.ValidateAnswers(questions, models.Answers{0: opt(1), 1: nil}))
	assert.Error(t, scoring.ValidateAnswers(questions, models.Answers{2: opt(0)}))
	assert.Error(t, scoring.ValidateAnswers(questions, models.Answers{-1: opt(0)}))
	assert.Error(t, scoring.ValidateAnswers(questions, models.Answers{0: opt(2)}))
	assert.Error(t, scoring.ValidateAnswers(questions, models.Answers{1: opt(-1)}))
}
