package services_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/config"
	"github.com/bbaxromov14/eduhelper/internal/errors"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/realtime"
	"github.com/bbaxromov14/eduhelper/internal/repository"
	"github.com/bbaxromov14/eduhelper/internal/services"
	"github.com/bbaxromov14/eduhelper/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return now }

func opt(i int) *int { return &i }

func quiz(allowed int) *models.Test {
	return &models.Test{
		ID:              "t1",
		Title:           "Fractions quiz",
		PassingScore:    60,
		AttemptsAllowed: allowed,
		Questions: []models.Question{
			{Prompt: "1/2 + 1/2", Options: []string{"1", "2"}, CorrectOption: 0, Points: 5},
			{Prompt: "1/4 * 2", Options: []string{"1/2", "1/8"}, CorrectOption: 0, Points: 5},
		},
	}
}

func attemptNumber(n int) interface{} {
	return mock.MatchedBy(func(a models.TestAttempt) bool { return a.AttemptNumber == n })
}

func TestSubmit_FirstAttemptCreditsAllCorrect(t *testing.T) {
	repo := new(mocks.MockTestRepository)
	pub := new(mocks.MockPublisher)
	svc := services.NewTestService(repo, pub, 1, fixedClock)

	repo.On("Get", mock.Anything, "t1").Return(quiz(0), nil)
	repo.On("ListAttempts", mock.Anything, "u1", "t1").Return([]models.TestAttempt{}, nil)
	repo.On("InsertAttempt", mock.Anything, mock.MatchedBy(func(a models.TestAttempt) bool {
		return a.AttemptNumber == 1 && a.PointsEarned == 10 && a.Score == 100 && a.UserID == "u1" && a.ID != ""
	})).Return(nil)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e realtime.Event) bool {
		return e.Type == realtime.EventAttemptSubmitted && e.UserID == "u1" && e.Subject == "t1"
	})).Return(nil)

	res, err := svc.Submit(context.Background(), "u1", "t1", models.Answers{0: opt(0), 1: opt(0)})
	require.NoError(t, err)

	assert.True(t, res.Passed)
	assert.Equal(t, []bool{true, true}, res.Correct)
	assert.Equal(t, []int{0, 1}, res.CreditedIndices)
	assert.Equal(t, now, res.Attempt.CreatedAt)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestSubmit_AttemptsExhausted(t *testing.T) {
	repo := new(mocks.MockTestRepository)
	svc := services.NewTestService(repo, nil, 1, fixedClock)

	repo.On("Get", mock.Anything, "t1").Return(quiz(1), nil)
	repo.On("ListAttempts", mock.Anything, "u1", "t1").Return([]models.TestAttempt{{AttemptNumber: 1, Score: 50}}, nil)

	_, err := svc.Submit(context.Background(), "u1", "t1", models.Answers{0: opt(0)})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAttemptsExhausted))
	repo.AssertNotCalled(t, "InsertAttempt", mock.Anything, mock.Anything)
}

func TestSubmit_RetryRescoresAgainstWinner(t *testing.T) {
	repo := new(mocks.MockTestRepository)
	svc := services.NewTestService(repo, nil, 2, fixedClock)

	winner := models.TestAttempt{AttemptNumber: 1, Score: 50, CreditedIndices: []int{0}}

	repo.On("Get", mock.Anything, "t1").Return(quiz(0), nil)
	repo.On("ListAttempts", mock.Anything, "u1", "t1").Return([]models.TestAttempt{}, nil).Once()
	repo.On("ListAttempts", mock.Anything, "u1", "t1").Return([]models.TestAttempt{winner}, nil).Once()
	repo.On("InsertAttempt", mock.Anything, attemptNumber(1)).Return(repository.ErrDuplicate).Once()
	repo.On("InsertAttempt", mock.Anything, mock.MatchedBy(func(a models.TestAttempt) bool {
		return a.AttemptNumber == 2 && a.PointsEarned == 5 && assert.ObjectsAreEqual([]int{1}, a.CreditedIndices)
	})).Return(nil).Once()

	res, err := svc.Submit(context.Background(), "u1", "t1", models.Answers{0: opt(0), 1: opt(0)})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Attempt.AttemptNumber)
	assert.Equal(t, 5, res.Attempt.PointsEarned)
	assert.Equal(t, []int{0, 1}, res.CreditedIndices)
	repo.AssertExpectations(t)
}

func TestSubmit_RetryRespectsLimit(t *testing.T) {
	repo := new(mocks.MockTestRepository)
	svc := services.NewTestService(repo, nil, 3, fixedClock)

	repo.On("Get", mock.Anything, "t1").Return(quiz(1), nil)
	repo.On("ListAttempts", mock.Anything, "u1", "t1").Return([]models.TestAttempt{}, nil).Once()
	repo.On("ListAttempts", mock.Anything, "u1", "t1").Return([]models.TestAttempt{{AttemptNumber: 1}}, nil).Once()
	repo.On("InsertAttempt", mock.Anything, attemptNumber(1)).Return(repository.ErrDuplicate).Once()

	_, err := svc.Submit(context.Background(), "u1", "t1", models.Answers{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeAttemptsExhausted))
	repo.AssertExpectations(t)
}

func TestSubmit_ConflictAfterRetries(t *testing.T) {
	repo := new(mocks.MockTestRepository)
	svc := services.NewTestService(repo, nil, 1, fixedClock)
	var logs bytes.Buffer
	ctx := logger.NewContext(context.Background(), logger.New(logger.WithOutput(&logs), logger.WithColors(false)))

	repo.On("Get", mock.Anything, "t1").Return(quiz(0), nil)
	repo.On("ListAttempts", mock.Anything, "u1", "t1").Return([]models.TestAttempt{}, nil)
	repo.On("InsertAttempt", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Submit(ctx, "u1", "t1", models.Answers{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	repo.AssertNumberOfCalls(t, "ListAttempts", 2)
	repo.AssertNumberOfCalls(t, "InsertAttempt", 2)

	assert.Equal(t, 1, strings.Count(logs.String(), "retrying"), "no retry is announced for the last try")
	assert.Contains(t, logs.String(), "giving up after 2 conflicting inserts")
}

func TestSubmit_DefaultConfigRetriesAfterConflict(t *testing.T) {
	t.Setenv("ATTEMPT_INSERT_RETRIES", "")
	cfg := config.Load()

	repo := new(mocks.MockTestRepository)
	svc := services.NewTestService(repo, nil, cfg.AttemptInsertRetries, fixedClock)

	repo.On("Get", mock.Anything, "t1").Return(quiz(0), nil)
	repo.On("ListAttempts", mock.Anything, "u1", "t1").Return([]models.TestAttempt{}, nil).Once()
	repo.On("ListAttempts", mock.Anything, "u1", "t1").Return([]models.TestAttempt{{AttemptNumber: 1}}, nil).Once()
	repo.On("InsertAttempt", mock.Anything, attemptNumber(1)).Return(repository.ErrDuplicate).Once()
	repo.On("InsertAttempt", mock.Anything, attemptNumber(2)).Return(nil).Once()

	res, err := svc.Submit(context.Background(), "u1", "t1", models.Answers{0: opt(0)})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempt.AttemptNumber)
	repo.AssertExpectations(t)
}

func TestSubmit_RetriesBelowOneStillRetryOnce(t *testing.T) {
	repo := new(mocks.MockTestRepository)
	svc := services.NewTestService(repo, nil, 0, fixedClock)

	repo.On("Get", mock.Anything, "t1").Return(quiz(0), nil)
	repo.On("ListAttempts", mock.Anything, "u1", "t1").Return([]models.TestAttempt{}, nil)
	repo.On("InsertAttempt", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Submit(context.Background(), "u1", "t1", models.Answers{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))
	repo.AssertNumberOfCalls(t, "InsertAttempt", 2)
}

func TestSubmit_InvalidAnswers(t *testing.T) {
	repo := new(mocks.MockTestRepository)
	svc := services.NewTestService(repo, nil, 1, fixedClock)
	repo.On("Get", mock.Anything, "t1").Return(quiz(0), nil)

	_, err := svc.Submit(context.Background(), "u1", "t1", models.Answers{5: opt(0)})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = svc.Submit(context.Background(), "u1", "t1", models.Answers{0: opt(7)})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	repo.AssertNotCalled(t, "ListAttempts", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_UnknownTest(t *testing.T) {
	repo := new(mocks.MockTestRepository)
	svc := services.NewTestService(repo, nil, 1, fixedClock)
	repo.On("Get", mock.Anything, "nope").Return(nil, repository.ErrNotFound)

	_, err := svc.Submit(context.Background(), "u1", "nope", models.Answers{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestSubmit_PublishFailureIsNotFatal(t *testing.T) {
	repo := new(mocks.MockTestRepository)
	pub := new(mocks.MockPublisher)
	svc := services.NewTestService(repo, pub, 1, fixedClock)

	repo.On("Get", mock.Anything, "t1").Return(quiz(0), nil)
	repo.On("ListAttempts", mock.Anything, "u1", "t1").Return([]models.TestAttempt{}, nil)
	repo.On("InsertAttempt", mock.Anything, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(stderrors.New("redis down"))

	res, err := svc.Submit(context.Background(), "u1", "t1", models.Answers{0: opt(1)})
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, 0, res.Attempt.Score)
}

func TestSubmit_StorageFailure(t *testing.T) {
	repo := new(mocks.MockTestRepository)
	svc := services.NewTestService(repo, nil, 1, fixedClock)

	repo.On("Get", mock.Anything, "t1").Return(quiz(0), nil)
	repo.On("ListAttempts", mock.Anything, "u1", "t1").Return(nil, stderrors.New("connection reset"))

	_, err := svc.Submit(context.Background(), "u1", "t1", models.Answers{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
}

func TestBestAttempt(t *testing.T) {
	repo := new(mocks.MockTestRepository)
	svc := services.NewTestService(repo, nil, 1, fixedClock)

	repo.On("Get", mock.Anything, "t1").Return(quiz(0), nil)
	repo.On("ListAttempts", mock.Anything, "u1", "t1").Return([]models.TestAttempt{
		{AttemptNumber: 1, Score: 50},
		{AttemptNumber: 2, Score: 100},
		{AttemptNumber: 3, Score: 100},
	}, nil)
	repo.On("ListAttempts", mock.Anything, "u2", "t1").Return([]models.TestAttempt{}, nil)

	best, err := svc.BestAttempt(context.Background(), "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, 2, best.AttemptNumber)

	_, err = svc.BestAttempt(context.Background(), "u2", "t1")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}
