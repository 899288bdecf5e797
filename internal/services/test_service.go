package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/errors"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/realtime"
	"github.com/bbaxromov14/eduhelper/internal/repository"
	"github.com/bbaxromov14/eduhelper/internal/scoring"
	"github.com/google/uuid"
)

// TestService serves tests and grades attempts
type TestService interface {
	GetTest(ctx context.Context, testID string) (*models.Test, error)
	ListAttempts(ctx context.Context, userID, testID string) ([]models.TestAttempt, error)
	BestAttempt(ctx context.Context, userID, testID string) (*models.TestAttempt, error)
	Submit(ctx context.Context, userID, testID string, answers models.Answers) (*models.SubmitResult, error)
}

type testService struct {
	testRepo  repository.TestRepository
	publisher realtime.Publisher
	retries   int
	clock     Clock
}

// NewTestService creates a new TestService. retries is how many times Submit
// re-reads and inserts again after losing an attempt-number race; the first
// insert is not counted.
func NewTestService(testRepo repository.TestRepository, publisher realtime.Publisher, retries int, clock Clock) TestService {
	if retries < 1 {
		retries = 1
	}
	return &testService{
		testRepo:  testRepo,
		publisher: publisher,
		retries:   retries,
		clock:     clock,
	}
}

func (s *testService) GetTest(ctx context.Context, testID string) (*models.Test, error) {
	test, err := s.testRepo.Get(ctx, testID)
	if err != nil {
		if !stderrors.Is(err, repository.ErrNotFound) {
			logger.FromContext(ctx).Error("failed to get test %s: %v", testID, err)
		}
		return nil, lookupError(err, "test", testID)
	}
	return test, nil
}

func (s *testService) ListAttempts(ctx context.Context, userID, testID string) ([]models.TestAttempt, error) {
	if _, err := s.GetTest(ctx, testID); err != nil {
		return nil, err
	}
	attempts, err := s.testRepo.ListAttempts(ctx, userID, testID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list attempts for test %s: %v", testID, err)
		return nil, errors.NewInternalError(err)
	}
	return attempts, nil
}

func (s *testService) BestAttempt(ctx context.Context, userID, testID string) (*models.TestAttempt, error) {
	attempts, err := s.ListAttempts(ctx, userID, testID)
	if err != nil {
		return nil, err
	}
	best, ok := scoring.BestAttempt(attempts)
	if !ok {
		return nil, errors.NewNotFoundError("attempt for test", testID)
	}
	return &best, nil
}

func (s *testService) Submit(ctx context.Context, userID, testID string, answers models.Answers) (*models.SubmitResult, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{"user_id": userID, "test_id": testID})

	test, err := s.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	if err := scoring.ValidateAnswers(test.Questions, answers); err != nil {
		return nil, errors.NewValidationError("answers", err.Error())
	}

	var lastErr error
	for try := 0; try <= s.retries; try++ {
		// Attempts are re-read on every try: a concurrent submission may have
		// taken our attempt number and credited some of our questions.
		attempts, err := s.testRepo.ListAttempts(ctx, userID, testID)
		if err != nil {
			log.Error("failed to list attempts: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if err := scoring.CheckAttemptLimit(test.AttemptsAllowed, len(attempts)); err != nil {
			log.Info("attempt limit of %d reached", test.AttemptsAllowed)
			return nil, errors.NewAttemptsExhaustedError(testID, test.AttemptsAllowed)
		}

		res := scoring.ScoreAttempt(test.Questions, answers, scoring.PreviouslyCredited(attempts))
		attempt := models.TestAttempt{
			ID:              uuid.NewString(),
			UserID:          userID,
			TestID:          testID,
			AttemptNumber:   scoring.NextAttemptNumber(attempts),
			Answers:         answers,
			Score:           res.Score,
			CorrectCount:    res.CorrectCount,
			PointsEarned:    res.NewlyEarnedPoints,
			CreditedIndices: res.NewlyCredited,
			CreatedAt:       s.clock.now(),
		}

		err = s.testRepo.InsertAttempt(ctx, attempt)
		if stderrors.Is(err, repository.ErrDuplicate) {
			lastErr = err
			if try < s.retries {
				log.Warn("attempt %d already taken, retrying", attempt.AttemptNumber)
			}
			continue
		}
		if err != nil {
			log.Error("failed to store attempt: %v", err)
			return nil, errors.NewInternalError(err)
		}

		log.Info("attempt %d scored %d%% (+%d points)", attempt.AttemptNumber, attempt.Score, attempt.PointsEarned)
		publish(ctx, s.publisher, realtime.Event{
			Type:    realtime.EventAttemptSubmitted,
			UserID:  userID,
			Subject: testID,
			At:      attempt.CreatedAt,
		})
		return &models.SubmitResult{
			Attempt:         attempt,
			Correct:         res.Correct,
			Passed:          scoring.Passed(res.Score, test.PassingScore),
			CreditedIndices: res.CreditedIndices,
		}, nil
	}

	log.Warn("giving up after %d conflicting inserts", s.retries+1)
	return nil, errors.NewConflictError(fmt.Sprintf("attempt for test %s conflicted with another submission, try again", testID), lastErr)
}

// publish notifies subscribers. The write already succeeded, so a delivery
// failure is only logged.
func publish(ctx context.Context, p realtime.Publisher, e realtime.Event) {
	if p == nil {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	if err := p.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("failed to publish %s for user %s: %v", e.Type, e.UserID, err)
	}
}
