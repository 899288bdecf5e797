package mocks

import (
	"context"

	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockTestRepository is a mock implementation of repository.TestRepository
type MockTestRepository struct {
	mock.Mock
}

func (m *MockTestRepository) Get(ctx context.Context, id string) (*models.Test, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Test), args.Error(1)
}

func (m *MockTestRepository) Upsert(ctx context.Context, test models.Test) error {
	args := m.Called(ctx, test)
	return args.Error(0)
}

func (m *MockTestRepository) ListAttempts(ctx context.Context, userID, testID string) ([]models.TestAttempt, error) {
	args := m.Called(ctx, userID, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TestAttempt), args.Error(1)
}

func (m *MockTestRepository) InsertAttempt(ctx context.Context, attempt models.TestAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockTestRepository) PerfectLessonIDs(ctx context.Context, userID string) (map[string]bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}
