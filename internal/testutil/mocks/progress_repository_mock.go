package mocks

import (
	"context"

	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) ListByUser(ctx context.Context, userID string) ([]models.LessonProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LessonProgress), args.Error(1)
}

func (m *MockProgressRepository) Upsert(ctx context.Context, p models.LessonProgress) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
