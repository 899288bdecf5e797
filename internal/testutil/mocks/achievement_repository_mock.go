package mocks

import (
	"context"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockAchievementRepository is a mock implementation of repository.AchievementRepository
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) Unlocked(ctx context.Context, userID string) ([]models.UnlockedAchievement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UnlockedAchievement), args.Error(1)
}

func (m *MockAchievementRepository) UnlockedIDs(ctx context.Context, userID string) (map[string]bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockAchievementRepository) Unlock(ctx context.Context, userID string, rule models.AchievementRule, earnedAt time.Time) (bool, error) {
	args := m.Called(ctx, userID, rule, earnedAt)
	return args.Bool(0), args.Error(1)
}
