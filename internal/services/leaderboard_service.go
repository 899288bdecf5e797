package services

import (
	"context"

	"github.com/bbaxromov14/eduhelper/internal/errors"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/repository"
)

const maxLeaderboard = 100

// LeaderboardService ranks users by points
type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

type leaderboardService struct {
	userRepo repository.UserRepository
}

func NewLeaderboardService(userRepo repository.UserRepository) LeaderboardService {
	return &leaderboardService{userRepo: userRepo}
}

// Top returns the highest ranked users. limit is clamped to 1..100.
func (s *leaderboardService) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 || limit > maxLeaderboard {
		limit = maxLeaderboard
	}
	entries, err := s.userRepo.Leaderboard(ctx, limit)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load leaderboard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}
