package repository

import (
	"context"

	"github.com/bbaxromov14/eduhelper/internal/models"
)

// UserRepository exposes point totals and leaderboard placement
type UserRepository interface {
	Points(ctx context.Context, userID string) (int, error)
	// Rank is 1 plus the number of users with more points, or nil when the
	// user has never earned points.
	Rank(ctx context.Context, userID string) (*int, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}
