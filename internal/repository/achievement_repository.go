package repository

import (
	"context"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/models"
)

// AchievementRepository handles unlocked achievements
type AchievementRepository interface {
	Unlocked(ctx context.Context, userID string) ([]models.UnlockedAchievement, error)
	UnlockedIDs(ctx context.Context, userID string) (map[string]bool, error)
	// Unlock records the achievement and credits its points in one
	// transaction. It reports false, crediting nothing, when the user
	// already had it.
	Unlock(ctx context.Context, userID string, rule models.AchievementRule, earnedAt time.Time) (bool, error)
}
