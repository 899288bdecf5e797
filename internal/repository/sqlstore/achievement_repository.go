package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/db"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/repository"
)

type achievementRepository struct {
	db *db.DB
}

// NewAchievementRepository creates a new AchievementRepository implementation
func NewAchievementRepository(database *db.DB) repository.AchievementRepository {
	return &achievementRepository{db: database}
}

func (r *achievementRepository) Unlocked(ctx context.Context, userID string) ([]models.UnlockedAchievement, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")
	log.Debug("listing unlocked achievements: user_id=%s", userID)

	rows, err := r.db.Builder().
		Select("user_id", "achievement_id", "earned_at").
		From("user_achievements").
		Where("user_id = ?", userID).
		OrderBy("earned_at", "achievement_id").
		RunWith(r.db.DB).
		QueryContext(ctx)
	if err != nil {
		log.Error("failed to list achievements: %v", err)
		return nil, err
	}
	defer rows.Close()

	unlocked := []models.UnlockedAchievement{}
	for rows.Next() {
		var u models.UnlockedAchievement
		if err := rows.Scan(&u.UserID, &u.AchievementID, &u.EarnedAt); err != nil {
			return nil, err
		}
		unlocked = append(unlocked, u)
	}
	return unlocked, rows.Err()
}

func (r *achievementRepository) UnlockedIDs(ctx context.Context, userID string) (map[string]bool, error) {
	unlocked, err := r.Unlocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(unlocked))
	for _, u := range unlocked {
		ids[u.AchievementID] = true
	}
	return ids, nil
}

func (r *achievementRepository) Unlock(ctx context.Context, userID string, rule models.AchievementRule, earnedAt time.Time) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")
	earnedAt = orNow(earnedAt)

	var inserted bool
	err := r.db.Tx(ctx, func(tx *sql.Tx) error {
		res, err := r.db.Builder().
			Insert("user_achievements").
			Columns("user_id", "achievement_id", "points_awarded", "earned_at").
			Values(userID, rule.ID, rule.PointsAwarded, earnedAt).
			Suffix("ON CONFLICT (user_id, achievement_id) DO NOTHING").
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		inserted = true
		return creditPoints(ctx, r.db.Builder(), tx, userID, rule.PointsAwarded, earnedAt)
	})
	if err != nil {
		log.Error("failed to unlock achievement %s: %v", rule.ID, err)
		return false, err
	}
	if inserted {
		log.Info("achievement unlocked: user_id=%s achievement=%s points=%d", userID, rule.ID, rule.PointsAwarded)
	} else {
		log.Debug("achievement already unlocked: user_id=%s achievement=%s", userID, rule.ID)
	}
	return inserted, nil
}
