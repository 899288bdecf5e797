package worker

import (
	"context"

	"github.com/bbaxromov14/eduhelper/internal/models"
)

// AchievementSyncer is the slice of the achievement service the sync job
// needs. It lives here so worker does not import services.
type AchievementSyncer interface {
	Sync(ctx context.Context, userID string) ([]models.AchievementRule, error)
}

// SyncAchievementsJob re-evaluates one user's achievements.
type SyncAchievementsJob struct {
	Syncer  AchievementSyncer
	UserID  string
	OnStart func()
}

func (j *SyncAchievementsJob) Name() string { return "sync_achievements" }

func (j *SyncAchievementsJob) Run(ctx context.Context) error {
	if j.OnStart != nil {
		j.OnStart()
	}
	_, err := j.Syncer.Sync(ctx, j.UserID)
	return err
}
