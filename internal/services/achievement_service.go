package services

import (
	"context"

	"github.com/bbaxromov14/eduhelper/internal/achievement"
	"github.com/bbaxromov14/eduhelper/internal/errors"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/repository"
)

// AchievementService evaluates and records achievements
type AchievementService interface {
	Catalog() []models.AchievementRule
	List(ctx context.Context, userID string) ([]models.AchievementStatus, error)
	// Sync unlocks every achievement the user now satisfies and returns the
	// ones unlocked by this call.
	Sync(ctx context.Context, userID string) ([]models.AchievementRule, error)
}

type achievementService struct {
	achievementRepo repository.AchievementRepository
	progress        ProgressService
	catalog         *achievement.Catalog
	clock           Clock
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(
	achievementRepo repository.AchievementRepository,
	progress ProgressService,
	catalog *achievement.Catalog,
	clock Clock,
) AchievementService {
	return &achievementService{
		achievementRepo: achievementRepo,
		progress:        progress,
		catalog:         catalog,
		clock:           clock,
	}
}

func (s *achievementService) Catalog() []models.AchievementRule {
	return s.catalog.Rules()
}

func (s *achievementService) List(ctx context.Context, userID string) ([]models.AchievementStatus, error) {
	log := logger.FromContext(ctx).WithField("user_id", userID)

	unlocked, err := s.achievementRepo.Unlocked(ctx, userID)
	if err != nil {
		log.Error("failed to load unlocked achievements: %v", err)
		return nil, errors.NewInternalError(err)
	}
	earned := make(map[string]models.UnlockedAchievement, len(unlocked))
	for _, u := range unlocked {
		earned[u.AchievementID] = u
	}

	rules := s.catalog.Rules()
	out := make([]models.AchievementStatus, 0, len(rules))
	for _, r := range rules {
		st := models.AchievementStatus{AchievementRule: r}
		if u, ok := earned[r.ID]; ok {
			at := u.EarnedAt
			st.Unlocked = true
			st.EarnedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *achievementService) Sync(ctx context.Context, userID string) ([]models.AchievementRule, error) {
	log := logger.FromContext(ctx).WithField("user_id", userID)
	log.Debug("syncing achievements")

	unlocked, err := s.achievementRepo.UnlockedIDs(ctx, userID)
	if err != nil {
		log.Error("failed to load unlocked achievements: %v", err)
		return nil, errors.NewInternalError(err)
	}

	var newly []models.AchievementRule
	rules := s.catalog.Rules()
	// Unlocking awards points, which can satisfy points and rank rules, so
	// evaluate again until nothing new fires. Each round unlocks at least
	// one rule, which bounds the loop by the catalog size.
	for round := 0; round <= len(rules); round++ {
		stats, err := s.progress.GetProgress(ctx, userID)
		if err != nil {
			return nil, err
		}

		candidates := achievement.Evaluate(*stats, unlocked, rules)
		if len(candidates) == 0 {
			break
		}

		awarded := 0
		for _, rule := range candidates {
			inserted, err := s.achievementRepo.Unlock(ctx, userID, rule, s.clock.now())
			if err != nil {
				log.Error("failed to unlock %s: %v", rule.ID, err)
				return newly, errors.NewInternalError(err)
			}
			unlocked[rule.ID] = true
			if inserted {
				newly = append(newly, rule)
				awarded += rule.PointsAwarded
			}
		}
		if awarded == 0 {
			break
		}
	}

	if len(newly) > 0 {
		log.Info("unlocked %d achievements", len(newly))
	}
	return newly, nil
}
