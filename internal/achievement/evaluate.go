// Package achievement evaluates the static achievement catalog against a
// user's progress statistics.
package achievement

import "github.com/bbaxromov14/eduhelper/internal/models"

// Evaluate returns the rules satisfied by stats that are not in unlocked,
// in catalog order. It has no side effects; callers persist the unlocks
// before evaluating again.
func Evaluate(stats models.ProgressStats, unlocked map[string]bool, catalog []models.AchievementRule) []models.AchievementRule {
	var earned []models.AchievementRule
	for _, rule := range catalog {
		if unlocked[rule.ID] {
			continue
		}
		if Satisfied(rule.Requirement, stats) {
			earned = append(earned, rule)
		}
	}
	return earned
}

// Satisfied reports whether stats meet req. A rank requirement is never
// met while the user has no rank.
func Satisfied(req models.Requirement, stats models.ProgressStats) bool {
	switch req.Kind {
	case models.RequireLessons:
		return stats.CompletedLessons >= req.Value
	case models.RequireStreak:
		return stats.CurrentStreak >= req.Value
	case models.RequirePoints:
		return stats.Points >= req.Value
	case models.RequireCourses:
		return stats.CoursesCompleted >= req.Value
	case models.RequireRank:
		return stats.Rank != nil && *stats.Rank <= req.Value
	case models.RequireNightLessons:
		return stats.NightLessons >= req.Value
	case models.RequireMorningLessons:
		return stats.MorningLessons >= req.Value
	case models.RequirePerfectLessons:
		return stats.PerfectLessons >= req.Value
	default:
		return false
	}
}
