package achievement_test

import (
	"testing"

	"github.com/bbaxromov14/eduhelper/internal/achievement"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/stretchr/testify/assert"
)

func rule(id string, kind models.RequirementKind, value int) models.AchievementRule {
	return models.AchievementRule{
		ID:            id,
		Name:          id,
		PointsAwarded: 10,
		Requirement:   models.Requirement{Kind: kind, Value: value},
	}
}

func ids(rules []models.AchievementRule) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.ID)
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestSatisfied(t *testing.T) {
	stats := models.ProgressStats{
		CompletedLessons: 10,
		CurrentStreak:    3,
		Points:           500,
		CoursesCompleted: 1,
		Rank:             intPtr(5),
		NightLessons:     2,
		MorningLessons:   0,
		PerfectLessons:   1,
	}

	tests := []struct {
		req  models.Requirement
		want bool
	}{
		{models.Requirement{Kind: models.RequireLessons, Value: 10}, true},
		{models.Requirement{Kind: models.RequireLessons, Value: 11}, false},
		{models.Requirement{Kind: models.RequireStreak, Value: 3}, true},
		{models.Requirement{Kind: models.RequireStreak, Value: 7}, false},
		{models.Requirement{Kind: models.RequirePoints, Value: 500}, true},
		{models.Requirement{Kind: models.RequireCourses, Value: 2}, false},
		{models.Requirement{Kind: models.RequireRank, Value: 5}, true},
		{models.Requirement{Kind: models.RequireRank, Value: 10}, true},
		{models.Requirement{Kind: models.RequireRank, Value: 3}, false},
		{models.Requirement{Kind: models.RequireNightLessons, Value: 2}, true},
		{models.Requirement{Kind: models.RequireMorningLessons, Value: 1}, false},
		{models.Requirement{Kind: models.RequirePerfectLessons, Value: 1}, true},
		{models.Requirement{Kind: "xp", Value: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.req.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, achievement.Satisfied(tt.req, stats))
		})
	}
}

func TestSatisfied_RankAbsent(t *testing.T) {
	req := models.Requirement{Kind: models.RequireRank, Value: 1000}
	assert.False(t, achievement.Satisfied(req, models.ProgressStats{}))
}

func TestEvaluate_CatalogOrderAndSkipsUnlocked(t *testing.T) {
	catalog := []models.AchievementRule{
		rule("streak-3", models.RequireStreak, 3),
		rule("first-lesson", models.RequireLessons, 1),
		rule("ten-lessons", models.RequireLessons, 10),
		rule("points-100", models.RequirePoints, 100),
	}
	stats := models.ProgressStats{CompletedLessons: 12, CurrentStreak: 4, Points: 50}

	got := achievement.Evaluate(stats, map[string]bool{"first-lesson": true}, catalog)

	assert.Equal(t, []string{"streak-3", "ten-lessons"}, ids(got))
}

func TestEvaluate_NeverReturnsUnlocked(t *testing.T) {
	catalog := []models.AchievementRule{
		rule("a", models.RequireLessons, 0),
		rule("b", models.RequireLessons, 0),
	}
	unlocked := map[string]bool{"a": true, "b": true}

	assert.Empty(t, achievement.Evaluate(models.ProgressStats{CompletedLessons: 100}, unlocked, catalog))
}

func TestEvaluate_Idempotent(t *testing.T) {
	catalog := []models.AchievementRule{rule("a", models.RequireLessons, 1), rule("b", models.RequireStreak, 2)}
	stats := models.ProgressStats{CompletedLessons: 1, CurrentStreak: 2}
	unlocked := map[string]bool{}

	first := achievement.Evaluate(stats, unlocked, catalog)
	second := achievement.Evaluate(stats, unlocked, catalog)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestEvaluate_NilUnlocked(t *testing.T) {
	catalog := []models.AchievementRule{rule("a", models.RequireLessons, 1)}
	got := achievement.Evaluate(models.ProgressStats{CompletedLessons: 1}, nil, catalog)
	assert.Equal(t, []string{"a"}, ids(got))
}
