// Package api serves the JSON HTTP interface.
package api

import (
	"context"

	"github.com/bbaxromov14/eduhelper/internal/services"
)

type Server struct {
	Courses      services.CourseService
	Lessons      services.LessonService
	Progress     services.ProgressService
	Achievements services.AchievementService
	Tests        services.TestService
	Leaderboard  services.LeaderboardService

	// Ready reports whether backing stores are reachable. Nil means always
	// ready.
	Ready func(ctx context.Context) error
}
