// Package app wires configuration, storage and services together for the
// server and the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/bbaxromov14/eduhelper/internal/achievement"
	"github.com/bbaxromov14/eduhelper/internal/config"
	"github.com/bbaxromov14/eduhelper/internal/db"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/realtime"
	"github.com/bbaxromov14/eduhelper/internal/repository"
	"github.com/bbaxromov14/eduhelper/internal/repository/sqlstore"
	"github.com/bbaxromov14/eduhelper/internal/services"
)

type Repositories struct {
	Courses      repository.CourseRepository
	Lessons      repository.LessonRepository
	Progress     repository.ProgressRepository
	Achievements repository.AchievementRepository
	Tests        repository.TestRepository
	Users        repository.UserRepository
}

type App struct {
	Config  config.Config
	DB      *db.DB
	Bus     realtime.Bus
	Catalog *achievement.Catalog
	Repos   Repositories

	Courses      services.CourseService
	Lessons      services.LessonService
	Progress     services.ProgressService
	Achievements services.AchievementService
	Tests        services.TestService
	Leaderboard  services.LeaderboardService
}

// New opens the database, applies migrations, loads the achievement catalog
// and connects the realtime bus. Close releases all of it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx)

	database, err := db.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	catalog, err := achievement.Load(cfg.AchievementsPath)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	log.Info("loaded %d achievement rules", catalog.Len())

	var bus realtime.Bus
	switch cfg.RealtimeBackend {
	case config.RealtimeRedis:
		bus, err = realtime.NewRedisBus(ctx, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
	default:
		bus = realtime.NewMemoryBus()
	}

	repos := Repositories{
		Courses:      sqlstore.NewCourseRepository(database),
		Lessons:      sqlstore.NewLessonRepository(database),
		Progress:     sqlstore.NewProgressRepository(database),
		Achievements: sqlstore.NewAchievementRepository(database),
		Tests:        sqlstore.NewTestRepository(database),
		Users:        sqlstore.NewUserRepository(database),
	}

	progress := services.NewProgressService(repos.Progress, repos.Courses, repos.Tests, repos.Users, cfg.Location(), nil)
	return &App{
		Config:       cfg,
		DB:           database,
		Bus:          bus,
		Catalog:      catalog,
		Repos:        repos,
		Courses:      services.NewCourseService(repos.Courses, repos.Lessons),
		Lessons:      services.NewLessonService(repos.Lessons, repos.Progress, bus, nil),
		Progress:     progress,
		Achievements: services.NewAchievementService(repos.Achievements, progress, catalog, nil),
		Tests:        services.NewTestService(repos.Tests, bus, cfg.AttemptInsertRetries, nil),
		Leaderboard:  services.NewLeaderboardService(repos.Users),
	}, nil
}

func (a *App) Close() error {
	busErr := a.Bus.Close()
	dbErr := a.DB.Close()
	if busErr != nil {
		return busErr
	}
	return dbErr
}
