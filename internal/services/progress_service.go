package services

import (
	"context"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/errors"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/progress"
	"github.com/bbaxromov14/eduhelper/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ProgressService computes a user's progress statistics
type ProgressService interface {
	GetProgress(ctx context.Context, userID string) (*models.ProgressStats, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	courseRepo   repository.CourseRepository
	testRepo     repository.TestRepository
	userRepo     repository.UserRepository
	loc          *time.Location
	clock        Clock
}

// NewProgressService creates a new ProgressService. loc is used for the
// night and morning buckets; streak days are always UTC.
func NewProgressService(
	progressRepo repository.ProgressRepository,
	courseRepo repository.CourseRepository,
	testRepo repository.TestRepository,
	userRepo repository.UserRepository,
	loc *time.Location,
	clock Clock,
) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		courseRepo:   courseRepo,
		testRepo:     testRepo,
		userRepo:     userRepo,
		loc:          loc,
		clock:        clock,
	}
}

func (s *progressService) GetProgress(ctx context.Context, userID string) (*models.ProgressStats, error) {
	log := logger.FromContext(ctx).WithField("user_id", userID)
	log.Debug("computing progress")

	if userID == "" {
		return nil, errors.NewValidationError("user_id", "cannot be empty")
	}

	in := progress.Input{Location: s.loc}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Records, err = s.progressRepo.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		in.Courses, err = s.courseRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		in.PerfectLessons, err = s.testRepo.PerfectLessonIDs(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		in.Points, err = s.userRepo.Points(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		in.Rank, err = s.userRepo.Rank(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load progress inputs: %v", err)
		return nil, errors.NewInternalError(err)
	}

	in.Now = s.clock.now()
	stats := progress.Compute(in)
	log.Debug("progress computed: lessons=%d streak=%d overall=%d%%", stats.CompletedLessons, stats.CurrentStreak, stats.OverallPercent)
	return &stats, nil
}
