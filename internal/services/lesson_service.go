package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/errors"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/normalize"
	"github.com/bbaxromov14/eduhelper/internal/realtime"
	"github.com/bbaxromov14/eduhelper/internal/repository"
)

// ImportResult reports what happened to each record of a progress import.
type ImportResult struct {
	Imported int                   `json:"imported"`
	Rejected []normalize.Rejection `json:"rejected"`
	Warnings []normalize.Warning   `json:"warnings"`
}

// LessonService records lesson completions
type LessonService interface {
	Complete(ctx context.Context, userID, lessonID string, at time.Time) error
	Import(ctx context.Context, userID string, raw []normalize.RawProgress) (*ImportResult, error)
}

type lessonService struct {
	lessonRepo   repository.LessonRepository
	progressRepo repository.ProgressRepository
	publisher    realtime.Publisher
	clock        Clock
}

// NewLessonService creates a new LessonService
func NewLessonService(
	lessonRepo repository.LessonRepository,
	progressRepo repository.ProgressRepository,
	publisher realtime.Publisher,
	clock Clock,
) LessonService {
	return &lessonService{
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		publisher:    publisher,
		clock:        clock,
	}
}

// Complete marks lessonID completed at at, or now when at is zero.
func (s *lessonService) Complete(ctx context.Context, userID, lessonID string, at time.Time) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{"user_id": userID, "lesson_id": lessonID})

	lesson, err := s.lessonRepo.Get(ctx, lessonID)
	if err != nil {
		if !stderrors.Is(err, repository.ErrNotFound) {
			log.Error("failed to get lesson: %v", err)
		}
		return lookupError(err, "lesson", lessonID)
	}

	if at.IsZero() {
		at = s.clock.now()
	}
	at = at.UTC()
	if err := s.progressRepo.Upsert(ctx, models.LessonProgress{
		UserID:      userID,
		LessonID:    lesson.ID,
		CourseID:    lesson.CourseID,
		Completed:   true,
		CompletedAt: &at,
	}); err != nil {
		log.Error("failed to record completion: %v", err)
		return errors.NewInternalError(err)
	}

	log.Info("lesson completed")
	publish(ctx, s.publisher, realtime.Event{
		Type:    realtime.EventLessonCompleted,
		UserID:  userID,
		Subject: lessonID,
		At:      at,
	})
	return nil
}

// Import normalizes raw records and stores the valid ones. Records naming
// an unknown lesson are rejected; the course is always taken from the
// lesson rather than the client.
func (s *lessonService) Import(ctx context.Context, userID string, raw []normalize.RawProgress) (*ImportResult, error) {
	log := logger.FromContext(ctx).WithField("user_id", userID)

	norm := normalize.Progress(userID, raw)
	res := &ImportResult{Rejected: norm.Rejected, Warnings: norm.Warnings}

	lessons := make(map[string]*models.Lesson)
	for i, rec := range norm.Records {
		lesson, ok := lessons[rec.LessonID]
		if !ok {
			var err error
			lesson, err = s.lessonRepo.Get(ctx, rec.LessonID)
			if err != nil && !stderrors.Is(err, repository.ErrNotFound) {
				log.Error("failed to get lesson %s: %v", rec.LessonID, err)
				return nil, errors.NewInternalError(err)
			}
			lessons[rec.LessonID] = lesson
		}
		if lesson == nil {
			res.Rejected = append(res.Rejected, normalize.Rejection{Index: norm.Indices[i], Reason: "unknown lesson " + rec.LessonID})
			continue
		}

		rec.CourseID = lesson.CourseID
		if err := s.progressRepo.Upsert(ctx, rec); err != nil {
			log.Error("failed to store progress for lesson %s: %v", rec.LessonID, err)
			return nil, errors.NewInternalError(err)
		}
		res.Imported++
	}

	log.Info("imported %d progress records (%d rejected, %d warnings)", res.Imported, len(res.Rejected), len(res.Warnings))
	if res.Imported > 0 {
		publish(ctx, s.publisher, realtime.Event{
			Type:   realtime.EventProgressImported,
			UserID: userID,
			At:     s.clock.now(),
		})
	}
	return res, nil
}
