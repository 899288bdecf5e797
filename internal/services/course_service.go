package services

import (
	"context"
	stderrors "errors"

	"github.com/bbaxromov14/eduhelper/internal/errors"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/repository"
)

// CourseService exposes the course catalog
type CourseService interface {
	List(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, id string) (*models.CourseDetail, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
	lessonRepo repository.LessonRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repository.CourseRepository, lessonRepo repository.LessonRepository) CourseService {
	return &courseService{
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
	}
}

func (s *courseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list courses: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return courses, nil
}

func (s *courseService) Get(ctx context.Context, id string) (*models.CourseDetail, error) {
	log := logger.FromContext(ctx).WithField("course_id", id)

	course, err := s.courseRepo.Get(ctx, id)
	if err != nil {
		if !stderrors.Is(err, repository.ErrNotFound) {
			log.Error("failed to get course: %v", err)
		}
		return nil, lookupError(err, "course", id)
	}
	lessons, err := s.lessonRepo.ListByCourse(ctx, id)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &models.CourseDetail{Course: *course, Lessons: lessons}, nil
}
