package repository

import (
	"context"

	"github.com/bbaxromov14/eduhelper/internal/models"
)

// CourseRepository handles course data access. LessonCount is derived from
// the lessons table.
type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, id string) (*models.Course, error)
	Upsert(ctx context.Context, course models.Course) error
}

// LessonRepository handles lesson data access
type LessonRepository interface {
	Get(ctx context.Context, id string) (*models.Lesson, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Lesson, error)
	Upsert(ctx context.Context, lesson models.Lesson) error
}
