package repository

import (
	"context"

	"github.com/bbaxromov14/eduhelper/internal/models"
)

// ProgressRepository handles lesson progress records
type ProgressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.LessonProgress, error)
	// Upsert stores a record. An existing completion is never undone and
	// keeps its earliest completion time.
	Upsert(ctx context.Context, p models.LessonProgress) error
}
