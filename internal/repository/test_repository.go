package repository

import (
	"context"

	"github.com/bbaxromov14/eduhelper/internal/models"
)

// TestRepository handles tests and their attempts
type TestRepository interface {
	Get(ctx context.Context, id string) (*models.Test, error)
	Upsert(ctx context.Context, test models.Test) error
	ListAttempts(ctx context.Context, userID, testID string) ([]models.TestAttempt, error)
	// InsertAttempt stores the attempt and credits its points in one
	// transaction. It returns ErrDuplicate when the attempt number is taken.
	InsertAttempt(ctx context.Context, attempt models.TestAttempt) error
	// PerfectLessonIDs lists lessons whose linked test the user scored 100% on.
	PerfectLessonIDs(ctx context.Context, userID string) (map[string]bool, error)
}
