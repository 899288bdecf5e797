package sqlstore

import (
	"context"
	"database/sql"

	"github.com/bbaxromov14/eduhelper/internal/db"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/repository"
)

type progressRepository struct {
	db *db.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(database *db.DB) repository.ProgressRepository {
	return &progressRepository{db: database}
}

func (r *progressRepository) ListByUser(ctx context.Context, userID string) ([]models.LessonProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: user_id=%s", userID)

	rows, err := r.db.Builder().
		Select("p.user_id", "p.lesson_id", "l.course_id", "p.completed", "p.completed_at").
		From("lesson_progress p").
		Join("lessons l ON l.id = p.lesson_id").
		Where("p.user_id = ?", userID).
		OrderBy("p.lesson_id").
		RunWith(r.db.DB).
		QueryContext(ctx)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	records := []models.LessonProgress{}
	for rows.Next() {
		var (
			p           models.LessonProgress
			completedAt sql.NullTime
		)
		if err := rows.Scan(&p.UserID, &p.LessonID, &p.CourseID, &p.Completed, &completedAt); err != nil {
			log.Error("failed to scan progress: %v", err)
			return nil, err
		}
		p.CompletedAt = nullableTime(log.WithField("lesson_id", p.LessonID), completedAt, "completed_at")
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Debug("found %d progress records", len(records))
	return records, nil
}

const progressConflict = `ON CONFLICT (user_id, lesson_id) DO UPDATE SET
    completed_at = CASE
        WHEN NOT excluded.completed THEN lesson_progress.completed_at
        WHEN NOT lesson_progress.completed THEN excluded.completed_at
        WHEN lesson_progress.completed_at IS NULL THEN excluded.completed_at
        WHEN excluded.completed_at IS NOT NULL AND excluded.completed_at < lesson_progress.completed_at THEN excluded.completed_at
        ELSE lesson_progress.completed_at
    END,
    completed = (lesson_progress.completed OR excluded.completed),
    updated_at = excluded.updated_at`

func (r *progressRepository) Upsert(ctx context.Context, p models.LessonProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: user_id=%s lesson_id=%s completed=%t", p.UserID, p.LessonID, p.Completed)

	var completedAt sql.NullTime
	if p.Completed && p.CompletedAt != nil {
		completedAt = sql.NullTime{Time: p.CompletedAt.UTC(), Valid: true}
	}

	_, err := r.db.Builder().
		Insert("lesson_progress").
		Columns("user_id", "lesson_id", "completed", "completed_at", "updated_at").
		Values(p.UserID, p.LessonID, p.Completed, completedAt, utcNow()).
		Suffix(progressConflict).
		RunWith(r.db.DB).
		ExecContext(ctx)
	if err != nil {
		log.Error("failed to upsert progress: %v", err)
	}
	return err
}
