package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bbaxromov14/eduhelper/internal/db"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/repository"
)

type testRepository struct {
	db *db.DB
}

// NewTestRepository creates a new TestRepository implementation
func NewTestRepository(database *db.DB) repository.TestRepository {
	return &testRepository{db: database}
}

func (r *testRepository) Get(ctx context.Context, id string) (*models.Test, error) {
	log := logger.FromContext(ctx).WithPrefix("test_repo")
	log.Debug("getting test: id=%s", id)

	var (
		t         models.Test
		lessonID  sql.NullString
		questions string
	)
	err := r.db.Builder().
		Select("id", "lesson_id", "title", "passing_score", "attempts_allowed", "questions", "created_at").
		From("tests").
		Where("id = ?", id).
		RunWith(r.db.DB).
		QueryRowContext(ctx).
		Scan(&t.ID, &lessonID, &t.Title, &t.PassingScore, &t.AttemptsAllowed, &questions, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("test not found: id=%s", id)
			return nil, repository.ErrNotFound
		}
		log.Error("failed to get test: %v", err)
		return nil, err
	}
	if lessonID.Valid {
		t.LessonID = &lessonID.String
	}
	if err := json.Unmarshal([]byte(questions), &t.Questions); err != nil {
		log.Error("test %s has unreadable questions: %v", id, err)
		return nil, fmt.Errorf("decode questions of test %s: %w", id, err)
	}
	return &t, nil
}

func (r *testRepository) Upsert(ctx context.Context, t models.Test) error {
	log := logger.FromContext(ctx).WithPrefix("test_repo")
	log.Debug("upserting test: id=%s questions=%d", t.ID, len(t.Questions))

	questions, err := json.Marshal(t.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	_, err = r.db.Builder().
		Insert("tests").
		Columns("id", "lesson_id", "title", "passing_score", "attempts_allowed", "questions", "created_at").
		Values(t.ID, nullableString(t.LessonID), t.Title, t.PassingScore, t.AttemptsAllowed, string(questions), orNow(t.CreatedAt)).
		Suffix(`ON CONFLICT (id) DO UPDATE SET lesson_id = excluded.lesson_id, title = excluded.title,
    passing_score = excluded.passing_score, attempts_allowed = excluded.attempts_allowed, questions = excluded.questions`).
		RunWith(r.db.DB).
		ExecContext(ctx)
	if err != nil {
		log.Error("failed to upsert test: %v", err)
	}
	return err
}

func (r *testRepository) ListAttempts(ctx context.Context, userID, testID string) ([]models.TestAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("test_repo")
	log.Debug("listing attempts: user_id=%s test_id=%s", userID, testID)

	rows, err := r.db.Builder().
		Select("id", "user_id", "test_id", "attempt_number", "answers", "score", "correct_count", "points_earned", "credited_indices", "created_at").
		From("test_attempts").
		Where("user_id = ? AND test_id = ?", userID, testID).
		OrderBy("attempt_number").
		RunWith(r.db.DB).
		QueryContext(ctx)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	attempts := []models.TestAttempt{}
	for rows.Next() {
		var (
			a                 models.TestAttempt
			answers, credited string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.TestID, &a.AttemptNumber, &answers, &a.Score, &a.CorrectCount, &a.PointsEarned, &credited, &a.CreatedAt); err != nil {
			log.Error("failed to scan attempt: %v", err)
			return nil, err
		}
		if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
			return nil, fmt.Errorf("decode answers of attempt %s: %w", a.ID, err)
		}
		if err := json.Unmarshal([]byte(credited), &a.CreditedIndices); err != nil {
			return nil, fmt.Errorf("decode credited indices of attempt %s: %w", a.ID, err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Debug("found %d attempts", len(attempts))
	return attempts, nil
}

func (r *testRepository) InsertAttempt(ctx context.Context, a models.TestAttempt) error {
	log := logger.FromContext(ctx).WithPrefix("test_repo")
	log.Debug("inserting attempt: user_id=%s test_id=%s number=%d", a.UserID, a.TestID, a.AttemptNumber)

	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	if a.CreditedIndices == nil {
		a.CreditedIndices = []int{}
	}
	credited, err := json.Marshal(a.CreditedIndices)
	if err != nil {
		return fmt.Errorf("encode credited indices: %w", err)
	}
	createdAt := orNow(a.CreatedAt)

	err = r.db.Tx(ctx, func(tx *sql.Tx) error {
		_, err := r.db.Builder().
			Insert("test_attempts").
			Columns("id", "user_id", "test_id", "attempt_number", "answers", "score", "correct_count", "points_earned", "credited_indices", "created_at").
			Values(a.ID, a.UserID, a.TestID, a.AttemptNumber, string(answers), a.Score, a.CorrectCount, a.PointsEarned, string(credited), createdAt).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		return creditPoints(ctx, r.db.Builder(), tx, a.UserID, a.PointsEarned, createdAt)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Warn("attempt number %d already taken: user_id=%s test_id=%s", a.AttemptNumber, a.UserID, a.TestID)
			return fmt.Errorf("attempt %d: %w", a.AttemptNumber, repository.ErrDuplicate)
		}
		log.Error("failed to insert attempt: %v", err)
		return err
	}
	return nil
}

func (r *testRepository) PerfectLessonIDs(ctx context.Context, userID string) (map[string]bool, error) {
	log := logger.FromContext(ctx).WithPrefix("test_repo")

	rows, err := r.db.Builder().
		Select("DISTINCT t.lesson_id").
		From("test_attempts a").
		Join("tests t ON t.id = a.test_id").
		Where("a.user_id = ? AND a.score >= 100 AND t.lesson_id IS NOT NULL", userID).
		RunWith(r.db.DB).
		QueryContext(ctx)
	if err != nil {
		log.Error("failed to list perfect lessons: %v", err)
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
