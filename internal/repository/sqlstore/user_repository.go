package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bbaxromov14/eduhelper/internal/db"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/repository"
)

type userRepository struct {
	db *db.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(database *db.DB) repository.UserRepository {
	return &userRepository{db: database}
}

// points returns the user's total and whether a row exists.
func (r *userRepository) points(ctx context.Context, userID string) (int, bool, error) {
	var points int
	err := r.db.Builder().
		Select("points").
		From("user_points").
		Where("user_id = ?", userID).
		RunWith(r.db.DB).
		QueryRowContext(ctx).
		Scan(&points)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return points, true, nil
}

func (r *userRepository) Points(ctx context.Context, userID string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	points, _, err := r.points(ctx, userID)
	if err != nil {
		log.Error("failed to read points: %v", err)
		return 0, err
	}
	return points, nil
}

func (r *userRepository) Rank(ctx context.Context, userID string) (*int, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	points, ok, err := r.points(ctx, userID)
	if err != nil {
		log.Error("failed to read points: %v", err)
		return nil, err
	}
	if !ok {
		log.Debug("user has no points yet: user_id=%s", userID)
		return nil, nil
	}

	var ahead int
	err = r.db.Builder().
		Select("COUNT(*)").
		From("user_points").
		Where("points > ?", points).
		RunWith(r.db.DB).
		QueryRowContext(ctx).
		Scan(&ahead)
	if err != nil {
		log.Error("failed to compute rank: %v", err)
		return nil, err
	}
	rank := ahead + 1
	return &rank, nil
}

func (r *userRepository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Builder().
		Select("user_id", "points").
		From("user_points").
		OrderBy("points DESC", "user_id").
		Limit(uint64(limit)).
		RunWith(r.db.DB).
		QueryContext(ctx)
	if err != nil {
		log.Error("failed to read leaderboard: %v", err)
		return nil, err
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Points); err != nil {
			return nil, err
		}
		// tied users share a rank
		if n := len(entries); n > 0 && entries[n-1].Points == e.Points {
			e.Rank = entries[n-1].Rank
		} else {
			e.Rank = n + 1
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
