package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/bbaxromov14/eduhelper/internal/db"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/repository"
)

type courseRepository struct {
	db *db.DB
}

// NewCourseRepository creates a new CourseRepository implementation
func NewCourseRepository(database *db.DB) repository.CourseRepository {
	return &courseRepository{db: database}
}

func (r *courseRepository) selectCourses() squirrel.SelectBuilder {
	return r.db.Builder().
		Select("c.id", "c.title", "c.description", "c.created_at", "COUNT(l.id)").
		From("courses c").
		LeftJoin("lessons l ON l.course_id = c.id").
		GroupBy("c.id", "c.title", "c.description", "c.created_at")
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	log := logger.FromContext(ctx).WithPrefix("course_repo")
	log.Debug("listing courses")

	rows, err := r.selectCourses().
		OrderBy("c.created_at", "c.id").
		RunWith(r.db.DB).
		QueryContext(ctx)
	if err != nil {
		log.Error("failed to list courses: %v", err)
		return nil, err
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.CreatedAt, &c.LessonCount); err != nil {
			log.Error("failed to scan course: %v", err)
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Debug("listed %d courses", len(courses))
	return courses, nil
}

func (r *courseRepository) Get(ctx context.Context, id string) (*models.Course, error) {
	log := logger.FromContext(ctx).WithPrefix("course_repo")
	log.Debug("getting course: id=%s", id)

	var c models.Course
	err := r.selectCourses().
		Where("c.id = ?", id).
		RunWith(r.db.DB).
		QueryRowContext(ctx).
		Scan(&c.ID, &c.Title, &c.Description, &c.CreatedAt, &c.LessonCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("course not found: id=%s", id)
			return nil, repository.ErrNotFound
		}
		log.Error("failed to get course: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) Upsert(ctx context.Context, c models.Course) error {
	log := logger.FromContext(ctx).WithPrefix("course_repo")
	log.Debug("upserting course: id=%s", c.ID)

	_, err := r.db.Builder().
		Insert("courses").
		Columns("id", "title", "description", "created_at").
		Values(c.ID, c.Title, c.Description, orNow(c.CreatedAt)).
		Suffix("ON CONFLICT (id) DO UPDATE SET title = excluded.title, description = excluded.description").
		RunWith(r.db.DB).
		ExecContext(ctx)
	if err != nil {
		log.Error("failed to upsert course: %v", err)
	}
	return err
}

type lessonRepository struct {
	db *db.DB
}

// NewLessonRepository creates a new LessonRepository implementation
func NewLessonRepository(database *db.DB) repository.LessonRepository {
	return &lessonRepository{db: database}
}

var lessonColumns = []string{"id", "course_id", "title", "position", "created_at"}

func (r *lessonRepository) Get(ctx context.Context, id string) (*models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("getting lesson: id=%s", id)

	var l models.Lesson
	err := r.db.Builder().
		Select(lessonColumns...).
		From("lessons").
		Where("id = ?", id).
		RunWith(r.db.DB).
		QueryRowContext(ctx).
		Scan(&l.ID, &l.CourseID, &l.Title, &l.Position, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("lesson not found: id=%s", id)
			return nil, repository.ErrNotFound
		}
		log.Error("failed to get lesson: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("listing lessons: course_id=%s", courseID)

	rows, err := r.db.Builder().
		Select(lessonColumns...).
		From("lessons").
		Where("course_id = ?", courseID).
		OrderBy("position", "id").
		RunWith(r.db.DB).
		QueryContext(ctx)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, err
	}
	defer rows.Close()

	lessons := []models.Lesson{}
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Position, &l.CreatedAt); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (r *lessonRepository) Upsert(ctx context.Context, l models.Lesson) error {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("upserting lesson: id=%s course_id=%s", l.ID, l.CourseID)

	_, err := r.db.Builder().
		Insert("lessons").
		Columns(lessonColumns...).
		Values(l.ID, l.CourseID, l.Title, l.Position, orNow(l.CreatedAt)).
		Suffix("ON CONFLICT (id) DO UPDATE SET course_id = excluded.course_id, title = excluded.title, position = excluded.position").
		RunWith(r.db.DB).
		ExecContext(ctx)
	if err != nil {
		log.Error("failed to upsert lesson: %v", err)
	}
	return err
}
