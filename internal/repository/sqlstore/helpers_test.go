package sqlstore_test

import (
	"context"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/db"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/repository/sqlstore"
	"github.com/bbaxromov14/eduhelper/internal/testutil"
	"github.com/stretchr/testify/suite"
)

var base = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

// storeSuite gives each test a fresh database with one course of three
// lessons.
type storeSuite struct {
	suite.Suite
	ctx context.Context
	db  *db.DB
}

func (s *storeSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewTestDB(s.T())

	courses := sqlstore.NewCourseRepository(s.db)
	lessons := sqlstore.NewLessonRepository(s.db)
	s.Require().NoError(courses.Upsert(s.ctx, models.Course{ID: "c1", Title: "Algebra", CreatedAt: base}))
	for i, id := range []string{"l1", "l2", "l3"} {
		s.Require().NoError(lessons.Upsert(s.ctx, models.Lesson{ID: id, CourseID: "c1", Title: id, Position: i + 1}))
	}
}

func (s *storeSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}
