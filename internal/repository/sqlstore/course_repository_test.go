package sqlstore_test

import (
	"testing"

	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/repository"
	"github.com/bbaxromov14/eduhelper/internal/repository/sqlstore"
	"github.com/stretchr/testify/suite"
)

type CourseRepositorySuite struct {
	storeSuite
	courses repository.CourseRepository
	lessons repository.LessonRepository
}

func (s *CourseRepositorySuite) SetupTest() {
	s.storeSuite.SetupTest()
	s.courses = sqlstore.NewCourseRepository(s.db)
	s.lessons = sqlstore.NewLessonRepository(s.db)
}

func (s *CourseRepositorySuite) TestListIncludesLessonCounts() {
	s.Require().NoError(s.courses.Upsert(s.ctx, models.Course{ID: "c2", Title: "Empty", CreatedAt: base.Add(1)}))

	courses, err := s.courses.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(courses, 2)
	s.Assert().Equal("c1", courses[0].ID)
	s.Assert().Equal(3, courses[0].LessonCount)
	s.Assert().Equal("c2", courses[1].ID)
	s.Assert().Equal(0, courses[1].LessonCount)
}

func (s *CourseRepositorySuite) TestGet() {
	c, err := s.courses.Get(s.ctx, "c1")
	s.Require().NoError(err)
	s.Assert().Equal("Algebra", c.Title)
	s.Assert().Equal(3, c.LessonCount)
	s.Assert().True(base.Equal(c.CreatedAt))
}

func (s *CourseRepositorySuite) TestGet_NotFound() {
	c, err := s.courses.Get(s.ctx, "missing")
	s.Assert().ErrorIs(err, repository.ErrNotFound)
	s.Assert().Nil(c)
}

func (s *CourseRepositorySuite) TestUpsertUpdatesTitle() {
	s.Require().NoError(s.courses.Upsert(s.ctx, models.Course{ID: "c1", Title: "Algebra II"}))

	c, err := s.courses.Get(s.ctx, "c1")
	s.Require().NoError(err)
	s.Assert().Equal("Algebra II", c.Title)
	s.Assert().True(base.Equal(c.CreatedAt), "created_at is kept")
}

func (s *CourseRepositorySuite) TestLessonsOrderedByPosition() {
	s.Require().NoError(s.lessons.Upsert(s.ctx, models.Lesson{ID: "l0", CourseID: "c1", Title: "Intro", Position: 0}))

	lessons, err := s.lessons.ListByCourse(s.ctx, "c1")
	s.Require().NoError(err)
	s.Require().Len(lessons, 4)
	s.Assert().Equal([]string{"l0", "l1", "l2", "l3"}, []string{lessons[0].ID, lessons[1].ID, lessons[2].ID, lessons[3].ID})

	l, err := s.lessons.Get(s.ctx, "l2")
	s.Require().NoError(err)
	s.Assert().Equal("c1", l.CourseID)

	_, err = s.lessons.Get(s.ctx, "nope")
	s.Assert().ErrorIs(err, repository.ErrNotFound)
}

func (s *CourseRepositorySuite) TestLessonRequiresCourse() {
	err := s.lessons.Upsert(s.ctx, models.Lesson{ID: "orphan", CourseID: "missing", Title: "x"})
	s.Assert().Error(err)
}

func TestCourseRepositorySuite(t *testing.T) {
	suite.Run(t, new(CourseRepositorySuite))
}
