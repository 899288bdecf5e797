package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/bbaxromov14/eduhelper/internal/errors"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/bbaxromov14/eduhelper/internal/repository"
	"github.com/bbaxromov14/eduhelper/internal/services"
	"github.com/bbaxromov14/eduhelper/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCourseService_Get(t *testing.T) {
	courses := new(mocks.MockCourseRepository)
	lessons := new(mocks.MockLessonRepository)
	svc := services.NewCourseService(courses, lessons)

	courses.On("Get", mock.Anything, "c1").Return(&models.Course{ID: "c1", Title: "Algebra", LessonCount: 2}, nil)
	lessons.On("ListByCourse", mock.Anything, "c1").Return([]models.Lesson{
		{ID: "l1", CourseID: "c1", Position: 1},
		{ID: "l2", CourseID: "c1", Position: 2},
	}, nil)
	courses.On("Get", mock.Anything, "c9").Return(nil, repository.ErrNotFound)

	detail, err := svc.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Algebra", detail.Title)
	assert.Len(t, detail.Lessons, 2)

	_, err = svc.Get(context.Background(), "c9")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestCourseService_ListFailure(t *testing.T) {
	courses := new(mocks.MockCourseRepository)
	svc := services.NewCourseService(courses, new(mocks.MockLessonRepository))
	courses.On("List", mock.Anything).Return(nil, stderrors.New("no such table: courses"))

	_, err := svc.List(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
}
