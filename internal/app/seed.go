package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/models"
)

var seedEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type seedCourse struct {
	course  models.Course
	lessons []string
}

var demoCourses = []seedCourse{
	{
		course:  models.Course{ID: "algebra", Title: "Algebra Basics", Description: "Expressions, equations and inequalities"},
		lessons: []string{"Variables", "Linear equations", "Inequalities"},
	},
	{
		course:  models.Course{ID: "python", Title: "Python for Beginners", Description: "First steps in programming"},
		lessons: []string{"Hello, world", "Loops", "Functions", "Lists"},
	},
}

func demoTests() []models.Test {
	lesson := "algebra-2"
	return []models.Test{{
		ID:              "algebra-quiz",
		LessonID:        &lesson,
		Title:           "Linear equations quiz",
		PassingScore:    60,
		AttemptsAllowed: 3,
		Questions: []models.Question{
			{Prompt: "Solve x + 3 = 5", Options: []string{"1", "2", "8"}, CorrectOption: 1, Points: 10},
			{Prompt: "Solve 2x = 10", Options: []string{"5", "20", "8"}, CorrectOption: 0, Points: 10},
			{Prompt: "Solve x - 4 = 0", Options: []string{"-4", "0", "4"}, CorrectOption: 2, Points: 10},
		},
	}}
}

// Seed upserts a small demo catalog of courses, lessons and one test.
// Lesson ids are "<course>-<position>".
func Seed(ctx context.Context, repos Repositories) error {
	for i, sc := range demoCourses {
		c := sc.course
		c.CreatedAt = seedEpoch.Add(time.Duration(i) * time.Hour)
		if err := repos.Courses.Upsert(ctx, c); err != nil {
			return fmt.Errorf("seed course %s: %w", c.ID, err)
		}
		for pos, title := range sc.lessons {
			l := models.Lesson{
				ID:        fmt.Sprintf("%s-%d", c.ID, pos+1),
				CourseID:  c.ID,
				Title:     title,
				Position:  pos + 1,
				CreatedAt: c.CreatedAt,
			}
			if err := repos.Lessons.Upsert(ctx, l); err != nil {
				return fmt.Errorf("seed lesson %s: %w", l.ID, err)
			}
		}
	}
	for _, t := range demoTests() {
		t.CreatedAt = seedEpoch
		if err := repos.Tests.Upsert(ctx, t); err != nil {
			return fmt.Errorf("seed test %s: %w", t.ID, err)
		}
	}
	return nil
}
