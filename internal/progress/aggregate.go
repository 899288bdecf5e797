// Package progress derives a user's progress statistics from raw lesson
// completion records. Everything here is pure: the same Input always
// yields the same ProgressStats.
package progress

import (
	"math"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/models"
)

type Input struct {
	Records        []models.LessonProgress
	Courses        []models.Course
	PerfectLessons map[string]bool // lesson ids whose linked test has a 100% attempt
	Points         int
	Rank           *int
	Now            time.Time
	Location       *time.Location // used for hour buckets, nil means UTC
}

// Compute recomputes ProgressStats from scratch.
func Compute(in Input) models.ProgressStats {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	lessons := Dedupe(in.Records)
	stats := models.ProgressStats{
		Courses: make([]models.CourseProgress, 0, len(in.Courses)),
		Points:  in.Points,
		Rank:    in.Rank,
	}

	completedByCourse := make(map[string]int)
	for _, r := range lessons {
		if !r.Completed {
			continue
		}
		stats.CompletedLessons++
		completedByCourse[r.CourseID]++

		if r.CompletedAt != nil && !r.CompletedAt.IsZero() {
			switch BucketOf(*r.CompletedAt, in.Location) {
			case BucketNight:
				stats.NightLessons++
			case BucketMorning:
				stats.MorningLessons++
			}
		}
		if in.PerfectLessons[r.LessonID] {
			stats.PerfectLessons++
		}
	}

	completedInCourses := 0
	for _, c := range in.Courses {
		done := min(completedByCourse[c.ID], max(c.LessonCount, 0))
		cp := models.CourseProgress{
			CourseID:         c.ID,
			Title:            c.Title,
			CompletedLessons: done,
			TotalLessons:     c.LessonCount,
			Percent:          Percent(done, c.LessonCount),
		}
		stats.Courses = append(stats.Courses, cp)
		if c.LessonCount > 0 && done == c.LessonCount {
			stats.CoursesCompleted++
		}
		completedInCourses += done
		stats.TotalLessons += max(c.LessonCount, 0)
	}
	stats.OverallPercent = Percent(completedInCourses, stats.TotalLessons)

	streak := ComputeStreak(in.Records, now)
	stats.CurrentStreak = streak.Current
	stats.LongestStreak = streak.Longest
	stats.StreakActive = streak.Active
	stats.LastActivityDate = streak.LastActivity

	return stats
}

// Percent returns part/whole as a rounded integer percentage in [0, 100].
// A non-positive whole yields 0.
func Percent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(part) / float64(whole)))
	return min(p, 100)
}

// Dedupe keeps one record per lesson id, in first-seen order. A completed
// record beats an incomplete one, and between completed records the
// earliest readable completion time wins.
func Dedupe(records []models.LessonProgress) []models.LessonProgress {
	index := make(map[string]int, len(records))
	out := make([]models.LessonProgress, 0, len(records))
	for _, r := range records {
		if r.LessonID == "" {
			continue
		}
		i, ok := index[r.LessonID]
		if !ok {
			index[r.LessonID] = len(out)
			out = append(out, r)
			continue
		}
		if preferred(r, out[i]) {
			out[i] = r
		}
	}
	return out
}

func preferred(candidate, current models.LessonProgress) bool {
	if candidate.Completed != current.Completed {
		return candidate.Completed
	}
	if !candidate.Completed {
		return false
	}
	ct, cur := candidate.CompletedAt, current.CompletedAt
	switch {
	case ct == nil || ct.IsZero():
		return false
	case cur == nil || cur.IsZero():
		return true
	default:
		return ct.Before(*cur)
	}
}
