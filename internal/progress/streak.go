package progress

import (
	"sort"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/models"
)

const dateLayout = "2006-01-02"

// Streak describes consecutive UTC calendar days with at least one
// completed lesson.
type Streak struct {
	Current      int
	Longest      int
	Active       bool   // last activity was today or yesterday
	LastActivity string // YYYY-MM-DD, empty without activity
}

// ComputeStreak counts back from today when today has activity, otherwise
// from the most recent activity day, and stops at the first missing day.
// Several completions on one day count once.
func ComputeStreak(records []models.LessonProgress, now time.Time) Streak {
	days := activityDays(records, now)
	if len(days) == 0 {
		return Streak{}
	}

	today := utcDay(now)
	s := Streak{
		LastActivity: days[0].Format(dateLayout),
		Active:       !days[0].Before(today.AddDate(0, 0, -1)),
	}

	expected := days[0]
	for _, d := range days {
		if !d.Equal(expected) {
			break
		}
		s.Current++
		expected = expected.AddDate(0, 0, -1)
	}

	run := 0
	for i, d := range days {
		if i > 0 && d.Equal(days[i-1].AddDate(0, 0, -1)) {
			run++
		} else {
			run = 1
		}
		if run > s.Longest {
			s.Longest = run
		}
	}
	return s
}

// activityDays returns the unique UTC days of completed records, newest
// first. Days after today are clock skew and ignored.
func activityDays(records []models.LessonProgress, now time.Time) []time.Time {
	today := utcDay(now)
	seen := make(map[time.Time]struct{})
	var days []time.Time
	for _, r := range records {
		if !r.Completed || r.CompletedAt == nil || r.CompletedAt.IsZero() {
			continue
		}
		d := utcDay(*r.CompletedAt)
		if d.After(today) {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

func utcDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
