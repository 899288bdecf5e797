package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/models"
)

// Flag is a boolean that also accepts "true"/"false", "1"/"0", "yes"/"no"
// and the numbers 1 and 0.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	s := strings.ToLower(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	switch s {
	case "true", "1", "yes", "y", "t":
		*f = true
	case "false", "0", "no", "n", "f", "", "null":
		*f = false
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}

// RawProgress is a lesson progress record as an external client sends it.
type RawProgress struct {
	UserID      string  `json:"user_id" validate:"omitempty,max=128,printascii"`
	LessonID    string  `json:"lesson_id" validate:"required,notblank,max=128,printascii"`
	CourseID    string  `json:"course_id" validate:"omitempty,max=128,printascii"`
	Completed   Flag    `json:"completed"`
	CompletedAt *string `json:"completed_at"`
}

type Rejection struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type Warning struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ProgressResult struct {
	Records  []models.LessonProgress `json:"-"`
	Indices  []int                   `json:"-"` // input position of each record
	Rejected []Rejection             `json:"rejected"`
	Warnings []Warning               `json:"warnings"`
}

// DecodeProgress reads a JSON array of raw records.
func DecodeProgress(data []byte) ([]RawProgress, error) {
	var raw []RawProgress
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode progress records: %w", err)
	}
	return raw, nil
}

// Progress validates raw records for userID. Records with bad ids or a
// different owner are rejected. An unreadable completion time is dropped
// with a warning and the record is kept, so it still counts as completed
// but not toward streaks or time buckets.
func Progress(userID string, raw []RawProgress) ProgressResult {
	res := ProgressResult{
		Records:  make([]models.LessonProgress, 0, len(raw)),
		Indices:  make([]int, 0, len(raw)),
		Rejected: []Rejection{},
		Warnings: []Warning{},
	}

	for i, r := range raw {
		if err := Validate.Struct(r); err != nil {
			res.Rejected = append(res.Rejected, Rejection{Index: i, Reason: Describe(err)})
			continue
		}
		if r.UserID != "" && r.UserID != userID {
			res.Rejected = append(res.Rejected, Rejection{Index: i, Reason: "record belongs to another user"})
			continue
		}

		rec := models.LessonProgress{
			UserID:    userID,
			LessonID:  strings.TrimSpace(r.LessonID),
			CourseID:  strings.TrimSpace(r.CourseID),
			Completed: bool(r.Completed),
		}
		if r.Completed && r.CompletedAt != nil && strings.TrimSpace(*r.CompletedAt) != "" {
			t, err := ParseTime(*r.CompletedAt)
			if err != nil {
				res.Warnings = append(res.Warnings, Warning{Index: i, Field: "completed_at", Message: err.Error()})
			} else {
				rec.CompletedAt = &t
			}
		}
		res.Records = append(res.Records, rec)
		res.Indices = append(res.Indices, i)
	}
	return res
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTime accepts RFC 3339, the SQL timestamp layouts the stores emit,
// and Unix seconds. Results are in UTC; layouts without an offset are read
// as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
