package progress

import "time"

type Bucket int

const (
	BucketNone Bucket = iota
	BucketNight
	BucketMorning
)

// HourBucket classifies an hour of the day. Night is 22:00-04:59 and
// morning is 05:00-07:59; the windows do not overlap.
func HourBucket(hour int) Bucket {
	switch {
	case hour >= 22 || (hour >= 0 && hour < 5):
		return BucketNight
	case hour >= 5 && hour < 8:
		return BucketMorning
	default:
		return BucketNone
	}
}

// BucketOf classifies t by its hour in loc. A nil loc means UTC.
func BucketOf(t time.Time, loc *time.Location) Bucket {
	if loc == nil {
		loc = time.UTC
	}
	return HourBucket(t.In(loc).Hour())
}
