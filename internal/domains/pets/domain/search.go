package domain

import "time"

// AgeRange is a named age bucket.
type AgeRange string

const (
	AgeBaby  AgeRange = "Baby"
	AgeYoung AgeRange = "Young"
	AgeAdult AgeRange = "Adult"
)

// AgeBounds is an inclusive month interval.
type AgeBounds struct {
	MinMonths int
	MaxMonths int
}

// Bounds resolves the bucket to its inclusive month interval.
// Young stops at 35 so a 36 month old pet is only ever Adult.
func (a AgeRange) Bounds() (AgeBounds, bool) {
	switch a {
	case AgeBaby:
		return AgeBounds{MinMonths: 0, MaxMonths: 11}, true
	case AgeYoung:
		return AgeBounds{MinMonths: 12, MaxMonths: 35}, true
	case AgeAdult:
		return AgeBounds{MinMonths: 36, MaxMonths: 96}, true
	}
	return AgeBounds{}, false
}

// PostedWindow is a named creation-date bucket.
type PostedWindow string

const (
	PostedToday     PostedWindow = "Today"
	PostedThisWeek  PostedWindow = "ThisWeek"
	PostedThisMonth PostedWindow = "ThisMonth"
	PostedThisYear  PostedWindow = "ThisYear"
)

// WeekStart is the first day of a calendar week for ThisWeek.
const WeekStart = time.Sunday

// TimeRange is a half-open interval [From, Until). A zero Until is unbounded.
type TimeRange struct {
	From  time.Time
	Until time.Time
}

// Contains reports whether t falls inside the range.
func (r TimeRange) Contains(t time.Time) bool {
	if t.Before(r.From) {
		return false
	}
	return r.Until.IsZero() || t.Before(r.Until)
}

// Range resolves the window against now, in UTC.
func (w PostedWindow) Range(now time.Time) (TimeRange, bool) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch w {
	case PostedToday:
		return TimeRange{From: today, Until: today.AddDate(0, 0, 1)}, true
	case PostedThisWeek:
		offset := (int(today.Weekday()) - int(WeekStart) + 7) % 7
		return TimeRange{From: today.AddDate(0, 0, -offset)}, true
	case PostedThisMonth:
		return TimeRange{From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)}, true
	case PostedThisYear:
		return TimeRange{From: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)}, true
	}
	return TimeRange{}, false
}
