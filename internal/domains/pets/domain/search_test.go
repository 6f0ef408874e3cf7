package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeRangeBounds(t *testing.T) {
	cases := []struct {
		age      int
		expected AgeRange
	}{
		{0, AgeBaby},
		{11, AgeBaby},
		{12, AgeYoung},
		{35, AgeYoung},
		{36, AgeAdult},
		{96, AgeAdult},
	}
	for _, tc := range cases {
		matched := []AgeRange{}
		for _, bucket := range []AgeRange{AgeBaby, AgeYoung, AgeAdult} {
			b, ok := bucket.Bounds()
			require.True(t, ok)
			if tc.age >= b.MinMonths && tc.age <= b.MaxMonths {
				matched = append(matched, bucket)
			}
		}
		assert.Equal(t, []AgeRange{tc.expected}, matched, "age %d", tc.age)
	}

	_, ok := AgeRange("Senior").Bounds()
	assert.False(t, ok)
}

func TestPostedWindowThisWeekStartsOnSunday(t *testing.T) {
	sunday := time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, sunday.Weekday())

	for _, now := range []time.Time{
		time.Date(2024, time.June, 9, 10, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 12, 15, 30, 0, 0, time.UTC),
		time.Date(2024, time.June, 15, 23, 59, 59, 0, time.UTC),
	} {
		r, ok := PostedThisWeek.Range(now)
		require.True(t, ok)
		assert.Equal(t, sunday, r.From, "now %s", now)
		assert.True(t, r.Until.IsZero())
	}

	r, _ := PostedThisWeek.Range(time.Date(2024, time.June, 8, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC), r.From)
}

func TestPostedWindowRanges(t *testing.T) {
	now := time.Date(2024, time.June, 12, 15, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	// 20:30 UTC on the same calendar day.

	today, ok := PostedToday.Range(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC), today.From)
	assert.Equal(t, time.Date(2024, time.June, 13, 0, 0, 0, 0, time.UTC), today.Until)
	assert.True(t, today.Contains(time.Date(2024, time.June, 12, 23, 59, 0, 0, time.UTC)))
	assert.False(t, today.Contains(time.Date(2024, time.June, 11, 23, 59, 0, 0, time.UTC)))
	assert.False(t, today.Contains(time.Date(2024, time.June, 13, 0, 0, 0, 0, time.UTC)))

	month, _ := PostedThisMonth.Range(now)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), month.From)

	year, _ := PostedThisYear.Range(now)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), year.From)
	assert.True(t, year.Contains(now))

	_, ok = PostedWindow("Yesterday").Range(now)
	assert.False(t, ok)
}
