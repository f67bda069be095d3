package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateRange(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  string
	}{
		{"same day", day(2026, time.October, 17), day(2026, time.October, 17), "17 Oct 2026"},
		{"same month", day(2026, time.October, 17), day(2026, time.October, 18), "17-18 Oct 2026"},
		{"same year", day(2026, time.August, 30), day(2026, time.September, 2), "30 Aug - 2 Sep 2026"},
		{"different years", day(2026, time.December, 31), day(2027, time.January, 1), "31 Dec 2026 - 1 Jan 2027"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDateRange(tc.start, tc.end))
		})
	}
}

func TestFormatTimeRange(t *testing.T) {
	start := time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.October, 17, 16, 30, 0, 0, time.UTC)
	assert.Equal(t, "10:00-16:30 UTC", FormatTimeRange(start, end))
}
