package handlers

import "time"

// FormatDateRange renders a start/end pair the way map popups show it,
// collapsing whatever the two dates share. Same day: "2 Jan 2026".
// Same month: "2-5 Jan 2026". Same year: "30 Aug - 2 Sep 2026".
// Otherwise both dates in full.
func FormatDateRange(start, end time.Time) string {
	start, end = start.UTC(), end.UTC()

	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()

	switch {
	case sy == ey && sm == em && sd == ed:
		return start.Format("2 Jan 2006")
	case sy == ey && sm == em:
		return start.Format("2") + "-" + end.Format("2 Jan 2006")
	case sy == ey:
		return start.Format("2 Jan") + " - " + end.Format("2 Jan 2006")
	default:
		return start.Format("2 Jan 2006") + " - " + end.Format("2 Jan 2006")
	}
}

// FormatTimeRange renders the clock portion of a range for same-day
// listings, e.g. "10:00-16:30 UTC".
func FormatTimeRange(start, end time.Time) string {
	return start.UTC().Format("15:04") + "-" + end.UTC().Format("15:04") + " UTC"
}
