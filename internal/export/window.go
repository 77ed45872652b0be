package export

import (
	"crypto/md5"
	"fmt"
	"time"
)

// PreviousMonth returns the export window for the calendar month preceding
// now: from the first instant of that month to its last second, both in loc.
// The window is inclusive on both ends.
func PreviousMonth(now time.Time, loc *time.Location) (from, to time.Time) {
	now = now.In(loc)
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	to = firstOfThisMonth.Add(-time.Second)
	from = time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, loc)
	return from, to
}

// windowKey identifies a window in the fetch cache.
func windowKey(from, to time.Time) string {
	sum := md5.Sum([]byte(from.Format(time.RFC3339) + "_" + to.Format(time.RFC3339)))
	return fmt.Sprintf("%x", sum)
}
