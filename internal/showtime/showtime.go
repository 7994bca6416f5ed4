// Package showtime parses stored show start times and splits shows into
// past and upcoming relative to a clock reading.
package showtime

import (
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/fyyur-trivia/internal/model"
)

// Layout is the only accepted start time format.
const Layout = "2006-01-02 15:04:05"

// ErrBadStartTime is returned for a start time that does not match Layout.
var ErrBadStartTime = errors.New("malformed start time")

// Parse reads s in Layout, interpreting it in loc (UTC when nil).
func Parse(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadStartTime, s)
	}
	return t, nil
}

// Upcoming reports whether a show starting at s is still ahead of now.  A
// show starting exactly at now is past.
func Upcoming(s string, now time.Time, loc *time.Location) (bool, error) {
	t, err := Parse(s, loc)
	if err != nil {
		return false, err
	}
	return t.After(now), nil
}

// Partition splits shows into past and upcoming, keeping input order inside
// each part.  Both slices are non-nil.  The first malformed start time
// aborts the split.
func Partition(shows []model.ShowListing, now time.Time, loc *time.Location) (past, upcoming []model.ShowListing, err error) {
	past = []model.ShowListing{}
	upcoming = []model.ShowListing{}
	for _, s := range shows {
		up, err := Upcoming(s.StartTime, now, loc)
		if err != nil {
			return nil, nil, err
		}
		if up {
			upcoming = append(upcoming, s)
		} else {
			past = append(past, s)
		}
	}
	return past, upcoming, nil
}

// CountUpcoming returns how many of starts lie after now.
func CountUpcoming(starts []string, now time.Time, loc *time.Location) (int, error) {
	n := 0
	for _, s := range starts {
		up, err := Upcoming(s, now, loc)
		if err != nil {
			return 0, err
		}
		if up {
			n++
		}
	}
	return n, nil
}
