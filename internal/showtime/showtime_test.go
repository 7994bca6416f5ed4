package showtime

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur-trivia/internal/model"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func listing(id int64, start string) model.ShowListing {
	return model.ShowListing{Show: model.Show{ID: id, StartTime: start}}
}

func TestParse(t *testing.T) {
	got, err := Parse("2019-05-21 21:30:00", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "2019-05-21", "2019-05-21T21:30:00", "21/05/2019 21:30:00", "2019-13-01 00:00:00"} {
		_, err := Parse(bad, nil)
		assert.ErrorIs(t, err, ErrBadStartTime, bad)
	}
}

func TestParseInLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	got, err := Parse("2026-03-01 13:00:00", loc)
	require.NoError(t, err)
	// 13:00 at +02:00 is 11:00 UTC, one hour before now.
	assert.True(t, got.Before(now))
}

func TestUpcomingBoundary(t *testing.T) {
	up, err := Upcoming("2026-03-01 12:00:00", now, time.UTC)
	require.NoError(t, err)
	assert.False(t, up, "a show starting at now is past")

	up, err = Upcoming("2026-03-01 12:00:01", now, time.UTC)
	require.NoError(t, err)
	assert.True(t, up)
}

func TestPartition(t *testing.T) {
	shows := []model.ShowListing{
		listing(1, "2019-05-21 21:30:00"),
		listing(2, "2035-04-01 20:00:00"),
		listing(3, "2026-03-01 12:00:00"),
		listing(4, "2035-04-08 20:00:00"),
	}
	past, upcoming, err := Partition(shows, now, time.UTC)
	require.NoError(t, err)

	if diff := cmp.Diff([]model.ShowListing{shows[0], shows[2]}, past); diff != "" {
		t.Errorf("past mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.ShowListing{shows[1], shows[3]}, upcoming); diff != "" {
		t.Errorf("upcoming mismatch (-want +got):\n%s", diff)
	}
}

func TestPartitionEmptyAndMalformed(t *testing.T) {
	past, upcoming, err := Partition(nil, now, time.UTC)
	require.NoError(t, err)
	assert.NotNil(t, past)
	assert.NotNil(t, upcoming)
	assert.Empty(t, past)
	assert.Empty(t, upcoming)

	_, _, err = Partition([]model.ShowListing{listing(1, "soon")}, now, time.UTC)
	assert.ErrorIs(t, err, ErrBadStartTime)
}

func TestCountUpcoming(t *testing.T) {
	n, err := CountUpcoming([]string{"2019-05-21 21:30:00", "2035-04-01 20:00:00", "2035-04-08 20:00:00"}, now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = CountUpcoming(nil, now, time.UTC)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = CountUpcoming([]string{"bad"}, now, time.UTC)
	assert.ErrorIs(t, err, ErrBadStartTime)
}
