package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTapLogAppendAndQuery(t *testing.T) {
	log := NewTapLog(openTestDB(t))

	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.Local)

	// Append out of wall-clock order; the query must still come back
	// ascending by timestamp.
	for _, hhmm := range []string{"12:00", "09:00", "13:30"} {
		ts, err := time.ParseInLocation("2006-01-02 15:04", "2025-06-03 "+hhmm, time.Local)
		require.NoError(t, err)
		id, err := log.Append("Alice Howard", 1001, ts, day.Format("2006-01-02"))
		require.NoError(t, err)
		assert.Greater(t, id, int64(0))
	}

	taps, err := log.TapsFor("Alice Howard", "2025-06-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00:00 AM", "12:00:00 PM", "01:30:00 PM"}, taps)

	count, err := log.CountFor("Alice Howard", "2025-06-03")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestTapLogIsolatesStaffAndDate(t *testing.T) {
	log := NewTapLog(openTestDB(t))

	stamp := time.Date(2025, 6, 3, 9, 0, 0, 0, time.Local)
	_, err := log.Append("Alice Howard", 1001, stamp, "2025-06-03")
	require.NoError(t, err)
	_, err = log.Append("Bob Lin", 1002, stamp, "2025-06-03")
	require.NoError(t, err)
	_, err = log.Append("Alice Howard", 1001, stamp.AddDate(0, 0, 1), "2025-06-04")
	require.NoError(t, err)

	count, err := log.CountFor("Alice Howard", "2025-06-03")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	taps, err := log.TapsFor("Bob Lin", "2025-06-03")
	require.NoError(t, err)
	assert.Len(t, taps, 1)

	// Degraded entries carry no event date and stay out of day queries.
	_, err = log.Append("Alice Howard", 1001, stamp, "")
	require.NoError(t, err)
	count, err = log.CountFor("Alice Howard", "2025-06-03")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
