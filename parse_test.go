package tank_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tank "github.com/barsdeveloper/tank-sub000"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	ts, err := tank.ParseDate("2025-05-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC), ts)

	_, err = tank.ParseDate("31/05/2025")
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	ts, err := tank.ParseTime("12:30:11.25")
	require.NoError(t, err)
	assert.Equal(t, 12, ts.Hour())
	assert.Equal(t, 250_000_000, ts.Nanosecond())

	ts, err = tank.ParseTime("12:30")
	require.NoError(t, err)
	assert.Equal(t, 30, ts.Minute())
	assert.Equal(t, 0, ts.Second())

	_, err = tank.ParseTime("noon")
	assert.Error(t, err)
}

// TestParseTimestamp accepts both the T and the space separator.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	want := time.Date(2025, time.May, 31, 12, 30, 11, 0, time.UTC)
	for _, in := range []string{"2025-05-31T12:30:11", "2025-05-31 12:30:11"} {
		ts, err := tank.ParseTimestamp(in)
		require.NoError(t, err)
		assert.Equal(t, want, ts)
	}

	_, err := tank.ParseTimestamp("2025-05-31")
	assert.Error(t, err)
}

func TestParseTimestampTZ(t *testing.T) {
	t.Parallel()

	ts, err := tank.ParseTimestampTZ("2025-05-31T12:30:11+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.May, 31, 10, 30, 11, 0, time.UTC), ts.UTC())

	_, err = tank.ParseTimestampTZ("2025-05-31T12:30:11")
	assert.Error(t, err)
}
