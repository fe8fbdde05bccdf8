package tank_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tank "github.com/barsdeveloper/tank-sub000"
)

func renderInterval(t *testing.T, iv tank.Interval) string {
	t.Helper()
	var out strings.Builder
	w := tank.NewWriter()
	w.WriteValue(&tank.Context{}, &out, tank.IntervalValue(iv))
	return out.String()
}

// TestIntervalRendering checks unit folding: the writer picks the largest
// unit that represents the interval exactly.
func TestIntervalRendering(t *testing.T) {
	t.Parallel()

	cases := []struct {
		interval tank.Interval
		expected string
	}{
		{tank.FromNanos(1), "INTERVAL 1 NANOSECOND"},
		{tank.FromNanos(27), "INTERVAL 27 NANOSECONDS"},
		{tank.FromNanos(1_000), "INTERVAL 1 MICROSECOND"},
		{tank.FromNanos(54_000), "INTERVAL 54 MICROSECONDS"},
		{tank.FromNanos(864_000_000_000_000), "INTERVAL 10 DAYS"},

		{tank.FromMicros(1), "INTERVAL 1 MICROSECOND"},
		{tank.FromDuration(time.Microsecond), "INTERVAL 1 MICROSECOND"},
		{tank.FromMicros(2), "INTERVAL 2 MICROSECONDS"},
		{tank.FromMicros(999), "INTERVAL 999 MICROSECONDS"},
		{tank.FromMicros(1_001), "INTERVAL 1001 MICROSECONDS"},
		{tank.FromMicros(1_000_000), "INTERVAL 1 SECOND"},
		{tank.FromMicros(2_000_000), "INTERVAL 2 SECONDS"},
		{tank.FromMicros(1_000_999), "INTERVAL 1000999 MICROSECONDS"},
		{tank.FromMicros(1_001_000_000), "INTERVAL 1001 SECONDS"},
		{tank.FromMicros(3_600_000_000), "INTERVAL 1 HOUR"},
		{tank.FromMicros(21_600_000_000), "INTERVAL 6 HOURS"},
		{tank.FromMicros(3_110_400_000_000), "INTERVAL 36 DAYS"},

		{tank.FromMillis(1_000), "INTERVAL 1 SECOND"},
		{tank.FromMillis(60_000), "INTERVAL 1 MINUTE"},
		{tank.FromMillis(3_600_000), "INTERVAL 1 HOUR"},
		{tank.FromMillis(86_400_000), "INTERVAL 1 DAY"},
		{tank.FromMillis(172_800_000), "INTERVAL 2 DAYS"},

		{tank.FromMins(1), "INTERVAL 1 MINUTE"},
		{tank.FromMins(2), "INTERVAL 2 MINUTES"},
		{tank.FromMins(59), "INTERVAL 59 MINUTES"},
		{tank.FromMins(60), "INTERVAL 1 HOUR"},
		{tank.FromMins(61), "INTERVAL 61 MINUTES"},
		{tank.FromMins(90), "INTERVAL 90 MINUTES"},
		{tank.FromMins(120), "INTERVAL 2 HOURS"},
		{tank.FromMins(1_440), "INTERVAL 1 DAY"},
		{tank.FromMins(525_600), "INTERVAL 365 DAYS"},

		{tank.FromDays(1), "INTERVAL 1 DAY"},
		{tank.FromDays(6_000_000), "INTERVAL 6000000 DAYS"},

		{tank.FromWeeks(1), "INTERVAL 7 DAYS"},
		{tank.FromWeeks(52), "INTERVAL 364 DAYS"},
		{tank.FromWeeks(1_000), "INTERVAL 7000 DAYS"},

		{tank.FromMonths(1), "INTERVAL 1 MONTH"},
		{tank.FromMonths(5), "INTERVAL 5 MONTHS"},
		{tank.FromYears(2), "INTERVAL 2 YEARS"},

		{tank.Interval{}, "INTERVAL 0 SECONDS"},

		{
			tank.NewInterval(12, 15, tank.NanosInDay*2),
			"INTERVAL '1 YEAR 17 DAYS'",
		},
		{
			tank.NewInterval(48, 15, tank.NanosInDay*2+1_000_000_000),
			"INTERVAL '4 YEARS 1468801 SECONDS'",
		},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, renderInterval(t, c.interval))
	}
}

// TestIntervalRenderingComposite covers intervals whose parts come from
// several source fields, which forces the quoted spelling.
func TestIntervalRenderingComposite(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "INTERVAL '1441 MINUTES'",
		renderInterval(t, tank.FromMins(1).Add(tank.FromDays(1))))
	assert.Equal(t, "INTERVAL '1 YEAR -3 DAYS'",
		renderInterval(t, tank.FromYears(1).Sub(tank.FromDays(3))))
	assert.Equal(t, "INTERVAL '10 DAYS 10 NANOSECONDS'",
		renderInterval(t, tank.FromNanos(864_000_000_000_010)))
}

// TestIntervalConstructors checks that constructors fold whole days out of
// the sub-day part.
func TestIntervalConstructors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, tank.Interval{Days: 10, Nanos: 10}, tank.FromNanos(864_000_000_000_010))
	assert.Equal(t, tank.Interval{Days: 1, Nanos: 3_600_000_000_000}, tank.FromMins(1_500))
	assert.Equal(t, tank.Interval{Days: 2}, tank.FromHours(48))
	assert.Equal(t, tank.Interval{Days: 21}, tank.FromWeeks(3))
	assert.Equal(t, tank.Interval{Months: 36}, tank.FromYears(3))
}

func TestIntervalEqual(t *testing.T) {
	t.Parallel()

	// 25 hours and 1 day + 1 hour are the same span.
	assert.True(t, tank.FromHours(25).Equal(tank.FromDays(1).Add(tank.FromHours(1))))
	assert.True(t, tank.NewInterval(0, 1, 0).Equal(tank.NewInterval(0, 0, tank.NanosInDay)))
	// A month is not 30 days.
	assert.False(t, tank.FromMonths(1).Equal(tank.FromDays(30)))
}

func TestIntervalCompare(t *testing.T) {
	t.Parallel()

	cmp, ok := tank.FromHours(25).Compare(tank.FromDays(1))
	require.True(t, ok)
	assert.Equal(t, 1, cmp)

	cmp, ok = tank.FromDays(1).Compare(tank.FromDays(1).Add(tank.FromNanos(1)))
	require.True(t, ok)
	assert.Equal(t, -1, cmp)

	cmp, ok = tank.FromMonths(2).Compare(tank.FromMonths(1))
	require.True(t, ok)
	assert.Equal(t, 1, cmp)

	// More months but less day-time: no defined order.
	_, ok = tank.NewInterval(2, 0, 0).Compare(tank.NewInterval(1, 45, 0))
	assert.False(t, ok)

	cmp, ok = tank.FromDays(11).Compare(tank.FromDays(10).Add(tank.FromSecs(86_400)))
	require.True(t, ok)
	assert.Equal(t, 0, cmp)
}

func TestIntervalOperations(t *testing.T) {
	t.Parallel()

	days11 := tank.FromDays(10).Add(tank.FromSecs(86_400))
	assert.True(t, days11.Equal(tank.FromDays(11)))
	assert.False(t, days11.Add(tank.FromMillis(1)).Equal(tank.FromDays(11)))

	assert.True(t, tank.FromDays(11).Sub(tank.FromDays(4)).Equal(tank.FromWeeks(1)))
	assert.True(t, tank.FromYears(1).Sub(tank.FromMonths(12)).IsZero())

	assert.Equal(t, 25*time.Hour, tank.FromHours(25).AsDuration(tank.DaysInMonth))
	assert.Equal(t, 30*24*time.Hour, tank.FromMonths(1).AsDuration(tank.DaysInMonth))
}
