package tank

import "time"

// Calendar and clock constants used by Interval arithmetic and rendering.
const (
	SecsInDay   = 60 * 60 * 24
	NanosInSec  = int64(1_000_000_000)
	NanosInDay  = int64(SecsInDay) * NanosInSec
	MicrosInDay = int64(SecsInDay) * 1_000_000

	// DaysInMonth is the conventional month length used when an interval
	// has to be flattened into a wall-clock duration.
	DaysInMonth = 30.0
	// DaysInMonthAvg is the astronomical average, for callers that prefer it.
	DaysInMonthAvg = 30.436875
)

// Interval is a calendar-aware duration split into months, days and
// sub-day nanoseconds. Months are kept apart from days because a month has
// no fixed length; days and nanoseconds are interchangeable and are folded
// together by Equal and Compare.
type Interval struct {
	Months int64
	Days   int64
	Nanos  int64
}

// NewInterval builds an interval from its three components.
func NewInterval(months, days, nanos int64) Interval {
	return Interval{Months: months, Days: days, Nanos: nanos}
}

// FromDuration converts a wall-clock duration into a day/nanosecond interval.
func FromDuration(d time.Duration) Interval {
	n := d.Nanoseconds()
	return Interval{Days: n / NanosInDay, Nanos: n % NanosInDay}
}

// FromNanos builds an interval from nanoseconds, folding whole days out.
func FromNanos(v int64) Interval {
	return Interval{Days: v / NanosInDay, Nanos: v % NanosInDay}
}

// FromMicros builds an interval from microseconds.
func FromMicros(v int64) Interval {
	return Interval{Days: v / MicrosInDay, Nanos: (v % MicrosInDay) * 1_000}
}

// FromMillis builds an interval from milliseconds.
func FromMillis(v int64) Interval {
	const millisInDay = int64(SecsInDay) * 1_000
	return Interval{Days: v / millisInDay, Nanos: (v % millisInDay) * 1_000_000}
}

// FromSecs builds an interval from seconds.
func FromSecs(v int64) Interval {
	return Interval{Days: v / SecsInDay, Nanos: (v % SecsInDay) * NanosInSec}
}

// FromMins builds an interval from minutes.
func FromMins(v int64) Interval {
	const minsInDay = 60 * 24
	return Interval{Days: v / minsInDay, Nanos: (v % minsInDay) * 60 * NanosInSec}
}

// FromHours builds an interval from hours.
func FromHours(v int64) Interval {
	return Interval{Days: v / 24, Nanos: (v % 24) * 3600 * NanosInSec}
}

// FromDays builds an interval of whole days.
func FromDays(v int64) Interval { return Interval{Days: v} }

// FromWeeks builds an interval of whole weeks, expressed in days.
func FromWeeks(v int64) Interval { return Interval{Days: v * 7} }

// FromMonths builds an interval of calendar months.
func FromMonths(v int64) Interval { return Interval{Months: v} }

// FromYears builds an interval of calendar years, expressed in months.
func FromYears(v int64) Interval { return Interval{Months: v * 12} }

// IsZero reports whether every component is zero.
func (i Interval) IsZero() bool {
	return i.Months == 0 && i.Days == 0 && i.Nanos == 0
}

// dayNanos returns the day-time part normalized to (whole days, nanoseconds
// in [0, NanosInDay)). Days and nanoseconds fold into each other; months do
// not participate.
func (i Interval) dayNanos() (days, nanos int64) {
	days = i.Days + i.Nanos/NanosInDay
	nanos = i.Nanos % NanosInDay
	if nanos < 0 {
		nanos += NanosInDay
		days--
	}
	return days, nanos
}

// Equal folds days into nanoseconds before comparing, so 25 hours equals
// 1 day + 1 hour. Months are compared verbatim: a month is not a fixed
// number of days.
func (i Interval) Equal(o Interval) bool {
	ld, ln := i.dayNanos()
	rd, rn := o.dayNanos()
	return i.Months == o.Months && ld == rd && ln == rn
}

// Compare orders two intervals when the order is unambiguous. It returns
// ok=false when one side is ahead on months and behind on day-time (or vice
// versa), since months have no fixed day length.
func (i Interval) Compare(o Interval) (cmp int, ok bool) {
	ld, ln := i.dayNanos()
	rd, rn := o.dayNanos()
	dayCmp := 0
	switch {
	case ld != rd:
		if ld < rd {
			dayCmp = -1
		} else {
			dayCmp = 1
		}
	case ln != rn:
		if ln < rn {
			dayCmp = -1
		} else {
			dayCmp = 1
		}
	}
	monthCmp := 0
	if i.Months < o.Months {
		monthCmp = -1
	} else if i.Months > o.Months {
		monthCmp = 1
	}
	switch {
	case monthCmp == 0:
		return dayCmp, true
	case dayCmp == 0 || dayCmp == monthCmp:
		return monthCmp, true
	default:
		return 0, false
	}
}

// Add sums two intervals component-wise, folding each side's whole days out
// of the nanosecond part first.
func (i Interval) Add(o Interval) Interval {
	return Interval{
		Months: i.Months + o.Months,
		Days:   i.Days + o.Days + i.Nanos/NanosInDay + o.Nanos/NanosInDay,
		Nanos:  i.Nanos%NanosInDay + o.Nanos%NanosInDay,
	}
}

// Sub subtracts o from i.
func (i Interval) Sub(o Interval) Interval {
	return Interval{
		Months: i.Months - o.Months,
		Days:   i.Days - o.Days + i.Nanos/NanosInDay - o.Nanos/NanosInDay,
		Nanos:  i.Nanos%NanosInDay - o.Nanos%NanosInDay,
	}
}

// AsDuration flattens the interval into a wall-clock duration using the
// caller-supplied month length in days (DaysInMonth or DaysInMonthAvg).
func (i Interval) AsDuration(daysInMonth float64) time.Duration {
	nanos := int64(float64(i.Months) * daysInMonth * float64(NanosInDay))
	nanos += i.Days * NanosInDay
	nanos += i.Nanos
	return time.Duration(nanos)
}
