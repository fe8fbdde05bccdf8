package tank

import (
	"fmt"
	"time"
)

var dateLayouts = []string{"2006-01-02"}

var timeLayouts = []string{
	"15:04:05.999999999",
	"15:04:05",
	"15:04",
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var timestampTZLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z07",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
}

func parseWith(layouts []string, value, what string) (time.Time, error) {
	for _, l := range layouts {
		if t, err := time.Parse(l, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as %s", value, what)
}

// ParseDate parses a calendar date in ISO form.
func ParseDate(value string) (time.Time, error) {
	return parseWith(dateLayouts, value, "date")
}

// ParseTime parses a time of day, seconds and subseconds optional.
func ParseTime(value string) (time.Time, error) {
	return parseWith(timeLayouts, value, "time")
}

// ParseTimestamp parses a zone-less timestamp, accepting both the T and
// space separators.
func ParseTimestamp(value string) (time.Time, error) {
	return parseWith(timestampLayouts, value, "timestamp")
}

// ParseTimestampTZ parses a timestamp with a mandatory UTC offset.
func ParseTimestampTZ(value string) (time.Time, error) {
	return parseWith(timestampTZLayouts, value, "timestamp with time zone")
}
