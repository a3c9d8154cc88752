package timeutil

import "time"

const (
	DateLayout   = "2006-01-02"
	MinuteLayout = "2006-01-02 15:04"
)

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

// HasClock reports whether value carries a time of day other than midnight.
func HasClock(value time.Time) bool {
	return !value.Equal(StartOfDay(value))
}

func FormatDate(value time.Time) string {
	return value.Format(DateLayout)
}

// FormatMinute formats value with minute precision; seconds are dropped, not rounded.
func FormatMinute(value time.Time) string {
	return value.Format(MinuteLayout)
}
