package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	LayoutDate     = "2006-01-02"
	LayoutClock    = "15:04"
	layoutDateTime = "2006-01-02 15:04:05"
	layoutWire     = "2006-01-02T15:04:05"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(LayoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format(layoutDateTime)
}

// CombineDateClock joins a YYYY-MM-DD date and an HH:MM clock into the backend's local timestamp form.
func CombineDateClock(date, clock string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	c, err := time.Parse(LayoutClock, strings.TrimSpace(clock))
	if err != nil {
		return "", fmt.Errorf("invalid time %q: %w", clock, err)
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.Local)
	return t.Format(layoutWire), nil
}

// SplitWireTimestamp is the inverse of CombineDateClock; unparsable input yields empty parts.
func SplitWireTimestamp(ts string) (date, clock string) {
	ts = strings.TrimSpace(ts)
	if len(ts) < len(layoutWire) {
		if len(ts) >= len(LayoutDate) {
			return ts[:len(LayoutDate)], ""
		}
		return "", ""
	}
	t, err := time.ParseInLocation(layoutWire, ts[:len(layoutWire)], time.Local)
	if err != nil {
		return "", ""
	}
	return t.Format(LayoutDate), t.Format(LayoutClock)
}
