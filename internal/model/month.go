package model

import (
	"fmt"
	"strings"
	"time"
)

const monthLayout = "2006-01"

// MonthStart truncates t to the first day of its calendar month (UTC).
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ParseMonth accepts "YYYY-MM" or "YYYY-MM-DD"; the day is discarded.
func ParseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{monthLayout, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return MonthStart(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM or YYYY-MM-DD)", s)
}

func FormatMonth(t time.Time) string {
	return t.Format(monthLayout)
}
