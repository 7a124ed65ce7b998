// Package dates handles the two date notations found in catalogs:
// ISO (2024-01-31) and the German form (31.01.2024).
package dates

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

var (
	isoPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	german    = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
)

// Parse reads an ISO date (optionally followed by a time part) or a
// DD.MM.YYYY date. Impossible calendar dates are rejected.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := german.FindStringSubmatch(s); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
		if t.Day() != d || int(t.Month()) != mo || t.Year() != y {
			return time.Time{}, false
		}
		return t, true
	}

	if isoPrefix.MatchString(s) {
		t, err := time.Parse(isoLayout, s[:10])
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// FormatISO renders t as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format(isoLayout)
}

// ProjectEndDate returns the last day of a course of the given length in
// weeks: start + weeks*7 - 1 days, since both ends are inclusive (a one
// week course starting Monday ends on Sunday). Fractional weeks are cut to
// whole days. ok is false for an empty or invalid start date and for a
// non-positive or non-finite weeks value.
func ProjectEndDate(startDate string, weeks float64) (end string, ok bool) {
	if math.IsNaN(weeks) || math.IsInf(weeks, 0) || weeks <= 0 {
		return "", false
	}
	start, ok := Parse(startDate)
	if !ok {
		return "", false
	}

	days := int(math.Floor(weeks*7)) - 1
	if days < 0 {
		days = 0
	}
	return FormatISO(start.AddDate(0, 0, days)), true
}

// ToISO converts a DD.MM.YYYY value to ISO. Values starting with an ISO date
// and anything unrecognised are returned unchanged.
func ToISO(s string) string {
	if s == "" || isoPrefix.MatchString(s) {
		return s
	}
	t, ok := Parse(s)
	if !ok {
		return s
	}
	return FormatISO(t)
}
