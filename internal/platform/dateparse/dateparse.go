package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Resolved is the canonical form of a raw date/time pair: an ISO calendar
// date and an optional 24h clock time. Both are plain text so they can be
// stored and compared without timezone semantics.
type Resolved struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM, empty when the source carried no time
}

var (
	dottedDate = regexp.MustCompile(`(^|[^\d])(\d{1,2})\.(\d{1,2})\.(\d{4}|\d{2})($|[^\d])`)
	isoDate    = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	clockTime  = regexp.MustCompile(`(^|[^\d])(\d{1,2}):(\d{2})($|[^\d:])`)
)

// Resolve extracts a calendar date and an optional clock time from raw
// scrape text. The date may appear as D.M.YYYY, D.M.YY (century inferred:
// 2000s below 50, 1900s otherwise) or YYYY-MM-DD, embedded anywhere in
// dateText. The time is H:MM, looked up in timeText first and in dateText
// as a fallback since upstream sometimes folds both into one cell. Returns
// false when no recognizable date is present; such records are dropped by
// the caller and never reach the store.
func Resolve(dateText, timeText string) (Resolved, bool) {
	date, ok := findDate(dateText)
	if !ok {
		return Resolved{}, false
	}

	clock := findTime(timeText)
	if clock == "" {
		clock = findTime(dateText)
	}

	return Resolved{Date: date, Time: clock}, true
}

// Instant combines canonical date and optional clock text into a wall-clock
// value. The zone is immaterial: callers treat the result as floating local
// time, so duration arithmetic never crosses DST adjustments.
func Instant(date, clock string) (time.Time, bool) {
	layout, value := "2006-01-02", date
	if clock != "" {
		layout, value = "2006-01-02 15:04", date+" "+clock
	}

	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func findDate(text string) (string, bool) {
	if m := dottedDate.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[2])
		month, _ := strconv.Atoi(m[3])
		year, _ := strconv.Atoi(m[4])
		if len(m[4]) == 2 {
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
		}

		return canonicalDate(year, month, day)
	}

	if m := isoDate.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])

		return canonicalDate(year, month, day)
	}

	return "", false
}

func findTime(text string) string {
	m := clockTime.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	hour, _ := strconv.Atoi(m[2])
	minute, _ := strconv.Atoi(m[3])
	if hour > 23 || minute > 59 {
		return ""
	}

	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// canonicalDate rejects impossible day/month combinations by round-tripping
// through time.Date, which silently normalizes overflow.
func canonicalDate(year, month, day int) (string, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}

	return t.Format("2006-01-02"), true
}
