package volume

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const maxDuration = time.Duration(1<<63 - 1)

// Units understood by the mount tool's --watch flag. Months and years use
// the average Gregorian lengths.
var intervalUnits = map[string]time.Duration{
	"nanos": time.Nanosecond, "nsec": time.Nanosecond, "ns": time.Nanosecond,
	"micros": time.Microsecond, "usec": time.Microsecond, "us": time.Microsecond, "µs": time.Microsecond,
	"millis": time.Millisecond, "msec": time.Millisecond, "ms": time.Millisecond,
	"seconds": time.Second, "second": time.Second, "sec": time.Second, "secs": time.Second, "s": time.Second,
	"minutes": time.Minute, "minute": time.Minute, "min": time.Minute, "mins": time.Minute, "m": time.Minute,
	"hours": time.Hour, "hour": time.Hour, "hr": time.Hour, "hrs": time.Hour, "h": time.Hour,
	"days": 24 * time.Hour, "day": 24 * time.Hour, "d": 24 * time.Hour,
	"weeks": 7 * 24 * time.Hour, "week": 7 * 24 * time.Hour, "w": 7 * 24 * time.Hour,
	"months": 2630016 * time.Second, "month": 2630016 * time.Second,
	"years": 31557600 * time.Second, "year": 31557600 * time.Second, "y": 31557600 * time.Second,
}

// ParseWatchInterval parses a human-friendly duration such as "30s",
// "1h 30m" or "2days". Every number needs a unit; groups may be separated
// by whitespace.
func ParseWatchInterval(s string) (time.Duration, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return 0, fmt.Errorf("empty interval")
	}

	var total time.Duration
	for rest != "" {
		i := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) })
		if i == 0 {
			return 0, fmt.Errorf("expected number at %q", rest)
		}
		if i < 0 {
			return 0, fmt.Errorf("missing unit after %q", rest)
		}
		n, err := strconv.ParseInt(rest[:i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("number %q out of range", rest[:i])
		}
		rest = strings.TrimLeftFunc(rest[i:], unicode.IsSpace)

		j := strings.IndexFunc(rest, func(r rune) bool { return unicode.IsDigit(r) || unicode.IsSpace(r) })
		if j < 0 {
			j = len(rest)
		}
		if j == 0 {
			return 0, fmt.Errorf("missing unit in %q", s)
		}
		unit, ok := intervalUnits[rest[:j]]
		if !ok {
			return 0, fmt.Errorf("unknown unit %q", rest[:j])
		}
		if n > int64(maxDuration/unit) {
			return 0, fmt.Errorf("interval %q overflows", s)
		}
		d := time.Duration(n) * unit
		if total > maxDuration-d {
			return 0, fmt.Errorf("interval %q overflows", s)
		}
		total += d
		rest = strings.TrimLeftFunc(rest[j:], unicode.IsSpace)
	}

	return total, nil
}
