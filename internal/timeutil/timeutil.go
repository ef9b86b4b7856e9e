package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ClockLayout is the zero-padded 24-hour time used for locale time strings.
const ClockLayout = "15:04"

var (
	// ErrMalformedDate is returned when a date string cannot be split into its components.
	ErrMalformedDate = errors.New("malformed date string")
	// ErrMalformedOffset is returned when an offset suffix is present but unreadable.
	ErrMalformedOffset = errors.New("malformed timezone offset")
)

// Epoch is the placeholder instant used for missing or unreadable dates.
func Epoch() time.Time {
	return time.Unix(0, 0).UTC()
}

// Offset is an hour/minute pair. Both parts carry the sign.
type Offset struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Sub returns o - other componentwise.
func (o Offset) Sub(other Offset) Offset {
	return Offset{Hour: o.Hour - other.Hour, Minute: o.Minute - other.Minute}
}

// Duration converts the offset into a duration.
func (o Offset) Duration() time.Duration {
	return time.Duration(o.Hour)*time.Hour + time.Duration(o.Minute)*time.Minute
}

// LocalOffset reports the UTC offset of loc at instant t, floored to whole hours
// with the remainder in minutes (UTC-05:30 gives {-6, 30}).
func LocalOffset(t time.Time, loc *time.Location) Offset {
	if loc == nil {
		loc = time.Local
	}
	_, seconds := t.In(loc).Zone()
	minutes := seconds / 60
	hours := int(math.Floor(float64(minutes) / 60))
	return Offset{Hour: hours, Minute: minutes - hours*60}
}

// OffsetFromISO reads the timezone suffix of an ISO-8601 style string such as
// "2020-03-05T03:48:34-0800". A trailing Z, a missing suffix or a string without
// exactly one T separator all give the zero offset.
func OffsetFromISO(value string) (Offset, error) {
	if value == "" || strings.HasSuffix(value, "Z") {
		return Offset{}, nil
	}
	parts := strings.Split(value, "T")
	if len(parts) != 2 {
		return Offset{}, nil
	}
	clock := parts[1]
	if len(clock) < 8 {
		return Offset{}, fmt.Errorf("%w: %q", ErrMalformedOffset, value)
	}
	suffix := skipFraction(clock[8:])
	if suffix == "" {
		return Offset{}, nil
	}

	sign := suffix[0]
	if sign != '+' && sign != '-' {
		return Offset{}, fmt.Errorf("%w: %q", ErrMalformedOffset, value)
	}
	digits := strings.ReplaceAll(suffix[1:], ":", "")
	if len(digits) != 4 {
		return Offset{}, fmt.Errorf("%w: %q", ErrMalformedOffset, value)
	}
	hour, errH := strconv.Atoi(digits[:2])
	minute, errM := strconv.Atoi(digits[2:])
	if errH != nil || errM != nil {
		return Offset{}, fmt.Errorf("%w: %q", ErrMalformedOffset, value)
	}
	if sign == '-' {
		return Offset{Hour: -hour, Minute: -minute}, nil
	}
	return Offset{Hour: hour, Minute: minute}, nil
}

func skipFraction(s string) string {
	if !strings.HasPrefix(s, ".") {
		return s
	}
	i := 1
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[i:]
}

// WallClock extracts the naive YYYY-MM-DD and HH:mm:ss numbers from value and
// builds that wall-clock time in loc. Any zone suffix and sub-second part is
// discarded. Strings without exactly one T separator give Epoch with no error.
func WallClock(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	parts := strings.Split(value, "T")
	if len(parts) != 2 {
		return Epoch(), nil
	}
	date, clock := parts[0], parts[1]
	if len(date) < 10 || len(clock) < 8 {
		return Epoch(), fmt.Errorf("%w: %q", ErrMalformedDate, value)
	}

	fields := []string{date[0:4], date[5:7], date[8:10], clock[0:2], clock[3:5], clock[6:8]}
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Epoch(), fmt.Errorf("%w: %q", ErrMalformedDate, value)
		}
		nums[i] = n
	}
	return time.Date(nums[0], time.Month(nums[1]), nums[2], nums[3], nums[4], nums[5], 0, loc), nil
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
}

// ParseInstant parses an absolute instant from epoch milliseconds (as text) or
// an ISO-8601 string. Strings with no zone are read in loc.
func ParseInstant(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return Epoch(), fmt.Errorf("%w: empty", ErrMalformedDate)
	}
	if ms, err := strconv.ParseFloat(value, 64); err == nil {
		return time.UnixMilli(int64(ms)).In(loc), nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(loc), nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", value, loc); err == nil {
		return t, nil
	}
	return Epoch(), fmt.Errorf("%w: %q", ErrMalformedDate, value)
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// LocaleTime formats t as zero-padded 24-hour HH:mm.
func LocaleTime(t time.Time) string {
	return t.Format(ClockLayout)
}

// MilitaryIsh concatenates the unpadded hour with the padded minutes, so 07:05 gives "705".
func MilitaryIsh(t time.Time) string {
	return strconv.Itoa(t.Hour()) + fmt.Sprintf("%02d", t.Minute())
}

// ShortDate formats t as MM/DD/YY.
func ShortDate(t time.Time) string {
	return t.Format("01/02/06")
}

// SecondsToFormatted renders a duration in seconds as m:ss. Zero or negative gives "0:00".
func SecondsToFormatted(seconds float64) string {
	if seconds <= 0 {
		return "0:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
