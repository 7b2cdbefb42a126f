// Package timeutil wraps the calendar arithmetic shared by the availability
// engine and the booking views: wall-clock to UTC conversion, day keys,
// ISO rendering and locale-aware labels.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/goodsign/monday"
)

const (
	// ISOLayout renders UTC instants with millisecond precision and a Z suffix.
	// Instants rendered with it compare lexicographically in chronological order.
	ISOLayout       = "2006-01-02T15:04:05.000Z07:00"
	DateKeyLayout   = "2006-01-02"
	TimeLabelLayout = "15:04"
	LongLabelLayout = "Mon, 02 Jan 2006 15:04"

	DefaultLocale = monday.LocaleEsES
)

var (
	ErrInvalidTimeOfDay = errors.New("неверный формат времени, ожидается HH:MM")
	ErrInvalidInstant   = errors.New("неверный формат даты и времени, ожидается ISO-8601")
	ErrInvalidDateKey   = errors.New("неверный формат даты, ожидается YYYY-MM-DD")

	timeOfDayRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
)

// ParseTimeOfDay parses a 24h "HH:MM" string.
func ParseTimeOfDay(value string) (hour, minute int, err error) {
	m := timeOfDayRegex.FindStringSubmatch(value)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, value)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}

// StartOfDay floors t to midnight of its calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// AddDays moves a midnight value by n calendar days, staying on midnight across DST changes.
func AddDays(day time.Time, n int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+n, 0, 0, 0, 0, day.Location())
}

// WallClock returns the instant at hour:minute on day's calendar date in day's location.
func WallClock(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

func ParseISO(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInstant, value)
	}
	return t.UTC(), nil
}

// FormatDateKey renders the local calendar date of t in loc as YYYY-MM-DD.
func FormatDateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateKeyLayout)
}

// ParseDateKey returns midnight of a YYYY-MM-DD date in loc.
func ParseDateKey(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, value)
	}
	return t, nil
}

// FormatLocalTimeLabel renders an ISO UTC instant as HH:MM wall-clock time in loc.
func FormatLocalTimeLabel(isoUTC string, loc *time.Location) (string, error) {
	t, err := ParseISO(isoUTC)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format(TimeLabelLayout), nil
}

// FormatLongLabel renders t in loc with localized weekday and month names.
func FormatLongLabel(t time.Time, loc *time.Location, locale string) string {
	return monday.Format(t.In(loc), LongLabelLayout, ResolveLocale(locale))
}

// ResolveLocale maps a locale name onto a supported one, falling back to DefaultLocale.
func ResolveLocale(locale string) monday.Locale {
	for _, l := range monday.ListLocales() {
		if string(l) == locale {
			return l
		}
	}
	return DefaultLocale
}

// LoadLocation resolves an IANA zone name; an empty name yields fallback.
func LoadLocation(name string, fallback *time.Location) (*time.Location, error) {
	if name == "" {
		return fallback, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("неизвестный часовой пояс %q: %w", name, err)
	}
	return loc, nil
}
