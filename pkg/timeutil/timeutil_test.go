package timeutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func mustLoadLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in           string
		hour, minute int
		wantErr      bool
	}{
		{"09:00", 9, 0, false},
		{"9:05", 9, 5, false},
		{"23:59", 23, 59, false},
		{"00:00", 0, 0, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"1200", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		h, m, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTimeOfDay) {
				t.Errorf("ParseTimeOfDay(%q) err = %v, want ErrInvalidTimeOfDay", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if h != tt.hour || m != tt.minute {
			t.Errorf("ParseTimeOfDay(%q) = %d:%d, want %d:%d", tt.in, h, m, tt.hour, tt.minute)
		}
	}
}

func TestFormatDateKey_UsesLocalCalendarFields(t *testing.T) {
	loc := mustLoadLoc(t, "America/Argentina/Buenos_Aires")
	instant := time.Date(2023, 1, 2, 1, 30, 0, 0, time.UTC)

	if got := FormatDateKey(instant, loc); got != "2023-01-01" {
		t.Errorf("FormatDateKey local = %q, want %q", got, "2023-01-01")
	}
	if got := FormatDateKey(instant, time.UTC); got != "2023-01-02" {
		t.Errorf("FormatDateKey utc = %q, want %q", got, "2023-01-02")
	}
}

func TestFormatLocalTimeLabel(t *testing.T) {
	loc := mustLoadLoc(t, "America/Argentina/Buenos_Aires")

	got, err := FormatLocalTimeLabel("2023-01-01T10:00:00Z", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "07:00" {
		t.Errorf("FormatLocalTimeLabel = %q, want %q", got, "07:00")
	}

	if _, err := FormatLocalTimeLabel("yesterday", loc); !errors.Is(err, ErrInvalidInstant) {
		t.Errorf("expected ErrInvalidInstant, got %v", err)
	}
}

func TestFormatISO_MillisecondsAndZ(t *testing.T) {
	loc := mustLoadLoc(t, "America/Argentina/Buenos_Aires")
	got := FormatISO(time.Date(2023, 1, 2, 9, 0, 0, 0, loc))

	if got != "2023-01-02T12:00:00.000Z" {
		t.Errorf("FormatISO = %q, want %q", got, "2023-01-02T12:00:00.000Z")
	}

	parsed, err := ParseISO(got)
	if err != nil {
		t.Fatalf("ParseISO error: %v", err)
	}
	if FormatISO(parsed) != got {
		t.Errorf("round trip = %q, want %q", FormatISO(parsed), got)
	}
}

func TestStartOfDayAndAddDays_AcrossDST(t *testing.T) {
	loc := mustLoadLoc(t, "Europe/Madrid")
	// 2024-03-31 is the spring-forward day in Madrid.
	day := StartOfDay(time.Date(2024, 3, 30, 18, 45, 0, 0, loc), loc)

	for i := 0; i < 3; i++ {
		next := AddDays(day, 1)
		if next.Hour() != 0 || next.Minute() != 0 {
			t.Fatalf("AddDays produced %s, want midnight", next)
		}
		day = next
	}
	if got := day.Format(DateKeyLayout); got != "2024-04-02" {
		t.Errorf("day after three steps = %q, want %q", got, "2024-04-02")
	}
}

func TestParseDateKey(t *testing.T) {
	loc := mustLoadLoc(t, "America/Argentina/Buenos_Aires")

	d, err := ParseDateKey("2023-01-02", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Location() != loc || d.Hour() != 0 {
		t.Errorf("ParseDateKey = %s, want local midnight", d)
	}

	if _, err := ParseDateKey("02/01/2023", loc); !errors.Is(err, ErrInvalidDateKey) {
		t.Errorf("expected ErrInvalidDateKey, got %v", err)
	}
}

func TestFormatLongLabel_Locales(t *testing.T) {
	loc := mustLoadLoc(t, "America/Argentina/Buenos_Aires")
	instant := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	if got := FormatLongLabel(instant, loc, "en_US"); got != "Mon, 02 Jan 2023 09:00" {
		t.Errorf("en_US label = %q, want %q", got, "Mon, 02 Jan 2023 09:00")
	}

	es := FormatLongLabel(instant, loc, "es_ES")
	if strings.Contains(es, "Mon") || !strings.HasSuffix(es, "2023 09:00") {
		t.Errorf("es_ES label = %q, want localized names and 09:00", es)
	}
}

func TestResolveLocale_UnknownFallsBack(t *testing.T) {
	if got := ResolveLocale("xx_YY"); got != DefaultLocale {
		t.Errorf("ResolveLocale = %q, want %q", got, DefaultLocale)
	}
}

func TestLoadLocation(t *testing.T) {
	fallback := mustLoadLoc(t, "America/Argentina/Buenos_Aires")

	loc, err := LoadLocation("", fallback)
	if err != nil || loc != fallback {
		t.Errorf("LoadLocation(\"\") = %v, %v; want fallback", loc, err)
	}
	if _, err := LoadLocation("Nowhere/City", fallback); err == nil {
		t.Error("expected error for unknown zone")
	}
}
