package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestOffsetFromISOZuluIsZero(t *testing.T) {
	for _, in := range []string{
		"2020-05-14T19:12:37.137Z",
		"2020-05-14T19:12:37Z",
		"1999-12-31T23:59:59.999Z",
	} {
		got, err := OffsetFromISO(in)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", in, err)
		}
		if got != (Offset{}) {
			t.Fatalf("%s: expected zero offset, got %+v", in, got)
		}
	}
}

func TestOffsetFromISOParsesSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want Offset
	}{
		{in: "2020-03-05T03:48:34-0800", want: Offset{Hour: -8}},
		{in: "2020-03-05T03:48:34+0530", want: Offset{Hour: 5, Minute: 30}},
		{in: "2020-03-05T03:48:34.120-03:30", want: Offset{Hour: -3, Minute: -30}},
		{in: "2020-03-05T03:48:34+01:00", want: Offset{Hour: 1}},
		{in: "2020-03-05T03:48:34", want: Offset{}},
		{in: "no separator", want: Offset{}},
		{in: "", want: Offset{}},
	}
	for _, tt := range tests {
		got, err := OffsetFromISO(tt.in)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("%s: expected %+v, got %+v", tt.in, tt.want, got)
		}
	}
}

func TestOffsetFromISOMalformedSuffix(t *testing.T) {
	for _, in := range []string{"2020-03-05T03:48:34~0800", "2020-03-05T03:48:34+08", "2020-03-05T03:4"} {
		got, err := OffsetFromISO(in)
		if !errors.Is(err, ErrMalformedOffset) {
			t.Fatalf("%s: expected ErrMalformedOffset, got %v", in, err)
		}
		if got != (Offset{}) {
			t.Fatalf("%s: expected zero offset on failure, got %+v", in, got)
		}
	}
}

func TestLocalOffsetFloorsNegativeZones(t *testing.T) {
	at := time.Date(2020, 5, 14, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		loc  *time.Location
		want Offset
	}{
		{loc: time.UTC, want: Offset{}},
		{loc: time.FixedZone("IST", 5*3600+30*60), want: Offset{Hour: 5, Minute: 30}},
		{loc: time.FixedZone("NST", -(3*3600 + 30*60)), want: Offset{Hour: -4, Minute: 30}},
		{loc: time.FixedZone("PDT", -7*3600), want: Offset{Hour: -7}},
	}
	for _, tt := range tests {
		if got := LocalOffset(at, tt.loc); got != tt.want {
			t.Fatalf("%s: expected %+v, got %+v", tt.loc, tt.want, got)
		}
	}
}

func TestOffsetSubAndDuration(t *testing.T) {
	got := Offset{Hour: 1}.Sub(Offset{Hour: -4, Minute: 30})
	if got != (Offset{Hour: 5, Minute: -30}) {
		t.Fatalf("unexpected correction %+v", got)
	}
	if got.Duration() != 4*time.Hour+30*time.Minute {
		t.Fatalf("unexpected duration %s", got.Duration())
	}
}

func TestWallClockDiscardsZone(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	got, err := WallClock("2020-03-05T03:48:34.512-0800", loc)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := time.Date(2020, 3, 5, 3, 48, 34, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got.Location() != loc {
		t.Fatalf("expected wall clock in the provided location")
	}
}

func TestWallClockWithoutSingleSeparatorIsEpoch(t *testing.T) {
	for _, in := range []string{"", "2020-03-05", "2020-03-05T03:48T34", "garbage"} {
		got, err := WallClock(in, time.UTC)
		if err != nil {
			t.Fatalf("%q: expected no error, got %v", in, err)
		}
		if !got.Equal(Epoch()) {
			t.Fatalf("%q: expected epoch, got %s", in, got)
		}
	}
}

func TestWallClockMalformedIsEpochWithError(t *testing.T) {
	for _, in := range []string{"20x0-03-05T03:48:34", "2020-03-05T3:4", "2020-3-5T03:48:34"} {
		got, err := WallClock(in, time.UTC)
		if !errors.Is(err, ErrMalformedDate) {
			t.Fatalf("%q: expected ErrMalformedDate, got %v", in, err)
		}
		if !got.Equal(Epoch()) {
			t.Fatalf("%q: expected epoch, got %s", in, got)
		}
	}
}

func TestParseInstantFormats(t *testing.T) {
	want := time.Date(2020, 5, 14, 9, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2020-05-14T09:00:00.000Z",
		"2020-05-14T09:00:00Z",
		"2020-05-14T02:00:00-07:00",
		"2020-05-14T02:00:00-0700",
		"1589446800000",
	} {
		got, err := ParseInstant(in, time.UTC)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%s: expected %s, got %s", in, want, got)
		}
	}
}

func TestParseInstantWithoutZoneUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+1", 3600)
	got, err := ParseInstant("2020-05-14T10:00:00", loc)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !got.Equal(time.Date(2020, 5, 14, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected instant %s", got)
	}
}

func TestParseInstantFailureIsEpoch(t *testing.T) {
	for _, in := range []string{"", "tomorrow"} {
		got, err := ParseInstant(in, time.UTC)
		if !errors.Is(err, ErrMalformedDate) {
			t.Fatalf("%q: expected ErrMalformedDate, got %v", in, err)
		}
		if !got.Equal(Epoch()) {
			t.Fatalf("%q: expected epoch, got %s", in, got)
		}
	}
}

func TestLegacyFormatters(t *testing.T) {
	at := time.Date(2020, 5, 4, 7, 5, 0, 0, time.UTC)
	if got := LocaleTime(at); got != "07:05" {
		t.Fatalf("expected 07:05, got %s", got)
	}
	if got := MilitaryIsh(at); got != "705" {
		t.Fatalf("expected 705, got %s", got)
	}
	if got := MilitaryIsh(at.Add(12 * time.Hour)); got != "1905" {
		t.Fatalf("expected 1905, got %s", got)
	}
	if got := ShortDate(at); got != "05/04/20" {
		t.Fatalf("expected 05/04/20, got %s", got)
	}
}

func TestSecondsToFormatted(t *testing.T) {
	tests := map[float64]string{
		0:    "0:00",
		-3:   "0:00",
		5:    "0:05",
		65.9: "1:05",
		600:  "10:00",
		3725: "62:05",
	}
	for in, want := range tests {
		if got := SecondsToFormatted(in); got != want {
			t.Fatalf("%v: expected %s, got %s", in, want, got)
		}
	}
}

func TestParseAndFormatDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-15" {
		t.Fatalf("expected round trip date, got %s", got)
	}
}
