package weather

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/testutil"
	"github.com/preston-bernstein/widgetbridge/internal/timeutil"
)

var fixedNow = time.Date(2020, 5, 14, 12, 0, 0, 0, time.UTC)

func newTestNormalizer(loc *time.Location) *Normalizer {
	n := NewNormalizer(loc, nil)
	n.now = testutil.FixedClock(fixedNow)
	return n
}

func samplePayload(sunset string) map[string]any {
	return map[string]any{
		"now": map[string]any{
			"temperature": map[string]any{"current": 21.5},
			"sun": map[string]any{
				"sunrise": "2020-05-14T06:01:02-0700",
				"sunset":  sunset,
				"isDay":   true,
			},
			"moon": map[string]any{
				"phaseCode": "WXC",
				"moonrise":  "2020-05-14T02:10:00-0700",
				"moonset":   nil,
			},
			"airquality": map[string]any{
				"scale": "AQI",
				"pollutants": map[string]any{
					"pm10":  map[string]any{"amount": 10.5, "available": true},
					"ozone": map[string]any{"amount": 3},
				},
			},
		},
		"hourly": []any{
			map[string]any{"timestamp": "2020-05-14T09:00:00.000Z", "hourIndex": 9},
		},
		"daily": []any{
			map[string]any{
				"timestamp":     "2020-05-14T07:00:00Z",
				"weekdayNumber": 5,
				"sun":           map[string]any{"sunrise": "2020-05-14T05:55:00-0700", "sunset": "2020-05-14T20:10:00-0700"},
				"moon":          map[string]any{"moonrise": "2020-05-14T01:00:00-0700", "moonset": "2020-05-14T13:00:00-0700"},
				"precipitation": map[string]any{"probability": 20, "stormLikelihood": nil, "tornadoLikelihood": 1},
			},
		},
		"nightly": []any{
			map[string]any{"moon": map[string]any{"moonrise": "2020-05-14T23:40:00-0700", "moonset": "bogus"}},
		},
		"units": map[string]any{"temperature": "C", "isMetric": true},
		"metadata": map[string]any{
			"address":         map[string]any{"city": "Cupertino"},
			"updateTimestamp": "2020-05-14T10:00:00Z",
		},
	}
}

func encode(t *testing.T, payload any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return b
}

func TestNormalizeZuluSunsetWithUTCDeviceLeavesTimestamps(t *testing.T) {
	n := newTestNormalizer(time.UTC)

	snap, err := n.Normalize(encode(t, samplePayload("2020-05-14T19:12:37.137Z")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2020, 5, 14, 9, 0, 0, 0, time.UTC)
	if got := snap.Hourly[0].Timestamp; !got.Equal(want) {
		t.Fatalf("expected hourly timestamp %s, got %s", want, got)
	}
	if snap.Hourly[0].HourIndex != 9 {
		t.Fatalf("expected non-date fields to pass through, got %+v", snap.Hourly[0])
	}
}

func TestNormalizeCorrectionRollsOverDay(t *testing.T) {
	n := newTestNormalizer(time.UTC)
	payload := samplePayload("2020-05-14T19:12:37+0200")
	instant := time.Date(2020, 5, 14, 23, 30, 0, 0, time.UTC)
	payload["hourly"] = []any{map[string]any{"timestamp": instant.UnixMilli()}}

	snap, err := n.Normalize(encode(t, payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2020, 5, 15, 1, 30, 0, 0, time.UTC)
	if got := snap.Hourly[0].Timestamp; !got.Equal(want) {
		t.Fatalf("expected %s after correction, got %s", want, got)
	}
}

func TestNormalizeAppliesEachTimeStrategy(t *testing.T) {
	device := time.FixedZone("device", -5*60*60)
	n := newTestNormalizer(device)

	snap, err := n.Normalize(encode(t, samplePayload("2020-05-14T20:12:00+01:00")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// +01:00 at the location, -05:00 on the device.
	if got, want := snap.Daily[0].Timestamp, time.Date(2020, 5, 14, 13, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("daily timestamp expected %s, got %s", want, got)
	}
	if got, want := snap.Hourly[0].Timestamp, time.Date(2020, 5, 14, 15, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("hourly timestamp expected %s, got %s", want, got)
	}

	wallClock := map[string]struct {
		got  time.Time
		want time.Time
	}{
		"now.sun.sunrise":    {snap.Now.Sun.Sunrise, time.Date(2020, 5, 14, 6, 1, 2, 0, device)},
		"now.sun.sunset":     {snap.Now.Sun.Sunset, time.Date(2020, 5, 14, 20, 12, 0, 0, device)},
		"now.moon.moonrise":  {snap.Now.Moon.Moonrise, time.Date(2020, 5, 14, 2, 10, 0, 0, device)},
		"daily.sun.sunset":   {snap.Daily[0].Sun.Sunset, time.Date(2020, 5, 14, 20, 10, 0, 0, device)},
		"daily.moon.moonset": {snap.Daily[0].Moon.Moonset, time.Date(2020, 5, 14, 13, 0, 0, 0, device)},
		"nightly.moonrise":   {snap.Nightly[0].Moon.Moonrise, time.Date(2020, 5, 14, 23, 40, 0, 0, device)},
	}
	for field, tc := range wallClock {
		if !tc.got.Equal(tc.want) {
			t.Fatalf("%s expected wall clock %s, got %s", field, tc.want, tc.got)
		}
	}

	if got, want := snap.Metadata.UpdateTimestamp, time.Date(2020, 5, 14, 10, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("update timestamp must not be corrected: expected %s, got %s", want, got)
	}
}

func TestNormalizeDegradesBadDatesToEpoch(t *testing.T) {
	n := newTestNormalizer(time.UTC)

	snap, err := n.Normalize(encode(t, samplePayload("2020-05-14T19:12:37Z")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !snap.Now.Moon.Moonset.Equal(timeutil.Epoch()) {
		t.Fatalf("expected null moonset to be epoch, got %s", snap.Now.Moon.Moonset)
	}
	if !snap.Nightly[0].Moon.Moonset.Equal(timeutil.Epoch()) {
		t.Fatalf("expected malformed moonset to be epoch, got %s", snap.Nightly[0].Moon.Moonset)
	}

	payload := samplePayload("2020-05-14T19:12:37Z")
	payload["hourly"] = []any{map[string]any{"timestamp": "yesterday"}, map[string]any{}}
	snap, err = n.Normalize(encode(t, payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, h := range snap.Hourly {
		if !h.Timestamp.Equal(timeutil.Epoch()) {
			t.Fatalf("hourly[%d] expected epoch, got %s", i, h.Timestamp)
		}
	}
}

func TestNormalizeDegradesNonStringDatesToEpoch(t *testing.T) {
	n := newTestNormalizer(time.UTC)
	payload := samplePayload("2020-05-14T19:12:37Z")
	daily := payload["daily"].([]any)[0].(map[string]any)
	daily["sun"] = map[string]any{"sunrise": false, "sunset": map[string]any{"at": "20:10"}}
	daily["timestamp"] = []any{"2020-05-14T07:00:00Z"}
	payload["metadata"].(map[string]any)["updateTimestamp"] = true

	snap, err := n.Normalize(encode(t, payload))
	if err != nil {
		t.Fatalf("expected non-string dates to degrade, got %v", err)
	}
	got := []time.Time{snap.Daily[0].Sun.Sunrise, snap.Daily[0].Sun.Sunset, snap.Daily[0].Timestamp, snap.Metadata.UpdateTimestamp}
	for i, ts := range got {
		if !ts.Equal(timeutil.Epoch()) {
			t.Fatalf("date %d expected epoch, got %s", i, ts)
		}
	}
	if !snap.Daily[0].Moon.Moonrise.Equal(time.Date(2020, 5, 14, 1, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected sibling dates untouched, got %s", snap.Daily[0].Moon.Moonrise)
	}
}

func TestNormalizeToleratesLooseIntegers(t *testing.T) {
	n := newTestNormalizer(time.UTC)
	payload := samplePayload("2020-05-14T19:12:37Z")
	payload["now"].(map[string]any)["condition"] = map[string]any{"code": "32", "description": "Sunny"}
	payload["hourly"] = []any{map[string]any{
		"timestamp": "2020-05-14T09:00:00Z",
		"hourIndex": 9.5,
		"condition": map[string]any{"code": 30.0, "description": "Partly Cloudy"},
	}}
	daily := payload["daily"].([]any)[0].(map[string]any)
	daily["weekdayNumber"] = "five"
	payload["nightly"] = []any{map[string]any{"condition": map[string]any{"code": true}}}

	snap, err := n.Normalize(encode(t, payload))
	if err != nil {
		t.Fatalf("expected loose integers to decode, got %v", err)
	}
	if snap.Now.Condition.Code != 32 || snap.Now.Condition.Description != "Sunny" {
		t.Fatalf("expected numeric string code, got %+v", snap.Now.Condition)
	}
	if h := snap.Hourly[0]; h.HourIndex != 9 || h.Condition.Code != 30 || h.Condition.Description != "Partly Cloudy" {
		t.Fatalf("expected truncated hour fields, got %+v", h)
	}
	if snap.Daily[0].WeekdayNumber != 0 {
		t.Fatalf("expected unreadable weekday to be 0, got %d", snap.Daily[0].WeekdayNumber)
	}
	if snap.Nightly[0].Condition.Code != 0 {
		t.Fatalf("expected unreadable code to be 0, got %d", snap.Nightly[0].Condition.Code)
	}
}

func TestNormalizeIgnoresIncompletePayloads(t *testing.T) {
	n := newTestNormalizer(time.UTC)

	noMoon := samplePayload("2020-05-14T19:12:37Z")
	delete(noMoon["now"].(map[string]any), "moon")

	cases := map[string]json.RawMessage{
		"empty object": json.RawMessage(`{}`),
		"missing now":  encode(t, map[string]any{"hourly": []any{}}),
		"missing moon": encode(t, noMoon),
	}
	for name, raw := range cases {
		if _, err := n.Normalize(raw); !errors.Is(err, domain.ErrIncompletePayload) {
			t.Fatalf("%s: expected incomplete payload error, got %v", name, err)
		}
	}

	if _, err := n.Normalize(json.RawMessage(`{"now":`)); !errors.Is(err, domain.ErrMalformedPayload) {
		t.Fatalf("expected malformed payload error, got %v", err)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := newTestNormalizer(time.FixedZone("device", 3*60*60+30*60))
	raw := encode(t, samplePayload("2020-05-14T19:12:37-0800"))

	first, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical snapshots, got %+v and %+v", first, second)
	}
}

func TestNormalizeFlattensPollutants(t *testing.T) {
	n := newTestNormalizer(time.UTC)

	snap, err := n.Normalize(encode(t, samplePayload("2020-05-14T19:12:37Z")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pollutants := snap.Now.AirQuality.Pollutants
	if len(pollutants) != 2 || pollutants[0].Name != "ozone" || pollutants[1].Name != "pm10" {
		t.Fatalf("expected pollutants sorted by key, got %+v", pollutants)
	}
	if !pollutants[1].Available || pollutants[1].Amount != 10.5 {
		t.Fatalf("expected pm10 values preserved, got %+v", pollutants[1])
	}
	if snap.Now.AirQuality.Scale != "AQI" {
		t.Fatalf("expected lower-case airquality key to decode, got %+v", snap.Now.AirQuality)
	}

	payload := samplePayload("2020-05-14T19:12:37Z")
	payload["now"].(map[string]any)["airQuality"] = map[string]any{
		"pollutants": []any{map[string]any{"name": "Ozone", "amount": 1}},
	}
	delete(payload["now"].(map[string]any), "airquality")
	snap, err = n.Normalize(encode(t, payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Now.AirQuality.Pollutants) != 1 || snap.Now.AirQuality.Pollutants[0].Name != "Ozone" {
		t.Fatalf("expected list pollutants kept, got %+v", snap.Now.AirQuality.Pollutants)
	}
}

func TestNormalizeKeepsNightlyPositionalWithoutTimestamp(t *testing.T) {
	n := newTestNormalizer(time.UTC)

	snap, err := n.Normalize(encode(t, samplePayload("2020-05-14T19:12:37Z")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Nightly) != len(snap.Daily) {
		t.Fatalf("expected nightly aligned with daily, got %d and %d", len(snap.Nightly), len(snap.Daily))
	}
	out, err := json.Marshal(snap.Nightly[0])
	if err != nil {
		t.Fatalf("marshal nightly: %v", err)
	}
	if strings.Contains(string(out), "timestamp") {
		t.Fatalf("nightly entries must not carry a timestamp, got %s", out)
	}
}

func TestNormalizeKeepsNullableSevereLikelihoods(t *testing.T) {
	n := newTestNormalizer(time.UTC)

	snap, err := n.Normalize(encode(t, samplePayload("2020-05-14T19:12:37Z")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	precip := snap.Daily[0].Precipitation
	if precip.StormLikelihood != nil {
		t.Fatalf("expected null storm likelihood, got %v", *precip.StormLikelihood)
	}
	if precip.TornadoLikelihood == nil || *precip.TornadoLikelihood != 1 {
		t.Fatalf("expected tornado likelihood 1, got %v", precip.TornadoLikelihood)
	}
}
