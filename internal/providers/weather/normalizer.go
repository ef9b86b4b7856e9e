// Package weather turns raw host weather payloads into the canonical snapshot.
//
// Two time strategies apply. Hourly and daily timestamps are absolute instants
// shifted by the difference between the weather location's offset and the
// device's own offset, so they read as local apparent time at the location.
// Sun and moon events already carry the location's wall clock and are parsed
// naively with any zone suffix dropped. The metadata update timestamp is left
// in its original frame.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/domain/weather"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/timeutil"
)

// Normalizer converts raw payloads into weather.Snapshot values. It holds no
// state between calls.
type Normalizer struct {
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

// NewNormalizer builds a normalizer for a device in loc. A nil loc means time.Local.
func NewNormalizer(loc *time.Location, logger *slog.Logger) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc, now: time.Now, logger: logger}
}

// Location returns the device zone the normalizer corrects against.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize decodes raw and applies the timezone handling. A payload without
// now, now.sun or now.moon returns domain.ErrIncompletePayload so the caller
// keeps its previous snapshot. Date failures never fail the call; they log and
// give the epoch.
func (n *Normalizer) Normalize(raw json.RawMessage) (weather.Snapshot, error) {
	var payload rawSnapshot
	if err := json.Unmarshal(raw, &payload); err != nil {
		n.log(slog.LevelWarn, "weather payload unreadable", "error", err)
		return weather.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	if payload.Now == nil || payload.Now.Sun == nil || payload.Now.Moon == nil {
		return weather.Snapshot{}, domain.ErrIncompletePayload
	}

	correction := n.Correction(payload.Now.Sun.Sunset.value)

	snap := weather.Default()
	snap.Units = payload.Units
	snap.Now = n.current(payload.Now)

	snap.Hourly = make([]weather.Hourly, 0, len(payload.Hourly))
	for i, h := range payload.Hourly {
		entry := h.Hourly
		entry.HourIndex = int(h.HourIndex)
		entry.Condition = h.Condition.resolve()
		entry.Timestamp = n.corrected(fmt.Sprintf("hourly[%d].timestamp", i), h.Timestamp, correction)
		snap.Hourly = append(snap.Hourly, entry)
	}

	snap.Daily = make([]weather.Daily, 0, len(payload.Daily))
	for i, d := range payload.Daily {
		prefix := fmt.Sprintf("daily[%d]", i)
		entry := d.Daily
		entry.WeekdayNumber = int(d.WeekdayNumber)
		entry.Condition = d.Condition.resolve()
		entry.Timestamp = n.corrected(prefix+".timestamp", d.Timestamp, correction)
		entry.Sun = n.sun(prefix+".sun", d.Sun)
		entry.Moon = n.moon(prefix+".moon", d.Moon)
		snap.Daily = append(snap.Daily, entry)
	}

	snap.Nightly = make([]weather.Nightly, 0, len(payload.Nightly))
	for i, night := range payload.Nightly {
		entry := night.Nightly
		entry.Condition = night.Condition.resolve()
		entry.Moon = n.moon(fmt.Sprintf("nightly[%d].moon", i), night.Moon)
		snap.Nightly = append(snap.Nightly, entry)
	}

	snap.Metadata = payload.Metadata.Metadata
	snap.Metadata.UpdateTimestamp = n.instant("metadata.updateTimestamp", payload.Metadata.UpdateTimestamp)

	return snap, nil
}

// Correction is the location offset read from sunset minus the device offset
// at the current instant.
func (n *Normalizer) Correction(sunset string) timeutil.Offset {
	source, err := timeutil.OffsetFromISO(sunset)
	if err != nil {
		n.log(slog.LevelWarn, "weather offset unreadable", "field", "now.sun.sunset", "error", err)
	}
	return source.Sub(timeutil.LocalOffset(n.now(), n.loc))
}

func (n *Normalizer) current(r *rawNow) weather.Now {
	now := r.Now
	now.Condition = r.Condition.resolve()
	now.Sun = n.sun("now.sun", *r.Sun)
	now.Moon = n.moon("now.moon", *r.Moon)
	now.AirQuality = r.AirQuality.AirQuality

	pollutants, err := decodePollutants(r.AirQuality.Pollutants)
	if err != nil {
		n.log(slog.LevelWarn, "weather pollutants unreadable", "error", err)
		pollutants = []weather.Pollutant{}
	}
	now.AirQuality.Pollutants = pollutants
	return now
}

func (n *Normalizer) sun(prefix string, r rawSun) weather.Sun {
	sun := r.Sun
	sun.Sunrise = n.wallClock(prefix+".sunrise", r.Sunrise)
	sun.Sunset = n.wallClock(prefix+".sunset", r.Sunset)
	return sun
}

func (n *Normalizer) moon(prefix string, r rawMoon) weather.Moon {
	moon := r.Moon
	moon.Moonrise = n.wallClock(prefix+".moonrise", r.Moonrise)
	moon.Moonset = n.wallClock(prefix+".moonset", r.Moonset)
	return moon
}

func (n *Normalizer) wallClock(field string, v flexString) time.Time {
	if !v.set {
		return timeutil.Epoch()
	}
	t, err := timeutil.WallClock(v.value, n.loc)
	if err != nil {
		n.log(slog.LevelWarn, "weather date unreadable", "field", field, "error", err)
	}
	return t
}

func (n *Normalizer) instant(field string, v flexString) time.Time {
	t, _ := n.parseInstant(field, v)
	return t
}

func (n *Normalizer) corrected(field string, v flexString, correction timeutil.Offset) time.Time {
	if !v.set {
		n.log(slog.LevelWarn, "weather timestamp missing", "field", field)
		return timeutil.Epoch()
	}
	t, ok := n.parseInstant(field, v)
	if !ok {
		return t
	}
	return t.Add(correction.Duration())
}

func (n *Normalizer) parseInstant(field string, v flexString) (time.Time, bool) {
	if !v.set {
		return timeutil.Epoch(), false
	}
	t, err := timeutil.ParseInstant(v.value, n.loc)
	if err != nil {
		n.log(slog.LevelWarn, "weather date unreadable", "field", field, "error", err)
		return timeutil.Epoch(), false
	}
	return t, true
}

func (n *Normalizer) log(level slog.Level, msg string, args ...any) {
	if n.logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldNamespace, string(domain.NamespaceWeather)))
	n.logger.Log(context.Background(), level, msg, args...)
}
