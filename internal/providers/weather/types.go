package weather

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/preston-bernstein/widgetbridge/internal/domain/weather"
)

// flexString holds a date-like value as the host sent it. Strings are
// unquoted; numbers and any other token keep their raw JSON text so the date
// parsers can reject them. set is false when the key was missing or null.
type flexString struct {
	value string
	set   bool
}

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = flexString{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			*f = flexString{value: s, set: true}
			return nil
		}
	}
	*f = flexString{value: string(b), set: true}
	return nil
}

// flexInt is an integer field the host may send as a fractional number or a
// numeric string. Fractions truncate toward zero; anything else reads as 0.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*f = 0
			return nil
		}
		b = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
		*f = 0
		return nil
	}
	*f = flexInt(math.Trunc(v))
	return nil
}

type rawCondition struct {
	weather.Condition
	Code flexInt `json:"code"`
}

func (r rawCondition) resolve() weather.Condition {
	c := r.Condition
	c.Code = int(r.Code)
	return c
}

// The raw types embed their canonical counterpart and shadow every date field
// and host-fed integer under the same key, so the shallower field receives it.

type rawSun struct {
	weather.Sun
	Sunrise flexString `json:"sunrise"`
	Sunset  flexString `json:"sunset"`
}

type rawMoon struct {
	weather.Moon
	Moonrise flexString `json:"moonrise"`
	Moonset  flexString `json:"moonset"`
}

type rawAirQuality struct {
	weather.AirQuality
	Pollutants json.RawMessage `json:"pollutants"`
}

type rawNow struct {
	weather.Now
	Condition  rawCondition  `json:"condition"`
	Sun        *rawSun       `json:"sun"`
	Moon       *rawMoon      `json:"moon"`
	AirQuality rawAirQuality `json:"airQuality"`
}

type rawHourly struct {
	weather.Hourly
	Timestamp flexString   `json:"timestamp"`
	HourIndex flexInt      `json:"hourIndex"`
	Condition rawCondition `json:"condition"`
}

type rawDaily struct {
	weather.Daily
	Timestamp     flexString   `json:"timestamp"`
	WeekdayNumber flexInt      `json:"weekdayNumber"`
	Condition     rawCondition `json:"condition"`
	Sun           rawSun       `json:"sun"`
	Moon          rawMoon      `json:"moon"`
}

type rawNightly struct {
	weather.Nightly
	Condition rawCondition `json:"condition"`
	Moon      rawMoon      `json:"moon"`
}

type rawMetadata struct {
	weather.Metadata
	UpdateTimestamp flexString `json:"updateTimestamp"`
}

type rawSnapshot struct {
	Now      *rawNow       `json:"now"`
	Hourly   []rawHourly   `json:"hourly"`
	Daily    []rawDaily    `json:"daily"`
	Nightly  []rawNightly  `json:"nightly"`
	Units    weather.Units `json:"units"`
	Metadata rawMetadata   `json:"metadata"`
}

// decodePollutants accepts either a list or an object keyed by pollutant id.
// The object form is flattened into a list sorted by key, and the key becomes
// the name when the entry has none.
func decodePollutants(raw json.RawMessage) ([]weather.Pollutant, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []weather.Pollutant{}, nil
	}
	if trimmed[0] == '[' {
		list := []weather.Pollutant{}
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	byName := map[string]weather.Pollutant{}
	if err := json.Unmarshal(trimmed, &byName); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]weather.Pollutant, 0, len(names))
	for _, name := range names {
		p := byName[name]
		if p.Name == "" {
			p.Name = name
		}
		list = append(list, p)
	}
	return list, nil
}
