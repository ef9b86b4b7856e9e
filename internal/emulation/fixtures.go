package emulation

import (
	"embed"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed fixtures/*.yaml
var fixtureFS embed.FS

// City selects a weather fixture.
type City string

const (
	CitySanFrancisco City = "sf"
	CityLondon       City = "london"
)

// Units selects the measurement system of a weather fixture.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// ParseCity accepts the short city names and the legacy long forms.
func ParseCity(raw string) (City, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sf", "san_francisco", "san-francisco":
		return CitySanFrancisco, nil
	case "london":
		return CityLondon, nil
	default:
		return "", fmt.Errorf("unknown emulation city %q", raw)
	}
}

// ParseUnits accepts metric or imperial. Empty means metric.
func ParseUnits(raw string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "metric":
		return UnitsMetric, nil
	case "imperial":
		return UnitsImperial, nil
	default:
		return "", fmt.Errorf("unknown emulation units %q", raw)
	}
}

// Fixture returns the named embedded fixture as JSON.
func Fixture(name string) ([]byte, error) {
	raw, err := fixtureFS.ReadFile("fixtures/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}
	out, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}
	return out, nil
}

// WeatherFixture returns the weather payload for a city in the given units.
func WeatherFixture(city City, units Units) ([]byte, error) {
	return Fixture(fmt.Sprintf("weather_%s_%s", city, units))
}
