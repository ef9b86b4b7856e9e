package weather

import "time"

// Condition is a condition code plus its human description.
type Condition struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	Narrative   string `json:"narrative"`
}

// Ultraviolet carries the UV index.
type Ultraviolet struct {
	Index       float64 `json:"index"`
	Description string  `json:"description"`
}

// Wind describes wind at a point in time.
type Wind struct {
	Degrees  float64 `json:"degrees"`
	Cardinal string  `json:"cardinal"`
	Gust     float64 `json:"gust"`
	Speed    float64 `json:"speed"`
}

// Sun holds sunrise and sunset as wall-clock instants at the weather location.
type Sun struct {
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
	IsDay   bool      `json:"isDay"`
}

// Moon holds moon phase data.
type Moon struct {
	PhaseCode        string    `json:"phaseCode"`
	PhaseDay         float64   `json:"phaseDay"`
	PhaseDescription string    `json:"phaseDescription"`
	Moonrise         time.Time `json:"moonrise"`
	Moonset          time.Time `json:"moonset"`
}

// Pollutant is a single named air quality measurement.
type Pollutant struct {
	Name          string  `json:"name"`
	Available     bool    `json:"available"`
	Amount        float64 `json:"amount"`
	CategoryLevel string  `json:"categoryLevel"`
	CategoryIndex float64 `json:"categoryIndex"`
	Units         string  `json:"units"`
	Description   string  `json:"description"`
	Index         float64 `json:"index"`
}

// AirQuality is the composite air quality observation.
type AirQuality struct {
	Scale         string      `json:"scale"`
	CategoryLevel string      `json:"categoryLevel"`
	CategoryIndex float64     `json:"categoryIndex"`
	Index         float64     `json:"index"`
	Comment       string      `json:"comment"`
	Source        string      `json:"source"`
	Pollutants    []Pollutant `json:"pollutants"`
}

// NowTemperature is the temperature set for current conditions.
type NowTemperature struct {
	Minimum          float64 `json:"minimum"`
	Maximum          float64 `json:"maximum"`
	Current          float64 `json:"current"`
	RelativeHumidity float64 `json:"relativeHumidity"`
	FeelsLike        float64 `json:"feelsLike"`
	HeatIndex        float64 `json:"heatIndex"`
	Dewpoint         float64 `json:"dewpoint"`
}

// NowPrecipitation is observed precipitation.
type NowPrecipitation struct {
	Total  float64 `json:"total"`
	Hourly float64 `json:"hourly"`
	Type   string  `json:"type"`
}

// Pressure is barometric pressure.
type Pressure struct {
	Current     float64 `json:"current"`
	Tendency    float64 `json:"tendency"`
	Description string  `json:"description"`
}

// Now is the current conditions section.
type Now struct {
	Condition     Condition        `json:"condition"`
	Temperature   NowTemperature   `json:"temperature"`
	Ultraviolet   Ultraviolet      `json:"ultraviolet"`
	CloudCover    float64          `json:"cloudCoverPercentage"`
	Sun           Sun              `json:"sun"`
	AirQuality    AirQuality       `json:"airQuality"`
	Precipitation NowPrecipitation `json:"precipitation"`
	Wind          Wind             `json:"wind"`
	Visibility    float64          `json:"visibility"`
	Moon          Moon             `json:"moon"`
	Pressure      Pressure         `json:"pressure"`
}

// HourlyTemperature is the temperature set for an hourly forecast.
type HourlyTemperature struct {
	Forecast         float64 `json:"forecast"`
	RelativeHumidity float64 `json:"relativeHumidity"`
	FeelsLike        float64 `json:"feelsLike"`
	HeatIndex        float64 `json:"heatIndex"`
	Dewpoint         float64 `json:"dewpoint"`
}

// Chance is a precipitation probability and type.
type Chance struct {
	Type        string  `json:"type"`
	Probability float64 `json:"probability"`
}

// Hourly is one hour of forecast. Timestamp is local apparent time at the location.
type Hourly struct {
	Timestamp     time.Time         `json:"timestamp"`
	HourIndex     int               `json:"hourIndex"`
	DayOfWeek     string            `json:"dayOfWeek"`
	Condition     Condition         `json:"condition"`
	CloudCover    float64           `json:"cloudCoverPercentage"`
	Ultraviolet   Ultraviolet       `json:"ultraviolet"`
	Temperature   HourlyTemperature `json:"temperature"`
	Precipitation Chance            `json:"precipitation"`
	Wind          Wind              `json:"wind"`
	Visibility    float64           `json:"visibility"`
}

// DailyTemperature is the temperature set for a daily forecast.
type DailyTemperature struct {
	Minimum          float64 `json:"minimum"`
	Maximum          float64 `json:"maximum"`
	RelativeHumidity float64 `json:"relativeHumidity"`
	HeatIndex        float64 `json:"heatIndex"`
}

// SevereChance extends Chance with nullable severe weather likelihoods.
type SevereChance struct {
	Type              string   `json:"type"`
	Probability       float64  `json:"probability"`
	StormLikelihood   *float64 `json:"stormLikelihood"`
	TornadoLikelihood *float64 `json:"tornadoLikelihood"`
}

// Daily is one day of forecast. Timestamp is local apparent time at the location.
type Daily struct {
	Timestamp     time.Time        `json:"timestamp"`
	WeekdayNumber int              `json:"weekdayNumber"`
	DayOfWeek     string           `json:"dayOfWeek"`
	Condition     Condition        `json:"condition"`
	CloudCover    float64          `json:"cloudCoverPercentage"`
	Ultraviolet   Ultraviolet      `json:"ultraviolet"`
	Temperature   DailyTemperature `json:"temperature"`
	Sun           Sun              `json:"sun"`
	Moon          Moon             `json:"moon"`
	Precipitation SevereChance     `json:"precipitation"`
	Wind          Wind             `json:"wind"`
}

// NightlyTemperature is the temperature set for a nightly forecast.
type NightlyTemperature struct {
	RelativeHumidity float64 `json:"relativeHumidity"`
	HeatIndex        float64 `json:"heatIndex"`
}

// Nightly supplements Daily at the same index. It has no timestamp of its own.
type Nightly struct {
	Condition     Condition          `json:"condition"`
	CloudCover    float64            `json:"cloudCoverPercentage"`
	Ultraviolet   Ultraviolet        `json:"ultraviolet"`
	Temperature   NightlyTemperature `json:"temperature"`
	Moon          Moon               `json:"moon"`
	Precipitation Chance             `json:"precipitation"`
	Wind          Wind               `json:"wind"`
}

// Units describes the measurement system values are expressed in.
type Units struct {
	Temperature string `json:"temperature"`
	Amount      string `json:"amount"`
	Speed       string `json:"speed"`
	Pressure    string `json:"pressure"`
	Distance    string `json:"distance"`
	IsMetric    bool   `json:"isMetric"`
}

// Address is the resolved address of the weather location.
type Address struct {
	House          string `json:"house"`
	Street         string `json:"street"`
	Neighbourhood  string `json:"neighbourhood"`
	City           string `json:"city"`
	PostalCode     string `json:"postalCode"`
	County         string `json:"county"`
	State          string `json:"state"`
	Country        string `json:"country"`
	CountryISOCode string `json:"countryISOCode"`
}

// Location is a coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Metadata describes where and when the observation was made.
// UpdateTimestamp stays in its original reference frame.
type Metadata struct {
	Address         Address   `json:"address"`
	Location        Location  `json:"location"`
	UpdateTimestamp time.Time `json:"updateTimestamp"`
}

// Snapshot is the canonical weather data.
type Snapshot struct {
	Now      Now       `json:"now"`
	Hourly   []Hourly  `json:"hourly"`
	Daily    []Daily   `json:"daily"`
	Nightly  []Nightly `json:"nightly"`
	Units    Units     `json:"units"`
	Metadata Metadata  `json:"metadata"`
}

// Default returns the empty snapshot used before the first update.
func Default() Snapshot {
	epoch := time.Unix(0, 0).UTC()
	return Snapshot{
		Now: Now{
			Sun:        Sun{Sunrise: epoch, Sunset: epoch},
			Moon:       Moon{Moonrise: epoch, Moonset: epoch},
			AirQuality: AirQuality{Pollutants: []Pollutant{}},
		},
		Hourly:   []Hourly{},
		Daily:    []Daily{},
		Nightly:  []Nightly{},
		Metadata: Metadata{UpdateTimestamp: epoch},
	}
}
