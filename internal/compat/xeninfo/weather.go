package xeninfo

import (
	"fmt"
	"strconv"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/domain/weather"
	"github.com/preston-bernstein/widgetbridge/internal/timeutil"
)

// Address is the weather.address global.
type Address struct {
	Street         string `json:"street"`
	Neighbourhood  string `json:"neighbourhood"`
	City           string `json:"city"`
	PostalCode     string `json:"postalCode"`
	County         string `json:"county"`
	State          string `json:"state"`
	Country        string `json:"country"`
	CountryISOCode string `json:"countryISOCode"`
}

// HourlyForecast is one entry of weather.hourlyForecasts.
type HourlyForecast struct {
	Time                 string  `json:"time"`
	ConditionCode        int     `json:"conditionCode"`
	Temperature          float64 `json:"temperature"`
	PercentPrecipitation float64 `json:"percentPrecipitation"`
	HourIndex            int     `json:"hourIndex"`
}

// DayForecast is one entry of weather.dayForecasts.
type DayForecast struct {
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	DayNumber int     `json:"dayNumber"`
	DayOfWeek int     `json:"dayOfWeek"`
	Icon      int     `json:"icon"`
}

// Weather is the weather global. Values stay in the snapshot's units except
// dewPoint, windSpeed, visibility and pressure, which are always metric.
type Weather struct {
	DayForecasts          []DayForecast    `json:"dayForecasts"`
	HourlyForecasts       []HourlyForecast `json:"hourlyForecasts"`
	City                  string           `json:"city"`
	Address               Address          `json:"address"`
	Temperature           float64          `json:"temperature"`
	Low                   float64          `json:"low"`
	High                  float64          `json:"high"`
	FeelsLike             float64          `json:"feelsLike"`
	ChanceOfRain          float64          `json:"chanceofrain"`
	Condition             string           `json:"condition"`
	NaturalCondition      string           `json:"naturalCondition"`
	LatLong               string           `json:"latlong"`
	Celsius               string           `json:"celsius"`
	IsDay                 bool             `json:"isDay"`
	ConditionCode         int              `json:"conditionCode"`
	UpdateTimeString      string           `json:"updateTimeString"`
	Humidity              float64          `json:"humidity"`
	DewPoint              float64          `json:"dewPoint"`
	WindChill             float64          `json:"windChill"`
	WindDirection         float64          `json:"windDirection"`
	WindSpeed             float64          `json:"windSpeed"`
	Visibility            float64          `json:"visibility"`
	SunsetTime            string           `json:"sunsetTime"`
	SunriseTime           string           `json:"sunriseTime"`
	SunsetTimeFormatted   string           `json:"sunsetTimeFormatted"`
	SunriseTimeFormatted  string           `json:"sunriseTimeFormatted"`
	PrecipitationForecast float64          `json:"precipitationForecast"`
	Pressure              float64          `json:"pressure"`
	Precipitation24hr     float64          `json:"precipitation24hr"`
	HeatIndex             float64          `json:"heatIndex"`
	MoonPhase             float64          `json:"moonPhase"`
	CityState             string           `json:"cityState"`
}

// ProjectWeather builds the weather global. Times render in loc;
// twentyFourHour only affects updateTimeString.
func ProjectWeather(w weather.Snapshot, twentyFourHour bool, loc *time.Location) Weather {
	units := w.Units
	addr := w.Metadata.Address
	now := w.Now

	out := Weather{
		City: addr.City,
		Address: Address{
			Street:         addr.House + " " + addr.Street,
			Neighbourhood:  addr.Neighbourhood,
			City:           addr.City,
			PostalCode:     addr.PostalCode,
			County:         addr.County,
			State:          addr.State,
			Country:        addr.Country,
			CountryISOCode: addr.CountryISOCode,
		},
		Temperature:          now.Temperature.Current,
		Low:                  now.Temperature.Minimum,
		High:                 now.Temperature.Maximum,
		FeelsLike:            now.Temperature.FeelsLike,
		ChanceOfRain:         Round(now.Precipitation.Total),
		Condition:            now.Condition.Description,
		NaturalCondition:     now.Condition.Narrative,
		LatLong:              number(w.Metadata.Location.Latitude) + "," + number(w.Metadata.Location.Longitude),
		Celsius:              units.Temperature,
		IsDay:                now.Sun.IsDay,
		ConditionCode:        now.Condition.Code,
		UpdateTimeString:     UpdateTimeString(w.Metadata.UpdateTimestamp.In(loc), twentyFourHour),
		Humidity:             now.Temperature.RelativeHumidity,
		DewPoint:             now.Temperature.Dewpoint,
		WindChill:            now.Temperature.FeelsLike,
		WindDirection:        now.Wind.Degrees,
		WindSpeed:            now.Wind.Speed,
		Visibility:           now.Visibility,
		SunsetTime:           timeutil.MilitaryIsh(now.Sun.Sunset.In(loc)),
		SunriseTime:          timeutil.MilitaryIsh(now.Sun.Sunrise.In(loc)),
		SunsetTimeFormatted:  timeutil.LocaleTime(now.Sun.Sunset.In(loc)),
		SunriseTimeFormatted: timeutil.LocaleTime(now.Sun.Sunrise.In(loc)),
		Pressure:             now.Pressure.Current,
		Precipitation24hr:    now.Precipitation.Total,
		HeatIndex:            now.Temperature.HeatIndex,
		MoonPhase:            now.Moon.PhaseDay,
		CityState:            addr.City,
	}

	if !metricUnit(units.Temperature, "C", units.IsMetric) {
		out.DewPoint = FahrenheitToCelsius(out.DewPoint)
	}
	if !metricUnit(units.Speed, "km/h", units.IsMetric) {
		out.WindSpeed = MilesToKilometres(out.WindSpeed)
	}
	if !metricUnit(units.Distance, "km", units.IsMetric) {
		out.Visibility = MilesToKilometres(out.Visibility)
	}
	if !metricUnit(units.Pressure, "hPa", units.IsMetric) {
		out.Pressure = InHgToHPa(out.Pressure)
	}
	if len(w.Hourly) > 0 {
		out.PrecipitationForecast = Round(w.Hourly[0].Precipitation.Probability)
	}

	out.HourlyForecasts = make([]HourlyForecast, 0, len(w.Hourly))
	for _, h := range w.Hourly {
		out.HourlyForecasts = append(out.HourlyForecasts, HourlyForecast{
			Time:                 timeutil.LocaleTime(h.Timestamp.In(loc)),
			ConditionCode:        h.Condition.Code,
			Temperature:          h.Temperature.Forecast,
			PercentPrecipitation: Round(h.Precipitation.Probability),
			HourIndex:            h.HourIndex,
		})
	}

	out.DayForecasts = make([]DayForecast, 0, len(w.Daily))
	for i, d := range w.Daily {
		out.DayForecasts = append(out.DayForecasts, DayForecast{
			Low:       d.Temperature.Minimum,
			High:      d.Temperature.Maximum,
			DayNumber: i,
			DayOfWeek: d.WeekdayNumber + 1,
			Icon:      d.Condition.Code,
		})
	}
	return out
}

// UpdateTimeString renders the last update the way legacy widgets parse it:
// "M/D/YY, H:mm" with a 0-based month and the weekday in place of the day of
// month. The 12-hour form only folds hours past 12, so noon stays 12 and
// midnight stays 0.
func UpdateTimeString(t time.Time, twentyFourHour bool) string {
	hours := t.Hour()
	if !twentyFourHour && hours > 12 {
		hours -= 12
	}
	year := strconv.Itoa(t.Year())
	if len(year) > 2 {
		year = year[len(year)-2:]
	}

	out := fmt.Sprintf("%d/%d/%s, %d:%02d", int(t.Month())-1, int(t.Weekday()), year, hours, t.Minute())
	if twentyFourHour {
		return out
	}
	if t.Hour() >= 12 {
		return out + " PM"
	}
	return out + " AM"
}
