package is2

import (
	"encoding/json"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/preston-bernstein/widgetbridge/internal/domain/weather"
	"github.com/preston-bernstein/widgetbridge/internal/providers"
	"github.com/preston-bernstein/widgetbridge/internal/timeutil"
)

type weatherSelector uint8

const (
	weatherRegister weatherSelector = iota
	weatherUnregister
	weatherSetUpdateInterval
	weatherRemoveRequester
	weatherUpdate
	weatherLastUpdateTime
	weatherIsCelsius
	weatherIsWindSpeedMph
	weatherCurrentLocation
	weatherCurrentTemperature
	weatherCurrentCondition
	weatherCurrentConditionAsString
	weatherNaturalLanguageDescription
	weatherHighForCurrentDay
	weatherLowForCurrentDay
	weatherCurrentWindSpeed
	weatherCurrentWindDirection
	weatherCurrentWindChill
	weatherCurrentDewPoint
	weatherCurrentHumidity
	weatherCurrentVisibilityPercent
	weatherCurrentChanceOfRain
	weatherCurrentlyFeelsLike
	weatherCurrentPressure
	weatherSunsetTime
	weatherSunriseTime
	weatherCurrentLatitude
	weatherCurrentLongitude
	weatherHourlyForecasts
	weatherHourlyForecastsJSON
	weatherDayForecasts
	weatherDayForecastsJSON
)

var weatherSelectorNames = map[string]weatherSelector{
	"registerForWeatherUpdatesWithIdentifier:andCallback:": weatherRegister,
	"unregisterForUpdatesWithIdentifier:":                  weatherUnregister,
	"setWeatherUpdateTimeInterval:forRequester:":           weatherSetUpdateInterval,
	"removeRequesterForWeatherTimeInterval:":               weatherRemoveRequester,
	"updateWeather":                                        weatherUpdate,
	"lastUpdateTime":                                       weatherLastUpdateTime,
	"isCelsius":                                            weatherIsCelsius,
	"isWindSpeedMph":                                       weatherIsWindSpeedMph,
	"currentLocation":                                      weatherCurrentLocation,
	"currentTemperature":                                   weatherCurrentTemperature,
	"currentCondition":                                     weatherCurrentCondition,
	"currentConditionAsString":                             weatherCurrentConditionAsString,
	"naturalLanguageDescription":                           weatherNaturalLanguageDescription,
	"highForCurrentDay":                                    weatherHighForCurrentDay,
	"lowForCurrentDay":                                     weatherLowForCurrentDay,
	"currentWindSpeed":                                     weatherCurrentWindSpeed,
	"currentWindDirection":                                 weatherCurrentWindDirection,
	"currentWindChill":                                     weatherCurrentWindChill,
	"currentDewPoint":                                      weatherCurrentDewPoint,
	"currentHumidity":                                      weatherCurrentHumidity,
	"currentVisibilityPercent":                             weatherCurrentVisibilityPercent,
	"currentChanceOfRain":                                  weatherCurrentChanceOfRain,
	"currentlyFeelsLike":                                   weatherCurrentlyFeelsLike,
	"currentPressure":                                      weatherCurrentPressure,
	"sunsetTime":                                           weatherSunsetTime,
	"sunriseTime":                                          weatherSunriseTime,
	"currentLatitude":                                      weatherCurrentLatitude,
	"currentLongitude":                                     weatherCurrentLongitude,
	"hourlyForecastsForCurrentLocation":                    weatherHourlyForecasts,
	"hourlyForecastsForCurrentLocationJSON":                weatherHourlyForecastsJSON,
	"dayForecastsForCurrentLocation":                       weatherDayForecasts,
	"dayForecastsForCurrentLocationJSON":                   weatherDayForecastsJSON,
}

type forecastKind uint8

const (
	forecastHourly forecastKind = iota
	forecastDaily
)

type forecastKey struct {
	revision uint64
	kind     forecastKind
}

// HourlyForecast is one entry of the hourly forecast JSON.
type HourlyForecast struct {
	Time                 string  `json:"time"`
	Condition            int     `json:"condition"`
	Temperature          float64 `json:"temperature"`
	PercentPrecipitation float64 `json:"percentPrecipitation"`
}

// DayForecast is one entry of the daily forecast JSON. DayOfWeek counts from 1 for Sunday.
type DayForecast struct {
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	DayNumber int     `json:"dayNumber"`
	DayOfWeek int     `json:"dayOfWeek"`
	Condition int     `json:"condition"`
}

type weatherObject struct {
	provider  *providers.Provider[weather.Snapshot]
	loc       *time.Location
	observers *observerTable
	forecasts *lru.Cache[forecastKey, string]
	table     selectorTable[weatherSelector]
}

func newWeather(p *providers.Provider[weather.Snapshot], loc *time.Location, logger *slog.Logger) *weatherObject {
	// Two kinds across a couple of revisions is all that is ever read.
	cache, _ := lru.New[forecastKey, string](4)
	w := &weatherObject{
		provider:  p,
		loc:       loc,
		observers: newObserverTable(ObjectWeather, logger),
		forecasts: cache,
	}
	w.table = selectorTable[weatherSelector]{names: weatherSelectorNames, handlers: w.handlers()}
	p.Observe(func(weather.Snapshot) { w.observers.notify() })
	return w
}

func (w *weatherObject) call(selector string, args Args) (any, bool, error) {
	return dispatch(w.table, selector, args)
}

func (w *weatherObject) unregisterToken(token string) bool {
	return w.observers.unregisterToken(token)
}

func (w *weatherObject) read(fn func(s weather.Snapshot) any) handler {
	return func(Args) (any, error) { return fn(w.provider.Snapshot()), nil }
}

func (w *weatherObject) clock(t time.Time) string {
	return timeutil.LocaleTime(t.In(w.loc))
}

func (w *weatherObject) handlers() map[weatherSelector]handler {
	return map[weatherSelector]handler{
		weatherRegister:          registerWith(w.observers),
		weatherUnregister:        unregisterWith(w.observers),
		weatherSetUpdateInterval: noop,
		weatherRemoveRequester:   noop,
		weatherUpdate:            noop,

		weatherLastUpdateTime: w.read(func(s weather.Snapshot) any { return w.clock(s.Metadata.UpdateTimestamp) }),
		weatherIsCelsius:      w.read(func(s weather.Snapshot) any { return s.Units.IsMetric }),
		weatherIsWindSpeedMph: w.read(func(s weather.Snapshot) any { return s.Units.Speed == "mph" }),

		weatherCurrentLocation:            w.read(func(s weather.Snapshot) any { return s.Metadata.Address.City }),
		weatherCurrentTemperature:         w.read(func(s weather.Snapshot) any { return s.Now.Temperature.Current }),
		weatherCurrentCondition:           w.read(func(s weather.Snapshot) any { return s.Now.Condition.Code }),
		weatherCurrentConditionAsString:   w.read(func(s weather.Snapshot) any { return s.Now.Condition.Description }),
		weatherNaturalLanguageDescription: w.read(func(s weather.Snapshot) any { return s.Now.Condition.Description }),
		weatherHighForCurrentDay:          w.read(func(s weather.Snapshot) any { return s.Now.Temperature.Maximum }),
		weatherLowForCurrentDay:           w.read(func(s weather.Snapshot) any { return s.Now.Temperature.Minimum }),
		weatherCurrentWindSpeed:           w.read(func(s weather.Snapshot) any { return s.Now.Wind.Speed }),
		weatherCurrentWindDirection:       w.read(func(s weather.Snapshot) any { return s.Now.Wind.Degrees }),
		weatherCurrentWindChill:           w.read(func(s weather.Snapshot) any { return s.Now.Temperature.Current }),
		weatherCurrentDewPoint:            w.read(func(s weather.Snapshot) any { return s.Now.Temperature.Dewpoint }),
		weatherCurrentHumidity:            w.read(func(s weather.Snapshot) any { return s.Now.Temperature.RelativeHumidity }),
		weatherCurrentVisibilityPercent:   w.read(func(s weather.Snapshot) any { return s.Now.Visibility }),
		weatherCurrentChanceOfRain:        w.read(func(s weather.Snapshot) any { return s.Now.Precipitation.Hourly }),
		weatherCurrentlyFeelsLike:         w.read(func(s weather.Snapshot) any { return s.Now.Temperature.FeelsLike }),
		weatherCurrentPressure:            w.read(func(s weather.Snapshot) any { return s.Now.Pressure.Current }),
		weatherSunsetTime:                 w.read(func(s weather.Snapshot) any { return w.clock(s.Now.Sun.Sunset) }),
		weatherSunriseTime:                w.read(func(s weather.Snapshot) any { return w.clock(s.Now.Sun.Sunrise) }),
		weatherCurrentLatitude:            w.read(func(s weather.Snapshot) any { return s.Metadata.Location.Latitude }),
		weatherCurrentLongitude:           w.read(func(s weather.Snapshot) any { return s.Metadata.Location.Longitude }),

		weatherHourlyForecasts:     w.forecastJSON(forecastHourly),
		weatherHourlyForecastsJSON: w.forecastJSON(forecastHourly),
		weatherDayForecasts:        w.forecastJSON(forecastDaily),
		weatherDayForecastsJSON:    w.forecastJSON(forecastDaily),
	}
}

// forecastJSON renders a forecast list once per provider revision.
func (w *weatherObject) forecastJSON(kind forecastKind) handler {
	return func(Args) (any, error) {
		state := w.provider.State()
		key := forecastKey{revision: state.Revision, kind: kind}
		if cached, ok := w.forecasts.Get(key); ok {
			return cached, nil
		}

		var list any
		if kind == forecastHourly {
			list = w.hourly(state.Snapshot)
		} else {
			list = w.daily(state.Snapshot)
		}
		out, err := json.Marshal(list)
		if err != nil {
			return nil, err
		}
		w.forecasts.Add(key, string(out))
		return string(out), nil
	}
}

func (w *weatherObject) hourly(s weather.Snapshot) []HourlyForecast {
	out := make([]HourlyForecast, 0, len(s.Hourly))
	for _, h := range s.Hourly {
		out = append(out, HourlyForecast{
			Time:                 w.clock(h.Timestamp),
			Condition:            h.Condition.Code,
			Temperature:          h.Temperature.Forecast,
			PercentPrecipitation: h.Precipitation.Probability,
		})
	}
	return out
}

func (w *weatherObject) daily(s weather.Snapshot) []DayForecast {
	out := make([]DayForecast, 0, len(s.Daily))
	for _, d := range s.Daily {
		out = append(out, DayForecast{
			Low:       d.Temperature.Minimum,
			High:      d.Temperature.Maximum,
			DayNumber: d.WeekdayNumber,
			DayOfWeek: int(d.Timestamp.In(w.loc).Weekday()) + 1,
			Condition: d.Condition.Code,
		})
	}
	return out
}
