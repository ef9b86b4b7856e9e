package is2

import (
	"log/slog"

	"github.com/preston-bernstein/widgetbridge/internal/domain/weather"
	"github.com/preston-bernstein/widgetbridge/internal/providers"
)

type locationSelector uint8

const (
	locationRegister locationSelector = iota
	locationUnregister
	locationRequestUpdate
	locationSetDistanceInterval
	locationRemoveDistanceRequester
	locationSetAccuracy
	locationRemoveAccuracyRequester
	locationServicesEnabled
	locationLatitude
	locationLongitude
	locationCity
	locationNeighbourhood
	locationState
	locationCounty
	locationCountry
	locationISOCountryCode
	locationPostCode
	locationStreet
	locationHouseNumber
)

var locationSelectorNames = map[string]locationSelector{
	"registerForLocationNotificationsWithIdentifier:andCallback:": locationRegister,
	"unregisterForUpdatesWithIdentifier:":                         locationUnregister,
	"requestUpdateToLocationData":                                 locationRequestUpdate,
	"setLocationUpdateDistanceInterval:forRequester:":             locationSetDistanceInterval,
	"removeRequesterForLocationDistanceInterval:":                 locationRemoveDistanceRequester,
	"setLocationUpdateAccuracy:forRequester:":                     locationSetAccuracy,
	"removeRequesterForLocationAccuracy:":                         locationRemoveAccuracyRequester,
	"isLocationServicesEnabled":                                   locationServicesEnabled,
	"currentLatitude":                                             locationLatitude,
	"currentLongitude":                                            locationLongitude,
	"cityForCurrentLocation":                                      locationCity,
	"neighbourhoodForCurrentLocation":                             locationNeighbourhood,
	"stateForCurrentLocation":                                     locationState,
	"countyForCurrentLocation":                                    locationCounty,
	"countryForCurrentLocation":                                   locationCountry,
	"ISOCountryCodeForCurrentLocation":                            locationISOCountryCode,
	"postCodeForCurrentLocation":                                  locationPostCode,
	"streetForCurrentLocation":                                    locationStreet,
	"houseNumberForCurrentLocation":                               locationHouseNumber,
}

// locationObject reads location from the weather metadata.
type locationObject struct {
	provider  *providers.Provider[weather.Snapshot]
	observers *observerTable
	table     selectorTable[locationSelector]
}

func newLocation(p *providers.Provider[weather.Snapshot], logger *slog.Logger) *locationObject {
	l := &locationObject{provider: p, observers: newObserverTable(ObjectLocation, logger)}
	l.table = selectorTable[locationSelector]{names: locationSelectorNames, handlers: l.handlers()}
	p.Observe(func(weather.Snapshot) { l.observers.notify() })
	l.observers.notify()
	return l
}

func (l *locationObject) call(selector string, args Args) (any, bool, error) {
	return dispatch(l.table, selector, args)
}

func (l *locationObject) unregisterToken(token string) bool {
	return l.observers.unregisterToken(token)
}

func (l *locationObject) address(fn func(a weather.Address) any) handler {
	return func(Args) (any, error) { return fn(l.provider.Snapshot().Metadata.Address), nil }
}

func (l *locationObject) handlers() map[locationSelector]handler {
	return map[locationSelector]handler{
		locationRegister:                registerWith(l.observers),
		locationUnregister:              unregisterWith(l.observers),
		locationRequestUpdate:           noop,
		locationSetDistanceInterval:     noop,
		locationRemoveDistanceRequester: noop,
		locationSetAccuracy:             noop,
		locationRemoveAccuracyRequester: noop,
		locationServicesEnabled:         constant(true),

		locationLatitude: func(Args) (any, error) {
			return l.provider.Snapshot().Metadata.Location.Latitude, nil
		},
		locationLongitude: func(Args) (any, error) {
			return l.provider.Snapshot().Metadata.Location.Longitude, nil
		},
		locationCity:           l.address(func(a weather.Address) any { return a.City }),
		locationNeighbourhood:  l.address(func(a weather.Address) any { return a.Neighbourhood }),
		locationState:          l.address(func(a weather.Address) any { return a.State }),
		locationCounty:         l.address(func(a weather.Address) any { return a.County }),
		locationCountry:        l.address(func(a weather.Address) any { return a.Country }),
		locationISOCountryCode: l.address(func(a weather.Address) any { return a.CountryISOCode }),
		locationPostCode:       l.address(func(a weather.Address) any { return a.PostalCode }),
		locationStreet:         l.address(func(a weather.Address) any { return a.Street }),
		locationHouseNumber:    l.address(func(a weather.Address) any { return a.House }),
	}
}
