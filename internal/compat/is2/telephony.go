package is2

import (
	"github.com/preston-bernstein/widgetbridge/internal/domain/communications"
	"github.com/preston-bernstein/widgetbridge/internal/providers"
)

type telephonySelector uint8

const (
	telephonySignalBars telephonySelector = iota
	telephonySignalRSSI
	telephonyCarrier
	telephonyWiFiEnabled
	telephonyWiFiBars
	telephonyWiFiName
	telephonyAirplaneMode
	telephonyDataViaWiFi
	telephonyDataAvailable
)

var telephonySelectorNames = map[string]telephonySelector{
	"phoneSignalBars":                telephonySignalBars,
	"phoneSignalRSSI":                telephonySignalRSSI,
	"phoneCarrier":                   telephonyCarrier,
	"wifiEnabled":                    telephonyWiFiEnabled,
	"wifiSignalBars":                 telephonyWiFiBars,
	"wifiName":                       telephonyWiFiName,
	"airplaneModeEnabled":            telephonyAirplaneMode,
	"dataConnectionAvailableViaWiFi": telephonyDataViaWiFi,
	"dataConnectionAvailable":        telephonyDataAvailable,
}

// telephonyObject reads connectivity from the communications provider.
type telephonyObject struct {
	provider *providers.Provider[communications.Snapshot]
	table    selectorTable[telephonySelector]
}

func newTelephony(p *providers.Provider[communications.Snapshot]) *telephonyObject {
	t := &telephonyObject{provider: p}
	t.table = selectorTable[telephonySelector]{names: telephonySelectorNames, handlers: t.handlers()}
	return t
}

func (t *telephonyObject) call(selector string, args Args) (any, bool, error) {
	return dispatch(t.table, selector, args)
}

func (t *telephonyObject) unregisterToken(string) bool {
	return false
}

func (t *telephonyObject) read(fn func(s communications.Snapshot) any) handler {
	return func(Args) (any, error) { return fn(t.provider.Snapshot()), nil }
}

func (t *telephonyObject) handlers() map[telephonySelector]handler {
	return map[telephonySelector]handler{
		telephonySignalBars:   t.read(func(s communications.Snapshot) any { return s.Telephony.Bars }),
		telephonySignalRSSI:   constant(0),
		telephonyCarrier:      t.read(func(s communications.Snapshot) any { return s.Telephony.Operator }),
		telephonyWiFiEnabled:  t.read(func(s communications.Snapshot) any { return s.WiFi.Enabled }),
		telephonyWiFiBars:     t.read(func(s communications.Snapshot) any { return s.WiFi.Bars }),
		telephonyWiFiName:     t.read(func(s communications.Snapshot) any { return s.WiFi.SSID }),
		telephonyAirplaneMode: t.read(func(s communications.Snapshot) any { return s.Telephony.AirplaneMode }),
		telephonyDataViaWiFi:  t.read(func(s communications.Snapshot) any { return s.WiFi.Enabled && s.WiFi.Bars > 0 }),
		telephonyDataAvailable: t.read(func(s communications.Snapshot) any {
			return (s.WiFi.Enabled && s.WiFi.Bars > 0) || (!s.Telephony.AirplaneMode && s.Telephony.Bars > 0)
		}),
	}
}
