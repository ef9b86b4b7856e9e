package is2

import (
	"encoding/json"
	"log/slog"

	"github.com/preston-bernstein/widgetbridge/internal/domain/calendar"
	"github.com/preston-bernstein/widgetbridge/internal/providers"
)

type calendarSelector uint8

const (
	calendarRegister calendarSelector = iota
	calendarUnregister
	calendarAddWithTimestamps
	calendarAddWithTimes
	calendarAddWithLocation
	calendarEntriesJSON
	calendarEntries
)

var calendarSelectorNames = map[string]calendarSelector{
	"registerForCalendarNotificationsWithIdentifier:andCallback:":                                 calendarRegister,
	"unregisterForUpdatesWithIdentifier:":                                                         calendarUnregister,
	"addCalendarEntryWithTitle:location:startTimeAsTimestamp:andEndTimeAsTimestamp:isAllDayEvent:": calendarAddWithTimestamps,
	"addCalendarEntryWithTitle:location:startTime:andEndTime:isAllDayEvent:":                       calendarAddWithTimes,
	"addCalendarEntryWithTitle:andLocation:":                                                      calendarAddWithLocation,
	"calendarEntriesJSONBetweenStartTimeAsTimestamp:andEndTimeAsTimestamp:":                       calendarEntriesJSON,
	"calendarEntriesBetweenStartTime:andEndTime:":                                                 calendarEntries,
}

type calendarObject struct {
	provider  *providers.Provider[calendar.Snapshot]
	observers *observerTable
	table     selectorTable[calendarSelector]
}

func newCalendar(p *providers.Provider[calendar.Snapshot], logger *slog.Logger) *calendarObject {
	c := &calendarObject{provider: p, observers: newObserverTable(ObjectCalendar, logger)}
	c.table = selectorTable[calendarSelector]{names: calendarSelectorNames, handlers: c.handlers()}
	p.Observe(func(calendar.Snapshot) { c.observers.notify() })
	return c
}

func (c *calendarObject) call(selector string, args Args) (any, bool, error) {
	return dispatch(c.table, selector, args)
}

func (c *calendarObject) unregisterToken(token string) bool {
	return c.observers.unregisterToken(token)
}

// entriesBetween renders the entries overlapping two epoch millisecond bounds as JSON.
func (c *calendarObject) entriesBetween(args Args) (any, error) {
	start, err := args.Number(0)
	if err != nil {
		return nil, err
	}
	end, err := args.Number(1)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(c.provider.Snapshot().Between(int64(start), int64(end)))
	if err != nil {
		return nil, err
	}
	return string(out), nil
}

func (c *calendarObject) handlers() map[calendarSelector]handler {
	return map[calendarSelector]handler{
		calendarRegister:          registerWith(c.observers),
		calendarUnregister:        unregisterWith(c.observers),
		calendarAddWithTimestamps: noop,
		calendarAddWithTimes:      noop,
		calendarAddWithLocation:   noop,
		calendarEntriesJSON:       c.entriesBetween,
		calendarEntries:           c.entriesBetween,
	}
}
