// Package is2 emulates the IS2 selector API on top of the canonical providers.
//
// Widgets call Dispatcher.Call with an object name such as "IS2Weather" and an
// Objective-C style selector string. Each object resolves the selector into
// its own closed selector set right away; unknown objects or selectors give
// (nil, false). Register selectors keep per-object callbacks that fire with no
// arguments whenever the backing provider changes.
package is2

import (
	"log/slog"
	"sort"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/metrics"
	"github.com/preston-bernstein/widgetbridge/internal/providers"
)

// Object names accepted by Call.
const (
	ObjectWeather       = "IS2Weather"
	ObjectLocation      = "IS2Location"
	ObjectSystem        = "IS2System"
	ObjectMedia         = "IS2Media"
	ObjectCalendar      = "IS2Calendar"
	ObjectNotifications = "IS2Notifications"
	ObjectPedometer     = "IS2Pedometer"
	ObjectTelephony     = "IS2Telephony"
)

// NativeActions fires host actions. transport.Actions satisfies it.
type NativeActions interface {
	Fire(ns domain.Namespace, function string, data any) error
	Vibrate(duration float64) error
}

// object is one legacy IS2 object.
type object interface {
	call(selector string, args Args) (any, bool, error)
	unregisterToken(token string) bool
}

// Options wires the dispatcher to providers and the host.
type Options struct {
	Providers *providers.Set
	Actions   NativeActions
	// Location is the device zone used for time strings. Defaults to time.Local.
	Location *time.Location
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
}

// Dispatcher is the single IS2 entrypoint.
type Dispatcher struct {
	objects map[string]object
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func NewDispatcher(opts Options) *Dispatcher {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	set := opts.Providers
	return &Dispatcher{
		logger:  opts.Logger,
		metrics: opts.Metrics,
		objects: map[string]object{
			ObjectWeather:       newWeather(set.Weather, opts.Location, opts.Logger),
			ObjectLocation:      newLocation(set.Weather, opts.Logger),
			ObjectSystem:        newSystem(set.System, set.Resources, opts.Actions, opts.Logger),
			ObjectMedia:         newMedia(set.Media, opts.Actions, opts.Logger),
			ObjectCalendar:      newCalendar(set.Calendar, opts.Logger),
			ObjectNotifications: newNotifications(opts.Logger),
			ObjectPedometer:     newPedometer(opts.Logger),
			ObjectTelephony:     newTelephony(set.Communications),
		},
	}
}

// Call invokes selector on the named object. The boolean is false when the
// object or selector is unknown or the arguments do not fit the selector.
func (d *Dispatcher) Call(objectName, selector string, args ...any) (any, bool) {
	obj, ok := d.objects[objectName]
	if !ok {
		d.metrics.RecordLegacyCall(objectName, false)
		logging.Debug(d.logger, "legacy object unknown", logging.FieldObject, objectName, logging.FieldSelector, selector)
		return nil, false
	}

	result, found, err := obj.call(selector, Args(args))
	if err != nil {
		d.metrics.RecordLegacyCall(objectName, false)
		logging.Warn(d.logger, "legacy call rejected",
			logging.FieldObject, objectName,
			logging.FieldSelector, selector,
			"error", err,
		)
		return nil, false
	}
	d.metrics.RecordLegacyCall(objectName, found)
	if !found {
		logging.Debug(d.logger, "legacy selector unknown", logging.FieldObject, objectName, logging.FieldSelector, selector)
	}
	return result, found
}

// Unregister removes a callback by the token its register selector returned.
func (d *Dispatcher) Unregister(token string) bool {
	for _, obj := range d.objects {
		if obj.unregisterToken(token) {
			return true
		}
	}
	return false
}

// Objects lists the object names Call accepts.
func (d *Dispatcher) Objects() []string {
	names := make([]string, 0, len(d.objects))
	for name := range d.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// dispatch runs the handler for selector from table.
func dispatch[S comparable](table selectorTable[S], selector string, args Args) (any, bool, error) {
	h, ok := table.lookup(selector)
	if !ok {
		return nil, false, nil
	}
	result, err := h(args)
	if err != nil {
		return nil, true, err
	}
	return result, true, nil
}
