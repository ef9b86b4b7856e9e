package is2

import "log/slog"

// Notifications and pedometer data never reach the middleware, so these
// objects answer with fixed values. Their callbacks are stored but never fire.

type notificationsSelector uint8

const (
	notificationsRegister notificationsSelector = iota
	notificationsUnregister
	notificationsCountForApplication
	notificationsLockscreenCountForApplication
	notificationsLockScreenShowingBulletins
	notificationsTotalOnLockScreen
	notificationsForApplication
	notificationsJSONForApplication
)

var notificationsSelectorNames = map[string]notificationsSelector{
	"registerForBulletinNotificationsWithIdentifier:andCallback:": notificationsRegister,
	"unregisterForUpdatesWithIdentifier:":                         notificationsUnregister,
	"notificationCountForApplication:":                            notificationsCountForApplication,
	"lockscreenNotificationCountForApplication:":                  notificationsLockscreenCountForApplication,
	"lockScreenIsShowingBulletins":                                notificationsLockScreenShowingBulletins,
	"totalNotificationCountOnLockScreenOnly:":                     notificationsTotalOnLockScreen,
	"notificationsForApplication:":                                notificationsForApplication,
	"notificationsJSONForApplication:":                            notificationsJSONForApplication,
}

type notificationsObject struct {
	observers *observerTable
	table     selectorTable[notificationsSelector]
}

func newNotifications(logger *slog.Logger) *notificationsObject {
	n := &notificationsObject{observers: newObserverTable(ObjectNotifications, logger)}
	n.table = selectorTable[notificationsSelector]{
		names: notificationsSelectorNames,
		handlers: map[notificationsSelector]handler{
			notificationsRegister:                      registerWith(n.observers),
			notificationsUnregister:                    unregisterWith(n.observers),
			notificationsCountForApplication:           constant(0),
			notificationsLockscreenCountForApplication: constant(0),
			notificationsLockScreenShowingBulletins:    constant(false),
			notificationsTotalOnLockScreen:             constant(0),
			notificationsForApplication:                constant("[]"),
			notificationsJSONForApplication:            constant("[]"),
		},
	}
	return n
}

func (n *notificationsObject) call(selector string, args Args) (any, bool, error) {
	return dispatch(n.table, selector, args)
}

func (n *notificationsObject) unregisterToken(token string) bool {
	return n.observers.unregisterToken(token)
}

type pedometerSelector uint8

const (
	pedometerRegister pedometerSelector = iota
	pedometerUnregister
	pedometerSteps
	pedometerDistance
	pedometerPace
	pedometerCadence
	pedometerFloorsAscended
	pedometerFloorsDescended
)

var pedometerSelectorNames = map[string]pedometerSelector{
	"registerForPedometerNotificationsWithIdentifier:andCallback:": pedometerRegister,
	"unregisterForUpdatesWithIdentifier:":                          pedometerUnregister,
	"numberOfSteps":                                                pedometerSteps,
	"distanceTravelled":                                            pedometerDistance,
	"userCurrentPace":                                              pedometerPace,
	"userCurrentCadence":                                           pedometerCadence,
	"floorsAscended":                                               pedometerFloorsAscended,
	"floorsDescended":                                              pedometerFloorsDescended,
}

type pedometerObject struct {
	observers *observerTable
	table     selectorTable[pedometerSelector]
}

func newPedometer(logger *slog.Logger) *pedometerObject {
	p := &pedometerObject{observers: newObserverTable(ObjectPedometer, logger)}
	p.table = selectorTable[pedometerSelector]{
		names: pedometerSelectorNames,
		handlers: map[pedometerSelector]handler{
			pedometerRegister:        registerWith(p.observers),
			pedometerUnregister:      unregisterWith(p.observers),
			pedometerSteps:           constant(0),
			pedometerDistance:        constant(0),
			pedometerPace:            constant(0),
			pedometerCadence:         constant(0),
			pedometerFloorsAscended:  constant(0),
			pedometerFloorsDescended: constant(0),
		},
	}
	return p
}

func (p *pedometerObject) call(selector string, args Args) (any, bool, error) {
	return dispatch(p.table, selector, args)
}

func (p *pedometerObject) unregisterToken(token string) bool {
	return p.observers.unregisterToken(token)
}
