package is2

import (
	"log/slog"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/domain/resources"
	"github.com/preston-bernstein/widgetbridge/internal/domain/system"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/providers"
	"github.com/preston-bernstein/widgetbridge/internal/transport"
)

// EmptyImage is a 1x1 transparent gif returned for icon lookups.
const EmptyImage = "data:image/gif;base64,R0lGODlhAQABAAAAACH5BAEKAAEALAAAAAABAAEAAAICTAEAOw=="

type systemSelector uint8

const (
	systemBatteryPercent systemSelector = iota
	systemBatteryState
	systemBatteryStateAsInteger
	systemRAMFree
	systemRAMUsed
	systemRAMAvailable
	systemCPUUsage
	systemFreeDiskSpace
	systemTotalDiskSpace
	systemNetworkSpeedUp
	systemNetworkSpeedDown
	systemNetworkSpeedUpAuto
	systemNetworkSpeedDownAuto
	systemDeviceName
	systemDeviceType
	systemDeviceModel
	systemDeviceModelHumanReadable
	systemDisplayHeight
	systemDisplayWidth
	systemIsDeviceIn24Time
	systemPasscodeVisible
	systemTakeScreenshot
	systemLockDevice
	systemOpenSwitcher
	systemOpenApplication
	systemOpenSiri
	systemRespring
	systemReboot
	systemVibrate
	systemVibrateForTimeLength
	systemGetBrightness
	systemSetBrightness
	systemGetLowPowerMode
	systemSetLowPowerMode
	systemApplicationIcon
	systemApplicationIconBase64
)

var systemSelectorNames = map[string]systemSelector{
	"batteryPercent":                               systemBatteryPercent,
	"batteryState":                                 systemBatteryState,
	"batteryStateAsInteger":                        systemBatteryStateAsInteger,
	"ramFree":                                      systemRAMFree,
	"ramUsed":                                      systemRAMUsed,
	"ramAvailable":                                 systemRAMAvailable,
	"cpuUsage":                                     systemCPUUsage,
	"freeDiskSpaceInFormat:":                       systemFreeDiskSpace,
	"totalDiskSpaceInFormat:":                      systemTotalDiskSpace,
	"networkSpeedUp":                               systemNetworkSpeedUp,
	"networkSpeedDown":                             systemNetworkSpeedDown,
	"networkSpeedUpAutoConverted":                  systemNetworkSpeedUpAuto,
	"networkSpeedDownAutoConverted":                systemNetworkSpeedDownAuto,
	"deviceName":                                   systemDeviceName,
	"deviceType":                                   systemDeviceType,
	"deviceModel":                                  systemDeviceModel,
	"deviceModelHumanReadable":                     systemDeviceModelHumanReadable,
	"deviceDisplayHeight":                          systemDisplayHeight,
	"deviceDisplayWidth":                           systemDisplayWidth,
	"isDeviceIn24Time":                             systemIsDeviceIn24Time,
	"isLockscreenPasscodeVisible":                  systemPasscodeVisible,
	"takeScreenshot":                               systemTakeScreenshot,
	"lockDevice":                                   systemLockDevice,
	"openSwitcher":                                 systemOpenSwitcher,
	"openApplication:":                             systemOpenApplication,
	"openSiri":                                     systemOpenSiri,
	"respring":                                     systemRespring,
	"reboot":                                       systemReboot,
	"vibrateDevice":                                systemVibrate,
	"vibrateDeviceForTimeLength:":                  systemVibrateForTimeLength,
	"getBrightness":                                systemGetBrightness,
	"setBrightness:":                               systemSetBrightness,
	"getLowPowerMode":                              systemGetLowPowerMode,
	"setLowPowerMode:":                             systemSetLowPowerMode,
	"getApplicationIconForBundleIdentifier:":       systemApplicationIcon,
	"getApplicationIconForBundleIdentifierBase64:": systemApplicationIconBase64,
}

// BatteryStateString is the legacy text for a battery state.
func BatteryStateString(state resources.BatteryState) string {
	switch state {
	case resources.BatteryUnplugged:
		return "Unplugged"
	case resources.BatteryCharging:
		return "Charging"
	case resources.BatteryFullyCharged:
		return "Fully Charged"
	default:
		return ""
	}
}

type systemObject struct {
	system    *providers.Provider[system.Snapshot]
	resources *providers.Provider[resources.Snapshot]
	actions   NativeActions
	logger    *slog.Logger
	table     selectorTable[systemSelector]
}

func newSystem(sys *providers.Provider[system.Snapshot], res *providers.Provider[resources.Snapshot], actions NativeActions, logger *slog.Logger) *systemObject {
	s := &systemObject{system: sys, resources: res, actions: actions, logger: logger}
	s.table = selectorTable[systemSelector]{names: systemSelectorNames, handlers: s.handlers()}
	return s
}

func (s *systemObject) call(selector string, args Args) (any, bool, error) {
	return dispatch(s.table, selector, args)
}

func (s *systemObject) unregisterToken(string) bool {
	return false
}

func (s *systemObject) device(fn func(d system.Snapshot) any) handler {
	return func(Args) (any, error) { return fn(s.system.Snapshot()), nil }
}

func (s *systemObject) usage(fn func(r resources.Snapshot) any) handler {
	return func(Args) (any, error) { return fn(s.resources.Snapshot()), nil }
}

// action fires a system function on the host. Host failures are logged and
// never surface to the widget.
func (s *systemObject) action(function string) handler {
	return func(Args) (any, error) {
		s.fire(function, func() error { return s.actions.Fire(domain.NamespaceSystem, function, nil) })
		return nil, nil
	}
}

func (s *systemObject) fire(function string, send func() error) {
	if s.actions == nil {
		logging.Warn(s.logger, "legacy action dropped, no host actions", logging.FieldFunction, function)
		return
	}
	if err := send(); err != nil {
		logging.Warn(s.logger, "legacy action failed", logging.FieldFunction, function, "error", err)
	}
}

func (s *systemObject) vibrate(args Args) (any, error) {
	duration := transport.DefaultVibrateDuration
	if len(args) > 0 {
		d, err := args.Number(0)
		if err != nil {
			return nil, err
		}
		duration = d
	}
	s.fire(transport.FuncVibrateDevice, func() error { return s.actions.Vibrate(duration) })
	return nil, nil
}

func (s *systemObject) handlers() map[systemSelector]handler {
	return map[systemSelector]handler{
		systemBatteryPercent:        s.usage(func(r resources.Snapshot) any { return r.Battery.Percentage }),
		systemBatteryState:          s.usage(func(r resources.Snapshot) any { return BatteryStateString(r.Battery.State) }),
		systemBatteryStateAsInteger: s.usage(func(r resources.Snapshot) any { return int(r.Battery.State) + 1 }),
		systemRAMFree:               s.usage(func(r resources.Snapshot) any { return r.Memory.Free }),
		systemRAMUsed:               s.usage(func(r resources.Snapshot) any { return r.Memory.Used }),
		systemRAMAvailable:          s.usage(func(r resources.Snapshot) any { return r.Memory.Available }),
		systemCPUUsage:              s.usage(func(r resources.Snapshot) any { return r.Processor.Load }),
		systemFreeDiskSpace:         constant(0),
		systemTotalDiskSpace:        constant(0),
		systemNetworkSpeedUp:        constant(0),
		systemNetworkSpeedDown:      constant(0),
		systemNetworkSpeedUpAuto:    constant(0),
		systemNetworkSpeedDownAuto:  constant(0),

		systemDeviceName:               s.device(func(d system.Snapshot) any { return d.DeviceName }),
		systemDeviceType:               s.device(func(d system.Snapshot) any { return d.DeviceType }),
		systemDeviceModel:              s.device(func(d system.Snapshot) any { return d.DeviceModel }),
		systemDeviceModelHumanReadable: s.device(func(d system.Snapshot) any { return d.DeviceModelPromotional }),
		systemDisplayHeight:            s.device(func(d system.Snapshot) any { return d.DeviceDisplayHeight }),
		systemDisplayWidth:             s.device(func(d system.Snapshot) any { return d.DeviceDisplayWidth }),
		systemIsDeviceIn24Time:         s.device(func(d system.Snapshot) any { return d.IsTwentyFourHourTimeEnabled }),
		systemPasscodeVisible:          constant(false),

		systemTakeScreenshot:       s.action(transport.FuncInvokeScreenshot),
		systemLockDevice:           s.action(transport.FuncLockDevice),
		systemOpenSwitcher:         s.action(transport.FuncOpenApplicationSwitcher),
		systemOpenApplication:      noop,
		systemOpenSiri:             s.action(transport.FuncOpenSiri),
		systemRespring:             s.action(transport.FuncRespringDevice),
		systemReboot:               noop,
		systemVibrate:              s.vibrate,
		systemVibrateForTimeLength: s.vibrate,

		systemGetBrightness:         constant(1),
		systemSetBrightness:         noop,
		systemGetLowPowerMode:       s.device(func(d system.Snapshot) any { return d.IsLowPowerModeEnabled }),
		systemSetLowPowerMode:       noop,
		systemApplicationIcon:       constant(EmptyImage),
		systemApplicationIconBase64: constant(EmptyImage),
	}
}
