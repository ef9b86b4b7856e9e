package transport

import (
	"context"
	"encoding/json"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
)

// Host function names understood by the native side.
const (
	FuncInvokeScreenshot        = "invokeScreenshot"
	FuncLockDevice              = "lockDevice"
	FuncOpenApplicationSwitcher = "openApplicationSwitcher"
	FuncOpenSiri                = "openSiri"
	FuncRespringDevice          = "respringDevice"
	FuncVibrateDevice           = "vibrateDevice"
	FuncLog                     = "log"
	FuncTogglePlayState         = "togglePlayState"
	FuncLaunchApplication       = "launchApplication"
	FuncDeleteApplication       = "deleteApplication"
)

// DefaultVibrateDuration is the vibration length in seconds when none is given.
const DefaultVibrateDuration = 0.25

// Actions fires host-side actions through a bridge.
type Actions struct {
	bridge *Bridge
}

func NewActions(b *Bridge) *Actions {
	return &Actions{bridge: b}
}

// Fire sends an action and does not wait for the host. The reply, if any,
// is consumed and discarded.
func (a *Actions) Fire(ns domain.Namespace, function string, data any) error {
	if data == nil {
		data = struct{}{}
	}
	return a.bridge.Send(Message{Namespace: ns, FunctionDefinition: function, Data: data}, func(json.RawMessage) {})
}

// Call sends an action and waits for the host's reply.
func (a *Actions) Call(ctx context.Context, ns domain.Namespace, function string, data any) (json.RawMessage, error) {
	if data == nil {
		data = struct{}{}
	}
	return a.bridge.Request(ctx, Message{Namespace: ns, FunctionDefinition: function, Data: data})
}

// Vibrate fires the vibrate action. Non-positive durations use the default.
func (a *Actions) Vibrate(duration float64) error {
	if duration <= 0 {
		duration = DefaultVibrateDuration
	}
	return a.Fire(domain.NamespaceSystem, FuncVibrateDevice, map[string]float64{"duration": duration})
}
