package domain

import (
	"errors"
	"fmt"
)

// Namespace identifies one of the fixed data providers pushed by the native host.
type Namespace string

const (
	NamespaceWeather        Namespace = "weather"
	NamespaceSystem         Namespace = "system"
	NamespaceResources      Namespace = "resources"
	NamespaceMedia          Namespace = "media"
	NamespaceCalendar       Namespace = "calendar"
	NamespaceReminders      Namespace = "reminders"
	NamespaceApplications   Namespace = "applications"
	NamespaceCommunications Namespace = "communications"
)

// ErrUnknownNamespace is returned when a wire string names no known provider.
var ErrUnknownNamespace = errors.New("unknown namespace")

// Namespaces lists every namespace in registration order.
func Namespaces() []Namespace {
	return []Namespace{
		NamespaceWeather,
		NamespaceSystem,
		NamespaceResources,
		NamespaceMedia,
		NamespaceCalendar,
		NamespaceReminders,
		NamespaceApplications,
		NamespaceCommunications,
	}
}

// ParseNamespace converts a wire value into a Namespace.
func ParseNamespace(raw string) (Namespace, error) {
	for _, ns := range Namespaces() {
		if string(ns) == raw {
			return ns, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownNamespace, raw)
}

// Valid reports whether ns is part of the closed set.
func (ns Namespace) Valid() bool {
	_, err := ParseNamespace(string(ns))
	return err == nil
}

func (ns Namespace) String() string {
	return string(ns)
}
