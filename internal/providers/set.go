package providers

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/domain/applications"
	"github.com/preston-bernstein/widgetbridge/internal/domain/calendar"
	"github.com/preston-bernstein/widgetbridge/internal/domain/communications"
	"github.com/preston-bernstein/widgetbridge/internal/domain/media"
	"github.com/preston-bernstein/widgetbridge/internal/domain/reminders"
	"github.com/preston-bernstein/widgetbridge/internal/domain/resources"
	"github.com/preston-bernstein/widgetbridge/internal/domain/system"
	domainweather "github.com/preston-bernstein/widgetbridge/internal/domain/weather"
	"github.com/preston-bernstein/widgetbridge/internal/metrics"
	"github.com/preston-bernstein/widgetbridge/internal/providers/weather"
)

// Options configures the provider set.
type Options struct {
	// Location is the zone of the viewing device. Defaults to time.Local.
	Location *time.Location
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
}

// Set is the fixed collection of typed providers plus the registry that
// dispatches to them by namespace.
type Set struct {
	Registry       *Registry
	Weather        *Provider[domainweather.Snapshot]
	System         *Provider[system.Snapshot]
	Resources      *Provider[resources.Snapshot]
	Media          *Provider[media.Snapshot]
	Calendar       *Provider[calendar.Snapshot]
	Reminders      *Provider[reminders.Snapshot]
	Applications   *Provider[applications.Snapshot]
	Communications *Provider[communications.Snapshot]
}

// NewSet builds and registers one provider per namespace.
func NewSet(opts Options) *Set {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	logger, rec := opts.Logger, opts.Metrics
	normalizer := weather.NewNormalizer(loc, logger)

	s := &Set{
		Registry:       NewRegistry(logger),
		Weather:        NewProvider(domain.NamespaceWeather, domainweather.Default(), normalizer.Normalize, logger, rec),
		System:         NewProvider(domain.NamespaceSystem, system.Default(), DecodeOver(system.Default), logger, rec),
		Resources:      NewProvider(domain.NamespaceResources, resources.Default(), DecodeOver(resources.Default), logger, rec),
		Media:          NewProvider(domain.NamespaceMedia, media.Default(), DecodeOver(media.Default), logger, rec),
		Calendar:       NewProvider(domain.NamespaceCalendar, calendar.Default(), DecodeOver(calendar.Default), logger, rec),
		Reminders:      NewProvider(domain.NamespaceReminders, reminders.Default(), DecodeOver(reminders.Default), logger, rec),
		Applications:   NewProvider(domain.NamespaceApplications, applications.Default(), DecodeOver(applications.Default), logger, rec),
		Communications: NewProvider(domain.NamespaceCommunications, communications.Default(), DecodeOver(communications.Default), logger, rec),
	}

	for _, p := range []Updatable{s.Weather, s.System, s.Resources, s.Media, s.Calendar, s.Reminders, s.Applications, s.Communications} {
		s.Registry.Register(p)
	}
	return s
}
