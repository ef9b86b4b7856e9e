// Package xeninfo projects canonical snapshots onto the flat XenInfo globals.
//
// Each section is recomputed in full whenever its backing provider updates
// and handed to a Sink together with the section name. Weather is also
// recomputed when the device switches between 12 and 24 hour time.
package xeninfo

import (
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/domain/calendar"
	"github.com/preston-bernstein/widgetbridge/internal/domain/communications"
	"github.com/preston-bernstein/widgetbridge/internal/domain/media"
	"github.com/preston-bernstein/widgetbridge/internal/domain/reminders"
	"github.com/preston-bernstein/widgetbridge/internal/domain/resources"
	"github.com/preston-bernstein/widgetbridge/internal/domain/system"
	"github.com/preston-bernstein/widgetbridge/internal/domain/weather"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/providers"
)

// Options wires the shim to providers and its sink.
type Options struct {
	Providers *providers.Set
	Sink      Sink
	// Location is the device zone used for every rendered time. Defaults to time.Local.
	Location *time.Location
	Logger   *slog.Logger
	// Now dates reminders without a due date. Defaults to time.Now.
	Now func() time.Time
}

// Shim keeps the current projection and publishes changed sections.
type Shim struct {
	providers *providers.Set
	sink      Sink
	loc       *time.Location
	logger    *slog.Logger
	now       func() time.Time

	mu             sync.Mutex
	projection     Projection
	twentyFourHour bool
}

// NewShim projects every section from the current snapshots, publishes them
// and starts observing the providers.
func NewShim(opts Options) *Shim {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	set := opts.Providers
	s := &Shim{
		providers: set,
		sink:      opts.Sink,
		loc:       opts.Location,
		logger:    opts.Logger,
		now:       opts.Now,
	}

	sys := set.System.Snapshot()
	s.twentyFourHour = sys.IsTwentyFourHourTimeEnabled
	s.projection = Projection{
		Weather:   ProjectWeather(set.Weather.Snapshot(), s.twentyFourHour, s.loc),
		Battery:   ProjectBattery(set.Resources.Snapshot()),
		System:    ProjectSystem(sys),
		Music:     ProjectMusic(set.Media.Snapshot()),
		Events:    ProjectEvents(set.Calendar.Snapshot(), s.loc),
		Reminders: ProjectReminders(set.Reminders.Snapshot(), s.now(), s.loc),
		StatusBar: ProjectStatusBar(set.Communications.Snapshot()),
		Alarms:    emptyAlarms(),
	}
	for _, section := range Sections() {
		s.publish(section)
	}

	set.Weather.Observe(s.onWeather)
	set.System.Observe(s.onSystem)
	set.Resources.Observe(func(r resources.Snapshot) {
		s.update(SectionBattery, func(p *Projection) { p.Battery = ProjectBattery(r) })
	})
	set.Media.Observe(func(m media.Snapshot) {
		s.update(SectionMusic, func(p *Projection) { p.Music = ProjectMusic(m) })
	})
	set.Calendar.Observe(func(c calendar.Snapshot) {
		s.update(SectionEvents, func(p *Projection) { p.Events = ProjectEvents(c, s.loc) })
	})
	set.Reminders.Observe(func(r reminders.Snapshot) {
		s.update(SectionReminders, func(p *Projection) { p.Reminders = ProjectReminders(r, s.now(), s.loc) })
	})
	set.Communications.Observe(func(c communications.Snapshot) {
		s.update(SectionStatusBar, func(p *Projection) { p.StatusBar = ProjectStatusBar(c) })
	})
	return s
}

// Projection returns the current projection.
func (s *Shim) Projection() Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projection
}

// Resync publishes every section again without recomputing it.
func (s *Shim) Resync() {
	for _, section := range Sections() {
		s.publish(section)
	}
}

func (s *Shim) onWeather(w weather.Snapshot) {
	s.update(SectionWeather, func(p *Projection) { p.Weather = ProjectWeather(w, s.twentyFourHour, s.loc) })
}

func (s *Shim) onSystem(sys system.Snapshot) {
	s.mu.Lock()
	changed := sys.IsTwentyFourHourTimeEnabled != s.twentyFourHour
	s.twentyFourHour = sys.IsTwentyFourHourTimeEnabled
	s.projection.System = ProjectSystem(sys)
	if changed {
		s.projection.Weather = ProjectWeather(s.providers.Weather.Snapshot(), s.twentyFourHour, s.loc)
	}
	s.mu.Unlock()

	s.publish(SectionSystem)
	if changed {
		logging.Debug(s.logger, "clock format changed, weather reprojected", "twenty_four_hour", sys.IsTwentyFourHourTimeEnabled)
		s.publish(SectionWeather)
	}
}

func (s *Shim) update(section string, apply func(p *Projection)) {
	s.mu.Lock()
	apply(&s.projection)
	s.mu.Unlock()
	s.publish(section)
}

func (s *Shim) publish(section string) {
	if s.sink == nil {
		return
	}
	s.mu.Lock()
	bindings, _ := s.projection.Bindings(section)
	s.mu.Unlock()
	s.sink.Publish(section, bindings)
}
