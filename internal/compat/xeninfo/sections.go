package xeninfo

import (
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/domain/calendar"
	"github.com/preston-bernstein/widgetbridge/internal/domain/communications"
	"github.com/preston-bernstein/widgetbridge/internal/domain/media"
	"github.com/preston-bernstein/widgetbridge/internal/domain/reminders"
	"github.com/preston-bernstein/widgetbridge/internal/domain/resources"
	"github.com/preston-bernstein/widgetbridge/internal/domain/system"
	"github.com/preston-bernstein/widgetbridge/internal/timeutil"
)

// Legacy section names passed to mainUpdate.
const (
	SectionWeather   = "weather"
	SectionBattery   = "battery"
	SectionSystem    = "system"
	SectionMusic     = "music"
	SectionEvents    = "events"
	SectionReminders = "reminders"
	SectionStatusBar = "statusbar"
	SectionAlarms    = "alarms"
)

// Sections lists every legacy section in publish order.
func Sections() []string {
	return []string{
		SectionWeather,
		SectionBattery,
		SectionSystem,
		SectionMusic,
		SectionEvents,
		SectionReminders,
		SectionStatusBar,
		SectionAlarms,
	}
}

// Projection is the full legacy view, one field per section.
type Projection struct {
	Weather   Weather    `json:"weather"`
	Battery   Battery    `json:"battery"`
	System    System     `json:"system"`
	Music     Music      `json:"music"`
	Events    []Event    `json:"events"`
	Reminders []Reminder `json:"reminders"`
	StatusBar StatusBar  `json:"statusbar"`
	Alarms    Alarms     `json:"alarms"`
}

// Bindings returns the flat globals a section writes.
func (p Projection) Bindings(section string) (map[string]any, bool) {
	switch section {
	case SectionWeather:
		return map[string]any{"weather": p.Weather}, true
	case SectionBattery:
		return p.Battery.bindings(), true
	case SectionSystem:
		return p.System.bindings(), true
	case SectionMusic:
		return p.Music.bindings(), true
	case SectionEvents:
		return map[string]any{"events": p.Events}, true
	case SectionReminders:
		return map[string]any{"reminders": p.Reminders}, true
	case SectionStatusBar:
		return p.StatusBar.bindings(), true
	case SectionAlarms:
		return p.Alarms.bindings(), true
	default:
		return nil, false
	}
}

// Battery mirrors the battery and memory globals.
type Battery struct {
	Percent      float64 `json:"batteryPercent"`
	Charging     int     `json:"batteryCharging"`
	RAMFree      float64 `json:"ramFree"`
	RAMUsed      float64 `json:"ramUsed"`
	RAMAvailable float64 `json:"ramAvailable"`
	RAMPhysical  float64 `json:"ramPhysical"`
}

// ProjectBattery reports charging for any state other than unplugged.
func ProjectBattery(r resources.Snapshot) Battery {
	return Battery{
		Percent:      r.Battery.Percentage,
		Charging:     flag(r.Battery.State != resources.BatteryUnplugged),
		RAMFree:      r.Memory.Free,
		RAMUsed:      r.Memory.Used,
		RAMAvailable: r.Memory.Free + r.Memory.Used,
		RAMPhysical:  r.Memory.Available,
	}
}

func (b Battery) bindings() map[string]any {
	return map[string]any{
		"batteryPercent":  b.Percent,
		"batteryCharging": b.Charging,
		"ramFree":         b.RAMFree,
		"ramUsed":         b.RAMUsed,
		"ramAvailable":    b.RAMAvailable,
		"ramPhysical":     b.RAMPhysical,
	}
}

// System mirrors the device globals.
type System struct {
	DeviceName          string `json:"deviceName"`
	DeviceType          string `json:"deviceType"`
	SystemVersion       string `json:"systemVersion"`
	TwentyFourHour      int    `json:"twentyfourhour"`
	IPAddress           string `json:"ipAddress"`
	NotificationShowing int    `json:"notificationShowing"`
}

func ProjectSystem(s system.Snapshot) System {
	return System{
		DeviceName:     s.DeviceName,
		DeviceType:     s.DeviceModelPromotional,
		SystemVersion:  s.SystemVersion,
		TwentyFourHour: flag(s.IsTwentyFourHourTimeEnabled),
	}
}

func (s System) bindings() map[string]any {
	return map[string]any{
		"deviceName":          s.DeviceName,
		"deviceType":          s.DeviceType,
		"systemVersion":       s.SystemVersion,
		"twentyfourhour":      s.TwentyFourHour,
		"ipAddress":           s.IPAddress,
		"notificationShowing": s.NotificationShowing,
	}
}

// nullText is what legacy widgets expect for missing track text.
const nullText = "(null)"

// Music mirrors the now playing globals.
type Music struct {
	Artist             string `json:"artist"`
	Album              string `json:"album"`
	Title              string `json:"title"`
	IsPlaying          int    `json:"isplaying"`
	Bundle             string `json:"musicBundle"`
	CurrentDuration    string `json:"currentDuration"`
	CurrentElapsedTime string `json:"currentElapsedTime"`
	ShuffleEnabled     string `json:"shuffleEnabled"`
	RepeatEnabled      string `json:"repeatEnabled"`
}

func ProjectMusic(m media.Snapshot) Music {
	orNull := func(s string) string {
		if s == "" {
			return nullText
		}
		return s
	}
	return Music{
		Artist:             orNull(m.NowPlaying.Artist),
		Album:              orNull(m.NowPlaying.Album),
		Title:              orNull(m.NowPlaying.Title),
		IsPlaying:          flag(m.IsPlaying),
		Bundle:             m.NowPlayingApplication.Identifier,
		CurrentDuration:    timeutil.SecondsToFormatted(m.NowPlaying.Length),
		CurrentElapsedTime: timeutil.SecondsToFormatted(m.NowPlaying.Elapsed),
		ShuffleEnabled:     "disabled",
		RepeatEnabled:      "disabled",
	}
}

func (m Music) bindings() map[string]any {
	return map[string]any{
		"artist":             m.Artist,
		"album":              m.Album,
		"title":              m.Title,
		"isplaying":          m.IsPlaying,
		"musicBundle":        m.Bundle,
		"currentDuration":    m.CurrentDuration,
		"currentElapsedTime": m.CurrentElapsedTime,
		"shuffleEnabled":     m.ShuffleEnabled,
		"repeatEnabled":      m.RepeatEnabled,
	}
}

// Event is one entry of the events global.
type Event struct {
	Title                      string `json:"title"`
	Location                   string `json:"location"`
	IsAllDay                   bool   `json:"isAllDay"`
	Date                       string `json:"date"`
	StartTimeTimestamp         int64  `json:"startTimeTimestamp"`
	EndTimeTimestamp           int64  `json:"endTimeTimestamp"`
	AssociatedCalendarName     string `json:"associatedCalendarName"`
	AssociatedCalendarHexColor string `json:"associatedCalendarHexColor"`
}

// ProjectEvents dates each entry as MM/DD/YY in loc.
func ProjectEvents(c calendar.Snapshot, loc *time.Location) []Event {
	out := make([]Event, 0, len(c.UpcomingWeekEvents))
	for _, e := range c.UpcomingWeekEvents {
		out = append(out, Event{
			Title:                      e.Title,
			Location:                   e.Location,
			IsAllDay:                   e.AllDay,
			Date:                       timeutil.ShortDate(time.UnixMilli(e.StartTimestamp).In(loc)),
			StartTimeTimestamp:         e.StartTimestamp,
			EndTimeTimestamp:           e.EndTimestamp,
			AssociatedCalendarName:     e.Calendar.Name,
			AssociatedCalendarHexColor: e.Calendar.HexColor,
		})
	}
	return out
}

// Reminder is one entry of the reminders global. DueDateTimestamp is in seconds.
type Reminder struct {
	Title            string  `json:"title"`
	DueDate          string  `json:"dueDate"`
	DueDateTimestamp float64 `json:"dueDateTimestamp"`
	Priority         int     `json:"priority"`
}

// ProjectReminders dates undated reminders at now and maps priorities onto
// the 9/5/1 scale legacy widgets use.
func ProjectReminders(r reminders.Snapshot, now time.Time, loc *time.Location) []Reminder {
	out := make([]Reminder, 0, len(r.Pending))
	for _, e := range r.Pending {
		due := now
		if e.Due != reminders.NoDueDate {
			due = time.UnixMilli(e.Due)
		}
		out = append(out, Reminder{
			Title:            e.Title,
			DueDate:          timeutil.ShortDate(due.In(loc)),
			DueDateTimestamp: float64(due.UnixMilli()) / 1000,
			Priority:         legacyPriority(e.Priority),
		})
	}
	return out
}

func legacyPriority(priority int) int {
	switch priority {
	case 1:
		return 9
	case 2:
		return 5
	case 3:
		return 1
	default:
		return 0
	}
}

// StatusBar mirrors the signal and connectivity globals.
type StatusBar struct {
	SignalStrength    int    `json:"signalStrength"`
	SignalBars        int    `json:"signalBars"`
	SignalName        string `json:"signalName"`
	WiFiStrength      int    `json:"wifiStrength"`
	WiFiBars          int    `json:"wifiBars"`
	WiFiName          string `json:"wifiName"`
	BluetoothOn       bool   `json:"bluetoothOn"`
	SignalNetworkType string `json:"signalNetworkType"`
}

func ProjectStatusBar(c communications.Snapshot) StatusBar {
	return StatusBar{
		SignalBars:        c.Telephony.Bars,
		SignalName:        c.Telephony.Operator,
		WiFiBars:          c.WiFi.Bars,
		WiFiName:          c.WiFi.SSID,
		BluetoothOn:       c.Bluetooth.Enabled,
		SignalNetworkType: c.Telephony.Type,
	}
}

func (s StatusBar) bindings() map[string]any {
	return map[string]any{
		"signalStrength":    s.SignalStrength,
		"signalBars":        s.SignalBars,
		"signalName":        s.SignalName,
		"wifiStrength":      s.WiFiStrength,
		"wifiBars":          s.WiFiBars,
		"wifiName":          s.WiFiName,
		"bluetoothOn":       s.BluetoothOn,
		"bluetooth":         s.BluetoothOn,
		"signalNetworkType": s.SignalNetworkType,
	}
}

// Alarms is always empty; the host never pushes alarm data.
type Alarms struct {
	AlarmString string `json:"alarmString"`
	AlarmTime   string `json:"alarmTime"`
	AlarmHour   string `json:"alarmHour"`
	AlarmMinute string `json:"alarmMinute"`
	Alarms      []any  `json:"alarms"`
}

func emptyAlarms() Alarms {
	return Alarms{Alarms: []any{}}
}

func (a Alarms) bindings() map[string]any {
	return map[string]any{
		"alarmString": a.AlarmString,
		"alarmTime":   a.AlarmTime,
		"alarmHour":   a.AlarmHour,
		"alarmMinute": a.AlarmMinute,
		"alarms":      a.Alarms,
	}
}
