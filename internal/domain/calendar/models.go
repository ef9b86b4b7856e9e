package calendar

// Metadata identifies a user calendar.
type Metadata struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	HexColor   string `json:"hexColor"`
}

// Entry is one calendar event. Timestamps are epoch milliseconds.
type Entry struct {
	Title          string   `json:"title"`
	Location       string   `json:"location"`
	AllDay         bool     `json:"allDay"`
	StartTimestamp int64    `json:"startTimestamp"`
	EndTimestamp   int64    `json:"endTimestamp"`
	Calendar       Metadata `json:"calendar"`
}

// Snapshot is the canonical calendar state.
type Snapshot struct {
	UserCalendars      []Metadata `json:"userCalendars"`
	UpcomingWeekEvents []Entry    `json:"upcomingWeekEvents"`
}

// Default returns the empty snapshot used before the first update.
func Default() Snapshot {
	return Snapshot{UserCalendars: []Metadata{}, UpcomingWeekEvents: []Entry{}}
}

// Between returns the entries overlapping [startMs, endMs).
func (s Snapshot) Between(startMs, endMs int64) []Entry {
	out := make([]Entry, 0, len(s.UpcomingWeekEvents))
	for _, e := range s.UpcomingWeekEvents {
		if e.EndTimestamp > startMs && e.StartTimestamp < endMs {
			out = append(out, e)
		}
	}
	return out
}
