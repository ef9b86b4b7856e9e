package reminders

// NoDueDate marks a reminder without a due date.
const NoDueDate int64 = -1

// Entry is one pending reminder. Due is epoch milliseconds or NoDueDate.
type Entry struct {
	Title    string `json:"title"`
	Due      int64  `json:"due"`
	Priority int    `json:"priority"`
}

// Snapshot is the canonical reminders state.
type Snapshot struct {
	Pending []Entry `json:"pending"`
}

// Default returns the empty snapshot used before the first update.
func Default() Snapshot {
	return Snapshot{Pending: []Entry{}}
}
