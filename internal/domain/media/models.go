package media

import "github.com/preston-bernstein/widgetbridge/internal/domain/applications"

// Track is one media item. Elapsed is only set on the now playing track.
type Track struct {
	Title    string  `json:"title"`
	Album    string  `json:"album"`
	Artist   string  `json:"artist"`
	Artwork  string  `json:"artwork"`
	Composer string  `json:"composer"`
	Genre    string  `json:"genre"`
	Length   float64 `json:"length"`
	Number   int     `json:"number"`
	Elapsed  float64 `json:"elapsed"`
}

// Snapshot is the canonical playback state.
type Snapshot struct {
	NowPlaying            Track                 `json:"nowPlaying"`
	Queue                 []Track               `json:"queue"`
	IsPlaying             bool                  `json:"isPlaying"`
	IsStopped             bool                  `json:"isStopped"`
	IsShuffleEnabled      bool                  `json:"isShuffleEnabled"`
	Volume                float64               `json:"volume"`
	NowPlayingApplication applications.Metadata `json:"nowPlayingApplication"`
}

// Default returns the empty snapshot used before the first update.
func Default() Snapshot {
	return Snapshot{Queue: []Track{}, IsStopped: true}
}

// HasMedia reports whether a track is loaded.
func (s Snapshot) HasMedia() bool {
	return !s.IsStopped && s.NowPlaying.Title != ""
}
