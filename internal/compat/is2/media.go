package is2

import (
	"log/slog"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/domain/media"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/providers"
	"github.com/preston-bernstein/widgetbridge/internal/transport"
)

type mediaSelector uint8

const (
	mediaRegister mediaSelector = iota
	mediaUnregister
	mediaRegisterTime
	mediaUnregisterTime
	mediaSkipNext
	mediaSkipPrevious
	mediaTogglePlayPause
	mediaPlay
	mediaPause
	mediaSetVolume
	mediaTrackTitle
	mediaTrackArtist
	mediaTrackAlbum
	mediaTrackArtwork
	mediaTrackArtworkBase64
	mediaTrackLength
	mediaElapsed
	mediaTrackNumber
	mediaTotalTrackCount
	mediaPlayingAppIdentifier
	mediaShuffleEnabled
	mediaRadioPlaying
	mediaIsPlaying
	mediaHasMedia
	mediaGetVolume
)

var mediaSelectorNames = map[string]mediaSelector{
	"registerForNowPlayingNotificationsWithIdentifier:andCallback:": mediaRegister,
	"unregisterForUpdatesWithIdentifier:":                           mediaUnregister,
	"registerForTimeInformationWithIdentifier:andCallback:":         mediaRegisterTime,
	"unregisterForTimeInformationWithIdentifier:":                   mediaUnregisterTime,
	"skipToNextTrack":                                               mediaSkipNext,
	"skipToPreviousTrack":                                           mediaSkipPrevious,
	"togglePlayPause":                                               mediaTogglePlayPause,
	"play":                                                          mediaPlay,
	"pause":                                                         mediaPause,
	"setVolume:withVolumeHUD:":                                      mediaSetVolume,
	"currentTrackTitle":                                             mediaTrackTitle,
	"currentTrackArtist":                                            mediaTrackArtist,
	"currentTrackAlbum":                                             mediaTrackAlbum,
	"currentTrackArtwork":                                           mediaTrackArtwork,
	"currentTrackArtworkBase64":                                     mediaTrackArtworkBase64,
	"currentTrackLength":                                            mediaTrackLength,
	"elapsedTrackLength":                                            mediaElapsed,
	"trackNumber":                                                   mediaTrackNumber,
	"totalTrackCount":                                               mediaTotalTrackCount,
	"currentPlayingAppIdentifier":                                   mediaPlayingAppIdentifier,
	"shuffleEnabled":                                                mediaShuffleEnabled,
	"iTunesRadioPlaying":                                            mediaRadioPlaying,
	"isPlaying":                                                     mediaIsPlaying,
	"hasMedia":                                                      mediaHasMedia,
	"getVolume":                                                     mediaGetVolume,
}

type mediaObject struct {
	provider  *providers.Provider[media.Snapshot]
	actions   NativeActions
	logger    *slog.Logger
	observers *observerTable
	table     selectorTable[mediaSelector]
}

func newMedia(p *providers.Provider[media.Snapshot], actions NativeActions, logger *slog.Logger) *mediaObject {
	m := &mediaObject{provider: p, actions: actions, logger: logger, observers: newObserverTable(ObjectMedia, logger)}
	m.table = selectorTable[mediaSelector]{names: mediaSelectorNames, handlers: m.handlers()}
	p.Observe(func(media.Snapshot) { m.observers.notify() })
	return m
}

func (m *mediaObject) call(selector string, args Args) (any, bool, error) {
	return dispatch(m.table, selector, args)
}

func (m *mediaObject) unregisterToken(token string) bool {
	return m.observers.unregisterToken(token)
}

func (m *mediaObject) read(fn func(s media.Snapshot) any) handler {
	return func(Args) (any, error) { return fn(m.provider.Snapshot()), nil }
}

// toggleWhen asks the host to toggle playback when the current state matches playing.
func (m *mediaObject) toggleWhen(match func(playing bool) bool) handler {
	return func(Args) (any, error) {
		if !match(m.provider.Snapshot().IsPlaying) {
			return nil, nil
		}
		if m.actions == nil {
			logging.Warn(m.logger, "legacy action dropped, no host actions", logging.FieldFunction, transport.FuncTogglePlayState)
			return nil, nil
		}
		if err := m.actions.Fire(domain.NamespaceMedia, transport.FuncTogglePlayState, nil); err != nil {
			logging.Warn(m.logger, "legacy action failed", logging.FieldFunction, transport.FuncTogglePlayState, "error", err)
		}
		return nil, nil
	}
}

func (m *mediaObject) handlers() map[mediaSelector]handler {
	return map[mediaSelector]handler{
		mediaRegister:       registerWith(m.observers),
		mediaUnregister:     unregisterWith(m.observers),
		mediaRegisterTime:   noop,
		mediaUnregisterTime: noop,
		mediaSkipNext:       noop,
		mediaSkipPrevious:   noop,
		mediaSetVolume:      noop,

		mediaTogglePlayPause: m.toggleWhen(func(bool) bool { return true }),
		mediaPlay:            m.toggleWhen(func(playing bool) bool { return !playing }),
		mediaPause:           m.toggleWhen(func(playing bool) bool { return playing }),

		mediaTrackTitle:           m.read(func(s media.Snapshot) any { return s.NowPlaying.Title }),
		mediaTrackArtist:          m.read(func(s media.Snapshot) any { return s.NowPlaying.Artist }),
		mediaTrackAlbum:           m.read(func(s media.Snapshot) any { return s.NowPlaying.Album }),
		mediaTrackArtwork:         m.read(func(s media.Snapshot) any { return s.NowPlaying.Artwork }),
		mediaTrackArtworkBase64:   m.read(func(s media.Snapshot) any { return s.NowPlaying.Artwork }),
		mediaTrackLength:          m.read(func(s media.Snapshot) any { return s.NowPlaying.Length }),
		mediaElapsed:              m.read(func(s media.Snapshot) any { return s.NowPlaying.Elapsed }),
		mediaTrackNumber:          m.read(func(s media.Snapshot) any { return s.NowPlaying.Number }),
		mediaTotalTrackCount:      m.read(func(s media.Snapshot) any { return len(s.Queue) }),
		mediaPlayingAppIdentifier: m.read(func(s media.Snapshot) any { return s.NowPlayingApplication.Identifier }),
		mediaShuffleEnabled:       m.read(func(s media.Snapshot) any { return s.IsShuffleEnabled }),
		mediaRadioPlaying:         constant(false),
		mediaIsPlaying:            m.read(func(s media.Snapshot) any { return s.IsPlaying }),
		mediaHasMedia:             m.read(func(s media.Snapshot) any { return s.HasMedia() }),
		mediaGetVolume:            m.read(func(s media.Snapshot) any { return s.Volume }),
	}
}
