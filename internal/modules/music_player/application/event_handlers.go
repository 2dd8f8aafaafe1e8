package application

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

// TrackEndReceiver runs the end-of-track state machine.
type TrackEndReceiver interface {
	HandleTrackEnded(ctx context.Context, source string)
}

// LibraryReceiver re-feeds the player when its track source changes.
type LibraryReceiver interface {
	HandlePlaylistChanged(ctx context.Context)
	HandleCatalogChanged(ctx context.Context)
}

// PlaybackEventHandler handles events related to playback control.
// It forwards TrackEnded to the controller and logs track switches and
// playback failures.
type PlaybackEventHandler struct {
	player     TrackEndReceiver
	subscriber ports.EventSubscriber
}

// NewPlaybackEventHandler creates a new PlaybackEventHandler.
func NewPlaybackEventHandler(
	player TrackEndReceiver,
	subscriber ports.EventSubscriber,
) *PlaybackEventHandler {
	return &PlaybackEventHandler{
		player:     player,
		subscriber: subscriber,
	}
}

// Start registers event handlers with the subscriber.
func (h *PlaybackEventHandler) Start() error {
	err := h.subscriber.Subscribe(
		reflect.TypeFor[domain.TrackEndedEvent](),
		func(ctx context.Context, e domain.Event) {
			h.handleTrackEnded(ctx, e.(domain.TrackEndedEvent))
		},
	)
	if err != nil {
		return err
	}

	err = h.subscriber.Subscribe(
		reflect.TypeFor[domain.TrackChangedEvent](),
		func(_ context.Context, e domain.Event) {
			event := e.(domain.TrackChangedEvent)
			slog.Info(
				"now playing",
				"index", event.Index,
				"track_id", event.Track.ID,
				"title", event.Track.Title,
				"artist", event.Track.Artist,
			)
		},
	)
	if err != nil {
		return err
	}

	err = h.subscriber.Subscribe(
		reflect.TypeFor[domain.PlaybackFailedEvent](),
		func(_ context.Context, e domain.Event) {
			event := e.(domain.PlaybackFailedEvent)
			slog.Warn(
				"playback failed",
				"source", event.Source,
				"error", event.Err,
			)
		},
	)
	if err != nil {
		return err
	}

	slog.Debug("playback event handlers properly registered")

	return nil
}

func (h *PlaybackEventHandler) handleTrackEnded(ctx context.Context, event domain.TrackEndedEvent) {
	slog.Debug(
		"track ended",
		"source", event.Source,
		"generation", event.Generation,
	)

	h.player.HandleTrackEnded(ctx, event.Source)
}

// LibraryEventHandler keeps the player's track list in sync with the
// playlist and the catalog.
type LibraryEventHandler struct {
	library    LibraryReceiver
	subscriber ports.EventSubscriber
}

// NewLibraryEventHandler creates a new LibraryEventHandler.
func NewLibraryEventHandler(
	library LibraryReceiver,
	subscriber ports.EventSubscriber,
) *LibraryEventHandler {
	return &LibraryEventHandler{
		library:    library,
		subscriber: subscriber,
	}
}

// Start registers event handlers with the subscriber.
func (h *LibraryEventHandler) Start() error {
	err := h.subscriber.Subscribe(
		reflect.TypeFor[domain.PlaylistChangedEvent](),
		func(ctx context.Context, _ domain.Event) {
			h.library.HandlePlaylistChanged(ctx)
		},
	)
	if err != nil {
		return err
	}

	err = h.subscriber.Subscribe(
		reflect.TypeFor[domain.CatalogChangedEvent](),
		func(ctx context.Context, e domain.Event) {
			event := e.(domain.CatalogChangedEvent)
			slog.Debug(
				"catalog changed, refreshing library",
				"track_id", event.TrackID,
				"action", event.Action,
			)
			h.library.HandleCatalogChanged(ctx)
		},
	)
	if err != nil {
		return err
	}

	slog.Debug("library event handlers properly registered")

	return nil
}
