package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

// LibraryService decides which tracks the player walks through: the whole
// catalog or the personal playlist.
type LibraryService struct {
	mu       sync.Mutex
	source   domain.TrackSource
	catalog  *CatalogService
	playlist *PlaylistService
	player   *PlayerService
}

// NewLibraryService creates a new LibraryService sourced from the whole catalog.
func NewLibraryService(
	catalog *CatalogService,
	playlist *PlaylistService,
	player *PlayerService,
) *LibraryService {
	return &LibraryService{
		source:   domain.SourceAll,
		catalog:  catalog,
		playlist: playlist,
		player:   player,
	}
}

// Source returns the active track source.
func (l *LibraryService) Source() domain.TrackSource {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.source
}

// UseSource switches the track source and feeds the player.
func (l *LibraryService) UseSource(ctx context.Context, source domain.TrackSource) error {
	if source != domain.SourceAll && source != domain.SourcePlaylist {
		return fmt.Errorf("%w: %q", ErrInvalidSource, source)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.source = source
	return l.feed(ctx)
}

// Refresh re-fetches the active source and feeds the player.
func (l *LibraryService) Refresh(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.feed(ctx)
}

// HandlePlaylistChanged re-feeds the player if it is sourced from the playlist.
func (l *LibraryService) HandlePlaylistChanged(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.source != domain.SourcePlaylist {
		return
	}
	if err := l.feed(ctx); err != nil {
		slog.Warn("failed to refresh playlist source", "error", err)
	}
}

// HandleCatalogChanged re-feeds the player after a catalog mutation.
func (l *LibraryService) HandleCatalogChanged(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var err error
	if l.source == domain.SourcePlaylist {
		// Deleted tracks must disappear from the resolved playlist as well.
		if err = l.playlist.Load(ctx); err == nil {
			err = l.feed(ctx)
		}
	} else {
		err = l.feed(ctx)
	}
	if err != nil {
		slog.Warn("failed to refresh library after catalog change", "error", err)
	}
}

func (l *LibraryService) feed(ctx context.Context) error {
	var tracks []domain.Track

	switch l.source {
	case domain.SourcePlaylist:
		tracks = l.playlist.Tracks()
	default:
		all, err := l.catalog.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch catalog: %w", err)
		}
		tracks = all
	}

	l.player.SetTracks(ctx, tracks)

	slog.Debug("fed player", "source", string(l.source), "tracks", len(tracks))

	return nil
}
