package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

func newTestLibrary(catalog ...domain.Track) (*LibraryService, *PlaylistService, *PlayerService) {
	repo := newMockTrackRepository(catalog...)
	catalogService := NewCatalogService(repo, newMockAssetStorage(), nil, nil, nil, CatalogLimits{})
	playlist := NewPlaylistService(0, newMockKeyValueStore(), repo, nil)
	player := NewPlayerService(&mockAudioOutput{}, nil, nil)
	return NewLibraryService(catalogService, playlist, player), playlist, player
}

func TestLibraryService_Refresh_FeedsCatalog(t *testing.T) {
	library, _, player := newTestLibrary(mockTracks(1, 2, 3)...)

	if err := library.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := player.State().TrackCount; got != 3 {
		t.Errorf("expected 3 tracks fed, got %d", got)
	}
	if library.Source() != domain.SourceAll {
		t.Errorf("expected default source all, got %q", library.Source())
	}
}

func TestLibraryService_UseSource(t *testing.T) {
	ctx := context.Background()
	library, playlist, player := newTestLibrary(mockTracks(1, 2, 3)...)
	_ = playlist.Add(ctx, mockTrack(2))

	if err := library.UseSource(ctx, domain.SourcePlaylist); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := player.State()
	if state.TrackCount != 1 || state.CurrentTrack.ID != 2 {
		t.Errorf("expected playlist fed, got %+v", state)
	}

	if err := library.UseSource(ctx, "radio"); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("expected ErrInvalidSource, got %v", err)
	}
}

func TestLibraryService_HandlePlaylistChanged(t *testing.T) {
	ctx := context.Background()
	library, playlist, player := newTestLibrary(mockTracks(1, 2, 3)...)
	_ = library.Refresh(ctx)

	_ = playlist.Add(ctx, mockTrack(3))
	library.HandlePlaylistChanged(ctx)
	if got := player.State().TrackCount; got != 3 {
		t.Errorf("expected catalog source untouched, got %d tracks", got)
	}

	_ = library.UseSource(ctx, domain.SourcePlaylist)
	_ = playlist.Add(ctx, mockTrack(1))
	library.HandlePlaylistChanged(ctx)
	if got := player.State().TrackCount; got != 2 {
		t.Errorf("expected playlist re-fed with 2 tracks, got %d", got)
	}
}

func TestLibraryService_Refresh_CatalogError(t *testing.T) {
	repo := newMockTrackRepository()
	repo.listErr = errors.New("db down")
	catalogService := NewCatalogService(repo, newMockAssetStorage(), nil, nil, nil, CatalogLimits{})
	player := NewPlayerService(&mockAudioOutput{}, nil, nil)
	library := NewLibraryService(catalogService, NewPlaylistService(0, newMockKeyValueStore(), repo, nil), player)

	if err := library.Refresh(context.Background()); err == nil {
		t.Error("expected error")
	}
}
