package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

// PlaylistStorageKey is the key the personal playlist IDs are stored under.
const PlaylistStorageKey = "my_playlist_ids"

// PlaylistService manages the personal playlist and persists it as a JSON
// array of track IDs.
type PlaylistService struct {
	mu        sync.Mutex
	playlist  *domain.Playlist
	store     ports.KeyValueStore
	catalog   domain.TrackRepository
	publisher ports.EventPublisher
}

// NewPlaylistService creates a new PlaylistService with an empty playlist.
func NewPlaylistService(
	capacity int,
	store ports.KeyValueStore,
	catalog domain.TrackRepository,
	publisher ports.EventPublisher,
) *PlaylistService {
	return &PlaylistService{
		playlist:  domain.NewPlaylist(capacity),
		store:     store,
		catalog:   catalog,
		publisher: publisher,
	}
}

// Load reads the stored IDs and resolves them against the catalog, keeping
// the stored order. IDs missing from the catalog are dropped.
func (s *PlaylistService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.store.Get(ctx, PlaylistStorageKey)
	if err != nil {
		return fmt.Errorf("failed to read playlist: %w", err)
	}
	if !ok || raw == "" {
		s.playlist.Replace(nil)
		return nil
	}

	var ids []domain.TrackID
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		slog.Warn("discarding malformed stored playlist", "error", err)
		s.playlist.Replace(nil)
		return nil
	}
	if len(ids) == 0 {
		s.playlist.Replace(nil)
		return nil
	}

	found, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve playlist: %w", err)
	}

	byID := make(map[domain.TrackID]domain.Track, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	tracks := make([]domain.Track, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			tracks = append(tracks, t)
		}
	}
	s.playlist.Replace(tracks)

	slog.Debug("loaded playlist", "stored", len(ids), "resolved", len(tracks))

	return nil
}

// Add appends track and persists the playlist.
func (s *PlaylistService) Add(ctx context.Context, track domain.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.playlist.Tracks()
	if err := s.playlist.Add(track); err != nil {
		return err
	}

	return s.commit(ctx, previous)
}

// Remove drops the track with the given ID and persists the playlist.
func (s *PlaylistService) Remove(ctx context.Context, id domain.TrackID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.playlist.Tracks()
	s.playlist.Remove(id)

	return s.commit(ctx, previous)
}

// RemoveMany drops every track in ids and persists the playlist.
func (s *PlaylistService) RemoveMany(ctx context.Context, ids []domain.TrackID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.playlist.Tracks()
	s.playlist.RemoveMany(ids)

	return s.commit(ctx, previous)
}

// Tracks returns the playlist tracks in order.
func (s *PlaylistService) Tracks() []domain.Track {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.playlist.Tracks()
}

// IDs returns the playlist track IDs in order.
func (s *PlaylistService) IDs() []domain.TrackID {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.playlist.IDs()
}

// Capacity returns the maximum number of tracks.
func (s *PlaylistService) Capacity() int {
	return s.playlist.Capacity()
}

// commit persists the playlist. On failure the in-memory playlist is rolled
// back to previous so memory and storage never diverge.
func (s *PlaylistService) commit(ctx context.Context, previous []domain.Track) error {
	ids := s.playlist.IDs()

	data, err := json.Marshal(ids)
	if err == nil {
		err = s.store.Set(ctx, PlaylistStorageKey, string(data))
	}
	if err != nil {
		s.playlist.Replace(previous)
		return fmt.Errorf("failed to save playlist: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(domain.PlaylistChangedEvent{IDs: ids}); err != nil {
			slog.Warn("failed to publish PlaylistChangedEvent", "error", err)
		}
	}

	return nil
}
