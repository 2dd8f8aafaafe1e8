package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

// Object key prefixes of the stored assets.
const (
	AudioPrefix = "audio"
	CoverPrefix = "covers"
)

// Default limits of the catalog service.
const (
	DefaultSearchLimit   = 20
	DefaultMaxAudioBytes = 50 << 20
	DefaultMaxCoverBytes = 5 << 20
)

// Upload is a file received from the admin form.
type Upload struct {
	Name    string
	Size    int64
	Content io.ReadSeeker
}

// CreateTrackInput contains the input for the Create use case.
type CreateTrackInput struct {
	Title    string
	Artist   string
	Category string
	Duration time.Duration // Optional: probed from the audio when zero
	Audio    *Upload
	Cover    *Upload
}

// CatalogLimits bounds searches and uploads.
type CatalogLimits struct {
	SearchLimit   int
	MaxAudioBytes int64
	MaxCoverBytes int64
}

// CatalogService handles the song catalog and its stored assets.
type CatalogService struct {
	repo      domain.TrackRepository
	storage   ports.AssetStorage
	tags      ports.TagReader
	probe     ports.DurationProbe
	publisher ports.EventPublisher
	limits    CatalogLimits
}

// NewCatalogService creates a new CatalogService. Zero limits fall back to
// their defaults; tags, probe and publisher may be nil.
func NewCatalogService(
	repo domain.TrackRepository,
	storage ports.AssetStorage,
	tags ports.TagReader,
	probe ports.DurationProbe,
	publisher ports.EventPublisher,
	limits CatalogLimits,
) *CatalogService {
	if limits.SearchLimit <= 0 {
		limits.SearchLimit = DefaultSearchLimit
	}
	if limits.MaxAudioBytes <= 0 {
		limits.MaxAudioBytes = DefaultMaxAudioBytes
	}
	if limits.MaxCoverBytes <= 0 {
		limits.MaxCoverBytes = DefaultMaxCoverBytes
	}

	return &CatalogService{
		repo:      repo,
		storage:   storage,
		tags:      tags,
		probe:     probe,
		publisher: publisher,
		limits:    limits,
	}
}

// List returns every track, newest first.
func (c *CatalogService) List(ctx context.Context) ([]domain.Track, error) {
	return c.repo.List(ctx)
}

// Search matches query against title and artist, case-insensitively.
// An empty query lists the catalog.
func (c *CatalogService) Search(ctx context.Context, query string) ([]domain.Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.repo.List(ctx)
	}
	return c.repo.Search(ctx, query, c.limits.SearchLimit)
}

// GetByIDs returns the tracks with the given IDs.
func (c *CatalogService) GetByIDs(ctx context.Context, ids []domain.TrackID) ([]domain.Track, error) {
	if len(ids) == 0 {
		return []domain.Track{}, nil
	}
	return c.repo.GetByIDs(ctx, ids)
}

// Get returns a single track.
func (c *CatalogService) Get(ctx context.Context, id domain.TrackID) (domain.Track, error) {
	return c.repo.Get(ctx, id)
}

// Create uploads the audio and cover files and inserts the track. Uploaded
// files are removed again when a later step fails.
func (c *CatalogService) Create(ctx context.Context, input CreateTrackInput) (domain.Track, error) {
	if err := c.validateCreate(input); err != nil {
		return domain.Track{}, err
	}

	track := domain.Track{
		Title:    strings.TrimSpace(input.Title),
		Artist:   strings.TrimSpace(input.Artist),
		Category: strings.TrimSpace(input.Category),
		Duration: input.Duration,
	}
	c.inspectAudio(input.Audio, &track)

	audio, err := c.storage.Put(ctx, AudioPrefix, SanitizeFilename(input.Audio.Name), input.Audio.Content)
	if err != nil {
		return domain.Track{}, fmt.Errorf("audio upload failed: %w", err)
	}

	cover, err := c.storage.Put(ctx, CoverPrefix, SanitizeFilename(input.Cover.Name), input.Cover.Content)
	if err != nil {
		c.removeAssets(ctx, audio.Key)
		return domain.Track{}, fmt.Errorf("cover upload failed: %w", err)
	}

	track.AudioURL = audio.URL
	track.CoverURL = cover.URL

	created, err := c.repo.Insert(ctx, track)
	if err != nil {
		c.removeAssets(ctx, audio.Key, cover.Key)
		return domain.Track{}, fmt.Errorf("failed to save song to database: %w", err)
	}

	slog.Info(
		"track created",
		"track_id", created.ID,
		"title", created.Title,
		"audio_key", audio.Key,
	)
	c.publish(domain.CatalogChangedEvent{TrackID: created.ID, Action: "created"})

	return created, nil
}

// Update changes the metadata of a track. When cover is non-nil it is
// uploaded first and the previous cover is deleted on a best-effort basis.
func (c *CatalogService) Update(
	ctx context.Context,
	id domain.TrackID,
	patch domain.TrackPatch,
	cover *Upload,
) (domain.Track, error) {
	var previousCoverURL string
	var newCoverKey string

	if cover != nil {
		if cover.Size > c.limits.MaxCoverBytes {
			return domain.Track{}, fmt.Errorf("%w: cover exceeds %d bytes", ErrFileTooLarge, c.limits.MaxCoverBytes)
		}

		existing, err := c.repo.Get(ctx, id)
		if err != nil {
			return domain.Track{}, err
		}
		previousCoverURL = existing.CoverURL

		asset, err := c.storage.Put(ctx, CoverPrefix, SanitizeFilename(cover.Name), cover.Content)
		if err != nil {
			return domain.Track{}, fmt.Errorf("cover upload failed: %w", err)
		}
		newCoverKey = asset.Key
		patch.CoverURL = &asset.URL
	}

	if patch.IsEmpty() {
		return c.repo.Get(ctx, id)
	}

	updated, err := c.repo.Update(ctx, id, patch)
	if err != nil {
		if newCoverKey != "" {
			c.removeAssets(ctx, newCoverKey)
		}
		if errors.Is(err, domain.ErrTrackNotFound) {
			return domain.Track{}, err
		}
		return domain.Track{}, fmt.Errorf("failed to update song: %w", err)
	}

	if previousCoverURL != "" && previousCoverURL != updated.CoverURL {
		if key, ok := c.storage.KeyFromURL(previousCoverURL); ok {
			c.removeAssets(ctx, key)
		}
	}

	c.publish(domain.CatalogChangedEvent{TrackID: id, Action: "updated"})

	return updated, nil
}

// SetLiked marks a track as liked or not. Unlike Update it needs no admin
// session.
func (c *CatalogService) SetLiked(ctx context.Context, id domain.TrackID, liked bool) (domain.Track, error) {
	return c.Update(ctx, id, domain.TrackPatch{Liked: &liked}, nil)
}

// Delete removes the track row, then its audio and cover files on a
// best-effort basis.
func (c *CatalogService) Delete(ctx context.Context, id domain.TrackID) error {
	track, err := c.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := c.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrTrackNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete song: %w", err)
	}

	var keys []string
	for _, url := range []string{track.AudioURL, track.CoverURL} {
		if key, ok := c.storage.KeyFromURL(url); ok {
			keys = append(keys, key)
		}
	}
	c.removeAssets(ctx, keys...)

	slog.Info("track deleted", "track_id", id)
	c.publish(domain.CatalogChangedEvent{TrackID: id, Action: "deleted"})

	return nil
}

func (c *CatalogService) validateCreate(input CreateTrackInput) error {
	var missing []string
	if strings.TrimSpace(input.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(input.Artist) == "" {
		missing = append(missing, "artist")
	}
	if strings.TrimSpace(input.Category) == "" {
		missing = append(missing, "category")
	}
	if input.Audio == nil || input.Audio.Content == nil {
		missing = append(missing, "audio")
	}
	if input.Cover == nil || input.Cover.Content == nil {
		missing = append(missing, "cover")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: all fields are required (missing %s)", ErrValidation, strings.Join(missing, ", "))
	}

	if input.Audio.Size > c.limits.MaxAudioBytes {
		return fmt.Errorf("%w: audio exceeds %d bytes", ErrFileTooLarge, c.limits.MaxAudioBytes)
	}
	if input.Cover.Size > c.limits.MaxCoverBytes {
		return fmt.Errorf("%w: cover exceeds %d bytes", ErrFileTooLarge, c.limits.MaxCoverBytes)
	}

	return nil
}

// inspectAudio fills lyrics and a missing duration from the audio file and
// rewinds it for the upload. Failures only cost the extra metadata.
func (c *CatalogService) inspectAudio(audio *Upload, track *domain.Track) {
	if c.tags != nil {
		lyrics, err := c.tags.Lyrics(audio.Content)
		if err != nil {
			slog.Debug("no readable tags in upload", "name", audio.Name, "error", err)
		} else {
			track.Lyrics = lyrics
		}
		rewind(audio.Content)
	}

	if track.Duration <= 0 && c.probe != nil {
		duration, err := c.probe.Duration(audio.Content)
		if err != nil {
			slog.Debug("failed to probe duration", "name", audio.Name, "error", err)
		} else {
			track.Duration = duration
		}
		rewind(audio.Content)
	}
}

func (c *CatalogService) removeAssets(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := c.storage.Delete(ctx, key); err != nil {
			slog.Warn("failed to delete asset", "key", key, "error", err)
		}
	}
}

func (c *CatalogService) publish(event domain.Event) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(event); err != nil {
		slog.Warn("failed to publish event", "event", event.EventName(), "error", err)
	}
}

func rewind(r io.Seeker) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		slog.Warn("failed to rewind upload", "error", err)
	}
}

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	disallowedChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// SanitizeFilename reduces name to ASCII letters, digits, dot, underscore
// and dash. Whitespace runs become a single underscore.
func SanitizeFilename(name string) string {
	ascii := strings.Map(func(r rune) rune {
		if r > 0x7F {
			return -1
		}
		return r
	}, name)

	clean := whitespaceRun.ReplaceAllString(ascii, "_")
	clean = disallowedChars.ReplaceAllString(clean, "")
	if clean == "" {
		return "file"
	}

	return clean
}
