package usecases

import (
	"context"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

func mockTrack(id domain.TrackID) domain.Track {
	return domain.Track{
		ID:       id,
		Title:    "Track " + id.String(),
		Artist:   "Artist",
		Category: "Synthwave",
		AudioURL: "/assets/audio/" + id.String() + ".mp3",
		CoverURL: "/assets/covers/" + id.String() + ".png",
		Duration: 3 * time.Minute,
	}
}

func mockTracks(ids ...domain.TrackID) []domain.Track {
	tracks := make([]domain.Track, len(ids))
	for i, id := range ids {
		tracks[i] = mockTrack(id)
	}
	return tracks
}

type mockAudioOutput struct {
	source          string
	playing         bool
	position        time.Duration
	duration        time.Duration
	volume          int
	closed          int
	loads           []string
	seeks           []time.Duration
	loadErr         error
	playErr         error
	unloaded        int
	analyser        ports.Analyser
	durationUnknown bool
}

func (m *mockAudioOutput) Load(_ context.Context, source string) error {
	if m.loadErr != nil {
		return m.loadErr
	}
	m.source = source
	m.loads = append(m.loads, source)
	m.position = 0
	m.playing = false
	return nil
}

func (m *mockAudioOutput) Unload() error {
	m.source = ""
	m.playing = false
	m.unloaded++
	return nil
}

func (m *mockAudioOutput) Source() string { return m.source }

func (m *mockAudioOutput) Play(_ context.Context) error {
	if m.playErr != nil {
		return m.playErr
	}
	m.playing = true
	return nil
}

func (m *mockAudioOutput) Pause() error {
	m.playing = false
	return nil
}

func (m *mockAudioOutput) Seek(position time.Duration) error {
	m.position = position
	m.seeks = append(m.seeks, position)
	return nil
}

func (m *mockAudioOutput) Position() time.Duration { return m.position }

func (m *mockAudioOutput) Duration() time.Duration {
	if m.durationUnknown || m.source == "" {
		return 0
	}
	if m.duration == 0 {
		return 3 * time.Minute
	}
	return m.duration
}

func (m *mockAudioOutput) SetVolume(volume int) { m.volume = volume }

func (m *mockAudioOutput) Analyser() ports.Analyser { return m.analyser }

func (m *mockAudioOutput) Close() error {
	m.closed++
	m.playing = false
	return nil
}

type mockAutoplay bool

func (m mockAutoplay) Autoplay() bool { return bool(m) }

type mockEventPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (m *mockEventPublisher) Publish(event domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventPublisher) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.EventName() == name {
			n++
		}
	}
	return n
}

type mockKeyValueStore struct {
	values map[string]string
	getErr error
	setErr error
	// setErrKey limits setErr to a single key when set.
	setErrKey string
}

func newMockKeyValueStore() *mockKeyValueStore {
	return &mockKeyValueStore{values: make(map[string]string)}
}

func (m *mockKeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockKeyValueStore) Set(_ context.Context, key, value string) error {
	if m.setErr != nil && (m.setErrKey == "" || m.setErrKey == key) {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockKeyValueStore) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

type mockTrackRepository struct {
	tracks    []domain.Track
	nextID    domain.TrackID
	insertErr error
	updateErr error
	deleteErr error
	listErr   error
}

func newMockTrackRepository(tracks ...domain.Track) *mockTrackRepository {
	return &mockTrackRepository{tracks: tracks, nextID: 100}
}

func (m *mockTrackRepository) List(_ context.Context) ([]domain.Track, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return slices.Clone(m.tracks), nil
}

func (m *mockTrackRepository) Search(_ context.Context, query string, limit int) ([]domain.Track, error) {
	q := strings.ToLower(query)
	var result []domain.Track
	for _, t := range m.tracks {
		if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Artist), q) {
			result = append(result, t)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *mockTrackRepository) GetByIDs(_ context.Context, ids []domain.TrackID) ([]domain.Track, error) {
	var result []domain.Track
	for _, t := range m.tracks {
		if slices.Contains(ids, t.ID) {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockTrackRepository) Get(_ context.Context, id domain.TrackID) (domain.Track, error) {
	for _, t := range m.tracks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Track{}, domain.ErrTrackNotFound
}

func (m *mockTrackRepository) Insert(_ context.Context, track domain.Track) (domain.Track, error) {
	if m.insertErr != nil {
		return domain.Track{}, m.insertErr
	}
	track.ID = m.nextID
	m.nextID++
	m.tracks = append([]domain.Track{track}, m.tracks...)
	return track, nil
}

func (m *mockTrackRepository) Update(
	_ context.Context,
	id domain.TrackID,
	patch domain.TrackPatch,
) (domain.Track, error) {
	if m.updateErr != nil {
		return domain.Track{}, m.updateErr
	}
	for i := range m.tracks {
		if m.tracks[i].ID == id {
			patch.Apply(&m.tracks[i])
			return m.tracks[i], nil
		}
	}
	return domain.Track{}, domain.ErrTrackNotFound
}

func (m *mockTrackRepository) Delete(_ context.Context, id domain.TrackID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	before := len(m.tracks)
	m.tracks = slices.DeleteFunc(m.tracks, func(t domain.Track) bool { return t.ID == id })
	if len(m.tracks) == before {
		return domain.ErrTrackNotFound
	}
	return nil
}

func (m *mockTrackRepository) Close() error { return nil }

type mockAssetStorage struct {
	objects map[string]string
	putErrs map[string]error // by prefix
	deleted []string
	counter int
}

func newMockAssetStorage() *mockAssetStorage {
	return &mockAssetStorage{
		objects: make(map[string]string),
		putErrs: make(map[string]error),
	}
}

func (m *mockAssetStorage) Put(_ context.Context, prefix, name string, r io.Reader) (ports.Asset, error) {
	if err := m.putErrs[prefix]; err != nil {
		return ports.Asset{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ports.Asset{}, err
	}
	m.counter++
	key := prefix + "/" + strconv.Itoa(m.counter) + "-" + name
	m.objects[key] = string(data)
	return ports.Asset{Key: key, URL: "/assets/" + key}, nil
}

func (m *mockAssetStorage) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	if _, ok := m.objects[key]; !ok {
		return errors.New("no such object")
	}
	delete(m.objects, key)
	return nil
}

func (m *mockAssetStorage) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, "/assets/")
	return key, ok && key != ""
}

type mockTagReader struct {
	lyrics string
	err    error
}

func (m *mockTagReader) Lyrics(_ io.ReadSeeker) (string, error) {
	return m.lyrics, m.err
}

type mockDurationProbe struct {
	duration time.Duration
	calls    int
}

func (m *mockDurationProbe) Duration(_ io.ReadSeeker) (time.Duration, error) {
	m.calls++
	return m.duration, nil
}

type mockToneSynth struct {
	tones []domain.Tone
	err   error
}

func (m *mockToneSynth) PlayTone(tone domain.Tone) error {
	if m.err != nil {
		return m.err
	}
	m.tones = append(m.tones, tone)
	return nil
}

type mockSoundPolicy bool

func (m mockSoundPolicy) SoundEnabled() bool { return bool(m) }

func upload(name, content string) *Upload {
	return &Upload{
		Name:    name,
		Size:    int64(len(content)),
		Content: strings.NewReader(content),
	}
}
