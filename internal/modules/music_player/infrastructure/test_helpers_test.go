package infrastructure

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

type mockSourceOpener struct {
	missing map[string]bool
	opened  []string
}

func (m *mockSourceOpener) Open(_ context.Context, url string) (io.ReadSeekCloser, error) {
	if m.missing[url] {
		return nil, errors.New("not found")
	}
	m.opened = append(m.opened, url)
	return nopCloser{strings.NewReader("audio")}, nil
}

type fixedDurationProbe time.Duration

func (p fixedDurationProbe) Duration(io.ReadSeeker) (time.Duration, error) {
	return time.Duration(p), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) ended() []domain.TrackEndedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var result []domain.TrackEndedEvent
	for _, e := range p.events {
		if ended, ok := e.(domain.TrackEndedEvent); ok {
			result = append(result, ended)
		}
	}
	return result
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
