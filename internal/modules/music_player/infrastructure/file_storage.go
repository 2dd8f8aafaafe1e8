package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
)

var (
	// ErrInvalidAssetKey is returned for keys that escape the storage root.
	ErrInvalidAssetKey = errors.New("invalid asset key")

	// ErrSourceTooLarge is returned when a remote source exceeds the size limit.
	ErrSourceTooLarge = errors.New("remote source too large")
)

// Compile-time checks that FileStorage implements ports interfaces.
var (
	_ ports.AssetStorage = (*FileStorage)(nil)
	_ ports.SourceOpener = (*FileStorage)(nil)
)

// FileStorage stores assets as plain files below a root directory and serves
// them under a public base URL. Keys have the form <prefix>/<snowflake>-<name>.
type FileStorage struct {
	root     string
	baseURL  string
	client   *http.Client
	maxBytes int64 // remote download limit, 0 for none
	seq      atomic.Uint64
	now      func() time.Time
}

// NewFileStorage creates a FileStorage rooted at dir. The directory is
// created if it does not exist. Remote sources larger than maxRemoteBytes are
// refused; 0 disables the limit.
func NewFileStorage(dir, baseURL string, maxRemoteBytes int64) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create assets directory: %w", err)
	}

	return &FileStorage{
		root:     dir,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		client:   &http.Client{Timeout: 30 * time.Second},
		maxBytes: maxRemoteBytes,
		now:      time.Now,
	}, nil
}

// Root returns the directory the assets are stored in.
func (s *FileStorage) Root() string {
	return s.root
}

// Put writes r to a new file under prefix.
func (s *FileStorage) Put(ctx context.Context, prefix, name string, r io.Reader) (ports.Asset, error) {
	if err := ctx.Err(); err != nil {
		return ports.Asset{}, err
	}

	key := path.Join(prefix, s.nextID().String()+"-"+name)
	target, err := s.pathOf(key)
	if err != nil {
		return ports.Asset{}, err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return ports.Asset{}, fmt.Errorf("failed to create asset directory: %w", err)
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return ports.Asset{}, fmt.Errorf("failed to create asset: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(target)
		return ports.Asset{}, fmt.Errorf("failed to write asset: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return ports.Asset{}, fmt.Errorf("failed to write asset: %w", err)
	}

	return ports.Asset{Key: key, URL: s.baseURL + "/" + key}, nil
}

// Delete removes the file stored under key.
func (s *FileStorage) Delete(_ context.Context, key string) error {
	target, err := s.pathOf(key)
	if err != nil {
		return err
	}
	return os.Remove(target)
}

// KeyFromURL strips the public base URL from url.
func (s *FileStorage) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// Open returns a seekable reader for url. URLs under the base URL are read
// from disk; other http(s) URLs are downloaded into memory.
func (s *FileStorage) Open(ctx context.Context, url string) (io.ReadSeekCloser, error) {
	if key, ok := s.KeyFromURL(url); ok {
		target, err := s.pathOf(key)
		if err != nil {
			return nil, err
		}
		return os.Open(target)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("unsupported source %q", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch source: unexpected status %s", resp.Status)
	}

	body := io.Reader(resp.Body)
	if s.maxBytes > 0 {
		body = io.LimitReader(resp.Body, s.maxBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrSourceTooLarge, s.maxBytes)
	}

	return nopCloser{bytes.NewReader(data)}, nil
}

// nextID returns a time-ordered snowflake whose increment bits keep keys
// created within the same millisecond apart.
func (s *FileStorage) nextID() snowflake.ID {
	id := snowflake.New(s.now())
	return snowflake.ID(uint64(id) | (s.seq.Add(1) & 0xFFF))
}

func (s *FileStorage) pathOf(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetKey, key)
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

type nopCloser struct {
	io.ReadSeeker
}

func (nopCloser) Close() error { return nil }
