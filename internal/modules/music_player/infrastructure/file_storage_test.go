package infrastructure

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestFileStorage(t *testing.T) *FileStorage {
	t.Helper()
	storage, err := NewFileStorage(filepath.Join(t.TempDir(), "assets"), "/assets/", 1024)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	return storage
}

func TestFileStorage_PutAndOpen(t *testing.T) {
	ctx := context.Background()
	storage := newTestFileStorage(t)

	asset, err := storage.Put(ctx, "audio", "song.mp3", strings.NewReader("ID3 data"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(asset.Key, "audio/") || !strings.HasSuffix(asset.Key, "-song.mp3") {
		t.Errorf("unexpected key %q", asset.Key)
	}
	if asset.URL != "/assets/"+asset.Key {
		t.Errorf("expected URL under base, got %q", asset.URL)
	}

	r, err := storage.Open(ctx, asset.URL)
	if err != nil {
		t.Fatalf("failed to open asset: %v", err)
	}
	defer r.Close()

	data, _ := io.ReadAll(r)
	if string(data) != "ID3 data" {
		t.Errorf("expected stored content, got %q", data)
	}
}

func TestFileStorage_PutUniqueKeys(t *testing.T) {
	ctx := context.Background()
	storage := newTestFileStorage(t)

	seen := make(map[string]bool)
	for range 20 {
		asset, err := storage.Put(ctx, "covers", "cover.png", strings.NewReader("png"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[asset.Key] {
			t.Fatalf("duplicate key %q", asset.Key)
		}
		seen[asset.Key] = true
	}
}

func TestFileStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage := newTestFileStorage(t)

	asset, _ := storage.Put(ctx, "covers", "a.png", strings.NewReader("png"))
	if err := storage.Delete(ctx, asset.Key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(storage.Root(), filepath.FromSlash(asset.Key))); !os.IsNotExist(err) {
		t.Errorf("expected file removed, stat error: %v", err)
	}
	if err := storage.Delete(ctx, asset.Key); err == nil {
		t.Error("expected error deleting a missing asset")
	}
}

func TestFileStorage_KeysStayInsideRoot(t *testing.T) {
	ctx := context.Background()
	storage := newTestFileStorage(t)

	asset, err := storage.Put(ctx, "../../outside", "x.mp3", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	target, _ := storage.pathOf(asset.Key)
	if !strings.HasPrefix(target, storage.Root()) {
		t.Errorf("expected %q inside %q", target, storage.Root())
	}
	if _, err := storage.pathOf("/"); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestFileStorage_KeyFromURL(t *testing.T) {
	storage := newTestFileStorage(t)

	tests := []struct {
		name   string
		url    string
		key    string
		wantOK bool
	}{
		{name: "asset url", url: "/assets/audio/1-a.mp3", key: "audio/1-a.mp3", wantOK: true},
		{name: "foreign url", url: "https://cdn.example.com/a.mp3", wantOK: false},
		{name: "base only", url: "/assets/", wantOK: false},
		{name: "empty", url: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := storage.KeyFromURL(tt.url)
			if ok != tt.wantOK || key != tt.key {
				t.Errorf("KeyFromURL(%q) = %q, %v; want %q, %v", tt.url, key, ok, tt.key, tt.wantOK)
			}
		})
	}
}

func TestFileStorage_OpenRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.mp3" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("remote audio"))
	}))
	defer server.Close()

	ctx := context.Background()
	storage := newTestFileStorage(t)

	r, err := storage.Open(ctx, server.URL+"/song.mp3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Seek(7, io.SeekStart); err != nil {
		t.Fatalf("expected seekable reader: %v", err)
	}
	data, _ := io.ReadAll(r)
	if string(data) != "audio" {
		t.Errorf("expected seeked content, got %q", data)
	}

	if _, err := storage.Open(ctx, server.URL+"/missing.mp3"); err == nil {
		t.Error("expected error for 404 source")
	}
	if _, err := storage.Open(ctx, "ftp://example.com/a.mp3"); err == nil {
		t.Error("expected error for unsupported scheme")
	}
}

func TestFileStorage_OpenRemoteRespectsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 16)))
	}))
	defer server.Close()

	tests := []struct {
		name     string
		maxBytes int64
		wantErr  bool
	}{
		{name: "under limit", maxBytes: 32},
		{name: "exactly at limit", maxBytes: 16},
		{name: "over limit", maxBytes: 8, wantErr: true},
		{name: "no limit", maxBytes: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, err := NewFileStorage(t.TempDir(), "/assets", tt.maxBytes)
			if err != nil {
				t.Fatalf("failed to create storage: %v", err)
			}

			r, err := storage.Open(context.Background(), server.URL+"/big.mp3")
			if tt.wantErr {
				if !errors.Is(err, ErrSourceTooLarge) {
					t.Errorf("expected ErrSourceTooLarge, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			data, _ := io.ReadAll(r)
			if len(data) != 16 {
				t.Errorf("expected 16 bytes, got %d", len(data))
			}
		})
	}
}
