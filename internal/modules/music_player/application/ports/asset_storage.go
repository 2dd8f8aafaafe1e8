package ports

import (
	"context"
	"io"
)

// Asset is a stored binary file and the public URL it is served under.
type Asset struct {
	Key string
	URL string
}

// AssetStorage defines the interface of the binary object store holding
// audio files and cover images.
type AssetStorage interface {
	// Put stores r under prefix with a unique key derived from name.
	Put(ctx context.Context, prefix, name string, r io.Reader) (Asset, error)

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error

	// KeyFromURL returns the object key a public URL refers to.
	KeyFromURL(url string) (string, bool)
}

// SourceOpener opens an audio source URL for decoding.
type SourceOpener interface {
	Open(ctx context.Context, url string) (io.ReadSeekCloser, error)
}
