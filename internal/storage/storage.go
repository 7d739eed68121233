package storage

import (
	"context"
	"errors"
	"io"
)

// ErrKeyExists is returned when saving to a key that already holds a file.
var ErrKeyExists = errors.New("storage: key already exists")

// Storage abstracts the image object store. The local-disk implementation
// serves development and single-host deployments; the interface leaves room
// for an S3-style backend without touching the handlers.
type Storage interface {
	// Save stores the file under key (e.g. "apparel/caps/3f9a2c.jpg") and
	// returns the public URL it will be served from.
	Save(ctx context.Context, key string, data io.Reader) (url string, err error)

	// Delete removes the file stored under key.
	Delete(ctx context.Context, key string) error
}
