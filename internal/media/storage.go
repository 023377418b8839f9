// Package media holds the narrow object-storage boundary: the rest of the
// system only ever uploads a stream and deletes a key.
package media

import (
	"context"
	"io"
)

// Storage is the object-storage contract the handlers depend on.
type Storage interface {
	// Enabled reports whether a bucket is configured; callers skip storage
	// work entirely when it is not.
	Enabled() bool
	// Upload stores body under key and returns the public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	// Delete removes the object; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Bucket returns the configured bucket name, empty when disabled.
	Bucket() string
}
