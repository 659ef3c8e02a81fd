package storage

import "context"

// ObjectStore is the contract for the document stores backing registration
// uploads. Implementations return a publicly reachable URL for the stored
// object.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, path string, contentType string, data []byte) (string, error)
}
