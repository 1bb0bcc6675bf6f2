package catalogue

import "context"

// Snapshot is one fetched state of the remote catalogue blob. SHA is the
// opaque version token used for compare-and-swap writes.
type Snapshot struct {
	Content []byte
	SHA     string
}

// Store is the versioned external text store holding the catalogue blob.
//
// Fetch requires a configured credential and returns content plus version
// token; FetchPublic is the anonymous read path with no usable token. Put is
// a compare-and-swap: the write is rejected with ErrConcurrencyConflict when
// the live token no longer matches expectedSHA. The engine holds no lock
// across the fetch...put window; the token check is the only concurrency
// control.
type Store interface {
	Fetch(ctx context.Context) (*Snapshot, error)
	FetchPublic(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, content []byte, message, expectedSHA string) (newSHA string, err error)
}
