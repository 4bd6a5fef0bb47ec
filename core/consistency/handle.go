package consistency

import (
	"context"
	"io"
)

// Page is one page of a container listing.
type Page struct {
	// Names holds the object names on this page. May be empty even when Truncated is set.
	Names []string
	// NextMarker is the continuation token to pass to the following ListPage call.
	NextMarker string
	// Truncated reports whether more results remain. It is the only termination signal.
	Truncated bool
}

// Handle is an access path to an object storage backend.
//
// The runner receives two handles: one for mutations and one for verification.
// Implementations must not retry; any returned error aborts the run.
type Handle interface {
	// Put creates or overwrites an object.
	Put(ctx context.Context, container, name string, body io.Reader, size int64) error
	// Get returns the object content, or found=false if the backend has no record of it.
	// Callers must close the returned reader when found is true.
	Get(ctx context.Context, container, name string) (body io.ReadCloser, found bool, err error)
	// Delete removes an object. Deleting an absent object is not an error.
	Delete(ctx context.Context, container, name string) error
	// ListPage returns the page of names following marker. An empty marker starts the listing.
	ListPage(ctx context.Context, container, marker string) (Page, error)
	// CreateContainer creates a container, optionally in a backend-specific location.
	CreateContainer(ctx context.Context, container, location string) error
	// DeleteContainer removes a container.
	DeleteContainer(ctx context.Context, container string) error
}
