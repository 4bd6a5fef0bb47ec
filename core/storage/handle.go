package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"are-we-consistent-yet/core/consistency"

	"github.com/minio/minio-go/v7"
)

const defaultPageSize = 1000

// HandleOptions tunes how a Handle talks to its client.
type HandleOptions struct {
	// PageSize is the number of names per listing page. Defaults to 1000.
	PageSize int
	// UnsignedPayload skips payload hashing on uploads. Needed for endpoints that
	// cannot decode streaming-signed bodies.
	UnsignedPayload bool
}

// Handle adapts a Client to consistency.Handle.
type Handle struct {
	client Client
	opts   HandleOptions
}

var _ consistency.Handle = (*Handle)(nil)

// NewHandle wraps client as a consistency handle.
func NewHandle(client Client, opts HandleOptions) *Handle {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	return &Handle{client: client, opts: opts}
}

// Put uploads body as name.
func (h *Handle) Put(ctx context.Context, container, name string, body io.Reader, size int64) error {
	_, err := h.client.PutObject(ctx, container, name, body, size, minio.PutObjectOptions{
		ContentType:          "application/octet-stream",
		DisableContentSha256: h.opts.UnsignedPayload,
	})
	return err
}

// Get opens name for reading. A missing key is reported as found=false.
func (h *Handle) Get(ctx context.Context, container, name string) (io.ReadCloser, bool, error) {
	body, err := h.client.GetObject(ctx, container, name, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	// minio objects are lazy; Stat issues the request so absence is known up front.
	if st, ok := body.(interface {
		Stat() (minio.ObjectInfo, error)
	}); ok {
		if _, err := st.Stat(); err != nil {
			body.Close()
			if isNoSuchKey(err) {
				return nil, false, nil
			}
			return nil, false, err
		}
	}
	return body, true, nil
}

// Delete removes name. Missing keys are ignored.
func (h *Handle) Delete(ctx context.Context, container, name string) error {
	err := h.client.RemoveObject(ctx, container, name, minio.RemoveObjectOptions{})
	if err != nil && !isNoSuchKey(err) {
		return err
	}
	return nil
}

// ListPage returns up to PageSize names sorting after marker.
func (h *Handle) ListPage(ctx context.Context, container, marker string) (consistency.Page, error) {
	// Stops the listing goroutine once a page is filled.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{
		Recursive:  true,
		StartAfter: marker,
		MaxKeys:    h.opts.PageSize,
	}

	var page consistency.Page
	for obj := range h.client.ListObjects(ctx, container, opts) {
		if obj.Err != nil {
			return consistency.Page{}, obj.Err
		}
		if len(page.Names) == h.opts.PageSize {
			page.Truncated = true
			break
		}
		page.Names = append(page.Names, obj.Key)
	}
	if page.Truncated {
		page.NextMarker = page.Names[len(page.Names)-1]
	}
	return page, nil
}

// CreateContainer creates the bucket in location. Locations are matched
// case-insensitively. An existing bucket is accepted.
func (h *Handle) CreateContainer(ctx context.Context, container, location string) error {
	location = strings.ToLower(location)
	err := h.client.MakeBucket(ctx, container, minio.MakeBucketOptions{Region: location})
	if err == nil {
		return nil
	}
	switch minio.ToErrorResponse(err).Code {
	case "InvalidLocationConstraint", "IllegalLocationConstraintException":
		return fmt.Errorf("%w %q: %w", consistency.ErrUnknownLocation, location, err)
	}
	if exists, existsErr := h.client.BucketExists(ctx, container); existsErr == nil && exists {
		return nil
	}
	return fmt.Errorf("failed to create bucket %s: %w", container, err)
}

// DeleteContainer removes the bucket.
func (h *Handle) DeleteContainer(ctx context.Context, container string) error {
	return h.client.RemoveBucket(ctx, container)
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" {
		return true
	}
	return resp.StatusCode == http.StatusNotFound && resp.Code != "NoSuchBucket"
}
