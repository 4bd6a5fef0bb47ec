package consistency_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"

	"are-we-consistent-yet/core/consistency"
)

var errCorrupt = errors.New("connection reset mid-body")

// memStore is an in-memory Handle with sorted, paged listings.
type memStore struct {
	containers map[string]map[string][]byte
	pageSize   int
	corrupt    bool
}

func newMemStore(pageSize int) *memStore {
	return &memStore{containers: make(map[string]map[string][]byte), pageSize: pageSize}
}

func (s *memStore) bucket(container string) map[string][]byte {
	b, ok := s.containers[container]
	if !ok {
		b = make(map[string][]byte)
		s.containers[container] = b
	}
	return b
}

func (s *memStore) Put(_ context.Context, container, name string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.bucket(container)[name] = data
	return nil
}

func (s *memStore) Get(_ context.Context, container, name string) (io.ReadCloser, bool, error) {
	data, ok := s.bucket(container)[name]
	if !ok {
		return nil, false, nil
	}
	if s.corrupt {
		return io.NopCloser(io.MultiReader(bytes.NewReader(data[:len(data)/2]), errReader{})), true, nil
	}
	return io.NopCloser(bytes.NewReader(data)), true, nil
}

func (s *memStore) Delete(_ context.Context, container, name string) error {
	delete(s.bucket(container), name)
	return nil
}

func (s *memStore) ListPage(_ context.Context, container, marker string) (consistency.Page, error) {
	var names []string
	for name := range s.bucket(container) {
		if name > marker {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if s.pageSize <= 0 || len(names) <= s.pageSize {
		return consistency.Page{Names: names}, nil
	}
	page := names[:s.pageSize]
	return consistency.Page{Names: page, NextMarker: page[len(page)-1], Truncated: true}, nil
}

func (s *memStore) CreateContainer(_ context.Context, container, _ string) error {
	s.bucket(container)
	return nil
}

func (s *memStore) DeleteContainer(_ context.Context, container string) error {
	delete(s.containers, container)
	return nil
}

func (s *memStore) count(container string) int {
	return len(s.containers[container])
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errCorrupt }

// laggingReplica forwards writes to a primary store and to a replica, dropping
// the replica copy of selected operations. The replica then serves as a read
// handle that never catches up on those operations.
type laggingReplica struct {
	*memStore
	replica        *memStore
	dropDeletes    bool
	dropOverwrites bool
}

func (l *laggingReplica) Put(ctx context.Context, container, name string, body io.Reader, size int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	_, exists := l.replica.bucket(container)[name]
	if err := l.memStore.Put(ctx, container, name, bytes.NewReader(data), size); err != nil {
		return err
	}
	if exists && l.dropOverwrites {
		return nil
	}
	return l.replica.Put(ctx, container, name, bytes.NewReader(data), size)
}

func (l *laggingReplica) Delete(ctx context.Context, container, name string) error {
	if err := l.memStore.Delete(ctx, container, name); err != nil {
		return err
	}
	if l.dropDeletes {
		return nil
	}
	return l.replica.Delete(ctx, container, name)
}

// scriptedPager returns a fixed sequence of pages regardless of the marker.
type scriptedPager struct {
	*memStore
	pages   []consistency.Page
	markers []string
}

func (p *scriptedPager) ListPage(_ context.Context, _ string, marker string) (consistency.Page, error) {
	p.markers = append(p.markers, marker)
	page := p.pages[0]
	p.pages = p.pages[1:]
	return page, nil
}
