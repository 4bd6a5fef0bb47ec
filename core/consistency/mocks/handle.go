package mocks

import (
	"context"
	"io"

	"are-we-consistent-yet/core/consistency"

	"github.com/stretchr/testify/mock"
)

// Handle is a mock implementation of consistency.Handle
type Handle struct {
	mock.Mock
}

func (m *Handle) Put(ctx context.Context, container, name string, body io.Reader, size int64) error {
	args := m.Called(ctx, container, name, body, size)
	return args.Error(0)
}

func (m *Handle) Get(ctx context.Context, container, name string) (io.ReadCloser, bool, error) {
	args := m.Called(ctx, container, name)
	if body, ok := args.Get(0).(io.ReadCloser); ok {
		return body, args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *Handle) Delete(ctx context.Context, container, name string) error {
	args := m.Called(ctx, container, name)
	return args.Error(0)
}

func (m *Handle) ListPage(ctx context.Context, container, marker string) (consistency.Page, error) {
	args := m.Called(ctx, container, marker)
	return args.Get(0).(consistency.Page), args.Error(1)
}

func (m *Handle) CreateContainer(ctx context.Context, container, location string) error {
	args := m.Called(ctx, container, location)
	return args.Error(0)
}

func (m *Handle) DeleteContainer(ctx context.Context, container string) error {
	args := m.Called(ctx, container)
	return args.Error(0)
}
