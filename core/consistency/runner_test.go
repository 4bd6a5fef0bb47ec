package consistency_test

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"are-we-consistent-yet/core/consistency"
	"are-we-consistent-yet/core/consistency/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const container = "container-name"

func newRunner(t *testing.T, write, read consistency.Handle, iterations int, size int64) *consistency.Runner {
	t.Helper()
	r, err := consistency.NewRunner(write, read, container, consistency.Options{
		Iterations: iterations,
		ObjectSize: size,
		Random:     rand.New(rand.NewSource(42)),
		Logger:     zap.NewNop(),
	})
	require.NoError(t, err)
	return r
}

func TestNewRunner_InvalidConfig(t *testing.T) {
	store := newMemStore(0)
	tests := []struct {
		name      string
		write     consistency.Handle
		read      consistency.Handle
		container string
		opts      consistency.Options
	}{
		{"ZeroIterations", store, store, container, consistency.Options{Iterations: 0, ObjectSize: 1}},
		{"NegativeIterations", store, store, container, consistency.Options{Iterations: -3, ObjectSize: 1}},
		{"NegativeSize", store, store, container, consistency.Options{Iterations: 1, ObjectSize: -1}},
		{"MissingWrite", nil, store, container, consistency.Options{Iterations: 1}},
		{"MissingRead", store, nil, container, consistency.Options{Iterations: 1}},
		{"MissingContainer", store, store, "", consistency.Options{Iterations: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := consistency.NewRunner(tt.write, tt.read, tt.container, tt.opts)
			assert.ErrorIs(t, err, consistency.ErrInvalidConfig)
			assert.Nil(t, r)
		})
	}
}

func TestRunner_StrongConsistency(t *testing.T) {
	for _, size := range []int64{0, 1, 4096} {
		store := newMemStore(2)
		require.NoError(t, store.CreateContainer(context.Background(), container, ""))
		r := newRunner(t, store, store, 5, size)

		report, err := r.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, &consistency.Report{Iterations: 5, ObjectSize: size}, report)
		assert.Zero(t, store.count(container), "container should be empty after a run")
	}
}

func TestRunner_NeverReconciling(t *testing.T) {
	ctx := context.Background()
	write := newMemStore(0)
	read := newMemStore(0)
	require.NoError(t, write.CreateContainer(ctx, container, ""))
	require.NoError(t, read.CreateContainer(ctx, container, ""))
	r := newRunner(t, write, read, 1, 1)

	report, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ReadAfterCreate)
	assert.Equal(t, 0, report.ReadAfterDelete)
	assert.Equal(t, 0, report.ReadAfterOverwrite)
	assert.Equal(t, 1, report.OverwriteNotVisible)
	assert.Equal(t, 1, report.ListAfterCreate)
	assert.Equal(t, 0, report.ListAfterDelete)
}

func TestRunner_LaggingReplica(t *testing.T) {
	ctx := context.Background()
	const n = 4

	t.Run("DroppedDeletes", func(t *testing.T) {
		replica := newMemStore(1)
		write := &laggingReplica{memStore: newMemStore(1), replica: replica, dropDeletes: true}
		r := newRunner(t, write, replica, n, 3)

		count, err := r.ReadAfterDelete(ctx)
		require.NoError(t, err)
		assert.Equal(t, n, count)

		count, err = r.ListAfterDelete(ctx)
		require.NoError(t, err)
		assert.Equal(t, n, count)

		count, err = r.ReadAfterCreate(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("DroppedOverwrites", func(t *testing.T) {
		replica := newMemStore(1)
		write := &laggingReplica{memStore: newMemStore(1), replica: replica, dropOverwrites: true}
		r := newRunner(t, write, replica, n, 3)

		report, err := r.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, n, report.ReadAfterOverwrite)
		assert.Zero(t, report.OverwriteNotVisible)
		assert.Zero(t, report.ReadAfterCreate)
		assert.Zero(t, report.ListAfterCreate)
	})
}

func TestRunner_CountsWithinBounds(t *testing.T) {
	ctx := context.Background()
	replica := newMemStore(2)
	write := &laggingReplica{memStore: newMemStore(2), replica: replica, dropDeletes: true, dropOverwrites: true}
	r := newRunner(t, write, replica, 6, 2)

	report, err := r.Run(ctx)
	require.NoError(t, err)
	for _, c := range report.Counts() {
		assert.GreaterOrEqual(t, c.Count, 0, c.Probe)
		assert.LessOrEqual(t, c.Count, 6, c.Probe)
	}
	assert.LessOrEqual(t, report.ReadAfterOverwrite+report.OverwriteNotVisible, 6)
}

func TestRunner_CorruptStreamAborts(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(0)
	store.corrupt = true
	r := newRunner(t, store, store, 3, 8)

	_, err := r.ReadAfterCreate(ctx)
	assert.ErrorIs(t, err, errCorrupt)

	_, err = r.ReadAfterOverwrite(ctx)
	assert.ErrorIs(t, err, errCorrupt)

	report, err := r.Run(ctx)
	assert.ErrorIs(t, err, errCorrupt)
	assert.Nil(t, report)
}

func TestRunner_BackendErrorAborts(t *testing.T) {
	ctx := context.Background()
	denied := errors.New("access denied")

	write := new(mocks.Handle)
	read := new(mocks.Handle)
	write.On("Put", mock.Anything, container, mock.Anything, mock.Anything, int64(1)).Return(nil).Once()
	read.On("Get", mock.Anything, container, mock.Anything).Return(nil, false, denied).Once()

	r := newRunner(t, write, read, 5, 1)
	report, err := r.Run(ctx)
	assert.ErrorIs(t, err, denied)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), string(consistency.ReadAfterCreate))

	// No cleanup or further iterations after the failure.
	write.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	write.AssertNumberOfCalls(t, "Put", 1)
	read.AssertNumberOfCalls(t, "Get", 1)
}

func TestRunner_WriteSideRouting(t *testing.T) {
	ctx := context.Background()
	write := new(mocks.Handle)
	read := new(mocks.Handle)

	write.On("Put", mock.Anything, container, mock.Anything, mock.Anything, int64(1)).Return(nil)
	write.On("Delete", mock.Anything, container, mock.Anything).Return(nil)
	read.On("ListPage", mock.Anything, container, "").Return(consistency.Page{}, nil)

	r := newRunner(t, write, read, 2, 1)
	count, err := r.ListAfterDelete(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	write.AssertNumberOfCalls(t, "Put", 2)
	write.AssertNumberOfCalls(t, "Delete", 2)
	write.AssertNotCalled(t, "ListPage", mock.Anything, mock.Anything, mock.Anything)
	read.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	read.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunner_UniqueNames(t *testing.T) {
	ctx := context.Background()
	seen := make(map[string]struct{})
	write := new(mocks.Handle)
	read := new(mocks.Handle)
	write.On("Put", mock.Anything, container, mock.Anything, mock.Anything, int64(0)).
		Run(func(args mock.Arguments) {
			name := args.String(2)
			require.True(t, strings.HasPrefix(name, "blob-name-"))
			_, dup := seen[name]
			require.False(t, dup, "duplicate object name %s", name)
			seen[name] = struct{}{}
		}).Return(nil)
	write.On("Delete", mock.Anything, container, mock.Anything).Return(nil)
	read.On("Get", mock.Anything, container, mock.Anything).Return(nil, false, nil)

	r := newRunner(t, write, read, 10_000, 0)
	_, err := r.ReadAfterCreate(ctx)
	require.NoError(t, err)
	assert.Len(t, seen, 10_000)
}

func TestRunner_SeededNamesAreReproducible(t *testing.T) {
	names := func() []string {
		var out []string
		write := new(mocks.Handle)
		read := new(mocks.Handle)
		write.On("Put", mock.Anything, container, mock.Anything, mock.Anything, int64(1)).
			Run(func(args mock.Arguments) { out = append(out, args.String(2)) }).Return(nil)
		write.On("Delete", mock.Anything, container, mock.Anything).Return(nil)
		read.On("Get", mock.Anything, container, mock.Anything).Return(nil, false, nil)

		r := newRunner(t, write, read, 3, 1)
		_, err := r.ReadAfterCreate(context.Background())
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, names(), names())
}

func TestRunner_RunProbe(t *testing.T) {
	store := newMemStore(0)
	r := newRunner(t, store, store, 2, 1)

	for _, p := range consistency.Probes {
		count, err := r.RunProbe(context.Background(), p)
		require.NoError(t, err, p)
		assert.Zero(t, count, p)
	}

	_, err := r.RunProbe(context.Background(), consistency.Probe("read after rename"))
	assert.ErrorIs(t, err, consistency.ErrInvalidConfig)
}
