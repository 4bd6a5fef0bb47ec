package consistency

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	namePrefix       = "blob-name-"
	maxNameRedraws   = 8
	payloadAFillByte = 1
	payloadBFillByte = 2
)

// Options configures a Runner.
type Options struct {
	// Iterations is the number of trials per probe. Must be positive.
	Iterations int
	// ObjectSize is the size in bytes of every object written. Zero is allowed.
	ObjectSize int64
	// Random is the source object names are drawn from. Defaults to crypto/rand.
	Random io.Reader
	// Logger receives per-iteration and per-probe progress. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Runner executes consistency probes against a write handle and a read handle
// that share one container. A Runner is not safe for concurrent use.
type Runner struct {
	write      Handle
	read       Handle
	container  string
	iterations int
	payloadA   Payload
	payloadB   Payload
	random     io.Reader
	names      map[string]struct{}
	logger     *zap.Logger
}

// NewRunner validates the configuration and returns a ready Runner.
func NewRunner(write, read Handle, container string, opts Options) (*Runner, error) {
	if write == nil {
		return nil, fmt.Errorf("%w: write handle is required", ErrInvalidConfig)
	}
	if read == nil {
		return nil, fmt.Errorf("%w: read handle is required", ErrInvalidConfig)
	}
	if container == "" {
		return nil, fmt.Errorf("%w: container name is required", ErrInvalidConfig)
	}
	if opts.Iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations must be greater than zero, was: %d", ErrInvalidConfig, opts.Iterations)
	}
	payloadA, err := NewPayload(payloadAFillByte, opts.ObjectSize)
	if err != nil {
		return nil, err
	}
	payloadB, err := NewPayload(payloadBFillByte, opts.ObjectSize)
	if err != nil {
		return nil, err
	}

	random := opts.Random
	if random == nil {
		random = rand.Reader
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		write:      write,
		read:       read,
		container:  container,
		iterations: opts.Iterations,
		payloadA:   payloadA,
		payloadB:   payloadB,
		random:     random,
		names:      make(map[string]struct{}),
		logger:     logger.With(zap.String("container", container)),
	}, nil
}

// Run executes all five probes in order and assembles the report.
// The first storage error aborts the run and no report is returned.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		Iterations: r.iterations,
		ObjectSize: r.payloadA.Size(),
	}
	for _, p := range Probes {
		if p == ReadAfterOverwrite {
			stale, notVisible, err := r.readAfterOverwrite(ctx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p, err)
			}
			report.ReadAfterOverwrite = stale
			report.OverwriteNotVisible = notVisible
			continue
		}
		count, err := r.RunProbe(ctx, p)
		if err != nil {
			return nil, err
		}
		report.set(p, count)
	}
	return report, nil
}

// RunProbe executes a single probe and returns its inconsistency count.
func (r *Runner) RunProbe(ctx context.Context, p Probe) (int, error) {
	var (
		count int
		err   error
	)
	switch p {
	case ReadAfterCreate:
		count, err = r.ReadAfterCreate(ctx)
	case ReadAfterDelete:
		count, err = r.ReadAfterDelete(ctx)
	case ReadAfterOverwrite:
		count, err = r.ReadAfterOverwrite(ctx)
	case ListAfterCreate:
		count, err = r.ListAfterCreate(ctx)
	case ListAfterDelete:
		count, err = r.ListAfterDelete(ctx)
	default:
		return 0, fmt.Errorf("%w: unknown probe %q", ErrInvalidConfig, p)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", p, err)
	}
	return count, nil
}

// newName draws an object name that has not been issued earlier in this run.
func (r *Runner) newName() (string, error) {
	for i := 0; i < maxNameRedraws; i++ {
		id, err := uuid.NewRandomFromReader(r.random)
		if err != nil {
			return "", fmt.Errorf("failed to generate object name: %w", err)
		}
		name := namePrefix + id.String()
		if _, used := r.names[name]; used {
			continue
		}
		r.names[name] = struct{}{}
		return name, nil
	}
	return "", fmt.Errorf("failed to generate a unique object name after %d attempts", maxNameRedraws)
}

func (r *Runner) put(ctx context.Context, name string, p Payload) error {
	if err := r.write.Put(ctx, r.container, name, p.Open(), p.Size()); err != nil {
		return fmt.Errorf("failed to put %s: %w", name, err)
	}
	return nil
}

func (r *Runner) remove(ctx context.Context, name string) error {
	if err := r.write.Delete(ctx, r.container, name); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

// observe reads name through the read handle. Present content is drained fully so
// transport failures surface even when only presence matters.
func (r *Runner) observe(ctx context.Context, name string) (bool, error) {
	body, found, err := r.read.Get(ctx, r.container, name)
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", name, err)
	}
	if !found {
		return false, nil
	}
	defer body.Close()
	if _, err := io.Copy(io.Discard, body); err != nil {
		return true, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return true, nil
}

// listed reports whether name appears in a full listing through the read handle.
func (r *Runner) listed(ctx context.Context, name string) (bool, error) {
	names, err := ListAll(ctx, r.read, r.container)
	if err != nil {
		return false, err
	}
	_, ok := names[name]
	return ok, nil
}

func (r *Runner) logIteration(p Probe, i int, name string, inconsistent bool) {
	r.logger.Debug("Probe iteration",
		zap.String("probe", string(p)),
		zap.Int("iteration", i),
		zap.String("object", name),
		zap.Bool("inconsistent", inconsistent),
	)
}

func (r *Runner) logProbe(p Probe, count int) {
	r.logger.Info("Probe completed",
		zap.String("probe", string(p)),
		zap.Int("iterations", r.iterations),
		zap.Int("count", count),
	)
}
