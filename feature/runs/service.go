package runs

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"are-we-consistent-yet/core/backend"
	"are-we-consistent-yet/core/consistency"
	"are-we-consistent-yet/core/server"

	"go.uber.org/zap"
)

// RunRequest selects the parameters of a run. Zero values fall back to the
// configured defaults.
type RunRequest struct {
	Container  string `json:"container"`
	Location   string `json:"location"`
	Iterations int    `json:"iterations"`
	// ObjectSize is a pointer so that an explicit 0 can be told apart from "not set".
	ObjectSize *int64 `json:"object_size"`
}

// Options configures a Service.
type Options struct {
	// Defaults fills in unset request fields.
	Defaults consistency.Config
	// Limits caps the iteration count of a request.
	Limits server.Config
}

// Status describes the service state.
type Status struct {
	Running        bool   `json:"running"`
	HistoryEnabled bool   `json:"history_enabled"`
	Endpoint       string `json:"endpoint"`
	ReaderEndpoint string `json:"reader_endpoint"`
}

// Service executes consistency runs one at a time and keeps their history.
type Service struct {
	backend *backend.Backend
	store   *Store
	opts    Options
	logger  *zap.Logger
	running atomic.Bool
}

// NewService creates a run service. store may be nil to disable history.
func NewService(b *backend.Backend, store *Store, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: b, store: store, opts: opts, logger: logger}
}

// ProbeResult is the outcome of a run limited to one probe.
type ProbeResult struct {
	Container  string `json:"container"`
	Iterations int    `json:"iterations"`
	ObjectSize int64  `json:"object_size"`
	consistency.ProbeCount
	DurationMillis int64 `json:"duration_ms"`
}

// execution describes a finished run.
type execution struct {
	cfg     consistency.Config
	elapsed time.Duration
	// cleanupErr is set when the probes completed but the container could not be removed.
	cleanupErr error
}

// Run creates the container, executes all five probes, removes the container and
// stores the result. Only one run executes at a time; concurrent calls get
// ErrRunInProgress.
//
// A failure after the probes completed (container cleanup, history write) is
// returned together with the record, since the measurement itself is valid.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunRecord, error) {
	var report *consistency.Report
	ex, err := s.execute(ctx, req, func(ctx context.Context, r *consistency.Runner) error {
		var err error
		report, err = r.Run(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	rec := NewRunRecord(ex.cfg.Container, s.backend.Endpoint, s.backend.ReaderEndpoint, *report, ex.elapsed)
	s.logger.Info("Consistency run completed",
		zap.String("container", ex.cfg.Container),
		zap.Int("read_after_create", report.ReadAfterCreate),
		zap.Int("read_after_delete", report.ReadAfterDelete),
		zap.Int("read_after_overwrite", report.ReadAfterOverwrite),
		zap.Int("list_after_create", report.ListAfterCreate),
		zap.Int("list_after_delete", report.ListAfterDelete),
		zap.Int("overwrite_not_visible", report.OverwriteNotVisible),
		zap.Duration("elapsed", ex.elapsed),
	)

	if ex.cleanupErr != nil {
		return &rec, fmt.Errorf("run completed but cleanup failed: %w", ex.cleanupErr)
	}
	if s.store != nil {
		if err := s.store.Save(ctx, &rec); err != nil {
			return &rec, err
		}
	}
	return &rec, nil
}

// RunProbe is Run limited to probe p. Single-probe results are not stored.
func (s *Service) RunProbe(ctx context.Context, req RunRequest, p consistency.Probe) (*ProbeResult, error) {
	var count int
	ex, err := s.execute(ctx, req, func(ctx context.Context, r *consistency.Runner) error {
		var err error
		count, err = r.RunProbe(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	res := &ProbeResult{
		Container:      ex.cfg.Container,
		Iterations:     ex.cfg.Iterations,
		ObjectSize:     ex.cfg.ObjectSize,
		ProbeCount:     consistency.ProbeCount{Probe: p, Count: count},
		DurationMillis: ex.elapsed.Milliseconds(),
	}
	if ex.cleanupErr != nil {
		return res, fmt.Errorf("run completed but cleanup failed: %w", ex.cleanupErr)
	}
	return res, nil
}

// execute runs fn against a new runner while the container exists.
func (s *Service) execute(ctx context.Context, req RunRequest, fn func(context.Context, *consistency.Runner) error) (execution, error) {
	if !s.running.CompareAndSwap(false, true) {
		return execution{}, ErrRunInProgress
	}
	defer s.running.Store(false)

	cfg, err := s.resolve(req)
	if err != nil {
		return execution{}, err
	}
	logg := s.logger.With(zap.String("container", cfg.Container))

	runner, err := consistency.NewRunner(s.backend.Write, s.backend.Read, cfg.Container, consistency.Options{
		Iterations: cfg.Iterations,
		ObjectSize: cfg.ObjectSize,
		Logger:     s.logger,
	})
	if err != nil {
		return execution{}, err
	}

	session := s.backend.Session(cfg.Container, cfg.Location)
	if err := session.Open(ctx); err != nil {
		return execution{}, err
	}

	logg.Info("Starting consistency run",
		zap.Int("iterations", cfg.Iterations),
		zap.Int64("object_size", cfg.ObjectSize),
		zap.String("endpoint", s.backend.Endpoint),
		zap.String("reader_endpoint", s.backend.ReaderEndpoint),
	)
	start := time.Now()
	runErr := fn(ctx, runner)
	elapsed := time.Since(start)

	// Cleanup still runs when ctx was cancelled mid-run.
	closeErr := session.Close(context.WithoutCancel(ctx))
	if runErr != nil {
		if closeErr != nil {
			logg.Error("Failed to clean up container", zap.Error(closeErr))
		}
		return execution{}, runErr
	}
	return execution{cfg: cfg, elapsed: elapsed, cleanupErr: closeErr}, nil
}

// Status reports whether a run is executing and where the handles point.
func (s *Service) Status() Status {
	return Status{
		Running:        s.running.Load(),
		HistoryEnabled: s.store != nil,
		Endpoint:       s.backend.Endpoint,
		ReaderEndpoint: s.backend.ReaderEndpoint,
	}
}

// ListRuns returns the most recent stored runs.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.List(ctx, limit)
}

// GetRun returns a stored run.
func (s *Service) GetRun(ctx context.Context, id uint) (*RunRecord, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.Get(ctx, id)
}

func (s *Service) resolve(req RunRequest) (consistency.Config, error) {
	cfg := s.opts.Defaults
	if req.Container != "" {
		cfg.Container = req.Container
	}
	if req.Location != "" {
		cfg.Location = req.Location
	}
	if req.Iterations != 0 {
		cfg.Iterations = req.Iterations
	}
	if req.ObjectSize != nil {
		cfg.ObjectSize = *req.ObjectSize
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if !s.opts.Limits.AllowsIterations(cfg.Iterations) {
		return cfg, fmt.Errorf("%w: iterations %d exceed the limit of %d", consistency.ErrInvalidConfig, cfg.Iterations, s.opts.Limits.MaxIterations)
	}
	return cfg, nil
}
