// Package backend turns configuration into the pair of storage handles a
// consistency run needs.
//
// The write handle always targets the configured endpoint. The read handle
// shares it, points at a separate reader endpoint, or (transient provider only)
// gets a store of its own that never sees the writes.
package backend

import (
	"errors"
	"fmt"

	"are-we-consistent-yet/core/consistency"
	"are-we-consistent-yet/core/storage"
	"are-we-consistent-yet/core/transient"

	"go.uber.org/zap"
)

// Backend holds the write and read handles of a run.
type Backend struct {
	Write consistency.Handle
	Read  consistency.Handle
	// SeparateRead is set when the read handle does not share the write handle's store.
	SeparateRead bool
	// Endpoint and ReaderEndpoint describe where the handles point.
	Endpoint       string
	ReaderEndpoint string

	servers []*transient.Server
}

// Open builds the handles described by cfg and probe.
func Open(cfg storage.Config, probe consistency.Config, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.IsValidProvider() {
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Provider)
	}
	if probe.IsolatedReader && cfg.Provider != storage.ProviderTransient {
		return nil, fmt.Errorf("isolated reader requires the %s provider", storage.ProviderTransient)
	}

	b := &Backend{}
	writeCfg := cfg
	if cfg.Provider == storage.ProviderTransient {
		srv, err := b.startTransient()
		if err != nil {
			return nil, err
		}
		writeCfg = srv.Config(cfg)
		logger.Info("Started transient store", zap.String("endpoint", srv.Endpoint()))
	}

	write, err := newHandle(writeCfg)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.Write = write
	b.Read = write
	b.Endpoint = writeCfg.Endpoint
	b.ReaderEndpoint = writeCfg.Endpoint

	var readCfg *storage.Config
	switch {
	case probe.IsolatedReader:
		srv, err := b.startTransient()
		if err != nil {
			b.Close()
			return nil, err
		}
		c := srv.Config(cfg)
		readCfg = &c
		logger.Info("Started isolated transient reader", zap.String("endpoint", srv.Endpoint()))
	case probe.ReaderEndpoint != "":
		c := writeCfg
		// A reader endpoint without a scheme keeps the writer's transport security.
		c.UseSSL = writeCfg.Secure()
		c.Endpoint = probe.ReaderEndpoint
		readCfg = &c
	}

	if readCfg != nil {
		read, err := newHandle(*readCfg)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Read = read
		b.ReaderEndpoint = readCfg.Endpoint
		b.SeparateRead = probe.IsolatedReader
	}
	return b, nil
}

// Session returns the container lifecycle for a run in container.
func (b *Backend) Session(container, location string) *consistency.Session {
	return &consistency.Session{
		Write:        b.Write,
		Read:         b.Read,
		Container:    container,
		Location:     location,
		SeparateRead: b.SeparateRead,
	}
}

// Close stops any transient stores.
func (b *Backend) Close() error {
	var errs []error
	for _, srv := range b.servers {
		errs = append(errs, srv.Close())
	}
	b.servers = nil
	return errors.Join(errs...)
}

func (b *Backend) startTransient() (*transient.Server, error) {
	srv, err := transient.Start()
	if err != nil {
		return nil, err
	}
	b.servers = append(b.servers, srv)
	return srv, nil
}

func newHandle(cfg storage.Config) (*storage.Handle, error) {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return storage.NewHandle(client, storage.HandleOptions{
		PageSize:        cfg.PageSize,
		UnsignedPayload: cfg.Provider == storage.ProviderTransient,
	}), nil
}
