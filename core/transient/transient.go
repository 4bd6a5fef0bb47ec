// Package transient runs an in-memory S3 endpoint inside the process.
//
// It backs the "transient" storage provider: a throwaway store for trying the probes
// without real credentials. Two transient servers never share state, which makes a
// pair of them a model of a backend whose replicas never reconcile.
package transient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"are-we-consistent-yet/core/storage"

	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
)

const (
	accessKey = "transient"
	secretKey = "transient"
)

// Server is an in-process S3 endpoint backed by memory.
type Server struct {
	listener net.Listener
	srv      *http.Server
	done     chan error
}

// Start listens on a loopback port and serves a fresh, empty store.
func Start() (*Server, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to listen for transient store: %w", err)
	}

	faker := gofakes3.New(s3mem.New())
	s := &Server{
		listener: ln,
		srv: &http.Server{
			Handler:           faker.Server(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		done: make(chan error, 1),
	}
	go func() {
		s.done <- s.srv.Serve(ln)
	}()
	return s, nil
}

// Endpoint returns the host:port the server listens on.
func (s *Server) Endpoint() string {
	return s.listener.Addr().String()
}

// Config returns a storage configuration pointing at this server. Timeouts and
// page size are kept from base.
func (s *Server) Config(base storage.Config) storage.Config {
	base.Provider = storage.ProviderTransient
	base.Endpoint = s.Endpoint()
	base.AccessKey = accessKey
	base.SecretKey = secretKey
	base.UseSSL = false
	base.Region = "us-east-1"
	return base
}

// Close stops the server and discards its content.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		return err
	}
	if err := <-s.done; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
