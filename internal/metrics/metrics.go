// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ChainSafe/candidate-agreement/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	readHeaderTimeout = time.Second
	shutdownTimeout   = 3 * time.Second
)

var errShutdownTimeout = errors.New("metrics server exit timeout")

var logger log.LeveledLogger = log.NewFromGlobal(log.AddContext("pkg", "metrics"))

// Server is a metrics http server
type Server struct {
	address string
	server  *http.Server
	done    chan error
}

// NewServer is a constructor for a metrics server exposing the metrics of the
// gatherer under /metrics.
func NewServer(address string, gatherer prometheus.Gatherer) (s *Server) {
	m := http.NewServeMux()
	m.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return &Server{
		address: address,
		server: &http.Server{
			Handler:           m,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Start will start the metrics server. It returns once the server is listening.
func (s *Server) Start() (err error) {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.address, err)
	}
	s.address = listener.Addr().String()
	logger.Infof("Starting metrics server at http://%s/metrics", s.address)

	s.done = make(chan error, 1)
	go func() {
		err := s.server.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()
	return nil
}

// Address returns the address the server listens on.
func (s *Server) Address() string {
	return s.address
}

// Stop will stop the metrics server
func (s *Server) Stop() (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = s.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("shutting down metrics server: %w", err)
	}

	select {
	case err = <-s.done:
		return err
	case <-ctx.Done():
		return errShutdownTimeout
	}
}
