package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/docker/go-connections/sockets"
	dvolume "github.com/docker/go-plugins-helpers/volume"
	"github.com/rs/zerolog"

	"github.com/xetdata/docker-volume-xetfs/pkg/driver"
	"github.com/xetdata/docker-volume-xetfs/pkg/log"
	"github.com/xetdata/docker-volume-xetfs/pkg/metrics"
)

// Server serves the volume plugin protocol on a single listener
type Server struct {
	handler *dvolume.Handler
	logger  zerolog.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a plugin server for the given driver. Every request is
// instrumented with metrics and an access log line.
func NewServer(d dvolume.Driver) *Server {
	return &Server{
		handler: dvolume.NewHandler(driver.Instrument(d)),
		logger:  log.WithComponent("api"),
	}
}

// ListenTCP binds the plugin to a TCP address such as ":7280"
func (s *Server) ListenTCP(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.setListener(l)
	return nil
}

// ListenUnix binds the plugin to a Unix socket owned by gid. A stale socket
// file at path is replaced.
func (s *Server) ListenUnix(path string, gid int) error {
	l, err := sockets.NewUnixSocket(path, gid)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", path, err)
	}
	s.setListener(l)
	return nil
}

func (s *Server) setListener(l net.Listener) {
	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()
}

// Addr returns the bound address, or nil before a Listen call
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve handles plugin requests until Stop is called. It returns nil after
// a clean stop.
func (s *Server) Serve() error {
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()
	if l == nil {
		return errors.New("plugin server is not listening")
	}

	metrics.RegisterComponent(metrics.ComponentPlugin, true, "")
	s.logger.Info().
		Str("network", l.Addr().Network()).
		Str("addr", l.Addr().String()).
		Msg("Plugin API listening")

	err := s.handler.Serve(l)
	metrics.UpdateComponent(metrics.ComponentPlugin, false, "listener closed")
	if errors.Is(err, net.ErrClosed) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop closes the listener. In-flight requests are not waited for; the
// runtime retries calls against a restarted plugin.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
