package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/trycartridge/internal/discovery"
	"github.com/muurk/trycartridge/internal/logging"
	"github.com/muurk/trycartridge/internal/version"
)

const (
	shutdownTimeout = 5 * time.Second
)

// Config holds the server configuration
type Config struct {
	Addr          string // Listen address (e.g., ":8081")
	AdvertiseMDNS bool   // Announce the console over mDNS
	InstanceName  string // mDNS instance name (default: "trycartridge")
}

// Server serves the demo banner page
type Server struct {
	config  Config
	handler http.Handler

	mu   sync.Mutex
	srv  *http.Server
	ln   net.Listener
	mdns *zeroconf.Server
}

// NewServer creates a server for handler
func NewServer(config Config, handler http.Handler) *Server {
	if config.InstanceName == "" {
		config.InstanceName = "trycartridge"
	}
	return &Server{config: config, handler: handler}
}

// Start listens and serves in the background
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logging.Info("Console listening", zap.String("addr", ln.Addr().String()))

	go func(srv *http.Server) {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Console server error", zap.Error(err))
		}
	}(s.srv)

	if s.config.AdvertiseMDNS {
		if err := s.advertise(); err != nil {
			// Discovery is optional; the console stays up
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		}
	}

	return nil
}

// Addr returns the bound listen address, or "" before Start
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Run starts the server and blocks until ctx is done or SIGINT/SIGTERM
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		logging.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops the mDNS announcement and the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mdns != nil {
		s.mdns.Shutdown()
		s.mdns = nil
	}
	if s.srv == nil {
		return nil
	}

	err := s.srv.Shutdown(ctx)
	s.srv = nil
	s.ln = nil
	logging.Info("Console stopped")
	return err
}

// advertise registers the console with mDNS. Caller holds s.mu.
func (s *Server) advertise() error {
	tcpAddr, ok := s.ln.Addr().(*net.TCPAddr)
	if !ok {
		return fmt.Errorf("unexpected listener address %s", s.ln.Addr())
	}

	txt := discovery.TXT("/", version.Version)
	mdns, err := zeroconf.Register(s.config.InstanceName, discovery.ServiceType, discovery.ServiceDomain, tcpAddr.Port, txt, nil)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}
	s.mdns = mdns

	logging.Info("Advertising console over mDNS",
		zap.String("instance", s.config.InstanceName),
		zap.String("service", discovery.ServiceType),
		zap.Int("port", tcpAddr.Port),
	)
	return nil
}
