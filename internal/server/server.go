package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MKhiriev/go-greeter/internal/config"
	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/internal/utils"
)

type server struct {
	handler         ConnHandler
	socketPath      string
	shutdownTimeout time.Duration
	ids             *utils.UUIDGenerator
	logger          *logger.Logger

	listener net.Listener

	// connCtx is handed to every connection; cancelling it asks handlers to
	// finish.
	connCtx    context.Context
	cancelConn context.CancelFunc

	mu      sync.Mutex
	conns   map[net.Conn]struct{}
	closing bool
	wg      sync.WaitGroup

	shutdownOnce sync.Once
}

// NewServer creates the socket and starts listening. Connections are only
// accepted once Run is called.
func NewServer(handler ConnHandler, cfg *config.FakeGreetConfig, logger *logger.Logger) (Server, error) {
	logger.Info().Str("socket", cfg.SocketPath).Msg("creating new server...")

	listener, err := listenUnix(cfg.SocketPath)
	if err != nil {
		return nil, err
	}

	connCtx, cancel := context.WithCancel(context.Background())
	return &server{
		handler:         handler,
		socketPath:      cfg.SocketPath,
		shutdownTimeout: cfg.ShutdownTimeout,
		ids:             utils.NewUUIDGenerator(),
		logger:          logger,
		listener:        listener,
		connCtx:         connCtx,
		cancelConn:      cancel,
		conns:           make(map[net.Conn]struct{}),
	}, nil
}

func (s *server) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, s.Shutdown)
	defer stop()

	s.logger.Info().Str("socket", s.socketPath).Msg("Launching session daemon")
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				// ждём, пока Shutdown дождётся обработчиков
				s.Shutdown()
				s.logger.Info().Msg("server Shutdown gracefully")
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.serve(conn)
	}
}

func (s *server) serve(conn net.Conn) {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	s.mu.Unlock()

	connID := s.ids.Generate()
	s.logger.Debug().Str("conn_id", connID).Msg("connection accepted")

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.conns, conn)
			s.mu.Unlock()
			s.wg.Done()
		}()
		s.handler.Serve(utils.WithConnID(s.connCtx, connID), conn)
	}()
}

func (s *server) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		s.closing = true
		s.mu.Unlock()

		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			// ошибки закрытия Listener
			s.logger.Err(err).Msg("close listener")
		}
		s.cancelConn()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(s.shutdownTimeout):
			s.logger.Warn().Dur("timeout", s.shutdownTimeout).Msg("connections did not finish in time, closing")
			s.closeConns()
			<-done
		}

		if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Err(err).Str("socket", s.socketPath).Msg("remove socket")
		}
	})
}

func (s *server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
	}
}

// listenUnix listens on path, replacing a stale socket left by a previous
// run. A socket that still accepts connections is left alone.
func listenUnix(path string) (net.Listener, error) {
	if path == "" {
		return nil, errEmptySocketPath
	}

	info, err := os.Lstat(path)
	switch {
	case err == nil:
		if info.Mode().Type() != fs.ModeSocket {
			return nil, fmt.Errorf("%w: %s", errNotASocket, path)
		}
		if conn, dialErr := net.DialTimeout("unix", path, time.Second); dialErr == nil {
			_ = conn.Close()
			return nil, fmt.Errorf("%w: %s", errSocketInUse, path)
		}
		if err = os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove stale socket: %w", err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("stat socket: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create socket dir: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", path, err)
	}
	return listener, nil
}
