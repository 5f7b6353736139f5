package grpc

import (
	"context"
	"errors"
	"log"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"

	"github.com/nvalette/marketd/internal/core/tx"
)

// Server wraps a grpc.Server with lifecycle management. Request handlers
// live in handlers.go and operate on the transaction engine directly.
type Server struct {
	mu sync.RWMutex

	grpcServer *grpc.Server
	engine     *tx.Engine
	config     *ServerConfig
	listener   net.Listener
	running    bool
}

// NewServer creates a gRPC server bound to the engine.
func NewServer(cfg *ServerConfig, engine *tx.Engine) (*Server, error) {
	if cfg == nil {
		cfg = DefaultServerConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
		grpc.UnaryInterceptor(UnaryServerInterceptor()),
	}

	return &Server{
		grpcServer: grpc.NewServer(opts...),
		engine:     engine,
		config:     cfg,
	}, nil
}

// Start begins accepting connections. It blocks until the server is stopped
// or an error occurs.
func (s *Server) Start() error {
	if err := s.listen(); err != nil {
		return err
	}
	return s.grpcServer.Serve(s.listener)
}

// StartAsync starts the server in a goroutine and returns immediately.
func (s *Server) StartAsync() error {
	if err := s.listen(); err != nil {
		return err
	}
	go func() {
		if err := s.grpcServer.Serve(s.listener); err != nil {
			log.Printf("grpc: serve stopped: %v", err)
		}
	}()
	return nil
}

func (s *Server) listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server is already running")
	}
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	s.listener = listener
	s.running = true
	return nil
}

// Stop gracefully stops the server, waiting for in-flight requests.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.grpcServer.GracefulStop()
	s.running = false
}

// StopNow stops the server without waiting for in-flight requests.
func (s *Server) StopNow() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.grpcServer.Stop()
	s.running = false
}

// IsRunning reports whether the server is accepting connections.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Address returns the bound address, or empty when not running.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// GetGRPCServer exposes the underlying grpc.Server so callers can register
// additional services before Start.
func (s *Server) GetGRPCServer() *grpc.Server {
	return s.grpcServer
}

// UnaryServerInterceptor logs each call with its duration and outcome.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			log.Printf("grpc: %s failed in %s: %v", info.FullMethod, time.Since(start), err)
		}
		return resp, err
	}
}
