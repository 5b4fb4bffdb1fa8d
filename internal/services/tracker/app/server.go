package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/robertpope/devtrackr/internal/platform/config"
	"github.com/robertpope/devtrackr/internal/platform/timeouts"
	"github.com/robertpope/devtrackr/internal/services/tracker/api/rest"
	"github.com/robertpope/devtrackr/internal/services/tracker/auth"
	"github.com/robertpope/devtrackr/internal/services/tracker/storage/sqlite"
)

// Config defines the inputs for the tracker process.
type Config struct {
	Addr       string `env:"DEVTRACKR_ADDR" envDefault:"localhost:8000"`
	DBPath     string `env:"DEVTRACKR_DB_PATH" envDefault:"devtrackr.db"`
	CORSOrigin string `env:"DEVTRACKR_CORS_ORIGIN" envDefault:"http://localhost:5173"`
}

// LoadConfigFromEnv reads the tracker configuration from the environment.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse tracker env: %w", err)
	}
	return cfg, nil
}

// Server hosts the tracker HTTP API.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *sqlite.Store
}

// New creates a configured tracker server listening on cfg.Addr.
func New(cfg Config) (*Server, error) {
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}
	store, err := openStore(cfg.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	tokenConfig := auth.LoadTokenConfigFromEnv()
	if tokenConfig.Secret == auth.InsecureDevSecret {
		log.Printf("DEVTRACKR_SECRET_KEY is unset; using the development secret")
	}
	admins := auth.LoadAllowlistFromEnv()

	tokens := auth.NewTokenIssuer(tokenConfig.Secret, tokenConfig.TTL(), nil)
	authService := auth.NewService(store, tokens, nil)
	handler := rest.NewHandler(authService, store, admins, nil)

	var root http.Handler = handler.Routes()
	root = rest.WithTracing(root)
	root = rest.WithCORS(cfg.CORSOrigin, root)

	httpServer := &http.Server{
		Handler:           root,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		listener:   listener,
		httpServer: httpServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the tracker server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a tracker server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	trackerServer, err := New(cfg)
	if err != nil {
		return err
	}
	return trackerServer.Serve(ctx)
}

// Serve starts the tracker server and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.closeStore()

	log.Printf("tracker server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

func (s *Server) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close tracker store: %v", err)
	}
}

func openStore(path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tracker sqlite store: %w", err)
	}
	return store, nil
}
