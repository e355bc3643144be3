package dev

import (
	"context"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/okra-platform/rpcgen/internal/config"
	"github.com/rs/zerolog"
)

// Regenerator reruns code generation for the project
type Regenerator interface {
	Regenerate(ctx context.Context) error
}

// RegeneratorFunc adapts a function to Regenerator
type RegeneratorFunc func(ctx context.Context) error

// Regenerate calls f
func (f RegeneratorFunc) Regenerate(ctx context.Context) error {
	return f(ctx)
}

// Server regenerates code whenever a watched schema file changes
type Server struct {
	projectRoot string
	watch       config.WatchConfig
	regen       Regenerator
	watcher     *FileWatcher
	logger      zerolog.Logger

	ctx context.Context

	// Mutex to prevent concurrent generation runs
	buildMutex sync.Mutex
	building   bool
	runs       int
}

// NewServer creates a watch server over projectRoot
func NewServer(projectRoot string, watch config.WatchConfig, regen Regenerator, logger zerolog.Logger) *Server {
	return &Server{
		projectRoot: projectRoot,
		watch:       watch,
		regen:       regen,
		logger:      logger.With().Str("component", "dev-server").Logger(),
		ctx:         context.Background(),
	}
}

// Start generates once, then regenerates on every matching change until ctx is done
func (s *Server) Start(ctx context.Context) error {
	s.ctx = ctx

	if err := s.rebuild(ctx, "initial"); err != nil {
		return fmt.Errorf("initial generation failed: %w", err)
	}

	watcher, err := NewFileWatcher(s.watch.Patterns, s.watch.Exclude, s.handleFileChange, s.logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	s.buildMutex.Lock()
	s.watcher = watcher
	s.buildMutex.Unlock()
	defer watcher.Close()

	if err := watcher.AddDirectory(s.projectRoot); err != nil {
		return fmt.Errorf("failed to watch project directory: %w", err)
	}

	s.logger.Info().Str("root", s.projectRoot).Strs("patterns", s.watch.Patterns).Msg("watching for schema changes")
	return watcher.Start(ctx)
}

// Stop closes the file watcher; Start then returns
func (s *Server) Stop(ctx context.Context) error {
	s.buildMutex.Lock()
	watcher := s.watcher
	s.buildMutex.Unlock()

	if watcher == nil {
		return nil
	}
	return watcher.Close()
}

// Runs returns the number of completed generation runs
func (s *Server) Runs() int {
	s.buildMutex.Lock()
	defer s.buildMutex.Unlock()
	return s.runs
}

func (s *Server) handleFileChange(path string, op fsnotify.Op) {
	// Chmod-only events do not change content
	if op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	s.logger.Info().Str("path", path).Str("op", op.String()).Msg("schema changed")
	if err := s.rebuild(s.ctx, path); err != nil {
		// A broken schema is expected while editing; keep watching
		s.logger.Error().Err(err).Msg("generation failed")
	}
}

// rebuild runs one generation unless another is in flight
func (s *Server) rebuild(ctx context.Context, reason string) error {
	s.buildMutex.Lock()
	if s.building {
		s.buildMutex.Unlock()
		s.logger.Debug().Str("reason", reason).Msg("generation in progress, skipping")
		return nil
	}
	s.building = true
	s.buildMutex.Unlock()

	defer func() {
		s.buildMutex.Lock()
		s.building = false
		s.buildMutex.Unlock()
	}()

	if err := s.regen.Regenerate(ctx); err != nil {
		return err
	}

	s.buildMutex.Lock()
	s.runs++
	s.buildMutex.Unlock()
	s.logger.Info().Str("reason", reason).Msg("generated")
	return nil
}
