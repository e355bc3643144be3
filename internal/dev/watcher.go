package dev

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ErrWatcherClosed is returned by Start when the underlying watcher shuts down
var ErrWatcherClosed = errors.New("watcher closed")

// FileWatcher watches a directory tree and reports changes to files matching
// its patterns. A pattern ending in "/" excludes a directory by name.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	exclude  []string
	onChange func(path string, op fsnotify.Op)
	logger   zerolog.Logger
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(patterns []string, exclude []string, onChange func(path string, op fsnotify.Op), logger zerolog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		patterns: patterns,
		exclude:  exclude,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// AddDirectory recursively adds a directory to the watcher
func (fw *FileWatcher) AddDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && fw.excludedDir(filepath.Base(path)) {
			return filepath.SkipDir
		}

		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		fw.logger.Debug().Str("dir", path).Msg("watching directory")
		return nil
	})
}

// Start delivers matching events until ctx is done
func (fw *FileWatcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return ErrWatcherClosed
			}

			if fw.shouldWatch(event.Name) {
				fw.onChange(event.Name, event.Op)
			}

			// New directories join the watch set
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !fw.excludedDir(info.Name()) {
					if err := fw.AddDirectory(event.Name); err != nil {
						fw.logger.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			if err != nil {
				fw.logger.Warn().Err(err).Msg("watcher error")
			}
		}
	}
}

func (fw *FileWatcher) excludedDir(name string) bool {
	for _, pattern := range fw.exclude {
		if !strings.HasSuffix(pattern, "/") {
			continue
		}
		if matched, _ := filepath.Match(strings.TrimSuffix(pattern, "/"), name); matched {
			return true
		}
	}
	return false
}

// shouldWatch checks if a file should trigger a change event
func (fw *FileWatcher) shouldWatch(path string) bool {
	base := filepath.Base(path)

	for _, pattern := range fw.exclude {
		if strings.HasSuffix(pattern, "/") {
			dir := "/" + pattern
			if strings.Contains(filepath.ToSlash(path), dir) {
				return false
			}
			continue
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return false
		}
	}

	for _, pattern := range fw.patterns {
		// "**/" matches any depth, so only the base name is compared
		pattern = strings.TrimPrefix(pattern, "**/")
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
