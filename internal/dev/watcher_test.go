package dev

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_shouldWatch(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		exclude  []string
		path     string
		want     bool
	}{
		{
			name:     "match schema file",
			patterns: []string{"*.graphql"},
			path:     "/project/service.graphql",
			want:     true,
		},
		{
			name:     "match nested schema with ** pattern",
			patterns: []string{"**/*.graphql"},
			path:     "/project/idl/calc/calc.graphql",
			want:     true,
		},
		{
			name:     "exclude by file pattern",
			patterns: []string{"*.graphql"},
			exclude:  []string{"draft_*.graphql"},
			path:     "/project/draft_calc.graphql",
			want:     false,
		},
		{
			name:     "exclude by directory",
			patterns: []string{"**/*.graphql"},
			exclude:  []string{".git/"},
			path:     "/project/.git/refs/calc.graphql",
			want:     false,
		},
		{
			name:     "no match",
			patterns: []string{"*.graphql"},
			path:     "/project/readme.md",
			want:     false,
		},
		{
			name:     "directory exclude does not match file names",
			patterns: []string{"*.graphql"},
			exclude:  []string{"gen/"},
			path:     "/project/gen.graphql",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Test: patterns and excludes decide which paths report changes
			fw := &FileWatcher{
				patterns: tt.patterns,
				exclude:  tt.exclude,
			}

			assert.Equal(t, tt.want, fw.shouldWatch(tt.path))
		})
	}
}

func TestFileWatcher_Integration(t *testing.T) {
	// Test: writes to matching files are reported, excluded files and directories are not
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	idlDir := filepath.Join(tmpDir, "idl")
	require.NoError(t, os.MkdirAll(idlDir, 0755))

	var seen []string
	var mu sync.Mutex
	onChange := func(path string, op fsnotify.Op) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, filepath.Base(path))
	}

	fw, err := NewFileWatcher(
		[]string{"*.graphql", "**/*.graphql"},
		[]string{"draft_*.graphql", "gen/"},
		onChange,
		zerolog.Nop(),
	)
	require.NoError(t, err)
	defer fw.Close()
	require.NoError(t, fw.AddDirectory(tmpDir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = fw.Start(ctx)
	}()
	time.Sleep(100 * time.Millisecond)

	write := func(path string) {
		require.NoError(t, os.WriteFile(path, []byte("enum Op { ADD }"), 0644))
	}
	write(filepath.Join(tmpDir, "service.graphql"))
	write(filepath.Join(tmpDir, "draft_service.graphql"))
	write(filepath.Join(idlDir, "calc.graphql"))
	write(filepath.Join(tmpDir, "notes.md"))

	genDir := filepath.Join(tmpDir, "gen")
	require.NoError(t, os.MkdirAll(genDir, 0755))
	time.Sleep(50 * time.Millisecond)
	write(filepath.Join(genDir, "generated.graphql"))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return contains(seen, "service.graphql") && contains(seen, "calc.graphql")
	}, 2*time.Second, 20*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.NotContains(t, seen, "draft_service.graphql")
	assert.NotContains(t, seen, "notes.md")
	assert.NotContains(t, seen, "generated.graphql")
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func TestFileWatcher_StartStopsWithContext(t *testing.T) {
	// Test: Start returns the context error once the context is cancelled
	fw, err := NewFileWatcher([]string{"*.graphql"}, nil, func(string, fsnotify.Op) {}, zerolog.Nop())
	require.NoError(t, err)
	defer fw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, fw.Start(ctx), context.Canceled)
}

func TestFileWatcher_Close(t *testing.T) {
	// Test: Closing twice is safe and a closed watcher stops Start
	fw, err := NewFileWatcher([]string{"*.graphql"}, nil, func(string, fsnotify.Op) {}, zerolog.Nop())
	require.NoError(t, err)

	assert.NoError(t, fw.Close())
	assert.NoError(t, fw.Close())
	assert.ErrorIs(t, fw.Start(context.Background()), ErrWatcherClosed)
}
