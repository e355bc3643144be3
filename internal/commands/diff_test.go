package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/okra-platform/rpcgen/internal/codegen/backends"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffCommand_Execute(t *testing.T) {
	// Test: Diff reports missing files, then nothing after generate, then an edited line
	color.NoColor = true
	root, cfg := newProject(t)
	loader := new(mockConfigLoader)
	loader.On("LoadConfig").Return(cfg, root, nil)

	opts := GenerateOptions{Backend: "go"}
	out := &mockOutput{}
	diff := NewDiffCommand(backends.Default(), zerolog.Nop()).WithDependencies(GenerateDependencies{
		ConfigLoader: loader,
		Output:       out,
	})

	err := diff.Execute(context.Background(), opts)
	assert.ErrorIs(t, err, ErrStale)
	assert.Contains(t, out.String(), "missing "+filepath.Join(root, "gen", "go", "types.go"))

	require.NoError(t, newGenerateCommand(loader, &mockOutput{}).Execute(context.Background(), opts))

	out.messages = nil
	require.NoError(t, diff.Execute(context.Background(), opts))
	assert.Contains(t, out.String(), "up to date")

	path := filepath.Join(root, "gen", "go", "client.go")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	edited := strings.Replace(string(data), "package calc", "package calc2", 1)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	out.messages = nil
	err = diff.Execute(context.Background(), opts)
	assert.ErrorIs(t, err, ErrStale)
	assert.Contains(t, err.Error(), "1 file(s) differ")
	assert.Contains(t, out.String(), "changed "+path)
	assert.Contains(t, out.String(), "-package calc2\n")
	assert.Contains(t, out.String(), "+package calc\n")
}

func TestDiffCommand_BinaryUnit(t *testing.T) {
	// Test: Descriptor sets are compared by bytes without a line diff
	color.NoColor = true
	root, cfg := newProject(t)
	loader := new(mockConfigLoader)
	loader.On("LoadConfig").Return(cfg, root, nil)

	opts := GenerateOptions{Backend: "proto"}
	require.NoError(t, newGenerateCommand(loader, &mockOutput{}).Execute(context.Background(), opts))

	path := filepath.Join(root, "gen", "service.pb.desc")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0o644))

	out := &mockOutput{}
	err := NewDiffCommand(backends.Default(), zerolog.Nop()).WithDependencies(GenerateDependencies{
		ConfigLoader: loader,
		Output:       out,
	}).Execute(context.Background(), opts)
	assert.ErrorIs(t, err, ErrStale)
	assert.Contains(t, out.String(), "changed "+path+" (binary)")
}

func TestLineDiff(t *testing.T) {
	// Test: Only inserted and deleted lines are rendered
	color.NoColor = true
	got := lineDiff("a\nb\nc\n", "a\nB\nc\nd\n")
	assert.Equal(t, "-b\n+B\n+d\n", got)
}
