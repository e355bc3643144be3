package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/output"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ErrStale is returned when generated files on disk differ from a fresh run
var ErrStale = errors.New("generated files are out of date")

// DiffCommand regenerates in memory and compares against the output directories
type DiffCommand struct {
	registry *codegen.Registry
	logger   zerolog.Logger
	deps     GenerateDependencies
}

func NewDiffCommand(reg *codegen.Registry, logger zerolog.Logger) *DiffCommand {
	return &DiffCommand{
		registry: reg,
		logger:   logger,
		deps: GenerateDependencies{
			ConfigLoader: &defaultConfigLoader{},
			Output:       &defaultOutput{},
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (dc *DiffCommand) WithDependencies(deps GenerateDependencies) *DiffCommand {
	dc.deps = deps
	return dc
}

// Execute prints a line diff per changed unit. It returns ErrStale when any
// unit is missing or differs.
func (dc *DiffCommand) Execute(ctx context.Context, opts GenerateOptions) error {
	p, err := resolvePlan(dc.deps.ConfigLoader, dc.registry, opts, dc.logger)
	if err != nil {
		return err
	}
	s, err := loadSchema(p.SchemaPath)
	if err != nil {
		return err
	}

	stale := 0
	for _, j := range p.Jobs {
		sink := output.NewMemorySink()
		if _, err := codegen.Run(ctx, dc.registry, j.Backend, s, j.Config, sink); err != nil {
			return fmt.Errorf("backend %s: %w", j.Backend, err)
		}

		for _, name := range sink.Names() {
			want, _ := sink.File(name)
			path := filepath.Join(j.Out, name)
			changed, err := dc.compare(path, want)
			if err != nil {
				return err
			}
			if changed {
				stale++
			}
		}
	}

	if stale > 0 {
		return fmt.Errorf("%w: %d file(s) differ", ErrStale, stale)
	}
	dc.deps.Output.Println("generated files are up to date")
	return nil
}

// compare prints the difference between the file at path and want
func (dc *DiffCommand) compare(path string, want []byte) (bool, error) {
	got, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		dc.deps.Output.Printf("%s %s\n", color.YellowString("missing"), path)
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if bytes.Equal(got, want) {
		return false, nil
	}

	if !utf8.Valid(got) || !utf8.Valid(want) {
		dc.deps.Output.Printf("%s %s (binary)\n", color.YellowString("changed"), path)
		return true, nil
	}

	dc.deps.Output.Printf("%s %s\n", color.YellowString("changed"), path)
	dc.deps.Output.Printf("%s", lineDiff(string(got), string(want)))
	return true, nil
}

// lineDiff renders a unified-style line diff from old to new
func lineDiff(old, new string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		var paint func(format string, a ...any) string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, paint = "+", color.GreenString
		case diffmatchpatch.DiffDelete:
			prefix, paint = "-", color.RedString
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(paint("%s%s", prefix, strings.TrimSuffix(line, "\n")))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
