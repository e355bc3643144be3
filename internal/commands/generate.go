package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/output"
	"github.com/rs/zerolog"
)

// GenerateDependencies for the generate command
type GenerateDependencies struct {
	ConfigLoader ConfigLoader
	Output       Output
}

// GenerateCommand runs every configured backend and writes its units to disk
type GenerateCommand struct {
	registry *codegen.Registry
	logger   zerolog.Logger
	deps     GenerateDependencies
}

// NewGenerateCommand creates a generate command with default dependencies
func NewGenerateCommand(reg *codegen.Registry, logger zerolog.Logger) *GenerateCommand {
	return &GenerateCommand{
		registry: reg,
		logger:   logger,
		deps: GenerateDependencies{
			ConfigLoader: &defaultConfigLoader{},
			Output:       &defaultOutput{},
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (gc *GenerateCommand) WithDependencies(deps GenerateDependencies) *GenerateCommand {
	gc.deps = deps
	return gc
}

// Execute resolves the plan and generates every target
func (gc *GenerateCommand) Execute(ctx context.Context, opts GenerateOptions) error {
	p, err := resolvePlan(gc.deps.ConfigLoader, gc.registry, opts, gc.logger)
	if err != nil {
		return err
	}
	return gc.generate(ctx, p, opts.Overwrite)
}

func (gc *GenerateCommand) generate(ctx context.Context, p *plan, overwrite bool) error {
	s, err := loadSchema(p.SchemaPath)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	for _, j := range p.Jobs {
		sink := output.NewDirSink(j.Out, overwrite)
		written, err := codegen.Run(ctx, gc.registry, j.Backend, s, j.Config, sink)
		if err != nil {
			return fmt.Errorf("backend %s: %w", j.Backend, err)
		}

		gc.deps.Output.Printf("%s %s -> %s\n", green("generated"), j.Backend, j.Out)
		for _, name := range written {
			gc.deps.Output.Printf("  %s\n", name)
		}
		gc.logger.Info().Str("backend", j.Backend).Str("out", j.Out).Int("units", len(written)).Msg("backend finished")
	}
	return nil
}
