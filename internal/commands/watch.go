package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/config"
	"github.com/okra-platform/rpcgen/internal/dev"
	"github.com/rs/zerolog"
)

// WatchDependencies for the watch command
type WatchDependencies struct {
	ConfigLoader   ConfigLoader
	ServerFactory  WatchServerFactory
	SignalNotifier SignalNotifier
	Output         Output
}

type WatchServerFactory interface {
	NewServer(projectRoot string, watch config.WatchConfig, regen dev.Regenerator) WatchServer
}

type WatchServer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type defaultWatchServerFactory struct {
	logger zerolog.Logger
}

func (f *defaultWatchServerFactory) NewServer(projectRoot string, watch config.WatchConfig, regen dev.Regenerator) WatchServer {
	return dev.NewServer(projectRoot, watch, regen, f.logger)
}

// WatchCommand regenerates every target whenever a schema file changes
type WatchCommand struct {
	registry *codegen.Registry
	logger   zerolog.Logger
	deps     WatchDependencies
}

// NewWatchCommand creates a new watch command with default dependencies
func NewWatchCommand(reg *codegen.Registry, logger zerolog.Logger) *WatchCommand {
	return &WatchCommand{
		registry: reg,
		logger:   logger,
		deps: WatchDependencies{
			ConfigLoader:   &defaultConfigLoader{},
			ServerFactory:  &defaultWatchServerFactory{logger: logger},
			SignalNotifier: &defaultSignalNotifier{},
			Output:         &defaultOutput{},
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (wc *WatchCommand) WithDependencies(deps WatchDependencies) *WatchCommand {
	wc.deps = deps
	return wc
}

// Execute watches until interrupted. Regeneration always overwrites.
func (wc *WatchCommand) Execute(ctx context.Context, opts GenerateOptions) error {
	p, err := resolvePlan(wc.deps.ConfigLoader, wc.registry, opts, wc.logger)
	if err != nil {
		return err
	}

	wc.deps.Output.Printf("👀 Watching %s\n", p.Root)
	wc.deps.Output.Printf("📝 Schema: %s\n", p.SchemaPath)
	for _, j := range p.Jobs {
		wc.deps.Output.Printf("🔧 %s -> %s\n", j.Backend, j.Out)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	wc.deps.SignalNotifier.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer wc.deps.SignalNotifier.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			wc.deps.Output.Println("\n👋 Stopping watcher...")
			cancel()
		case <-ctx.Done():
		}
	}()

	gen := &GenerateCommand{
		registry: wc.registry,
		logger:   wc.logger,
		deps: GenerateDependencies{
			ConfigLoader: wc.deps.ConfigLoader,
			Output:       wc.deps.Output,
		},
	}
	regen := dev.RegeneratorFunc(func(ctx context.Context) error {
		return gen.generate(ctx, p, true)
	})

	server := wc.deps.ServerFactory.NewServer(p.Root, p.Config.Watch, regen)
	if err := server.Start(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("watch server error: %w", err)
	}
	return nil
}
