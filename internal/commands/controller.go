// Package commands contains the CLI commands for rpcgen
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/backends"
	"github.com/okra-platform/rpcgen/internal/config"
	"github.com/rs/zerolog"
)

type Flags struct {
	LogLevel string
}

// Controller binds CLI actions to commands. Registry and Logger default to
// the built-in backends and a no-op logger.
type Controller struct {
	Flags    *Flags
	Registry *codegen.Registry
	Logger   zerolog.Logger
}

func (c *Controller) registry() *codegen.Registry {
	if c.Registry == nil {
		c.Registry = backends.Default()
	}
	return c.Registry
}

func (c *Controller) Generate(ctx context.Context, opts GenerateOptions) error {
	return NewGenerateCommand(c.registry(), c.Logger).Execute(ctx, opts)
}

func (c *Controller) List(ctx context.Context) error {
	return NewListCommand(c.registry()).Execute(ctx)
}

func (c *Controller) Diff(ctx context.Context, opts GenerateOptions) error {
	return NewDiffCommand(c.registry(), c.Logger).Execute(ctx, opts)
}

func (c *Controller) Watch(ctx context.Context, opts GenerateOptions) error {
	return NewWatchCommand(c.registry(), c.Logger).Execute(ctx, opts)
}

func (c *Controller) Init(ctx context.Context) error {
	return NewInitCommand(c.registry()).Run(ctx)
}

// ConfigLoader finds the project config
type ConfigLoader interface {
	LoadConfig() (*config.Config, string, error)
	LoadConfigFromPath(path string) (*config.Config, error)
}

// Output is where commands print for the user
type Output interface {
	Printf(format string, a ...any)
	Println(a ...any)
}

// SignalNotifier abstracts os/signal for tests
type SignalNotifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type defaultConfigLoader struct{}

func (l *defaultConfigLoader) LoadConfig() (*config.Config, string, error) {
	return config.LoadConfig()
}

func (l *defaultConfigLoader) LoadConfigFromPath(path string) (*config.Config, error) {
	return config.LoadConfigFromPath(path)
}

type defaultOutput struct{}

func (o *defaultOutput) Printf(format string, a ...any) {
	fmt.Printf(format, a...)
}

func (o *defaultOutput) Println(a ...any) {
	fmt.Println(a...)
}

type defaultSignalNotifier struct{}

func (n *defaultSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (n *defaultSignalNotifier) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}
