package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/rpcgen/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

// generateFlags are shared by generate, diff and watch
func generateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to rpcgen.{json,yaml,toml}; searched upwards when unset"},
		&cli.StringFlag{Name: "schema", Aliases: []string{"s"}, Usage: "IDL file to compile"},
		&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Usage: "generate only this backend"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory"},
		&cli.StringFlag{Name: "namespace", Usage: "namespace of the generated code"},
		&cli.IntFlag{Name: "indent", Usage: "spaces per indentation level; 0 keeps tabs"},
		&cli.StringFlag{Name: "access", Usage: "field access strategy (underscore, capital, direct)"},
		&cli.StringSliceFlag{Name: "opt", Usage: "backend option as key=value; repeatable"},
	}
}

func generateOptions(c *cli.Command) commands.GenerateOptions {
	opts := commands.GenerateOptions{
		ConfigPath: c.String("config"),
		Schema:     c.String("schema"),
		Backend:    c.String("backend"),
		Out:        c.String("out"),
		Namespace:  c.String("namespace"),
		Access:     c.String("access"),
		Overwrite:  c.Bool("overwrite"),
		Options:    c.StringSlice("opt"),
	}
	if c.IsSet("indent") {
		indent := int(c.Int("indent"))
		opts.Indent = &indent
	}
	return opts
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:    "rpcgen",
		Usage:   "Compile an RPC IDL into typed codecs, clients and processors",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("RPCGEN_LOG_LEVEL"),
				Value:   "warn",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			ctrl.Flags.LogLevel = level.String()
			ctrl.Logger = log.Logger

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate code for every configured backend",
				Flags: append(generateFlags(), &cli.BoolFlag{Name: "overwrite", Aliases: []string{"f"}, Usage: "replace existing files"}),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Generate(ctx, generateOptions(c))
				},
			},
			{
				Name:  "diff",
				Usage: "Show how generated files on disk differ from a fresh run",
				Flags: generateFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Diff(ctx, generateOptions(c))
				},
			},
			{
				Name:  "watch",
				Usage: "Regenerate whenever a schema file changes",
				Flags: generateFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx, generateOptions(c))
				},
			},
			{
				Name:  "list",
				Usage: "List available backends",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.List(ctx)
				},
			},
			{
				Name:  "init",
				Usage: "Create an rpcgen config and a starter schema",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx)
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run rpcgen")
	}
}
