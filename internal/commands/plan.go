package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/config"
	"github.com/okra-platform/rpcgen/internal/schema"
	"github.com/rs/zerolog"
)

// GenerateOptions carries command-line overrides. Zero values defer to the
// config file; Indent is nil when the flag was not given.
type GenerateOptions struct {
	ConfigPath string
	Schema     string
	Backend    string
	Out        string
	Namespace  string
	Indent     *int
	Access     string
	Overwrite  bool
	Options    []string
}

// job is one backend run with its resolved output directory
type job struct {
	Backend string
	Out     string
	Config  codegen.Config
}

// plan is everything a generation run needs
type plan struct {
	Root       string
	SchemaPath string
	Config     *config.Config
	Jobs       []job
}

// resolvePlan merges the config file with flag overrides
func resolvePlan(loader ConfigLoader, reg *codegen.Registry, opts GenerateOptions, logger zerolog.Logger) (*plan, error) {
	cfg, root, err := loadProjectConfig(loader, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.Schema != "" {
		cfg.Schema = opts.Schema
	}
	if opts.Namespace != "" {
		cfg.Namespace = opts.Namespace
	}
	if opts.Access != "" {
		cfg.Access = opts.Access
	}
	if opts.Indent != nil {
		cfg.Indent = *opts.Indent
		cfg.Tabs = *opts.Indent == 0
	}

	targets, err := selectTargets(cfg.Targets, opts.Backend, opts.Out)
	if err != nil {
		return nil, err
	}
	cfg.Targets = targets
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	overrides, err := parseOptions(opts.Options)
	if err != nil {
		return nil, err
	}

	p := &plan{
		Root:       root,
		SchemaPath: config.Resolve(root, cfg.Schema),
		Config:     cfg,
	}
	for _, t := range cfg.Targets {
		if _, err := reg.Lookup(t.Backend); err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(reg.List(), ", "))
		}

		options := make(map[string]string, len(t.Options)+len(overrides))
		for k, v := range t.Options {
			options[k] = v
		}
		for k, v := range overrides {
			options[k] = v
		}

		p.Jobs = append(p.Jobs, job{
			Backend: t.Backend,
			Out:     config.Resolve(root, t.Out),
			Config: codegen.Config{
				Namespace: cfg.Namespace,
				Indent:    cfg.IndentWidth(),
				Access:    cfg.FieldAccess(),
				Options:   options,
				Logger:    logger,
			},
		})
	}
	return p, nil
}

// loadProjectConfig loads an explicit config path, else searches upwards,
// else falls back to defaults rooted at the working directory
func loadProjectConfig(loader ConfigLoader, path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := loader.LoadConfigFromPath(path)
		if err != nil {
			return nil, "", err
		}
		root, err := filepath.Abs(filepath.Dir(path))
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve config directory: %w", err)
		}
		return cfg, root, nil
	}

	cfg, root, err := loader.LoadConfig()
	if err == nil {
		return cfg, root, nil
	}
	if !errors.Is(err, config.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to load project config: %w", err)
	}

	root, err = os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return config.Default(), root, nil
}

// selectTargets applies --backend and --out to the configured targets
func selectTargets(targets []config.Target, backend, out string) ([]config.Target, error) {
	if backend == "" {
		if out == "" {
			return targets, nil
		}
		if len(targets) != 1 {
			return nil, fmt.Errorf("%w: --out needs --backend when %d targets are configured", config.ErrInvalid, len(targets))
		}
		t := targets[0]
		t.Out = out
		return []config.Target{t}, nil
	}

	t := config.Target{Backend: backend, Out: config.DefaultOut}
	for _, configured := range targets {
		if configured.Backend == backend {
			t = configured
			break
		}
	}
	if out != "" {
		t.Out = out
	}
	return []config.Target{t}, nil
}

// parseOptions turns repeated key=value flags into a map
func parseOptions(pairs []string) (map[string]string, error) {
	options := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: option %q is not key=value", config.ErrInvalid, pair)
		}
		options[key] = value
	}
	return options, nil
}

// loadSchema reads and parses the IDL file
func loadSchema(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	s, err := schema.ParseSchema(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
	}
	return s, nil
}
