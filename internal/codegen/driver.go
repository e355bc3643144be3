package codegen

import (
	"context"
	"fmt"

	"github.com/okra-platform/rpcgen/internal/codegen/output"
	"github.com/okra-platform/rpcgen/internal/schema"
)

// Run generates every unit of one backend into sink and returns the names of
// the written units. Phases run types, client, processor; the first error
// aborts the run.
func Run(ctx context.Context, reg *Registry, backend string, s *schema.Schema, cfg Config, sink output.Sink) ([]string, error) {
	if !cfg.Access.Valid() {
		return nil, Invariantf("unknown field access strategy %d", cfg.Access)
	}

	logger := cfg.Logger.With().Str("component", "codegen").Str("backend", backend).Logger()
	cfg.Logger = logger

	gen, err := reg.New(backend, s, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("access", cfg.Access.String()).Int("indent", cfg.Indent).Msg("backend selected")

	e := output.NewEmitter(sink, cfg.Indent, logger)

	phases := []struct {
		name string
		run  func(*output.Emitter) error
	}{
		{"types", gen.GenTypes},
		{"client", gen.GenClient},
		{"processor", gen.GenProcessor},
	}

	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return e.Written(), err
		}
		if err := phase.run(e); err != nil {
			return e.Written(), fmt.Errorf("%s: failed to generate %s: %w", gen.Language(), phase.name, err)
		}
	}

	logger.Debug().Strs("units", e.Written()).Msg("generation complete")
	return e.Written(), nil
}
