package commands

import (
	"context"

	"github.com/fatih/color"
	"github.com/okra-platform/rpcgen/internal/codegen"
)

// ListCommand prints the registered backends
type ListCommand struct {
	registry *codegen.Registry
	output   Output
}

func NewListCommand(reg *codegen.Registry) *ListCommand {
	return &ListCommand{registry: reg, output: &defaultOutput{}}
}

// Execute prints one backend name per line, sorted
func (lc *ListCommand) Execute(ctx context.Context) error {
	bold := color.New(color.Bold).SprintFunc()
	for _, name := range lc.registry.List() {
		lc.output.Println(bold(name))
	}
	return nil
}
