// Package backends assembles the registry of code generation backends the
// CLI ships with.
package backends

import (
	"github.com/okra-platform/rpcgen/internal/codegen"
	"github.com/okra-platform/rpcgen/internal/codegen/golang"
	"github.com/okra-platform/rpcgen/internal/codegen/javascript"
	"github.com/okra-platform/rpcgen/internal/codegen/protobuf"
	"github.com/okra-platform/rpcgen/internal/codegen/typescript"
)

// Default returns a new registry holding every built-in backend. A failed
// registration is a programming error, so it panics.
func Default() *codegen.Registry {
	reg := codegen.NewRegistry()
	for name, factory := range map[string]codegen.Factory{
		golang.Name:     golang.New,
		javascript.Name: javascript.New,
		protobuf.Name:   protobuf.New,
		typescript.Name: typescript.New,
	} {
		if err := reg.Register(name, factory); err != nil {
			panic(err)
		}
	}
	return reg
}
