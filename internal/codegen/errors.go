package codegen

import (
	"errors"
	"fmt"

	"github.com/okra-platform/rpcgen/internal/codegen/output"
)

var (
	// ErrInvariant marks programming-time violations: duplicate kind or backend
	// registration, duplicate accessor names, unknown access strategies.
	// Generation aborts and the error is never recovered.
	ErrInvariant = errors.New("generator invariant violated")

	// ErrAccessorConflict is returned when two generated member names collide within a struct
	ErrAccessorConflict = fmt.Errorf("%w: accessor conflict", ErrInvariant)

	// ErrUnknownBackend is returned by Registry.Lookup for unregistered names
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrNamespace is returned when a backend rejects the configured namespace
	ErrNamespace = errors.New("invalid namespace")

	// ErrOutput marks generation I/O failures
	ErrOutput = output.ErrOutput
)

// Invariantf builds an ErrInvariant error with a formatted detail
func Invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
