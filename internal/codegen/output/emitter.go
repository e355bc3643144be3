package output

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	// ErrUnitState is returned when a unit is opened twice or closed more than once
	ErrUnitState = errors.New("unit state violation")
	// ErrFormat is returned when a unit's formatter rejects the generated text
	ErrFormat = errors.New("generated unit failed to format")
)

// Emitter opens units and flushes each one exactly once to its Sink
type Emitter struct {
	sink    Sink
	indent  int
	logger  zerolog.Logger
	opened  map[string]bool
	written []string
}

// NewEmitter creates an emitter. indent is the number of spaces per tab; 0 keeps tabs.
func NewEmitter(sink Sink, indent int, logger zerolog.Logger) *Emitter {
	return &Emitter{
		sink:   sink,
		indent: indent,
		logger: logger,
		opened: make(map[string]bool),
	}
}

// Open starts a text unit
func (e *Emitter) Open(name string) (*Unit, error) {
	return e.open(name, false)
}

// OpenRaw starts a binary unit that is written without normalization
func (e *Emitter) OpenRaw(name string) (*Unit, error) {
	return e.open(name, true)
}

func (e *Emitter) open(name string, raw bool) (*Unit, error) {
	if e.opened[name] {
		return nil, fmt.Errorf("%w: unit %s opened twice", ErrUnitState, name)
	}
	e.opened[name] = true
	return &Unit{name: name, raw: raw}, nil
}

// Close finalizes the unit and hands it to the sink
func (e *Emitter) Close(u *Unit) error {
	if u.closed {
		return fmt.Errorf("%w: unit %s closed twice", ErrUnitState, u.name)
	}
	u.closed = true

	data := u.buf.Bytes()
	if !u.raw {
		data = []byte(Normalize(u.buf.String(), e.indent))
		if u.formatter != nil {
			formatted, err := u.formatter(u.name, data)
			if err != nil {
				e.logger.Error().Err(err).Str("unit", u.name).Msg("failed to format generated unit")
				return fmt.Errorf("%w: %s: %w", ErrFormat, u.name, err)
			}
			data = formatted
		}
	}

	if err := e.sink.Create(u.name, data); err != nil {
		return err
	}

	e.written = append(e.written, u.name)
	e.logger.Debug().Str("unit", u.name).Int("size", len(data)).Msg("wrote generated unit")
	return nil
}

// Written returns the names of units flushed so far, in order
func (e *Emitter) Written() []string {
	return append([]string(nil), e.written...)
}
