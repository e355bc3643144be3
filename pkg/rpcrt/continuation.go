package rpcrt

import (
	"errors"
	"fmt"
)

// ErrNotFinished is returned by a handler implementation that has not produced
// its result yet. The processor suspends the call until CallContinue.
var ErrNotFinished = errors.New("call not finished")

// IsNotFinished reports whether err carries the not-finished sentinel
func IsNotFinished(err error) bool {
	return errors.Is(err, ErrNotFinished)
}

// ResumeFunc continues a suspended call. It returns the method result, or
// ErrNotFinished to stay suspended.
type ResumeFunc func(userData any) (any, error)

// Resume invokes fn and converts its result to the method's result type.
// A nil result without an error is a missing result, not a zero value.
func Resume[R any](fn ResumeFunc, userData any) (R, error) {
	var zero R

	v, err := fn(userData)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, MissingFieldError(false, fmt.Sprintf("%T", zero), "result")
	}

	r, ok := v.(R)
	if !ok {
		return zero, ResumeTypeError(fmt.Sprintf("%T", zero), v)
	}
	return r, nil
}

// AsException finds the first error in err's chain of type E
func AsException[E error](err error) (E, bool) {
	var e E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}

type outcome int

const (
	outcomeNone outcome = iota
	outcomeNotFinished
	outcomeException
	outcomeResult
)

func (o outcome) String() string {
	switch o {
	case outcomeNotFinished:
		return "not_finished"
	case outcomeException:
		return "exception"
	case outcomeResult:
		return "result"
	default:
		return "none"
	}
}

// HandlerReturn carries exactly one outcome of a handler invocation
type HandlerReturn struct {
	outcome outcome
	exc     Exception
	excName string
	result  Struct
}

// NewHandlerReturn creates an empty handler return
func NewHandlerReturn() *HandlerReturn {
	return &HandlerReturn{}
}

// SetNotFinished marks the call as suspended
func (hr *HandlerReturn) SetNotFinished() {
	hr.outcome = outcomeNotFinished
}

// SetException records a declared exception under its schema name
func (hr *HandlerReturn) SetException(exc Exception, name string) {
	hr.outcome = outcomeException
	hr.exc = exc
	hr.excName = name
}

// SetResult records the result struct
func (hr *HandlerReturn) SetResult(result Struct) {
	hr.outcome = outcomeResult
	hr.result = result
}

// NotFinished reports whether the handler suspended the call
func (hr *HandlerReturn) NotFinished() bool {
	return hr.outcome == outcomeNotFinished
}
