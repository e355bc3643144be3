package rpcrt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/okra-platform/rpcgen/pkg/rpcrt"

var (
	// ErrWouldBlock is returned by ProcessOne when no call frame is queued
	ErrWouldBlock = errors.New("no call queued")
	// ErrCallInProgress is returned when a new call starts while one is outstanding
	ErrCallInProgress = errors.New("call in progress")
	// ErrNoSuspendedCall is returned by CallContinue without a suspended call
	ErrNoSuspendedCall = errors.New("no suspended call")
)

// CallState is the lifecycle state of one in-flight call
type CallState int

const (
	CallDispatched CallState = iota + 1
	CallSuspended
	CallFinished
)

func (s CallState) String() string {
	switch s {
	case CallDispatched:
		return "dispatched"
	case CallSuspended:
		return "suspended"
	case CallFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MethodEntry binds a method name to its argument constructor and handler.
// Handle receives nil args when the call is resumed.
type MethodEntry struct {
	NewArgs func() Struct
	Handle  func(args Struct, fn ResumeFunc, userData any) (*HandlerReturn, error)
}

// StateHook observes call state transitions
type StateHook func(method string, state CallState)

// ProcessorOption configures a ProcessorSubr
type ProcessorOption func(*ProcessorSubr)

// WithStateHook installs a state transition observer
func WithStateHook(hook StateHook) ProcessorOption {
	return func(p *ProcessorSubr) {
		p.hook = hook
	}
}

// WithLogger sets the processor logger
func WithLogger(logger zerolog.Logger) ProcessorOption {
	return func(p *ProcessorSubr) {
		p.logger = logger.With().Str("component", "rpcrt.processor").Logger()
	}
}

// WithTracer records one span per call, open from dispatch until the call
// finishes or fails
func WithTracer(tracer trace.Tracer) ProcessorOption {
	return func(p *ProcessorSubr) {
		p.tracer = tracer
	}
}

// WithMeter records call counts and durations
func WithMeter(meter metric.Meter) ProcessorOption {
	return func(p *ProcessorSubr) {
		p.meter = meter
	}
}

type serverCall struct {
	name    string
	entry   MethodEntry
	tr      Transport
	proto   Protocol
	span    trace.Span
	started time.Time
}

// ProcessorSubr dispatches incoming calls to generated handlers. At most one
// call is in flight; calls are served in the order their frames are read.
type ProcessorSubr struct {
	methods   map[string]MethodEntry
	suspended *serverCall
	hook      StateHook
	logger    zerolog.Logger
	tracer    trace.Tracer
	meter     metric.Meter

	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewProcessorSubr creates a processor over a method table
func NewProcessorSubr(methods map[string]MethodEntry, opts ...ProcessorOption) *ProcessorSubr {
	p := &ProcessorSubr{
		methods: methods,
		logger:  zerolog.Nop(),
		tracer:  tracenoop.NewTracerProvider().Tracer(instrumentationName),
		meter:   metricnoop.NewMeterProvider().Meter(instrumentationName),
	}
	for _, opt := range opts {
		opt(p)
	}

	// Instrument creation only fails on invalid names; fall back to noop
	calls, err := p.meter.Int64Counter("rpc_calls", metric.WithDescription("Server calls that finished or failed"))
	if err != nil {
		calls, _ = metricnoop.Meter{}.Int64Counter("rpc_calls")
	}
	duration, err := p.meter.Float64Histogram("rpc_call_duration_ms",
		metric.WithDescription("Time from dispatch to finish, suspension included"),
		metric.WithUnit("ms"))
	if err != nil {
		duration, _ = metricnoop.Meter{}.Float64Histogram("rpc_call_duration_ms")
	}
	p.calls = calls
	p.duration = duration
	return p
}

// record ends the call span and counts the outcome
func (p *ProcessorSubr) record(call *serverCall, outcome string, err error) {
	if err != nil {
		call.span.RecordError(err)
		call.span.SetStatus(codes.Error, err.Error())
	}
	call.span.SetAttributes(attribute.String("rpc.outcome", outcome))
	call.span.End()

	attrs := metric.WithAttributes(
		attribute.String("method", call.name),
		attribute.String("outcome", outcome),
		attribute.Bool("success", err == nil),
	)
	ctx := context.Background()
	p.calls.Add(ctx, 1, attrs)
	p.duration.Record(ctx, float64(time.Since(call.started).Microseconds())/1000, attrs)
}

func (p *ProcessorSubr) setState(name string, state CallState) {
	p.logger.Debug().Str("method", name).Str("state", state.String()).Msg("call state")
	if p.hook != nil {
		p.hook(name, state)
	}
}

// ProcessOne reads one call from tr and runs its handler. finished is false
// when the handler suspended the call.
func (p *ProcessorSubr) ProcessOne(tr Transport, proto Protocol) (bool, error) {
	if p.suspended != nil {
		return false, fmt.Errorf("%w: %s is suspended", ErrCallInProgress, p.suspended.name)
	}

	frame, ok, err := tr.Receive()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrWouldBlock
	}

	dec := proto.NewDecoder(frame)
	mt, name, err := dec.ReadMessageBegin()
	if err != nil {
		return false, err
	}
	if mt != MessageCall {
		return false, &Error{Phase: PhaseDecode, Kind: KindInvalidHeader, Detail: "expected call, got " + mt.String()}
	}

	entry, ok := p.methods[name]
	if !ok {
		return false, UnknownMethodError(name)
	}

	args := entry.NewArgs()
	if err := args.RpcRead(dec); err != nil {
		return false, err
	}
	if err := dec.ReadMessageEnd(); err != nil {
		return false, err
	}

	_, span := p.tracer.Start(context.Background(), "rpc."+name,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("rpc.method", name)))
	call := &serverCall{name: name, entry: entry, tr: tr, proto: proto, span: span, started: time.Now()}
	p.setState(name, CallDispatched)
	return p.run(call, args, nil, nil)
}

// CallContinue resumes the suspended call with fn and userData
func (p *ProcessorSubr) CallContinue(fn ResumeFunc, userData any) (bool, error) {
	if p.suspended == nil {
		return false, ErrNoSuspendedCall
	}
	p.suspended.span.AddEvent("resumed")
	return p.run(p.suspended, nil, fn, userData)
}

func (p *ProcessorSubr) run(call *serverCall, args Struct, fn ResumeFunc, userData any) (bool, error) {
	hr, err := call.entry.Handle(args, fn, userData)
	if err != nil {
		p.suspended = nil
		p.record(call, "error", err)
		return false, fmt.Errorf("method %s: %w", call.name, err)
	}

	if hr.NotFinished() {
		if p.suspended != call {
			p.suspended = call
			call.span.AddEvent("suspended")
			p.setState(call.name, CallSuspended)
		}
		return false, nil
	}
	p.suspended = nil

	frame, err := encodeReply(call, hr)
	if err != nil {
		p.record(call, "error", err)
		return false, err
	}
	if err := call.tr.Send(frame); err != nil {
		p.record(call, "error", err)
		return false, err
	}

	p.record(call, hr.outcome.String(), nil)
	p.setState(call.name, CallFinished)
	return true, nil
}

func encodeReply(call *serverCall, hr *HandlerReturn) ([]byte, error) {
	enc := call.proto.NewEncoder()

	switch hr.outcome {
	case outcomeException:
		if err := enc.WriteMessageBegin(MessageException, call.name); err != nil {
			return nil, err
		}
		if err := enc.WriteString(hr.excName); err != nil {
			return nil, err
		}
		if err := hr.exc.RpcWrite(enc); err != nil {
			return nil, err
		}
	case outcomeResult:
		if err := enc.WriteMessageBegin(MessageReply, call.name); err != nil {
			return nil, err
		}
		if err := hr.result.RpcWrite(enc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("method %s: handler returned no outcome", call.name)
	}

	if err := enc.WriteMessageEnd(); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}
