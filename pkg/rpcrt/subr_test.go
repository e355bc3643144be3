package rpcrt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// box is a minimal struct with one required i32 at fid 1
type box struct {
	v *int32
}

func (b *box) RpcRead(dec Decoder) error {
	for {
		fid, dt, err := dec.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fid == FIDStop {
			break
		}
		if fid != 1 {
			return UnknownFieldError("box", fid, dt)
		}
		v, err := dec.ReadI32()
		if err != nil {
			return err
		}
		b.v = &v
	}
	if b.v == nil {
		return MissingFieldError(true, "box", "v")
	}
	return nil
}

func (b *box) RpcWrite(enc Encoder) error {
	if b.v == nil {
		return MissingFieldError(false, "box", "v")
	}
	if err := enc.WriteFieldBegin(1, DataTypeI32); err != nil {
		return err
	}
	if err := enc.WriteI32(*b.v); err != nil {
		return err
	}
	return enc.WriteFieldStop()
}

type oops struct {
	box
}

func (o *oops) Error() string { return "oops" }

func ptr(v int32) *int32 { return &v }

// echoEntry doubles its argument, suspending first when suspend is set
func echoEntry(suspend bool) MethodEntry {
	return MethodEntry{
		NewArgs: func() Struct { return &box{} },
		Handle: func(args Struct, fn ResumeFunc, userData any) (*HandlerReturn, error) {
			var r int32
			var err error
			if args != nil {
				if suspend {
					err = ErrNotFinished
				} else {
					r = *args.(*box).v * 2
				}
			} else {
				r, err = Resume[int32](fn, userData)
			}

			hr := NewHandlerReturn()
			if err != nil {
				if IsNotFinished(err) {
					hr.SetNotFinished()
					return hr, nil
				}
				if e, ok := AsException[*oops](err); ok {
					hr.SetException(e, "oops")
					return hr, nil
				}
				return nil, err
			}
			hr.SetResult(&box{v: &r})
			return hr, nil
		},
	}
}

func excHandler(dec Decoder, name string) (Exception, error) {
	if name != "oops" {
		return nil, UnknownExceptionError(name)
	}
	e := &oops{}
	if err := e.RpcRead(dec); err != nil {
		return nil, err
	}
	return e, nil
}

func TestSubr_CallAndReply(t *testing.T) {
	// Test: a call is dispatched, finished and delivered once
	clientEnd, serverEnd := NewPipe()
	proto := NewBinaryProtocol()

	var states []CallState
	proc := NewProcessorSubr(map[string]MethodEntry{"echo": echoEntry(false)},
		WithStateHook(func(method string, state CallState) { states = append(states, state) }))
	client := NewClientSubr(clientEnd, proto)

	result := &box{}
	deliveries := 0
	var callErr error
	require.NoError(t, client.Call("echo", &box{v: ptr(5)}, result, excHandler, func(err error) {
		deliveries++
		callErr = err
	}))

	done, err := client.CallContinue()
	require.NoError(t, err)
	assert.False(t, done)

	finished, err := proc.ProcessOne(serverEnd, proto)
	require.NoError(t, err)
	assert.True(t, finished)
	assert.Equal(t, []CallState{CallDispatched, CallFinished}, states)

	done, err = client.CallContinue()
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 1, deliveries)
	assert.NoError(t, callErr)
	assert.Equal(t, int32(10), *result.v)

	_, err = client.CallContinue()
	assert.ErrorIs(t, err, ErrNoPendingCall)
}

func TestSubr_SuspendResume(t *testing.T) {
	// Test: DISPATCHED -> SUSPENDED -> FINISHED with a single reply
	clientEnd, serverEnd := NewPipe()
	proto := NewBinaryProtocol()

	var states []CallState
	proc := NewProcessorSubr(map[string]MethodEntry{"echo": echoEntry(true)},
		WithStateHook(func(method string, state CallState) { states = append(states, state) }))
	client := NewClientSubr(clientEnd, proto)

	result := &box{}
	deliveries := 0
	require.NoError(t, client.Call("echo", &box{v: ptr(1)}, result, excHandler, func(err error) {
		deliveries++
	}))

	finished, err := proc.ProcessOne(serverEnd, proto)
	require.NoError(t, err)
	assert.False(t, finished)
	assert.Equal(t, 0, clientEnd.Pending())

	// A new call cannot start while one is suspended
	_, err = proc.ProcessOne(serverEnd, proto)
	assert.ErrorIs(t, err, ErrCallInProgress)

	// Still not ready: stays suspended without a second transition
	finished, err = proc.CallContinue(func(any) (any, error) { return nil, ErrNotFinished }, nil)
	require.NoError(t, err)
	assert.False(t, finished)

	finished, err = proc.CallContinue(func(ud any) (any, error) { return ud, nil }, int32(99))
	require.NoError(t, err)
	assert.True(t, finished)

	assert.Equal(t, []CallState{CallDispatched, CallSuspended, CallFinished}, states)

	done, err := client.CallContinue()
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 1, deliveries)
	assert.Equal(t, int32(99), *result.v)

	_, err = proc.CallContinue(func(any) (any, error) { return int32(1), nil }, nil)
	assert.ErrorIs(t, err, ErrNoSuspendedCall)
}

func TestSubr_ResumeTypeMismatch(t *testing.T) {
	// Test: a resume function returning the wrong type fails the call
	_, serverEnd := NewPipe()
	proto := NewBinaryProtocol()
	proc := NewProcessorSubr(map[string]MethodEntry{"echo": echoEntry(true)})

	enc := proto.NewEncoder()
	require.NoError(t, enc.WriteMessageBegin(MessageCall, "echo"))
	require.NoError(t, (&box{v: ptr(1)}).RpcWrite(enc))
	require.NoError(t, serverEnd.in.push(enc.Bytes()))

	_, err := proc.ProcessOne(serverEnd, proto)
	require.NoError(t, err)

	_, err = proc.CallContinue(func(any) (any, error) { return "nope", nil }, nil)
	assert.ErrorIs(t, err, ErrUnknownMessage)

	_, err = proc.CallContinue(func(any) (any, error) { return int32(1), nil }, nil)
	assert.ErrorIs(t, err, ErrNoSuspendedCall)
}

func TestSubr_ResumeNilResult(t *testing.T) {
	// Test: a resume function returning neither a result nor an error fails the call without a reply
	clientEnd, serverEnd := NewPipe()
	proto := NewBinaryProtocol()
	proc := NewProcessorSubr(map[string]MethodEntry{"echo": echoEntry(true)})

	queueCall(t, serverEnd, proto, 1)
	_, err := proc.ProcessOne(serverEnd, proto)
	require.NoError(t, err)

	finished, err := proc.CallContinue(func(any) (any, error) { return nil, nil }, nil)
	assert.False(t, finished)
	assert.ErrorIs(t, err, &Error{Phase: PhaseEncode, Kind: KindMissingField})

	_, ok, err := clientEnd.Receive()
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = proc.CallContinue(func(any) (any, error) { return int32(1), nil }, nil)
	assert.ErrorIs(t, err, ErrNoSuspendedCall)
}

func TestResume_Conversions(t *testing.T) {
	// Test: Resume passes results and errors through and never invents a zero value
	r, err := Resume[int32](func(ud any) (any, error) { return ud, nil }, int32(7))
	require.NoError(t, err)
	assert.Equal(t, int32(7), r)

	_, err = Resume[int32](func(any) (any, error) { return nil, nil }, nil)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindMissingField, rerr.Kind)
	assert.Equal(t, "result", rerr.Field)

	_, err = Resume[int32](func(any) (any, error) { return nil, ErrNotFinished }, nil)
	assert.True(t, IsNotFinished(err))
}

func TestSubr_Exception(t *testing.T) {
	// Test: declared exceptions reach the client as errors of the declared type
	clientEnd, serverEnd := NewPipe()
	proto := NewBinaryProtocol()
	proc := NewProcessorSubr(map[string]MethodEntry{"echo": echoEntry(true)})
	client := NewClientSubr(clientEnd, proto)

	var callErr error
	require.NoError(t, client.Call("echo", &box{v: ptr(1)}, &box{}, excHandler, func(err error) { callErr = err }))

	_, err := proc.ProcessOne(serverEnd, proto)
	require.NoError(t, err)
	finished, err := proc.CallContinue(func(any) (any, error) { return nil, &oops{box{v: ptr(3)}} }, nil)
	require.NoError(t, err)
	assert.True(t, finished)

	_, err = client.CallContinue()
	require.NoError(t, err)

	var e *oops
	require.True(t, errors.As(callErr, &e))
	assert.Equal(t, int32(3), *e.v)
}

func TestSubr_UndeclaredErrorPropagates(t *testing.T) {
	// Test: errors outside the declared set are returned to the processor's caller
	_, serverEnd := NewPipe()
	proto := NewBinaryProtocol()
	proc := NewProcessorSubr(map[string]MethodEntry{"echo": echoEntry(true)})

	enc := proto.NewEncoder()
	require.NoError(t, enc.WriteMessageBegin(MessageCall, "echo"))
	require.NoError(t, (&box{v: ptr(1)}).RpcWrite(enc))
	require.NoError(t, serverEnd.in.push(enc.Bytes()))

	_, err := proc.ProcessOne(serverEnd, proto)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = proc.CallContinue(func(any) (any, error) { return nil, boom }, nil)
	assert.ErrorIs(t, err, boom)
}

func TestSubr_DispatchErrors(t *testing.T) {
	// Test: empty queue, unknown method and invalid args are reported
	clientEnd, serverEnd := NewPipe()
	proto := NewBinaryProtocol()
	proc := NewProcessorSubr(map[string]MethodEntry{"echo": echoEntry(false)})
	client := NewClientSubr(clientEnd, proto)

	_, err := proc.ProcessOne(serverEnd, proto)
	assert.ErrorIs(t, err, ErrWouldBlock)

	require.NoError(t, client.Call("missing", &box{v: ptr(1)}, &box{}, excHandler, nil))
	_, err = proc.ProcessOne(serverEnd, proto)
	assert.ErrorIs(t, err, ErrUnknownMessage)

	// Second call while the first is pending
	err = client.Call("echo", &box{v: ptr(1)}, &box{}, excHandler, nil)
	assert.ErrorIs(t, err, ErrCallInProgress)
}

func TestClientSubr_ValidatesBeforeSend(t *testing.T) {
	// Test: invalid args fail before any frame reaches the transport
	clientEnd, serverEnd := NewPipe()
	client := NewClientSubr(clientEnd, NewBinaryProtocol())

	err := client.Call("echo", &box{}, &box{}, excHandler, nil)
	assert.ErrorIs(t, err, ErrEncode)
	assert.Equal(t, 0, serverEnd.Pending())
	assert.False(t, client.Pending())
}

func TestPipe_Close(t *testing.T) {
	a, b := NewPipe()
	require.NoError(t, a.Send([]byte("x")))
	require.NoError(t, a.Close())

	assert.ErrorIs(t, a.Send([]byte("y")), ErrClosed)

	frame, ok, err := b.Receive()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("x"), frame)

	_, _, err = b.Receive()
	assert.ErrorIs(t, err, ErrClosed)
}
