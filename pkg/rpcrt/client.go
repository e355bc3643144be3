package rpcrt

import (
	"errors"
	"fmt"
)

// ErrNoPendingCall is returned by CallContinue when no call is outstanding
var ErrNoPendingCall = errors.New("no pending call")

// ExceptionHandler decodes a declared exception by name, failing for unknown names
type ExceptionHandler func(dec Decoder, name string) (Exception, error)

// ContinueFunc receives the outcome of a call: nil, a declared exception, or a decode error
type ContinueFunc func(err error)

type clientCall struct {
	name       string
	result     Struct
	excHandler ExceptionHandler
	onContinue ContinueFunc
}

// ClientSubr sends calls and finalizes them when the reply arrives. One call
// is outstanding at a time.
type ClientSubr struct {
	tr      Transport
	proto   Protocol
	pending *clientCall
}

// NewClientSubr creates a client over a transport
func NewClientSubr(tr Transport, proto Protocol) *ClientSubr {
	return &ClientSubr{tr: tr, proto: proto}
}

// Call encodes args and sends the call. Encoding runs before any transport I/O,
// so invalid args never reach the wire.
func (c *ClientSubr) Call(name string, args, result Struct, excHandler ExceptionHandler, onContinue ContinueFunc) error {
	if c.pending != nil {
		return fmt.Errorf("%w: %s is pending", ErrCallInProgress, c.pending.name)
	}

	enc := c.proto.NewEncoder()
	if err := enc.WriteMessageBegin(MessageCall, name); err != nil {
		return err
	}
	if err := args.RpcWrite(enc); err != nil {
		return err
	}
	if err := enc.WriteMessageEnd(); err != nil {
		return err
	}

	if err := c.tr.Send(enc.Bytes()); err != nil {
		return err
	}

	c.pending = &clientCall{
		name:       name,
		result:     result,
		excHandler: excHandler,
		onContinue: onContinue,
	}
	return nil
}

// Pending reports whether a call is outstanding
func (c *ClientSubr) Pending() bool {
	return c.pending != nil
}

// CallContinue finalizes the outstanding call if its reply has arrived.
// It returns false when the caller should poll again.
func (c *ClientSubr) CallContinue() (bool, error) {
	if c.pending == nil {
		return false, ErrNoPendingCall
	}

	frame, ok, err := c.tr.Receive()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	call := c.pending
	c.pending = nil

	callErr := c.decodeReply(call, frame)
	if call.onContinue != nil {
		call.onContinue(callErr)
	}
	return true, nil
}

func (c *ClientSubr) decodeReply(call *clientCall, frame []byte) error {
	dec := c.proto.NewDecoder(frame)

	mt, name, err := dec.ReadMessageBegin()
	if err != nil {
		return err
	}
	if name != call.name {
		return &Error{Phase: PhaseDecode, Kind: KindInvalidHeader, Detail: fmt.Sprintf("reply for %s, expected %s", name, call.name)}
	}

	switch mt {
	case MessageReply:
		if err := call.result.RpcRead(dec); err != nil {
			return err
		}
		return dec.ReadMessageEnd()
	case MessageException:
		excName, err := dec.ReadString()
		if err != nil {
			return err
		}
		exc, err := call.excHandler(dec, excName)
		if err != nil {
			return err
		}
		if err := dec.ReadMessageEnd(); err != nil {
			return err
		}
		return exc
	default:
		return &Error{Phase: PhaseDecode, Kind: KindInvalidHeader, Detail: "expected reply, got " + mt.String()}
	}
}
