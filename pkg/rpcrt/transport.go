package rpcrt

import (
	"errors"
	"sync"
)

// ErrClosed is returned by a closed transport
var ErrClosed = errors.New("transport closed")

// Transport moves whole message frames. Receive never blocks: ok is false
// when no frame is queued.
type Transport interface {
	Send(frame []byte) error
	Receive() (frame []byte, ok bool, err error)
}

type frameQueue struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (q *frameQueue) push(frame []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	q.frames = append(q.frames, append([]byte(nil), frame...))
	return nil
}

func (q *frameQueue) pop() ([]byte, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.frames) == 0 {
		if q.closed {
			return nil, false, ErrClosed
		}
		return nil, false, nil
	}
	frame := q.frames[0]
	q.frames = q.frames[1:]
	return frame, true, nil
}

func (q *frameQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

// Pipe is one end of an in-memory transport pair
type Pipe struct {
	in  *frameQueue
	out *frameQueue
}

// NewPipe returns two connected transports; frames sent on one are received on the other in order
func NewPipe() (*Pipe, *Pipe) {
	a, b := &frameQueue{}, &frameQueue{}
	return &Pipe{in: a, out: b}, &Pipe{in: b, out: a}
}

func (p *Pipe) Send(frame []byte) error {
	return p.out.push(frame)
}

func (p *Pipe) Receive() ([]byte, bool, error) {
	return p.in.pop()
}

// Pending returns the number of frames waiting to be received on this end
func (p *Pipe) Pending() int {
	p.in.mu.Lock()
	defer p.in.mu.Unlock()
	return len(p.in.frames)
}

// Close stops both directions; queued frames can still be received
func (p *Pipe) Close() error {
	p.in.close()
	p.out.close()
	return nil
}
