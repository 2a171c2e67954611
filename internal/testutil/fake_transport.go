package testutil

import (
	"net"
	"sync"
)

// FakeTransport extends FakeRequester with a scripted event stream,
// covering the orchestrator's full connection surface.
type FakeTransport struct {
	FakeRequester
	Subscribed   []string
	SubscribeErr error
	Events       [][]byte
	EventsErr    error

	mu     sync.Mutex
	closes int
	done   chan struct{}
}

// Subscribe records the requested event names.
func (f *FakeTransport) Subscribe(events ...string) error {
	f.Subscribed = append(f.Subscribed, events...)
	return f.SubscribeErr
}

// NextEvent pops the next scripted event body. Once the script is
// exhausted it returns EventsErr when set, and otherwise blocks until
// Close, like a quiet live stream.
func (f *FakeTransport) NextEvent() ([]byte, error) {
	if len(f.Events) > 0 {
		body := f.Events[0]
		f.Events = f.Events[1:]
		return body, nil
	}
	if f.EventsErr != nil {
		return nil, f.EventsErr
	}
	<-f.doneCh()
	return nil, net.ErrClosed
}

// Close records the call and unblocks a pending NextEvent. Safe to
// call more than once.
func (f *FakeTransport) Close() error {
	ch := f.doneCh()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	select {
	case <-ch:
	default:
		close(ch)
	}
	return nil
}

// CloseCalls returns how many times Close ran.
func (f *FakeTransport) CloseCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

// doneCh lazily creates the channel Close signals on.
func (f *FakeTransport) doneCh() chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done == nil {
		f.done = make(chan struct{})
	}
	return f.done
}
