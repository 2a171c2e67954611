package ipc

import (
	"fmt"
	"io"
	"net"
	"sync"
)

// Conn is one connection to the compositor. All roundtrips on a Conn
// and its clones serialize on a shared mutex: the socket is a single
// ordered byte stream, and overlapping exchanges would interleave
// response frames.
type Conn struct {
	mu     *sync.Mutex
	stream net.Conn
}

// Connect dials the compositor's unix socket.
func Connect(socketPath string) (*Conn, error) {
	stream, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect to compositor: %w", err)
	}
	return NewConn(stream), nil
}

// NewConn wraps an established stream. Exposed for tests.
func NewConn(stream net.Conn) *Conn {
	return &Conn{mu: &sync.Mutex{}, stream: stream}
}

// Roundtrip writes one encoded request and reads the matching
// response body. There are no timeouts; a blocked read blocks the
// caller indefinitely. Any I/O error or malformed header is fatal for
// the connection.
func (c *Conn) Roundtrip(m Message) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.stream.Write(Encode(m)); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}
	return c.readFrame()
}

// Clone returns an independent handle to the same connection. Clones
// share the roundtrip mutex, so a clone can never interleave its
// frames with the original's.
func (c *Conn) Clone() *Conn {
	return &Conn{mu: c.mu, stream: c.stream}
}

// Subscribe registers for the named event streams and checks the
// compositor's acknowledgement.
func (c *Conn) Subscribe(events ...string) error {
	m, err := Subscribe(events...)
	if err != nil {
		return err
	}
	body, err := c.Roundtrip(m)
	if err != nil {
		return err
	}
	ack, err := ParseResult(body)
	if err != nil {
		return err
	}
	if !ack.Success {
		return fmt.Errorf("subscribe to %v refused", events)
	}
	return nil
}

// NextEvent blocks until the next event frame arrives and returns its
// body. Event frames use the same header layout as responses.
func (c *Conn) NextEvent() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readFrame()
}

// Close closes the underlying stream. Closing unblocks a pending
// NextEvent with an error.
func (c *Conn) Close() error {
	return c.stream.Close()
}

// readFrame reads exactly one header and its announced body. Short
// reads surface as errors; this never returns a truncated body.
func (c *Conn) readFrame() ([]byte, error) {
	header := make([]byte, HeaderLen)
	if _, err := io.ReadFull(c.stream, header); err != nil {
		return nil, fmt.Errorf("read response header: %w", err)
	}
	length, err := DecodeHeader(header)
	if err != nil {
		return nil, err
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(c.stream, body); err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}
