package ipc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// magic is the fixed ASCII preamble opening every frame in both
// directions.
const magic = "i3-ipc"

// HeaderLen is the size of a frame header: magic plus two u32 fields.
const HeaderLen = len(magic) + 8

// ErrInvalidPreamble reports a response whose first bytes are not the
// magic string, meaning the peer does not speak this protocol.
var ErrInvalidPreamble = errors.New("invalid i3-ipc preamble")

// Encode serializes a message into one wire frame: magic, payload
// length as u32-LE, type tag as u32-LE, then the raw payload. A
// zero-length payload is valid and produces a header-only frame.
func Encode(m Message) []byte {
	frame := make([]byte, 0, HeaderLen+len(m.Payload))
	frame = append(frame, magic...)
	frame = binary.LittleEndian.AppendUint32(frame, uint32(len(m.Payload)))
	frame = binary.LittleEndian.AppendUint32(frame, m.Type)
	return append(frame, m.Payload...)
}

// DecodeHeader validates a response header and returns the announced
// body length. It expects exactly HeaderLen bytes; the preamble check
// is byte-exact. The response type tag is not interpreted.
func DecodeHeader(header []byte) (uint32, error) {
	if len(header) != HeaderLen {
		return 0, fmt.Errorf("header is %d bytes, want %d", len(header), HeaderLen)
	}
	if !bytes.Equal(header[:len(magic)], []byte(magic)) {
		return 0, ErrInvalidPreamble
	}
	return binary.LittleEndian.Uint32(header[len(magic):]), nil
}
