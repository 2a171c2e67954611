// Package ipc implements the i3-ipc wire protocol over a unix socket.
package ipc

import (
	"encoding/json"
	"fmt"
)

// TypeRunCommand is the protocol tag for a RUN_COMMAND request.
const TypeRunCommand uint32 = 0

// TypeSubscribe is the protocol tag for a SUBSCRIBE request.
const TypeSubscribe uint32 = 2

// TypeGetOutputs is the protocol tag for a GET_OUTPUTS request.
const TypeGetOutputs uint32 = 3

// Message is one request frame: a protocol type tag and its payload.
// The message set is closed; use the constructors below.
type Message struct {
	Type    uint32
	Payload []byte
}

// GetOutputs returns the request for the current output list.
func GetOutputs() Message {
	return Message{Type: TypeGetOutputs}
}

// RunCommand returns a request executing one configuration command.
func RunCommand(command string) Message {
	return Message{Type: TypeRunCommand, Payload: []byte(command)}
}

// Subscribe returns a request subscribing to the named event streams.
func Subscribe(events ...string) (Message, error) {
	payload, err := json.Marshal(events)
	if err != nil {
		return Message{}, fmt.Errorf("encode subscribe payload: %w", err)
	}
	return Message{Type: TypeSubscribe, Payload: payload}, nil
}

// Result is the compositor's verdict on one submitted command.
type Result struct {
	Success bool `json:"success"`
}

// ParseResults decodes a RUN_COMMAND reply, one result per command.
func ParseResults(data []byte) ([]Result, error) {
	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode command results: %w", err)
	}
	return results, nil
}

// ParseResult decodes a single-object reply such as a SUBSCRIBE ack.
func ParseResult(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("decode result: %w", err)
	}
	return result, nil
}
