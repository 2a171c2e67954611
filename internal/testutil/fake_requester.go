package testutil

import (
	"fmt"

	"github.com/frudas24/swayrestore/internal/ipc"
)

// Exchange pairs one expected request with the reply to serve.
type Exchange struct {
	Reply []byte
	Err   error
}

// FakeRequester implements app.Requester and records the messages it
// received, serving scripted replies in order.
type FakeRequester struct {
	Script   []Exchange
	Messages []ipc.Message
}

// Roundtrip records the message and pops the next scripted exchange.
func (f *FakeRequester) Roundtrip(m ipc.Message) ([]byte, error) {
	f.Messages = append(f.Messages, m)
	if len(f.Script) == 0 {
		return nil, fmt.Errorf("unexpected roundtrip for type %d", m.Type)
	}
	next := f.Script[0]
	f.Script = f.Script[1:]
	return next.Reply, next.Err
}

// Commands returns the payload text of every RunCommand issued.
func (f *FakeRequester) Commands() []string {
	var commands []string
	for _, m := range f.Messages {
		if m.Type == ipc.TypeRunCommand {
			commands = append(commands, string(m.Payload))
		}
	}
	return commands
}
