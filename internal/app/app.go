// Package app orchestrates one swayrestore invocation: fetch the live
// layout, reconcile it with saved settings, and drive the compositor.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/frudas24/swayrestore/internal/config"
	"github.com/frudas24/swayrestore/internal/ipc"
	"github.com/frudas24/swayrestore/internal/layout"
	"github.com/frudas24/swayrestore/internal/store"
)

// ActionAuto restores the saved layout matching the attached set.
const ActionAuto = "auto"

// ActionSave records the current layout for future restoration.
const ActionSave = "save"

// ActionList prints the commands the current layout renders to.
const ActionList = "list"

// ActionWatch restores layouts continuously as the monitor set changes.
const ActionWatch = "watch"

// ErrCommandFailed reports that the compositor rejected a
// configuration command. Commands already applied are not rolled back.
var ErrCommandFailed = errors.New("could not configure output")

// Requester performs one request/response exchange with the
// compositor.
type Requester interface {
	Roundtrip(ipc.Message) ([]byte, error)
}

// Transport is the full connection surface the orchestrator drives:
// roundtrips plus the event stream Watch consumes.
type Transport interface {
	Requester
	Subscribe(events ...string) error
	NextEvent() ([]byte, error)
	Close() error
}

// ParseAction validates a CLI action argument. An empty argument
// defaults to auto.
func ParseAction(arg string) (string, error) {
	switch arg {
	case "":
		return ActionAuto, nil
	case ActionAuto, ActionSave, ActionList, ActionWatch:
		return arg, nil
	default:
		return "", fmt.Errorf("unknown action %q", arg)
	}
}

// App runs actions against one compositor and one layout repository.
type App struct {
	cfg  config.Config
	repo store.Repository
	dial func() (Transport, error)
}

// New returns an app for the given configuration.
func New(cfg config.Config) *App {
	return &App{
		cfg:  cfg,
		repo: store.New(cfg.StateDir),
		dial: func() (Transport, error) { return ipc.Connect(cfg.Socket) },
	}
}

// Run executes one action and returns the text destined for stdout,
// which is empty for every action except list.
func (a *App) Run(ctx context.Context, action string) (string, error) {
	if action == ActionWatch {
		return "", a.Watch(ctx)
	}

	conn, err := a.dial()
	if err != nil {
		return "", err
	}
	defer conn.Close()

	switch action {
	case ActionSave:
		return "", a.Save(conn)
	case ActionList:
		return a.List(conn)
	default:
		return "", a.Auto(conn)
	}
}

// Auto loads the layout saved for the attached monitor set, merges
// its settings into the live layout, and applies the result one
// command at a time. The first failed command aborts the pass;
// partial application is left as-is.
func (a *App) Auto(conn Requester) error {
	live, err := fetchLayout(conn)
	if err != nil {
		return err
	}
	saved, err := a.repo.Load(live.Fingerprint())
	if err != nil {
		return err
	}
	merged, err := live.Merge(layout.Layout{Outputs: saved})
	if err != nil {
		return err
	}
	return applyCommands(conn, merged.Commands())
}

// Save persists the live layout under its fingerprint.
func (a *App) Save(conn Requester) error {
	live, err := fetchLayout(conn)
	if err != nil {
		return err
	}
	return a.repo.Save(live.Fingerprint(), live.Outputs)
}

// List renders the live layout's command sequence.
func (a *App) List(conn Requester) (string, error) {
	live, err := fetchLayout(conn)
	if err != nil {
		return "", err
	}
	return live.String(), nil
}

// Watch subscribes to output events and runs one auto pass per event
// on a fresh connection, plus one pass at startup. Passes that find
// no saved layout for the attached set are logged and skipped; any
// other failure stops the watcher. Returns nil once ctx is cancelled.
func (a *App) Watch(ctx context.Context) error {
	events, err := a.dial()
	if err != nil {
		return err
	}
	defer events.Close()

	if err := events.Subscribe("output"); err != nil {
		return err
	}
	// Unblock the pending NextEvent when the context ends. Stopping
	// the callback on return keeps an early failure from closing the
	// transport again later.
	stop := context.AfterFunc(ctx, func() { events.Close() })
	defer stop()

	if err := a.watchPass(); err != nil {
		return err
	}
	for {
		if _, err := events.NextEvent(); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := a.watchPass(); err != nil {
			return err
		}
	}
}

// watchPass runs one auto pass, tolerating unknown monitor sets.
func (a *App) watchPass() error {
	conn, err := a.dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	err = a.Auto(conn)
	if errors.Is(err, store.ErrNotFound) {
		log.Printf("watch: %v", err)
		return nil
	}
	return err
}

// fetchLayout asks the compositor for the current output list.
func fetchLayout(conn Requester) (layout.Layout, error) {
	body, err := conn.Roundtrip(ipc.GetOutputs())
	if err != nil {
		return layout.Layout{}, err
	}
	return layout.FromJSON(body)
}

// applyCommands issues one roundtrip per command and verifies every
// reported result.
func applyCommands(conn Requester, commands []string) error {
	for _, command := range commands {
		body, err := conn.Roundtrip(ipc.RunCommand(command))
		if err != nil {
			return err
		}
		results, err := ipc.ParseResults(body)
		if err != nil {
			return err
		}
		for _, result := range results {
			if !result.Success {
				return fmt.Errorf("%w: %s", ErrCommandFailed, command)
			}
		}
	}
	return nil
}
