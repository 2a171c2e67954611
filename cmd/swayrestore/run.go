// Package main starts the swayrestore CLI.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/frudas24/swayrestore/internal/app"
	"github.com/frudas24/swayrestore/internal/config"
)

// options holds the parsed command line.
type options struct {
	action     string
	socket     string
	stateDir   string
	configPath string
	debug      bool
}

// run wires configuration and the orchestrator, executes the action,
// and prints its output when there is any.
func run(opts options) error {
	cfg, err := config.Load(opts.configPath, config.Config{
		Socket:   opts.socket,
		StateDir: opts.stateDir,
	})
	if err != nil {
		return err
	}
	if opts.debug {
		log.Printf("debug: enabled")
		log.Printf("socket: %s", cfg.Socket)
		log.Printf("state dir: %s", cfg.StateDir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	output, err := app.New(cfg).Run(ctx, opts.action)
	if err != nil {
		return err
	}
	if output != "" {
		fmt.Println(output)
	}
	return nil
}
