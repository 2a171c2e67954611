// Package main starts the swayrestore CLI.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/frudas24/swayrestore/internal/app"
)

// main parses flags and the action argument, then hands off to run.
func main() {
	opts := options{}
	pflag.StringVar(&opts.socket, "socket", "", "compositor socket path (overrides SWAYSOCK)")
	pflag.StringVar(&opts.stateDir, "state-dir", "", "directory for saved layouts (overrides SWAYRESTORE_DIR)")
	pflag.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	pflag.BoolVar(&opts.debug, "debug", false, "enable verbose debug logging")
	pflag.Usage = usage
	pflag.Parse()

	if pflag.NArg() > 1 {
		usage()
		os.Exit(2)
	}
	action, err := app.ParseAction(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "swayrestore: %v\n", err)
		usage()
		os.Exit(2)
	}
	opts.action = action

	if err := run(opts); err != nil {
		logFatal(err)
	}
}

// usage prints the CLI synopsis and flag help to stderr.
func usage() {
	fmt.Fprintf(os.Stderr, "usage: swayrestore [flags] [auto|save|list|watch]\n\nFlags:\n")
	pflag.PrintDefaults()
}

// logFatal prints and exits for failures.
func logFatal(err error) {
	log.Printf("fatal: %v", err)
	os.Exit(1)
}
