package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"go-confcore/internal/codec"
	"go-confcore/internal/config"
	"go-confcore/internal/dispatch"
	"go-confcore/internal/session"
)

func newRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:   "confcore",
		Short: "Line-oriented conference request/response service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoop(debug)
		},
	}
	root.Flags().BoolVar(&debug, "debug", false, "raise stderr logging to debug level")

	root.AddCommand(newBootstrapCmd())
	return root
}

func runLoop(debugFlag bool) error {
	cfg := config.Load()
	if debugFlag {
		cfg.Debug = true
	}
	if cfg.Secret != "" {
		codec.OrganizerSecret = cfg.Secret
	}

	log := newLogger(cfg.Debug)
	sess := session.New(cfg, log)
	defer sess.Close()

	d := dispatch.New(sess, os.Stdout, log)
	return d.Run(context.Background(), os.Stdin)
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}
