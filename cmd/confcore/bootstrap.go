package main

import (
	"context"

	"github.com/spf13/cobra"

	"go-confcore/internal/config"
	"go-confcore/internal/session"
)

// newBootstrapCmd applies the install script standalone, outside the
// stdin/stdout request loop, for operator convenience. It never reads
// stdin and never prints a response envelope.
func newBootstrapCmd() *cobra.Command {
	var baza, login, password string

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Apply the install script once without entering the request loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := newLogger(cfg.Debug)
			sess := session.New(cfg, log)
			defer sess.Close()
			return sess.Open(context.Background(), baza, login, password)
		},
	}
	cmd.Flags().StringVar(&baza, "baza", "", "database name")
	cmd.Flags().StringVar(&login, "login", "", "database login")
	cmd.Flags().StringVar(&password, "password", "", "database password")
	cmd.MarkFlagRequired("baza")
	cmd.MarkFlagRequired("login")
	cmd.MarkFlagRequired("password")
	return cmd
}
