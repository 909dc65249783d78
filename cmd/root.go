/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/ubuntoo-net/ubuntoo/config"
	"github.com/ubuntoo-net/ubuntoo/internal/api"
	"github.com/ubuntoo-net/ubuntoo/internal/session"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ubuntoo",
	Short: "Command-line client for the UBUNTOO community network",
	Long: `ubuntoo is a terminal client for the UBUNTOO community social
network: publish posts, join challenges, collect badges and curate
your skills profile.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newSession builds a session wired to the configured API and token
// file. Callers own initialization.
func newSession(cfg config.Config) *session.Session {
	client := api.NewClient(cfg.APIBaseURL, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
	return session.New(client, session.NewFileStore(cfg.TokenFile))
}

// requireLogin restores the persisted session and fails when no valid
// credential exists.
func requireLogin(ctx context.Context, cfg config.Config) (*session.Session, error) {
	sess := newSession(cfg)
	sess.Initialize(ctx)
	if sess.Status() != session.StatusAuthenticated {
		return nil, errors.New("not logged in, run 'ubuntoo login' first")
	}
	return sess, nil
}
