// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// sentinel is the terminal console for the Sentinel operations
// service: session-gated access to the facility dashboard, the
// physical asset inventory, and the security alert and access log
// feeds.
//
// Configuration comes from a single YAML file named by the
// SENTINEL_CONFIG environment variable or the --config flag; with
// neither set, built-in defaults point at a local service. A saved
// session is restored and verified on startup, so an operator who
// signed in recently lands straight on the dashboard.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/sentinel-ops/sentinel/lib/api"
	"github.com/sentinel-ops/sentinel/lib/config"
	"github.com/sentinel-ops/sentinel/lib/consoleui"
	"github.com/sentinel-ops/sentinel/lib/session"
	"github.com/sentinel-ops/sentinel/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var serverURL string
	var sessionFile string
	var logOutput string
	var healthCheck bool

	flagSet := pflag.NewFlagSet("sentinel", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to the sentinel.yaml config file (overrides SENTINEL_CONFIG)")
	flagSet.StringVar(&serverURL, "server", "", "operations service base URL (overrides config)")
	flagSet.StringVar(&sessionFile, "session-file", "", "saved session location (overrides config)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to status bar display)")
	flagSet.BoolVar(&healthCheck, "check", false, "probe the service health endpoint and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("sentinel")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}
	if sessionFile != "" {
		cfg.Session.File = sessionFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	client, err := api.NewClient(api.Config{BaseURL: cfg.Server.URL})
	if err != nil {
		return err
	}

	if healthCheck {
		return checkHealth(client, cfg)
	}

	// Background logging goes through the status bar handler so
	// records never write to the terminal the program draws on. An
	// optional file handler captures everything for post-mortems.
	tuiHandler := consoleui.NewLogHandler(slog.LevelWarn)
	if logOutput == "" {
		logOutput = cfg.Log.Output
	}
	logger, cleanup, err := buildLogger(tuiHandler, logOutput, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer cleanup()

	store := session.NewStore(session.Config{
		Client: client,
		Path:   cfg.Session.File,
		Logger: logger,
	})

	// Restore outside the TUI: a dead saved session should drop the
	// operator on the login form, not flash an error mid-render.
	restoreContext, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout.Std())
	if _, err := store.Restore(restoreContext); err != nil &&
		!errors.Is(err, session.ErrNoSession) && !errors.Is(err, session.ErrSessionExpired) {
		cancel()
		return fmt.Errorf("restoring session: %w", err)
	}
	cancel()

	model := consoleui.NewModel(consoleui.Config{
		Client:          client,
		Store:           store,
		Logger:          logger,
		RefreshInterval: cfg.Console.RefreshInterval.Std(),
		RequestTimeout:  cfg.Server.RequestTimeout.Std(),
		ShowDemoHint:    cfg.Console.ShowDemoHint,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// checkHealth implements --check: one probe of the service health
// endpoint, exit status reporting the result.
func checkHealth(client *api.Client, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout.Std())
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		return fmt.Errorf("service unreachable at %s: %w", cfg.Server.URL, err)
	}
	fmt.Printf("%s: %s\n", health.Service, health.Status)
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Sentinel operations console — terminal UI for the operations service.

Configuration is read from the file named by SENTINEL_CONFIG or
--config; without either, built-in defaults connect to
http://localhost:8001.

Usage:
  sentinel [flags]

Examples:
  # Open the console with defaults
  sentinel

  # Point at a specific service
  sentinel --server https://ops.example.com

  # Verify the service is up without opening the console
  sentinel --check

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
