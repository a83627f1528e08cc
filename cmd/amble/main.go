package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/commands"
	"github.com/xonecas/amble/internal/config"
	"github.com/xonecas/amble/internal/store"
	"github.com/xonecas/amble/internal/view"
)

// Sessions untouched for this long are forgotten.
const sessionTTL = 30 * 24 * time.Hour

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error running amble: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("amble must be run in a terminal")
	}

	dir, err := config.EnsureDataDir()
	if err != nil {
		return err
	}
	prefs, err := config.Load(config.PreferencesPath(dir))
	if err != nil {
		return err
	}
	logFile, err := config.SetupLogging(dir, prefs.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	sessions, err := store.Open(filepath.Join(dir, "sessions.db"), sessionTTL)
	if err != nil {
		// A nil store remembers nothing.
		log.Warn().Err(err).Msg("Session store unavailable")
	}
	defer sessions.Close()

	registry := commands.Registry()
	keymap, err := commands.BuildKeymap(registry, config.KeymapPath(dir))
	if err != nil {
		return err
	}

	terminal, err := view.NewTcellTerminal()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		terminal.Close()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	a, err := app.New(ctx, app.Options{
		Terminal:      terminal,
		Preferences:   prefs,
		ConfigDir:     dir,
		Keymap:        keymap,
		Commands:      registry,
		Store:         sessions,
		WorkspacePath: cwd,
	})
	if err != nil {
		terminal.Close()
		return err
	}

	for _, path := range args {
		if err := a.OpenPath(path); err != nil {
			a.SetError(err)
			log.Warn().Err(err).Str("path", path).Msg("Failed to open argument")
		}
	}

	log.Info().Str("workspace", cwd).Int("buffers", len(a.Workspace.Buffers())).Msg("Starting amble")
	return a.Run()
}
