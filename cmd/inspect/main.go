// inspect is a terminal viewer for schematic builds. It lists the
// schematics in the data directory, builds the chosen one and shows the
// resulting object tree with its failures and warnings.
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/jwebster45206/schematic-engine/internal/config"
	"github.com/jwebster45206/schematic-engine/internal/logger"
	"github.com/jwebster45206/schematic-engine/internal/report"
	"github.com/jwebster45206/schematic-engine/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var catalogPath, dataDir, logOutput string
	var seed uint64

	flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	flagSet.StringVar(&catalogPath, "catalog", cfg.CatalogPath, "catalog YAML file (default: embedded catalog)")
	flagSet.StringVar(&dataDir, "data-dir", cfg.SchematicDir, "directory to pick schematics from")
	flagSet.Uint64Var(&seed, "seed", cfg.Seed, "random seed, 0 for a time-based seed")
	flagSet.StringVar(&logOutput, "log-output", "", "write log records to this file")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	var logWriter io.Writer = io.Discard
	if logOutput != "" {
		f, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logWriter = f
	}
	log := logger.New(cfg, logWriter)

	opts := report.Options{
		CatalogPath:  catalogPath,
		Seed:         seed,
		AbortOnError: cfg.AbortOnError,
		Log:          log,
	}

	var file string
	if flagSet.NArg() > 0 {
		file = flagSet.Arg(0)
	}

	p := tea.NewProgram(NewInspectUI(storage.NewFileStorage(dataDir, log), opts, file),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
