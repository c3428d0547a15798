// schematic builds a schematic file into an in-memory scene and prints a
// report of the objects it spawned.
//
// Usage:
//
//	schematic [flags] <file>
//	schematic --list
//	schematic --release <owner-id>
//
// A file argument that does not exist on disk is looked up in the data
// directory. When a Redis URL is configured, locked pickups are persisted so
// a button handler can release them later.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/jwebster45206/schematic-engine/internal/config"
	"github.com/jwebster45206/schematic-engine/internal/logger"
	"github.com/jwebster45206/schematic-engine/internal/report"
	"github.com/jwebster45206/schematic-engine/internal/storage"
)

const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	redisTries  = 5
	redisPause  = time.Second
	reportWidth = 100
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	catalogPath  string
	seed         uint64
	abortOnError bool
	dataDir      string
	redisURL     string
	instance     string
	width        int
	list         bool
	release      string
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	var opts options
	flagSet := pflag.NewFlagSet("schematic", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.catalogPath, "catalog", cfg.CatalogPath, "catalog YAML file (default: embedded catalog)")
	flagSet.Uint64Var(&opts.seed, "seed", cfg.Seed, "random seed, 0 for a time-based seed")
	flagSet.BoolVar(&opts.abortOnError, "abort-on-error", cfg.AbortOnError, "stop at the first block that fails to build")
	flagSet.StringVar(&opts.dataDir, "data-dir", cfg.SchematicDir, "directory schematic names are resolved in")
	flagSet.StringVar(&opts.redisURL, "redis-url", cfg.RedisURL, "redis URL for persisting locked pickups")
	flagSet.StringVar(&opts.instance, "instance", "", "instance name (default: file name)")
	flagSet.IntVar(&opts.width, "width", reportWidth, "report wrap width")
	flagSet.BoolVar(&opts.list, "list", false, "list schematics in the data directory")
	flagSet.StringVar(&opts.release, "release", "", "delete persisted unlocks of an owner id and exit")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	log := logger.New(cfg, stderr)
	ctx := context.Background()
	files := storage.NewFileStorage(opts.dataDir, log)

	var store storage.Storage
	if opts.redisURL != "" {
		rs, err := storage.NewRedisStorage(opts.redisURL, opts.dataDir, cfg.UnlockTTL, log)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitUsage
		}
		defer rs.Close()
		if err := rs.WaitForConnection(ctx, redisTries, redisPause); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitFailed
		}
		store = rs
	}

	switch {
	case opts.list:
		return list(ctx, files, stdout, stderr)
	case opts.release != "":
		return release(ctx, store, opts.release, stdout, stderr)
	}

	if flagSet.NArg() != 1 {
		fmt.Fprintf(stderr, "Usage: schematic [flags] <file>\n")
		flagSet.PrintDefaults()
		return exitUsage
	}
	return build(ctx, files, store, flagSet.Arg(0), opts, log, stdout, stderr)
}

func list(ctx context.Context, files storage.Schematics, stdout, stderr io.Writer) int {
	names, err := files.ListSchematics(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailed
	}
	for _, name := range names {
		fmt.Fprintln(stdout, name)
	}
	return exitOK
}

func release(ctx context.Context, store storage.Storage, owner string, stdout, stderr io.Writer) int {
	if store == nil {
		fmt.Fprintf(stderr, "error: --release needs --redis-url\n")
		return exitUsage
	}
	id, err := uuid.Parse(owner)
	if err != nil {
		fmt.Fprintf(stderr, "error: invalid owner id: %v\n", err)
		return exitUsage
	}
	n, err := store.DeleteUnlocks(ctx, id)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailed
	}
	fmt.Fprintf(stdout, "Released %d unlocks of %s\n", n, id)
	return exitOK
}

func build(ctx context.Context, files storage.Schematics, store storage.Storage, name string, opts options, log *slog.Logger, stdout, stderr io.Writer) int {
	data, err := report.Load(ctx, files, name)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailed
	}

	instance := opts.instance
	if instance == "" {
		instance = report.InstanceName(name)
	}

	r, err := report.Build(ctx, data, report.Options{
		Instance:     instance,
		CatalogPath:  opts.catalogPath,
		Seed:         opts.seed,
		AbortOnError: opts.abortOnError,
		Store:        store,
		Log:          logger.WithSchematic(log, name, instance),
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if r == nil {
			return exitFailed
		}
	}

	fmt.Fprint(stdout, r.Render(opts.width))
	if err != nil || !r.OK() {
		return exitFailed
	}
	return exitOK
}
