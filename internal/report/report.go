// Package report runs a whole-schematic build against an in-memory scene
// and renders the outcome for terminals.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jwebster45206/schematic-engine/internal/catalog"
	"github.com/jwebster45206/schematic-engine/internal/scene"
	"github.com/jwebster45206/schematic-engine/internal/storage"
	"github.com/jwebster45206/schematic-engine/internal/unlock"
	"github.com/jwebster45206/schematic-engine/pkg/random"
	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

type Options struct {
	// Instance names the schematic instance and its root object.
	Instance string
	// CatalogPath is empty for the embedded catalog.
	CatalogPath string
	// Seed is 0 for a time-based seed.
	Seed         uint64
	AbortOnError bool
	// Store persists deferred unlocks when set.
	Store storage.Storage
	Log   *slog.Logger
}

// Warning is a fallback reported while building.
type Warning struct {
	Msg   string
	Attrs []any
}

func (w Warning) String() string {
	var b strings.Builder
	b.WriteString(w.Msg)
	for i := 0; i+1 < len(w.Attrs); i += 2 {
		fmt.Fprintf(&b, " %v=%v", w.Attrs[i], w.Attrs[i+1])
	}
	return b.String()
}

// collector records warnings and forwards them to the logger.
type collector struct {
	log      *slog.Logger
	warnings []Warning
}

func (c *collector) Warn(msg string, args ...any) {
	c.warnings = append(c.warnings, Warning{Msg: msg, Attrs: args})
	c.log.Warn(msg, args...)
}

// Report is the outcome of one build.
type Report struct {
	Owner    schematic.Owner
	Seed     uint64
	Tree     *scene.Tree
	Root     *scene.Node
	Catalog  *catalog.Catalog
	Result   *schematic.Result
	Warnings []Warning
	Unlocks  *unlock.Registry
	// Err is the error that stopped an aborted build.
	Err error
}

// Build assembles data under a fresh root object. Ambient and loot draws
// come from two sources seeded seed and seed+1.
func Build(ctx context.Context, data *schematic.Data, opts Options) (*Report, error) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	tree := scene.New()
	var (
		cat *catalog.Catalog
		err error
	)
	if opts.CatalogPath != "" {
		cat, err = catalog.Load(opts.CatalogPath, tree)
	} else {
		cat, err = catalog.Default(tree)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	instance := opts.Instance
	if instance == "" {
		instance = "Schematic"
	}

	diag := &collector{log: log}
	registry := unlock.New()
	b := &schematic.Builder{
		Catalog:  cat,
		Scene:    tree,
		Registry: registry,
		Ambient:  random.New(seed),
		Loot:     random.New(seed + 1),
		Log:      diag,
	}

	r := &Report{
		Owner:   schematic.NewOwner(instance),
		Seed:    seed,
		Tree:    tree,
		Catalog: cat,
		Unlocks: registry,
	}
	r.Root = tree.Add(instance, "", nil)

	log.Info("Building schematic", "instance", instance, "owner", r.Owner.ID, "blocks", len(data.Blocks), "seed", seed)
	r.Result, r.Err = b.Assemble(data, r.Root, r.Owner, schematic.Options{AbortOnError: opts.AbortOnError})
	r.Warnings = diag.warnings

	if opts.Store != nil && registry.Len() > 0 {
		if err := opts.Store.SaveUnlocks(ctx, registry.Snapshot()); err != nil {
			return r, fmt.Errorf("failed to persist unlocks: %w", err)
		}
	}

	log.Info("Schematic built",
		"instance", instance,
		"built", r.Result.Built(),
		"failed", len(r.Result.Failures),
		"warnings", len(r.Warnings),
		"unlocks", registry.Len())
	return r, nil
}

// OK reports whether every record built.
func (r *Report) OK() bool {
	return r.Err == nil && len(r.Result.Failures) == 0
}
