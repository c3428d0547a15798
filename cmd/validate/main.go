package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jwebster45206/schematic-engine/internal/catalog"
	"github.com/jwebster45206/schematic-engine/internal/scene"
	"github.com/jwebster45206/schematic-engine/internal/storage"
	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var catalogPath string
	var strict bool

	flagSet := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&catalogPath, "catalog", os.Getenv("CATALOG_PATH"), "catalog YAML file (default: embedded catalog)")
	flagSet.BoolVar(&strict, "strict", false, "treat warnings as errors")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if flagSet.NArg() < 1 {
		fmt.Fprintf(stderr, "Usage: validate [--catalog file] [--strict] <schematic.json>...\n")
		return 2
	}

	var cat *catalog.Catalog
	var err error
	if catalogPath != "" {
		cat, err = catalog.Load(catalogPath, scene.New())
	} else {
		cat, err = catalog.Default(scene.New())
	}
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load catalog: %v\n", err)
		return 2
	}

	code := 0
	for _, filename := range flagSet.Args() {
		validator := &SchematicValidator{catalog: cat, strict: strict}
		fmt.Fprintf(stdout, "Validating %s...\n", filename)

		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(stderr, "Validation failed: %v\n", err)
			code = 1
			continue
		}
		for _, w := range validator.warnings {
			fmt.Fprintln(stdout, w)
		}
		fmt.Fprintln(stdout, "Schematic file is valid!")
	}
	return code
}

// SchematicValidator decodes every block of a schematic without spawning
// anything and checks the parent graph and catalog references.
type SchematicValidator struct {
	catalog  *catalog.Catalog
	strict   bool
	errors   []string
	warnings []string
}

func (v *SchematicValidator) validateFile(filename string) error {
	if !storage.Supported(filename) {
		return fmt.Errorf("schematic file must have a .json, .jsonc or .zst extension: %s", filename)
	}

	data, err := storage.ReadFile(filename)
	if err != nil {
		return err
	}

	v.errors = nil
	v.warnings = nil
	v.validateSchematic(data)

	if v.strict {
		v.errors = append(v.errors, v.warnings...)
		v.warnings = nil
	}
	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *SchematicValidator) validateSchematic(data *schematic.Data) {
	ids := make(map[int]*schematic.BlockRecord, len(data.Blocks))
	for i := range data.Blocks {
		rec := &data.Blocks[i]
		if _, dup := ids[rec.ObjectID]; dup {
			v.addError(fmt.Sprintf("object id %d is used more than once", rec.ObjectID))
			continue
		}
		if rec.ObjectID == data.RootObjectID {
			v.addError(fmt.Sprintf("object id %d collides with the root object id", rec.ObjectID))
		}
		ids[rec.ObjectID] = rec
	}

	for i := range data.Blocks {
		rec := &data.Blocks[i]
		v.validateParent(data, ids, rec)

		d, err := schematic.Decode(rec)
		if err != nil {
			v.addError(err.Error())
			continue
		}
		v.validateSpec(rec, d.Spec)
	}
}

func (v *SchematicValidator) validateParent(data *schematic.Data, ids map[int]*schematic.BlockRecord, rec *schematic.BlockRecord) {
	seen := map[int]bool{rec.ObjectID: true}
	cur := rec
	for cur.ParentID != data.RootObjectID {
		parent, ok := ids[cur.ParentID]
		if !ok {
			v.addParentProblem(rec, fmt.Sprintf("block %d %q has parent %d which is not in the schematic", rec.ObjectID, rec.Name, cur.ParentID))
			return
		}
		if seen[parent.ObjectID] {
			v.addParentProblem(rec, fmt.Sprintf("block %d %q is in a parent cycle", rec.ObjectID, rec.Name))
			return
		}
		seen[parent.ObjectID] = true
		cur = parent
	}
}

// addParentProblem reports an unreachable record. Detached types still
// build against the root, so they only warn.
func (v *SchematicValidator) addParentProblem(rec *schematic.BlockRecord, msg string) {
	if rec.BlockType.Detached() {
		v.addWarning(msg + ", placing it at the root")
		return
	}
	v.addError(msg)
}

func (v *SchematicValidator) validateSpec(rec *schematic.BlockRecord, spec schematic.Spec) {
	label := fmt.Sprintf("block %d %q", rec.ObjectID, rec.Name)

	switch s := spec.(type) {
	case schematic.UnknownSpec:
		v.addWarning(fmt.Sprintf("%s has unknown block type %d", label, int32(s.Type)))
	case schematic.DoorSpec:
		if _, ok := s.Type.Archetype(); !ok {
			v.addWarning(fmt.Sprintf("%s has unknown door type %d", label, int32(s.Type)))
		}
	case schematic.ElevatorSpec:
		if _, ok := s.Type.Archetype(); !ok {
			v.addWarning(fmt.Sprintf("%s has unknown elevator type %d", label, int32(s.Type)))
		}
	case schematic.CameraSpec:
		if _, ok := s.Type.Archetype(); !ok {
			v.addWarning(fmt.Sprintf("%s has unknown camera type %d", label, int32(s.Type)))
		}
	case schematic.PrefabSpec:
		if !v.prefabExists(s.Ref) {
			v.addWarning(fmt.Sprintf("%s references prefab %q which is not in the catalog", label, s.Ref))
		}
	case schematic.LockerSpec:
		v.validateLocker(label, s)
	}
}

func (v *SchematicValidator) prefabExists(ref string) bool {
	if id, err := strconv.ParseUint(ref, 10, 32); err == nil {
		_, ok := v.catalog.PrefabByID(uint32(id))
		return ok
	}
	_, ok := v.catalog.PrefabByName(ref)
	return ok
}

func (v *SchematicValidator) validateLocker(label string, s schematic.LockerSpec) {
	if _, ok := s.Type.Archetype(); !ok {
		v.addWarning(fmt.Sprintf("%s has unknown locker type %d", label, int32(s.Type)))
		return
	}
	if s.Chance <= 0 {
		v.addWarning(fmt.Sprintf("%s has chance %d and never spawns", label, s.Chance))
	}

	for idx, entries := range s.Chambers {
		for _, it := range entries {
			if _, ok := v.catalog.Item(it.Item); ok {
				continue
			}
			if _, err := strconv.ParseInt(it.Item, 10, 32); err == nil {
				continue
			}
			v.addError(fmt.Sprintf("%s chamber %d has unknown item %q", label, idx, it.Item))
		}
	}
}

func (v *SchematicValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func (v *SchematicValidator) addWarning(msg string) {
	v.warnings = append(v.warnings, "  ! "+msg)
}
