package schematic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/schematic-engine/internal/catalog"
	"github.com/jwebster45206/schematic-engine/internal/scene"
	"github.com/jwebster45206/schematic-engine/internal/unlock"
	"github.com/jwebster45206/schematic-engine/pkg/geom"
	"github.com/jwebster45206/schematic-engine/pkg/props"
	"github.com/jwebster45206/schematic-engine/pkg/random"
	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

type warning struct {
	msg  string
	args []any
}

// recorder captures warnings for assertions.
type recorder struct {
	warnings []warning
}

func (r *recorder) Warn(msg string, args ...any) {
	r.warnings = append(r.warnings, warning{msg: msg, args: args})
}

// hasError reports whether any warning carries an error matching target.
func (r *recorder) hasError(target error) bool {
	for _, w := range r.warnings {
		for i := 0; i+1 < len(w.args); i += 2 {
			if err, ok := w.args[i+1].(error); ok && errors.Is(err, target) {
				return true
			}
		}
	}
	return false
}

type harness struct {
	tree     *scene.Tree
	catalog  *catalog.Catalog
	registry *unlock.Registry
	ambient  *random.Script
	loot     *random.Script
	log      *recorder
	builder  *schematic.Builder
	owner    schematic.Owner
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	tree := scene.New()
	cat, err := catalog.Default(tree)
	require.NoError(t, err)

	h := &harness{
		tree:     tree,
		catalog:  cat,
		registry: unlock.New(),
		ambient:  &random.Script{},
		loot:     &random.Script{},
		log:      &recorder{},
		owner:    schematic.NewOwner("test"),
	}
	h.builder = &schematic.Builder{
		Catalog:  cat,
		Scene:    tree,
		Registry: h.registry,
		Ambient:  h.ambient,
		Loot:     h.loot,
		Log:      h.log,
	}
	return h
}

func (h *harness) build(t *testing.T, rec *schematic.BlockRecord, parent schematic.Object) *scene.Node {
	t.Helper()
	obj, err := h.builder.Build(rec, parent, h.owner)
	require.NoError(t, err)
	n, ok := obj.(*scene.Node)
	require.True(t, ok)
	return n
}

func record(id int, bt schematic.BlockType, p props.Bag) *schematic.BlockRecord {
	return &schematic.BlockRecord{
		Name:       bt.String(),
		ObjectID:   id,
		BlockType:  bt,
		Scale:      geom.One3,
		Properties: p,
	}
}

// isEmpty reports whether n is the invisible placeholder object.
func isEmpty(n *scene.Node) bool {
	p, ok := n.Component().(*schematic.Primitive)
	return ok && p.Flags == schematic.PrimitiveFlagsNone && n.Template() == "PrimitiveObjectToy"
}
