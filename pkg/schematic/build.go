package schematic

import (
	"github.com/jwebster45206/schematic-engine/pkg/geom"
	"github.com/jwebster45206/schematic-engine/pkg/random"
)

// Builder turns block records into live objects.
//
// Two random sources are kept apart: Ambient serves pickup spawn chances and
// chamber shuffling, Loot serves locker spawn chances and loot selection.
// They may be the same Source.
type Builder struct {
	Catalog  Catalog
	Scene    Scene
	Registry Registry
	Ambient  random.Source
	Loot     random.Source
	Log      Diagnostics
}

// Build constructs rec and places it under parent (nil for the scene root).
//
// Unknown block or archetype types and missing catalog resources produce an
// empty object and a warning. Missing or malformed properties return a
// *BlockError and spawn nothing.
func (b *Builder) Build(rec *BlockRecord, parent Object, owner Owner) (Object, error) {
	d, err := Decode(rec)
	if err != nil {
		return nil, err
	}
	return b.BuildDecoded(d, parent, owner)
}

// BuildDecoded is Build for a record that was already decoded.
func (b *Builder) BuildDecoded(d Decoded, parent Object, owner Owner) (Object, error) {
	obj, err := b.construct(d, owner)
	if err != nil {
		return nil, blockError(d.Record, err)
	}
	b.place(d, obj, parent)
	return obj, nil
}

// LocalTransform is the transform a record is placed at relative to its
// parent.
func LocalTransform(rec *BlockRecord) geom.Transform {
	scale := rec.Scale
	switch {
	case rec.BlockType == BlockEmpty && scale == geom.Zero3:
		scale = geom.One3
	case rec.BlockType == BlockWaypoint:
		scale = scale.Scale(WaypointScaleMultiplier)
	}

	return geom.Transform{
		Position: rec.Position,
		Rotation: geom.Euler(rec.Rotation),
		Scale:    scale,
	}
}

func (b *Builder) place(d Decoded, obj Object, parent Object) {
	rec := d.Record
	obj.SetName(rec.Name)

	if toy, ok := obj.Component().(Toy); ok {
		if d.Static {
			toy.SetStatic(true)
		} else {
			toy.SetMovementSmoothing(MovementSmoothing)
		}
	}

	local := LocalTransform(rec)

	// Detached types keep the transform they would have under parent
	// but no parent edge.
	if rec.BlockType.Detached() {
		world := local
		if parent != nil {
			world = geom.Compose(b.Scene.WorldTransform(parent), local)
		}
		b.Scene.DetachParent(obj)
		b.Scene.SetLocalTransform(obj, world)
		return
	}

	b.Scene.SetParent(obj, parent)
	b.Scene.SetLocalTransform(obj, local)
}

func (b *Builder) warn(rec *BlockRecord, msg string, args ...any) {
	if b.Log == nil {
		return
	}
	args = append(args, "object_id", rec.ObjectID, "name", rec.Name, "block_type", rec.BlockType.String())
	b.Log.Warn(msg, args...)
}
