package schematic

import (
	"errors"
	"fmt"
)

// Options controls a whole-schematic build.
type Options struct {
	// AbortOnError stops at the first record that fails to build.
	AbortOnError bool
}

// Result is the outcome of Assemble.
type Result struct {
	// Objects maps object ids to the objects built for them.
	Objects map[int]Object
	// Failures lists records that spawned nothing, in build order.
	Failures []*BlockError
}

// Built reports how many records produced an object.
func (r *Result) Built() int {
	return len(r.Objects)
}

type pending struct {
	rec    *BlockRecord
	parent Object
	// resolved is false when the parent record failed or never existed.
	resolved bool
}

// Assemble builds every record of data under root, parents before
// children. Records hanging off data.RootObjectID attach to root; a nil root
// means the scene root.
//
// A record whose parent did not build fails with ErrParentUnresolved, as do
// its descendants, except detached types, which are placed relative to root.
// With opts.AbortOnError the first failure is also returned as the error.
func (b *Builder) Assemble(data *Data, root Object, owner Owner, opts Options) (*Result, error) {
	res := &Result{Objects: make(map[int]Object, len(data.Blocks))}

	children := make(map[int][]*BlockRecord)
	for i := range data.Blocks {
		rec := &data.Blocks[i]
		children[rec.ParentID] = append(children[rec.ParentID], rec)
	}

	visited := make(map[*BlockRecord]bool, len(data.Blocks))
	var queue []pending
	enqueue := func(parentID int, parent Object, resolved bool) {
		for _, rec := range children[parentID] {
			if visited[rec] {
				continue
			}
			visited[rec] = true
			queue = append(queue, pending{rec: rec, parent: parent, resolved: resolved})
		}
	}

	run := func() error {
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]

			obj, err := b.buildPending(p, root, owner)
			if err != nil {
				var be *BlockError
				if !errors.As(err, &be) {
					be = blockError(p.rec, err)
				}
				res.Failures = append(res.Failures, be)
				if opts.AbortOnError {
					return be
				}
				enqueue(p.rec.ObjectID, nil, false)
				continue
			}

			res.Objects[p.rec.ObjectID] = obj
			enqueue(p.rec.ObjectID, obj, true)
		}
		return nil
	}

	enqueue(data.RootObjectID, root, true)
	if err := run(); err != nil {
		return res, err
	}

	// Whatever is left points at a parent id that is not in the schematic,
	// or sits in a parent cycle.
	for i := range data.Blocks {
		rec := &data.Blocks[i]
		if visited[rec] {
			continue
		}
		visited[rec] = true
		queue = append(queue, pending{rec: rec, resolved: false})
		if err := run(); err != nil {
			return res, err
		}
	}

	return res, nil
}

func (b *Builder) buildPending(p pending, root Object, owner Owner) (Object, error) {
	if p.resolved {
		return b.Build(p.rec, p.parent, owner)
	}
	if p.rec.BlockType.Detached() {
		return b.Build(p.rec, root, owner)
	}
	return nil, fmt.Errorf("parent %d: %w", p.rec.ParentID, ErrParentUnresolved)
}
