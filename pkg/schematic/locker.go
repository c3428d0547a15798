package schematic

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/jwebster45206/schematic-engine/pkg/props"
	"github.com/jwebster45206/schematic-engine/pkg/weighted"
)

func (b *Builder) locker(rec *BlockRecord, s LockerSpec) (Object, error) {
	// unlike pickups, a draw equal to the chance already skips
	if int32(b.Loot.IntRange(0, 100)) >= s.Chance {
		return b.empty(), nil
	}

	a, ok := s.Type.Archetype()
	if !ok {
		b.warn(rec, "locker type is not implemented, using an empty object",
			"locker_type", int32(s.Type), "error", ErrUnknownDiscriminator)
		return b.empty(), nil
	}

	tpl, ok := b.Catalog.Template(a)
	if !ok {
		b.warn(rec, "catalog has no template for archetype, using an empty object",
			"archetype", string(a), "error", ErrResourceNotFound)
		return b.empty(), nil
	}

	locker := &Locker{Type: s.Type}
	for i := 0; i < tpl.Chambers; i++ {
		locker.Chambers = append(locker.Chambers, &Chamber{Index: i})
	}
	if err := b.fillLocker(locker, s); err != nil {
		return nil, err
	}

	return b.Catalog.Instantiate(tpl, locker), nil
}

// fillLocker resolves chamber loot. Physical slots are walked in order and
// each consumes the next index from the chamber ordering.
func (b *Builder) fillLocker(l *Locker, s LockerSpec) error {
	order := chamberOrder(s.Chambers)
	if s.Shuffle {
		order = weighted.Shuffle(b.Ambient, order)
	}

	l.ChambersFilled = true

	for _, ch := range l.Chambers {
		ch.RequiredPermissions = s.Permissions

		if len(order) == 0 {
			b.Catalog.FillChamber(l, ch)
			continue
		}
		idx := order[0]
		order = order[1:]

		loot, ok := s.Chambers[idx]
		if !ok {
			b.Catalog.FillChamber(l, ch)
			continue
		}

		entries := make([]weighted.Entry[LockerItem], len(loot))
		for i, it := range loot {
			entries[i] = weighted.Entry[LockerItem]{Value: it, Weight: float64(it.Chance)}
		}
		pick, ok := weighted.Select(b.Loot, entries)
		if !ok {
			continue
		}

		item, err := b.resolveItem(pick.Item)
		if err != nil {
			return fmt.Errorf("chamber %d: %w", idx, err)
		}
		ch.SpawnItem(item, pick.Item, int(pick.Count))
	}
	return nil
}

func (b *Builder) resolveItem(name string) (ItemType, error) {
	if item, ok := b.Catalog.Item(name); ok {
		return item, nil
	}
	if n, err := strconv.ParseInt(name, 10, 32); err == nil {
		return ItemType(n), nil
	}
	return ItemNone, &props.Error{
		Key:   "Chambers",
		Want:  "item",
		Value: name,
		Err:   fmt.Errorf("%w: unknown item %q", props.ErrCoercion, name),
	}
}

func chamberOrder(chambers map[int][]LockerItem) []int {
	keys := make([]int, 0, len(chambers))
	for k := range chambers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
