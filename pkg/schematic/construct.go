package schematic

import (
	"strconv"

	"github.com/jwebster45206/schematic-engine/pkg/geom"
)

func (b *Builder) construct(d Decoded, owner Owner) (Object, error) {
	rec := d.Record

	switch s := d.Spec.(type) {
	case EmptySpec:
		return b.empty(), nil
	case UnknownSpec:
		b.warn(rec, "block type is not implemented, using an empty object", "error", ErrUnknownDiscriminator)
		return b.empty(), nil
	case PrimitiveSpec:
		return b.spawn(rec, ArchetypePrimitive, &Primitive{Shape: s.Shape, Color: s.Color, Flags: s.Flags}), nil
	case LightSpec:
		return b.light(rec, s), nil
	case PickupSpec:
		return b.pickup(s, owner), nil
	case WorkstationSpec:
		status := WorkstationLocked
		if s.Interactable {
			status = WorkstationInteractable
		}
		return b.spawn(rec, ArchetypeWorkstation, &Workstation{Status: status}), nil
	case TextSpec:
		return b.spawn(rec, ArchetypeText, &Text{
			Format:      s.Text,
			DisplaySize: s.DisplaySize.Scale(TextDisplayScale),
		}), nil
	case InteractableSpec:
		return b.spawn(rec, ArchetypeInteractable, &Interactable{
			Shape:               s.Shape,
			InteractionDuration: s.Duration,
			IsLocked:            s.Locked,
		}), nil
	case WaypointSpec:
		return b.spawn(rec, ArchetypeWaypoint, &Waypoint{Priority: WaypointPriority}), nil
	case CapybaraSpec:
		return b.spawn(rec, ArchetypeCapybara, &Capybara{CollidersEnabled: s.CollidersEnabled}), nil
	case DoorSpec:
		return b.door(rec, s), nil
	case ElevatorSpec:
		return b.elevator(rec, s), nil
	case PrefabSpec:
		return b.prefab(rec, s), nil
	case SinkholeSpec:
		obj, ok := b.instantiate(rec, ArchetypeSinkhole, &Sinkhole{Spawn: s.Spawn})
		if ok {
			b.Scene.SetLocalTransform(obj, s.Spawn)
		}
		return obj, nil
	case CameraSpec:
		return b.camera(rec, s), nil
	case GeneratorSpec:
		return b.spawn(rec, ArchetypeGenerator, &Generator{
			RequiredPermissions:   s.RequiredPermissions,
			TotalActivationTime:   s.ActivationTime,
			TotalDeactivationTime: s.DeactivationTime,
			IsOpen:                s.IsOpen,
			IsUnlocked:            s.IsUnlocked,
			Engaged:               s.Engaged,
		}), nil
	case LockerSpec:
		return b.locker(rec, s)
	}

	b.warn(rec, "no constructor for decoded block, using an empty object", "error", ErrUnknownDiscriminator)
	return b.empty(), nil
}

// empty builds the invisible, non-colliding placeholder object.
func (b *Builder) empty() Object {
	tpl, ok := b.Catalog.Template(ArchetypePrimitive)
	if !ok {
		tpl = Template{Name: string(ArchetypePrimitive), Archetype: ArchetypePrimitive}
	}
	return b.Catalog.Instantiate(tpl, &Primitive{Flags: PrimitiveFlagsNone})
}

// instantiate spawns the archetype's template, or an empty object with a
// warning when the catalog lacks it.
func (b *Builder) instantiate(rec *BlockRecord, a Archetype, c Component) (Object, bool) {
	tpl, ok := b.Catalog.Template(a)
	if !ok {
		b.warn(rec, "catalog has no template for archetype, using an empty object",
			"archetype", string(a), "error", ErrResourceNotFound)
		return b.empty(), false
	}
	return b.Catalog.Instantiate(tpl, c), true
}

func (b *Builder) spawn(rec *BlockRecord, a Archetype, c Component) Object {
	obj, _ := b.instantiate(rec, a, c)
	return obj
}

func (b *Builder) light(rec *BlockRecord, s LightSpec) Object {
	l := &Light{
		Type:      s.Type,
		Color:     s.Color,
		Intensity: s.Intensity,
		Range:     s.Range,
	}
	s.Shadows.apply(l)
	return b.spawn(rec, ArchetypeLight, l)
}

func (b *Builder) pickup(s PickupSpec, owner Owner) Object {
	// draw is inclusive of 100; only a draw above the chance skips
	if s.Chance != nil && float32(b.Ambient.IntRange(0, 101)) > *s.Chance {
		return b.Scene.NewObject("Empty Pickup", nil)
	}

	obj, serial := b.Catalog.SpawnPickup(s.Item)
	if s.Locked && b.Registry != nil {
		b.Registry.RegisterDeferredUnlock(serial, owner)
	}
	return obj
}

func (b *Builder) door(rec *BlockRecord, s DoorSpec) Object {
	a, ok := s.Type.Archetype()
	if !ok {
		b.warn(rec, "door type is not implemented, using an empty object",
			"door_type", int32(s.Type), "error", ErrUnknownDiscriminator)
		return b.empty()
	}

	return b.spawn(rec, a, &Door{
		Type:        s.Type,
		Breakable:   s.Breakable,
		IsOpened:    s.Opened,
		Permissions: s.Permissions,
		IsLocked:    s.Locked,
	})
}

func (b *Builder) elevator(rec *BlockRecord, s ElevatorSpec) Object {
	a, ok := s.Type.Archetype()
	if !ok {
		b.warn(rec, "elevator type is not implemented, using an empty object",
			"elevator_type", int32(s.Type), "error", ErrUnknownDiscriminator)
		return b.empty()
	}

	chamber := &Elevator{Type: s.Type}
	obj, ok := b.instantiate(rec, a, chamber)
	if !ok {
		return obj
	}

	for _, ds := range s.Doors {
		door := &ElevatorDoor{
			Position:       ds.Position,
			TargetPosition: ds.Target,
			TopPosition:    ds.Top,
			BottomPosition: ds.Bottom,
			Chamber:        chamber,
		}
		doorObj := b.Scene.NewObject("Spawned Elevator Door", door)
		b.Scene.SetLocalTransform(doorObj, geom.Transform{
			Position: ds.Position,
			Rotation: geom.Identity,
			Scale:    geom.One3,
		})
		chamber.Doors = append(chamber.Doors, door)
	}
	chamber.LastArrived = chamber.Doors[s.InitialDoor]

	return obj
}

func (b *Builder) prefab(rec *BlockRecord, s PrefabSpec) Object {
	var tpl Template
	var ok bool
	if id, err := strconv.ParseUint(s.Ref, 10, 32); err == nil {
		tpl, ok = b.Catalog.PrefabByID(uint32(id))
	} else {
		tpl, ok = b.Catalog.PrefabByName(s.Ref)
	}

	if !ok {
		b.warn(rec, "could not find the prefab, using an empty object",
			"prefab", s.Ref, "error", ErrResourceNotFound)
		return b.empty()
	}
	return b.Catalog.Instantiate(tpl, &PrefabInstance{TemplateID: tpl.ID, Name: tpl.Name})
}

func (b *Builder) camera(rec *BlockRecord, s CameraSpec) Object {
	a, ok := s.Type.Archetype()
	if !ok {
		b.warn(rec, "camera type is not implemented, using an empty object",
			"camera_type", int32(s.Type), "error", ErrUnknownDiscriminator)
		return b.empty()
	}

	return b.spawn(rec, a, &Camera{
		Type:                 s.Type,
		VerticalConstraint:   s.Vertical,
		HorizontalConstraint: s.Horizontal,
		ZoomConstraint:       s.Zoom,
		Label:                s.Label,
	})
}
