package schematic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/schematic-engine/internal/scene"
	"github.com/jwebster45206/schematic-engine/pkg/geom"
	"github.com/jwebster45206/schematic-engine/pkg/props"
	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

func TestBuild_Empty(t *testing.T) {
	h := newHarness(t)
	rec := record(1, schematic.BlockEmpty, nil)
	rec.Name = "Anchor"
	rec.Scale = geom.Zero3

	n := h.build(t, rec, nil)

	assert.True(t, isEmpty(n))
	assert.Equal(t, "Anchor", n.Name())
	assert.Equal(t, geom.One3, n.Local().Scale)
	assert.Empty(t, h.log.warnings)
}

func TestBuild_PrimitiveFlags(t *testing.T) {
	tests := []struct {
		name  string
		scale geom.Vector3
		flags any
		want  schematic.PrimitiveFlags
	}{
		{"legacy positive scale", geom.Vector3{X: 1, Y: 1, Z: 1}, nil, schematic.PrimitiveVisible | schematic.PrimitiveCollidable},
		{"legacy zero scale", geom.Zero3, nil, schematic.PrimitiveVisible | schematic.PrimitiveCollidable},
		{"legacy negative scale", geom.Vector3{X: -1, Y: 1, Z: 1}, nil, schematic.PrimitiveVisible},
		{"explicit flags", geom.Vector3{X: -1, Y: 1, Z: 1}, 1, schematic.PrimitiveCollidable},
		{"explicit none", geom.One3, "0", schematic.PrimitiveFlagsNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			p := props.Bag{"PrimitiveType": 3, "Color": "#FF0000"}
			if tt.flags != nil {
				p["PrimitiveFlags"] = tt.flags
			}
			rec := record(1, schematic.BlockPrimitive, p)
			rec.Scale = tt.scale

			n := h.build(t, rec, nil)

			prim := n.Component().(*schematic.Primitive)
			assert.Equal(t, tt.want, prim.Flags)
			assert.Equal(t, schematic.PrimitiveCube, prim.Shape)
			assert.Equal(t, geom.Color{R: 1, A: 1}, prim.Color)
			assert.Equal(t, tt.scale, n.Local().Scale)
		})
	}
}

func TestBuild_Light(t *testing.T) {
	t.Run("legacy shadows", func(t *testing.T) {
		h := newHarness(t)
		n := h.build(t, record(1, schematic.BlockLight, props.Bag{
			"LightType": 0,
			"Color":     "white",
			"Intensity": 2.5,
			"Range":     10,
			"Shadows":   true,
		}), nil)

		l := n.Component().(*schematic.Light)
		assert.Equal(t, schematic.LightSpot, l.Type)
		assert.Equal(t, schematic.ShadowsSoft, l.Shadows)
		assert.Equal(t, float32(2.5), l.Intensity)
		assert.Equal(t, float32(10), l.Range)
		// the newer shape fields are never read on the legacy path
		assert.Zero(t, l.SpotAngle)
		assert.Zero(t, l.ShadowStrength)
	})

	t.Run("legacy shadows off", func(t *testing.T) {
		h := newHarness(t)
		n := h.build(t, record(1, schematic.BlockLight, props.Bag{
			"Color": "white", "Intensity": 1, "Range": 1, "Shadows": "false",
		}), nil)

		l := n.Component().(*schematic.Light)
		assert.Equal(t, schematic.ShadowsNone, l.Shadows)
		assert.Equal(t, schematic.LightPoint, l.Type)
	})

	t.Run("shadow settings", func(t *testing.T) {
		h := newHarness(t)
		n := h.build(t, record(1, schematic.BlockLight, props.Bag{
			"LightType":      1,
			"Color":          "0:0:1:1",
			"Intensity":      1,
			"Range":          5,
			"ShadowType":     1,
			"Shape":          2,
			"SpotAngle":      30,
			"InnerSpotAngle": 10,
			"ShadowStrength": 0.5,
		}), nil)

		l := n.Component().(*schematic.Light)
		assert.Equal(t, schematic.ShadowsHard, l.Shadows)
		assert.Equal(t, schematic.LightShapeBox, l.Shape)
		assert.Equal(t, float32(30), l.SpotAngle)
		assert.Equal(t, float32(10), l.InnerSpotAngle)
		assert.Equal(t, float32(0.5), l.ShadowStrength)
	})

	t.Run("shadow settings missing key", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.builder.Build(record(1, schematic.BlockLight, props.Bag{
			"Color": "white", "Intensity": 1, "Range": 1, "ShadowType": 1,
		}), nil, h.owner)

		require.ErrorIs(t, err, props.ErrMissingProperty)
		assert.Equal(t, 0, h.tree.Len())
	})
}

func TestBuild_ToyNetworkFlags(t *testing.T) {
	tests := []struct {
		name       string
		static     any
		wantStatic bool
		wantSmooth uint8
	}{
		{"static", true, true, 0},
		{"not static", false, false, schematic.MovementSmoothing},
		{"absent", nil, false, schematic.MovementSmoothing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			p := props.Bag{"PrimitiveType": 0, "Color": "red"}
			if tt.static != nil {
				p["Static"] = tt.static
			}
			n := h.build(t, record(1, schematic.BlockPrimitive, p), nil)

			prim := n.Component().(*schematic.Primitive)
			assert.Equal(t, tt.wantStatic, prim.IsStatic)
			assert.Equal(t, tt.wantSmooth, prim.MovementSmoothing)
		})
	}

	t.Run("non toy ignores static", func(t *testing.T) {
		h := newHarness(t)
		n := h.build(t, record(1, schematic.BlockWorkstation, props.Bag{"Static": true}), nil)
		_, isToy := n.Component().(schematic.Toy)
		assert.False(t, isToy)
	})
}

func TestBuild_Pickup(t *testing.T) {
	t.Run("draw above chance skips", func(t *testing.T) {
		h := newHarness(t)
		h.ambient.Ints = []int{31}
		rec := record(1, schematic.BlockPickup, props.Bag{"Chance": 30, "ItemType": 14, "Locked": true})
		rec.Name = "Crate"

		n := h.build(t, rec, nil)

		assert.Nil(t, n.Component())
		assert.Equal(t, "Crate", n.Name())
		assert.Equal(t, 0, h.registry.Len())
	})

	t.Run("draw equal to chance spawns", func(t *testing.T) {
		h := newHarness(t)
		h.ambient.Ints = []int{30}
		n := h.build(t, record(1, schematic.BlockPickup, props.Bag{"Chance": 30, "ItemType": 14}), nil)

		p := n.Component().(*schematic.Pickup)
		assert.Equal(t, schematic.ItemType(14), p.Item)
		assert.Equal(t, 0, h.registry.Len())
	})

	t.Run("no chance never draws", func(t *testing.T) {
		h := newHarness(t)
		h.build(t, record(1, schematic.BlockPickup, props.Bag{"ItemType": 14}), nil)
		assert.Equal(t, 0, h.ambient.IntCalls)
	})

	t.Run("locked registers the serial", func(t *testing.T) {
		h := newHarness(t)
		// any value marks the pickup locked
		n := h.build(t, record(1, schematic.BlockPickup, props.Bag{"ItemType": 14, "Locked": false}), nil)

		p := n.Component().(*schematic.Pickup)
		owner, ok := h.registry.Owner(p.Serial)
		require.True(t, ok)
		assert.Equal(t, h.owner, owner)
	})

	t.Run("chance uses the ambient source", func(t *testing.T) {
		h := newHarness(t)
		h.build(t, record(1, schematic.BlockPickup, props.Bag{"Chance": 50, "ItemType": 14}), nil)
		assert.Equal(t, 1, h.ambient.IntCalls)
		assert.Equal(t, 0, h.loot.IntCalls)
	})
}

func TestBuild_SimpleToys(t *testing.T) {
	h := newHarness(t)

	ws := h.build(t, record(1, schematic.BlockWorkstation, props.Bag{"IsInteractable": true}), nil)
	assert.Equal(t, schematic.WorkstationInteractable, ws.Component().(*schematic.Workstation).Status)

	ws = h.build(t, record(2, schematic.BlockWorkstation, nil), nil)
	assert.Equal(t, schematic.WorkstationLocked, ws.Component().(*schematic.Workstation).Status)

	text := h.build(t, record(3, schematic.BlockText, props.Bag{"Text": "Hello", "DisplaySize": "(2, 1)"}), nil)
	assert.Equal(t, "Hello", text.Component().(*schematic.Text).Format)
	assert.Equal(t, geom.Vector2{X: 40, Y: 20}, text.Component().(*schematic.Text).DisplaySize)

	in := h.build(t, record(4, schematic.BlockInteractable, props.Bag{"Shape": 1, "InteractionDuration": 3}), nil)
	assert.Equal(t, schematic.ColliderSphere, in.Component().(*schematic.Interactable).Shape)
	assert.Equal(t, float32(3), in.Component().(*schematic.Interactable).InteractionDuration)
	assert.False(t, in.Component().(*schematic.Interactable).IsLocked)

	wpRec := record(5, schematic.BlockWaypoint, nil)
	wpRec.Scale = geom.Vector3{X: 1, Y: 2, Z: 3}
	wp := h.build(t, wpRec, nil)
	assert.Equal(t, schematic.WaypointPriority, wp.Component().(*schematic.Waypoint).Priority)
	assert.Equal(t, geom.Vector3{X: 5, Y: 10, Z: 15}, wp.Local().Scale)

	capy := h.build(t, record(6, schematic.BlockCapybara, props.Bag{"CollidersEnabled": true}), nil)
	assert.True(t, capy.Component().(*schematic.Capybara).CollidersEnabled)

	gen := h.build(t, record(7, schematic.BlockGenerator, props.Bag{
		"RequiredPermissions": 8,
		"ActivationTime":      20,
		"DeactivationTime":    5,
		"IsOpen":              false,
		"IsUnlocked":          true,
		"Engaged":             false,
	}), nil)
	g := gen.Component().(*schematic.Generator)
	assert.Equal(t, schematic.Permissions(8), g.RequiredPermissions)
	assert.Equal(t, float32(20), g.TotalActivationTime)
	assert.True(t, g.IsUnlocked)

	cam := h.build(t, record(8, schematic.BlockCamera, props.Bag{
		"CameraType":           3,
		"VerticalConstraint":   "-10,10",
		"HorizontalConstraint": "-45,45",
		"ZoomConstraint":       "0.5,1",
		"Label":                "GATE-A",
	}), nil)
	c := cam.Component().(*schematic.Camera)
	assert.Equal(t, schematic.CameraEzArm, c.Type)
	assert.Equal(t, geom.Vector2{X: -45, Y: 45}, c.HorizontalConstraint)
	assert.Equal(t, "GATE-A", c.Label)
	assert.Equal(t, "EzArmCameraToy", cam.Template())

	assert.Empty(t, h.log.warnings)
}

func TestBuild_Door(t *testing.T) {
	doorProps := func() props.Bag {
		return props.Bag{
			"DoorType":             1,
			"Health":               300,
			"IgnoredDamageSources": 2,
			"IsDestroyed":          false,
			"Interactable":         true,
			"Scp106Passable":       false,
			"SpawnOpened":          true,
			"Permissions":          4,
			"Locked":               false,
		}
	}

	t.Run("placed at parent world transform without parent", func(t *testing.T) {
		h := newHarness(t)
		parent := h.tree.Add("parent", "", nil)
		h.tree.SetLocalTransform(parent, geom.Transform{
			Position: geom.Vector3{X: 10},
			Rotation: geom.Euler(geom.Vector3{Y: 90}),
			Scale:    geom.One3,
		})

		rec := record(2, schematic.BlockDoor, doorProps())
		rec.Position = geom.Vector3{X: 1}
		n := h.build(t, rec, parent)

		assert.Nil(t, n.Parent())
		assert.Empty(t, parent.Children())

		pos := h.tree.WorldTransform(n).Position
		assert.InDelta(t, 10, pos.X, 1e-4)
		assert.InDelta(t, 0, pos.Y, 1e-4)
		assert.InDelta(t, -1, pos.Z, 1e-4)

		d := n.Component().(*schematic.Door)
		assert.Equal(t, schematic.DoorHcz, d.Type)
		require.NotNil(t, d.Breakable)
		assert.Equal(t, float32(300), d.Breakable.RemainingHealth)
		assert.False(t, d.Breakable.NonInteractable)
		assert.True(t, d.IsOpened)
		assert.Equal(t, schematic.Permissions(4), d.Permissions)
	})

	t.Run("bulk door has no damage state", func(t *testing.T) {
		h := newHarness(t)
		n := h.build(t, record(1, schematic.BlockDoor, props.Bag{
			"DoorType": 3, "SpawnOpened": false, "Permissions": 0, "Locked": true,
		}), nil)

		d := n.Component().(*schematic.Door)
		assert.Nil(t, d.Breakable)
		assert.True(t, d.IsLocked)
		assert.Equal(t, "HCZ BulkDoor", n.Template())
	})

	t.Run("unknown door type falls back", func(t *testing.T) {
		h := newHarness(t)
		n := h.build(t, record(1, schematic.BlockDoor, props.Bag{"DoorType": 42}), nil)

		assert.True(t, isEmpty(n))
		assert.True(t, h.log.hasError(schematic.ErrUnknownDiscriminator))
	})
}

func TestBuild_Elevator(t *testing.T) {
	p := props.Bag{
		"ElevatorType":          0,
		"DoorCount":             2,
		"Door-0-doorPosition":   "0,0,0",
		"Door-0-targetPosition": "0,0,1",
		"Door-0-topPosition":    "0,1,0",
		"Door-0-bottomPosition": "0,-1,0",
		"Door-1-doorPosition":   "0,20,0",
		"Door-1-targetPosition": "0,20,1",
		"Door-1-topPosition":    "0,21,0",
		"Door-1-bottomPosition": "0,19,0",
		"InitialDoor":           1,
	}

	t.Run("initial door", func(t *testing.T) {
		h := newHarness(t)
		n := h.build(t, record(1, schematic.BlockElevator, p), nil)

		e := n.Component().(*schematic.Elevator)
		require.Len(t, e.Doors, 2)
		assert.Same(t, e.Doors[1], e.LastArrived)
		assert.Equal(t, geom.Vector3{Y: 20}, e.LastArrived.Position)
		for _, d := range e.Doors {
			assert.Same(t, e, d.Chamber)
		}

		var doors int
		h.tree.Walk(func(node *scene.Node, _ int) {
			if node.Name() == "Spawned Elevator Door" {
				doors++
			}
		})
		assert.Equal(t, 2, doors)
	})

	t.Run("initial door out of range", func(t *testing.T) {
		h := newHarness(t)
		bad := props.Bag{}
		for k, v := range p {
			bad[k] = v
		}
		bad["InitialDoor"] = 2

		_, err := h.builder.Build(record(1, schematic.BlockElevator, bad), nil, h.owner)

		require.ErrorIs(t, err, schematic.ErrIndexOutOfRange)
		var be *schematic.BlockError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, 1, be.ObjectID)
		assert.Equal(t, 0, h.tree.Len())
	})

	t.Run("missing door position", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.builder.Build(record(1, schematic.BlockElevator, props.Bag{
			"ElevatorType": 0, "DoorCount": 1, "InitialDoor": 0,
		}), nil, h.owner)

		require.ErrorIs(t, err, props.ErrMissingProperty)
	})
}

func TestBuild_Prefab(t *testing.T) {
	tests := []struct {
		name     string
		ref      any
		template string
	}{
		{"by id", "6", "Scp2536Tree"},
		{"numeric value", 6, "Scp2536Tree"},
		{"by name", "scp2536TREE", "Scp2536Tree"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			n := h.build(t, record(1, schematic.BlockPrefab, props.Bag{"Prefab": tt.ref}), nil)

			inst := n.Component().(*schematic.PrefabInstance)
			assert.Equal(t, tt.template, inst.Name)
			assert.Equal(t, uint32(6), inst.TemplateID)
			assert.Empty(t, h.log.warnings)
		})
	}

	t.Run("not found", func(t *testing.T) {
		h := newHarness(t)
		n := h.build(t, record(1, schematic.BlockPrefab, props.Bag{"Prefab": "Nope"}), nil)

		assert.True(t, isEmpty(n))
		require.Len(t, h.log.warnings, 1)
		assert.True(t, h.log.hasError(schematic.ErrResourceNotFound))
		assert.Contains(t, h.log.warnings[0].args, "Nope")
	})
}

func TestBuild_Sinkhole(t *testing.T) {
	h := newHarness(t)
	parent := h.tree.Add("parent", "", nil)
	h.tree.SetLocalTransform(parent, geom.Transform{
		Position: geom.Vector3{Y: 5},
		Rotation: geom.Identity,
		Scale:    geom.One3,
	})

	rec := record(1, schematic.BlockSinkhole, nil)
	rec.Position = geom.Vector3{X: 2}
	n := h.build(t, rec, parent)

	assert.Nil(t, n.Parent())
	assert.Equal(t, geom.Vector3{X: 2, Y: 5}, n.Local().Position)
	assert.Equal(t, geom.Vector3{X: 2}, n.Component().(*schematic.Sinkhole).Spawn.Position)
}

func TestBuild_UnknownBlockType(t *testing.T) {
	h := newHarness(t)
	rec := record(1, schematic.BlockType(99), props.Bag{"Whatever": 1})

	n := h.build(t, rec, nil)

	assert.True(t, isEmpty(n))
	require.Len(t, h.log.warnings, 1)
	assert.True(t, h.log.hasError(schematic.ErrUnknownDiscriminator))
	assert.Contains(t, h.log.warnings[0].args, "BlockType(99)")
}

func TestBuild_ParentedPlacement(t *testing.T) {
	h := newHarness(t)
	parent := h.tree.Add("parent", "", nil)

	rec := record(1, schematic.BlockEmpty, nil)
	rec.Position = geom.Vector3{X: 1, Y: 2, Z: 3}
	rec.Rotation = geom.Vector3{Y: 90}
	n := h.build(t, rec, parent)

	assert.Same(t, parent, n.Parent())
	assert.Equal(t, geom.Vector3{X: 1, Y: 2, Z: 3}, n.Local().Position)
	assert.Equal(t, geom.Euler(geom.Vector3{Y: 90}), n.Local().Rotation)
}

func TestBuild_CoercionError(t *testing.T) {
	h := newHarness(t)
	_, err := h.builder.Build(record(7, schematic.BlockText, props.Bag{"Text": "x", "DisplaySize": "wide"}), nil, h.owner)

	require.ErrorIs(t, err, props.ErrCoercion)
	var pe *props.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "DisplaySize", pe.Key)
	assert.Contains(t, err.Error(), "block 7")
}

func TestBuild_MissingTemplateFallsBack(t *testing.T) {
	h := newHarness(t)
	h.builder.Catalog = sparseCatalog{h.builder.Catalog}

	n := h.build(t, record(1, schematic.BlockCapybara, props.Bag{"CollidersEnabled": true}), nil)

	assert.True(t, isEmpty(n))
	assert.True(t, h.log.hasError(schematic.ErrResourceNotFound))
}

// sparseCatalog hides every template except the primitive.
type sparseCatalog struct {
	schematic.Catalog
}

func (c sparseCatalog) Template(a schematic.Archetype) (schematic.Template, bool) {
	if a != schematic.ArchetypePrimitive {
		return schematic.Template{}, false
	}
	return c.Catalog.Template(a)
}

func TestBuild_MissingKeysFailBeforeChanceDraw(t *testing.T) {
	tests := []struct {
		name string
		bt   schematic.BlockType
		p    props.Bag
	}{
		{"locker without chambers", schematic.BlockLocker, props.Bag{
			"Chance": 0, "LockerType": 4, "KeycardPermissions": 0, "ShuffleChambers": false,
		}},
		{"locker without type", schematic.BlockLocker, props.Bag{"Chance": 0}},
		{"pickup without item", schematic.BlockPickup, props.Bag{"Chance": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.builder.Build(record(1, tt.bt, tt.p), nil, h.owner)

			require.ErrorIs(t, err, props.ErrMissingProperty)
			assert.Equal(t, 0, h.tree.Len())
			assert.Zero(t, h.ambient.IntCalls)
			assert.Zero(t, h.loot.IntCalls)
		})
	}
}
