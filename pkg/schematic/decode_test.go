package schematic_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/schematic-engine/pkg/geom"
	"github.com/jwebster45206/schematic-engine/pkg/props"
	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

func TestBlockType_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    schematic.BlockType
		wantErr bool
	}{
		{`9`, schematic.BlockDoor, false},
		{`"Locker"`, schematic.BlockLocker, false},
		{`"waypoint"`, schematic.BlockWaypoint, false},
		{`"15"`, schematic.BlockLocker, false},
		{`99`, schematic.BlockType(99), false},
		{`"Turret"`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var bt schematic.BlockType
			err := json.Unmarshal([]byte(tt.in), &bt)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, bt)
		})
	}
}

func TestBlockType_Detached(t *testing.T) {
	for bt := schematic.BlockEmpty; bt <= schematic.BlockLocker; bt++ {
		want := bt == schematic.BlockDoor || bt == schematic.BlockPrefab || bt == schematic.BlockSinkhole
		assert.Equal(t, want, bt.Detached(), bt.String())
		assert.True(t, bt.Known())
	}
	assert.False(t, schematic.BlockType(-1).Known())
}

func TestData_UnmarshalJSON(t *testing.T) {
	raw := `{
		"RootObjectId": 10,
		"Blocks": [
			{
				"Name": "Crate",
				"ObjectId": 11,
				"ParentId": 10,
				"Position": {"x": 1, "y": 2, "z": 3},
				"Rotation": {"x": 0, "y": 90, "z": 0},
				"Scale": {"x": 1, "y": 1, "z": 1},
				"BlockType": "Pickup",
				"Properties": {"ItemType": 14, "Chance": 50.5}
			}
		]
	}`

	var data schematic.Data
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	require.Len(t, data.Blocks, 1)

	rec := data.Blocks[0]
	assert.Equal(t, 10, data.RootObjectID)
	assert.Equal(t, 11, rec.ObjectID)
	assert.Equal(t, geom.Vector3{X: 1, Y: 2, Z: 3}, rec.Position)
	assert.Equal(t, schematic.BlockPickup, rec.BlockType)

	d, err := schematic.Decode(&rec)
	require.NoError(t, err)
	spec := d.Spec.(schematic.PickupSpec)
	require.NotNil(t, spec.Chance)
	assert.Equal(t, float32(50.5), *spec.Chance)
	assert.False(t, spec.Locked)
}

func TestDecode_Specs(t *testing.T) {
	tests := []struct {
		name string
		bt   schematic.BlockType
		p    props.Bag
		want schematic.Spec
	}{
		{"empty", schematic.BlockEmpty, nil, schematic.EmptySpec{}},
		{"waypoint", schematic.BlockWaypoint, nil, schematic.WaypointSpec{}},
		{"unknown", schematic.BlockType(77), nil, schematic.UnknownSpec{Type: 77}},
		{"prefab", schematic.BlockPrefab, props.Bag{"Prefab": 12}, schematic.PrefabSpec{Ref: "12"}},
		{
			"unknown door type skips the remaining fields",
			schematic.BlockDoor, props.Bag{"DoorType": 9},
			schematic.DoorSpec{Type: 9},
		},
		{
			"unknown camera type skips the remaining fields",
			schematic.BlockCamera, props.Bag{"CameraType": 9},
			schematic.CameraSpec{Type: 9},
		},
		{
			"unknown elevator type skips the remaining fields",
			schematic.BlockElevator, props.Bag{"ElevatorType": 9},
			schematic.ElevatorSpec{Type: 9},
		},
		{
			"unknown locker type skips the remaining fields",
			schematic.BlockLocker, props.Bag{"Chance": 100, "LockerType": -1},
			schematic.LockerSpec{Chance: 100, Type: schematic.LockerNone},
		},
		{
			"locker chambers",
			schematic.BlockLocker,
			props.Bag{
				"Chance":             "75",
				"LockerType":         4,
				"KeycardPermissions": 2,
				"ShuffleChambers":    1,
				"Chambers": map[any]any{
					2: []any{map[string]any{"Item": "Medkit", "Count": 2, "Chance": 0.5}},
				},
			},
			schematic.LockerSpec{
				Chance:      75,
				Type:        schematic.LockerMedkit,
				Permissions: 2,
				Shuffle:     true,
				Chambers: map[int][]schematic.LockerItem{
					2: {{Item: "Medkit", Count: 2, Chance: 0.5}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := schematic.Decode(record(1, tt.bt, tt.p))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Spec)
			assert.Equal(t, tt.bt, d.Spec.BlockType())
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		bt     schematic.BlockType
		p      props.Bag
		target error
		key    string
	}{
		{"primitive missing color", schematic.BlockPrimitive, props.Bag{"PrimitiveType": 0}, props.ErrMissingProperty, "Color"},
		{"primitive bad color", schematic.BlockPrimitive, props.Bag{"PrimitiveType": 0, "Color": "ultraviolet"}, props.ErrCoercion, "Color"},
		{"static not a bool", schematic.BlockEmpty, props.Bag{"Static": "maybe"}, props.ErrCoercion, "Static"},
		{"pickup item missing", schematic.BlockPickup, props.Bag{"Chance": 5}, props.ErrMissingProperty, "ItemType"},
		{"pickup chance not a number", schematic.BlockPickup, props.Bag{"Chance": "often", "ItemType": 1}, props.ErrCoercion, "Chance"},
		{"breakable door missing health", schematic.BlockDoor, props.Bag{"DoorType": 0}, props.ErrMissingProperty, "Health"},
		{"camera missing label", schematic.BlockCamera, props.Bag{
			"CameraType": 0, "VerticalConstraint": "0,1", "HorizontalConstraint": "0,1", "ZoomConstraint": "0,1",
		}, props.ErrMissingProperty, "Label"},
		{"generator bad permissions", schematic.BlockGenerator, props.Bag{"RequiredPermissions": "all"}, props.ErrCoercion, "RequiredPermissions"},
		{"locker chance missing", schematic.BlockLocker, props.Bag{"LockerType": 1}, props.ErrMissingProperty, "Chance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schematic.Decode(record(3, tt.bt, tt.p))
			require.ErrorIs(t, err, tt.target)

			var pe *props.Error
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.key, pe.Key)

			var be *schematic.BlockError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, 3, be.ObjectID)
			assert.Equal(t, tt.bt, be.BlockType)
		})
	}
}

func TestLocalTransform(t *testing.T) {
	rec := &schematic.BlockRecord{
		BlockType: schematic.BlockWaypoint,
		Position:  geom.Vector3{X: 1},
		Scale:     geom.Vector3{X: 1, Y: 1, Z: 2},
	}
	assert.Equal(t, geom.Vector3{X: 5, Y: 5, Z: 10}, schematic.LocalTransform(rec).Scale)

	rec.BlockType = schematic.BlockPrimitive
	rec.Scale = geom.Zero3
	assert.Equal(t, geom.Zero3, schematic.LocalTransform(rec).Scale)

	rec.BlockType = schematic.BlockEmpty
	assert.Equal(t, geom.One3, schematic.LocalTransform(rec).Scale)
}
