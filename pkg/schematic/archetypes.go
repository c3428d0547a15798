package schematic

// Archetype names a spawnable template in the resource catalog.
type Archetype string

const (
	ArchetypePrimitive    Archetype = "PrimitiveObject"
	ArchetypeLight        Archetype = "LightSource"
	ArchetypeWorkstation  Archetype = "Workstation"
	ArchetypeText         Archetype = "Text"
	ArchetypeInteractable Archetype = "Interactable"
	ArchetypeWaypoint     Archetype = "Waypoint"
	ArchetypeCapybara     Archetype = "Capybara"
	ArchetypeGenerator    Archetype = "Generator"
	ArchetypeSinkhole     Archetype = "Sinkhole"
)

type DoorType int32

const (
	DoorLcz DoorType = iota
	DoorHcz
	DoorEz
	DoorBulkdoor
	DoorGate
)

var doorArchetypes = map[DoorType]Archetype{
	DoorLcz:      "DoorLcz",
	DoorHcz:      "DoorHcz",
	DoorEz:       "DoorEz",
	DoorBulkdoor: "DoorHeavyBulk",
	DoorGate:     "DoorGate",
}

// Archetype returns the catalog template for the door type.
func (t DoorType) Archetype() (Archetype, bool) {
	a, ok := doorArchetypes[t]
	return a, ok
}

// Breakable reports whether the door type carries health and damage state.
func (t DoorType) Breakable() bool {
	return t == DoorLcz || t == DoorHcz || t == DoorEz
}

type ElevatorType int32

const (
	ElevatorDefault ElevatorType = iota
	ElevatorGates
	ElevatorNuke
	ElevatorCargo
)

var elevatorArchetypes = map[ElevatorType]Archetype{
	ElevatorDefault: "ElevatorChamber",
	ElevatorGates:   "ElevatorChamberGates",
	ElevatorNuke:    "ElevatorChamberNuke",
	ElevatorCargo:   "ElevatorChamberCargo",
}

func (t ElevatorType) Archetype() (Archetype, bool) {
	a, ok := elevatorArchetypes[t]
	return a, ok
}

type CameraType int32

const (
	CameraLcz CameraType = iota
	CameraHcz
	CameraEz
	CameraEzArm
	CameraSz
)

var cameraArchetypes = map[CameraType]Archetype{
	CameraLcz:   "CameraLcz",
	CameraHcz:   "CameraHcz",
	CameraEz:    "CameraEz",
	CameraEzArm: "CameraEzArm",
	CameraSz:    "CameraSz",
}

func (t CameraType) Archetype() (Archetype, bool) {
	a, ok := cameraArchetypes[t]
	return a, ok
}

type LockerType int32

const (
	LockerPedestalScp500 LockerType = iota
	LockerLargeGun
	LockerRifleRack
	LockerMisc
	LockerMedkit
	LockerAdrenaline
	LockerPedestalScp018
	LockerPedestalScp207
	LockerPedestalScp244
	LockerPedestalScp268
	LockerPedestalScp1853
	LockerPedestalScp2176
	LockerPedestalScp1576
	LockerPedestalAntiScp207
	LockerPedestalScp1344
	LockerExperimentalWeapon

	// LockerNone is a placeholder type that always falls back.
	LockerNone LockerType = -1
)

var lockerArchetypes = map[LockerType]Archetype{
	LockerPedestalScp500:     "PedestalScp500",
	LockerLargeGun:           "LockerLargeGun",
	LockerRifleRack:          "LockerRifleRack",
	LockerMisc:               "LockerMisc",
	LockerMedkit:             "LockerRegularMedkit",
	LockerAdrenaline:         "LockerAdrenalineMedkit",
	LockerPedestalScp018:     "PedestalScp018",
	LockerPedestalScp207:     "PedestalScp207",
	LockerPedestalScp244:     "PedestalScp244",
	LockerPedestalScp268:     "PedestalScp268",
	LockerPedestalScp1853:    "PedestalScp1853",
	LockerPedestalScp2176:    "PedestalScp2176",
	LockerPedestalScp1576:    "PedestalScp1576",
	LockerPedestalAntiScp207: "PedestalAntiScp207",
	LockerPedestalScp1344:    "PedestalScp1344",
	LockerExperimentalWeapon: "LockerExperimentalWeapon",
}

func (t LockerType) Archetype() (Archetype, bool) {
	a, ok := lockerArchetypes[t]
	return a, ok
}

// Archetypes lists every template name the builder may request.
func Archetypes() []Archetype {
	out := []Archetype{
		ArchetypePrimitive, ArchetypeLight, ArchetypeWorkstation, ArchetypeText,
		ArchetypeInteractable, ArchetypeWaypoint, ArchetypeCapybara,
		ArchetypeGenerator, ArchetypeSinkhole,
	}
	for t := DoorLcz; t <= DoorGate; t++ {
		out = append(out, doorArchetypes[t])
	}
	for t := ElevatorDefault; t <= ElevatorCargo; t++ {
		out = append(out, elevatorArchetypes[t])
	}
	for t := CameraLcz; t <= CameraSz; t++ {
		out = append(out, cameraArchetypes[t])
	}
	for t := LockerPedestalScp500; t <= LockerExperimentalWeapon; t++ {
		out = append(out, lockerArchetypes[t])
	}
	return out
}
