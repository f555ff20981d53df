package home

import (
	"errors"
	"fmt"
)

// Domain errors for the home package.
var (
	// ErrDuplicateName is matched by every *DuplicateNameError.
	ErrDuplicateName = errors.New("home: duplicate name")

	// ErrRoomNotFound is returned when a room name does not exist in the home.
	ErrRoomNotFound = errors.New("home: room not found")

	// ErrDeviceNotFound is returned when a device name does not exist in the room.
	ErrDeviceNotFound = errors.New("home: device not found")

	// ErrNotSmartPlug is returned when a power command targets a device
	// that cannot be switched.
	ErrNotSmartPlug = errors.New("home: device is not a smart plug")

	// ErrInvalidLayout is returned when a layout fails validation.
	ErrInvalidLayout = errors.New("home: invalid layout")

	// ErrHomeNotFound is returned when no stored snapshot exists for a home.
	ErrHomeNotFound = errors.New("home: not found")
)

// Scope names the level of the hierarchy where a name collision happened.
type Scope string

// Collision scopes.
const (
	ScopeRoom   Scope = "room"
	ScopeDevice Scope = "device"
)

// DuplicateNameError reports that a room or device could not be added
// because its name is already taken at that level. The rejected value is
// left untouched and stays with the caller.
type DuplicateNameError struct {
	Scope Scope
	Name  string
}

func (e *DuplicateNameError) Error() string {
	if e.Scope == ScopeRoom {
		return fmt.Sprintf("room with name %q already exists in the home", e.Name)
	}
	return fmt.Sprintf("device with name %q is already installed in the room", e.Name)
}

// Is reports whether target is ErrDuplicateName.
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}
