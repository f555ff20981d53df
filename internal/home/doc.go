// Package home provides the home registry for Gray Logic Home.
//
// A Home owns a sequence of uniquely named Rooms, and each Room owns a
// sequence of uniquely named Devices. Devices are a closed set of variants
// (SmartPlug, Thermometer) behind the sealed Device interface.
//
// # Architecture
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                          Registry                              │
//	│   (registry.go: RWMutex, write-through persistence, logging)  │
//	│                              │                                 │
//	│                              ▼                                 │
//	│   Home ──owns──▶ Room ──owns──▶ Device (SmartPlug|Thermometer) │
//	│   (home.go)      (room.go)      (device.go)                    │
//	└──────────────────────────────│────────────────────────────────┘
//	                               ▼
//	             Layout (layout.go) ◀──▶ Repository (repository.go)
//
// Mutation flows top-down: a Home mutates its rooms, a Room its devices.
// Reports flow bottom-up: each Device renders one line, a Room collects its
// device lines, and a Home wraps every room block with a header and a "&&"
// terminator.
//
// # Errors
//
// Name collisions are the only failure of the in-memory model. They are
// returned as *DuplicateNameError, which matches ErrDuplicateName:
//
//	if err := room.Install(plug); errors.Is(err, home.ErrDuplicateName) {
//	    // plug was not installed and is still owned by the caller
//	}
//
// Lookups signal absence with a false second return value, never an error.
//
// # Thread Safety
//
// Home, Room and the device types are not safe for concurrent use. Wrap a
// Home in a Registry before sharing it between goroutines.
package home
