package home

import "fmt"

// reportTerminator closes each room block in a home report.
const reportTerminator = "&&"

// Home owns an ordered sequence of uniquely named rooms.
type Home struct {
	name  string
	rooms []*Room
}

// New creates an empty home.
func New(name string) *Home {
	return &Home{name: name}
}

// Name returns the home name.
func (h *Home) Name() string { return h.name }

// RoomsCount returns the number of rooms.
func (h *Home) RoomsCount() int { return len(h.rooms) }

// Rooms returns the rooms in sequence order.
// The returned slice is a copy; the rooms themselves are shared.
func (h *Home) Rooms() []*Room {
	out := make([]*Room, len(h.rooms))
	copy(out, h.rooms)
	return out
}

// AddRoom appends room to the home.
//
// If a room with the same name already exists the home is left unchanged
// and a *DuplicateNameError is returned; room remains with the caller.
func (h *Home) AddRoom(room *Room) error {
	if h.Contains(room.Name()) {
		return &DuplicateNameError{Scope: ScopeRoom, Name: room.Name()}
	}
	h.rooms = append(h.rooms, room)
	return nil
}

// Remove takes the named room out of the home and returns it.
// Like Room.Uninstall it swaps the last room into the gap.
func (h *Home) Remove(name string) (*Room, bool) {
	i := h.index(name)
	if i < 0 {
		return nil, false
	}
	room := h.rooms[i]
	last := len(h.rooms) - 1
	h.rooms[i] = h.rooms[last]
	h.rooms[last] = nil
	h.rooms = h.rooms[:last]
	return room, true
}

// Find returns the room with the given name.
func (h *Home) Find(name string) (*Room, bool) {
	i := h.index(name)
	if i < 0 {
		return nil, false
	}
	return h.rooms[i], true
}

// Contains reports whether a room with the given name exists.
func (h *Home) Contains(name string) bool {
	return h.index(name) >= 0
}

// Report renders the full nested report:
//
//	<home> report, <n> room(s):
//	<room> report, room area <area>
//	<device line>...
//	&&
//
// with one header/body/terminator block per room in sequence order.
func (h *Home) Report() []string {
	lines := []string{fmt.Sprintf("%s report, %d room(s):", h.name, len(h.rooms))}
	for _, room := range h.rooms {
		lines = append(lines, roomHeader(room))
		lines = append(lines, room.Report()...)
		lines = append(lines, reportTerminator)
	}
	return lines
}

func roomHeader(room *Room) string {
	return fmt.Sprintf("%s report, room area %d", room.Name(), room.Area())
}

func (h *Home) index(name string) int {
	for i, room := range h.rooms {
		if room.Name() == name {
			return i
		}
	}
	return -1
}
