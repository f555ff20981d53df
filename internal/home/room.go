package home

// Room is a named space that owns an ordered sequence of devices.
// Device names are unique within a room (case-sensitive).
type Room struct {
	name    string
	area    uint
	devices []Device
}

// NewRoom creates an empty room.
func NewRoom(name string, area uint) *Room {
	return &Room{
		name: name,
		area: area,
	}
}

// Name returns the room name.
func (r *Room) Name() string { return r.name }

// Area returns the room area.
func (r *Room) Area() uint { return r.area }

// Len returns the number of installed devices.
func (r *Room) Len() int { return len(r.devices) }

// Devices returns the installed devices in sequence order.
// The returned slice is a copy; the devices themselves are shared.
func (r *Room) Devices() []Device {
	out := make([]Device, len(r.devices))
	copy(out, r.devices)
	return out
}

// Install appends d to the room.
//
// If a device with the same name is already installed the room is left
// unchanged and a *DuplicateNameError is returned; d remains with the caller.
func (r *Room) Install(d Device) error {
	if _, ok := r.Find(d.Name()); ok {
		return &DuplicateNameError{Scope: ScopeDevice, Name: d.Name()}
	}
	r.devices = append(r.devices, d)
	return nil
}

// Uninstall removes the named device and hands it back to the caller.
// The last device takes the removed one's slot, so the order of the
// remaining devices is not preserved.
func (r *Room) Uninstall(name string) (Device, bool) {
	i := r.index(name)
	if i < 0 {
		return nil, false
	}
	d := r.devices[i]
	last := len(r.devices) - 1
	r.devices[i] = r.devices[last]
	r.devices[last] = nil
	r.devices = r.devices[:last]
	return d, true
}

// Find returns the first device with the given name.
func (r *Room) Find(name string) (Device, bool) {
	i := r.index(name)
	if i < 0 {
		return nil, false
	}
	return r.devices[i], true
}

// Report returns one line per device in sequence order.
func (r *Room) Report() []string {
	lines := make([]string, 0, len(r.devices))
	for _, d := range r.devices {
		lines = append(lines, d.Report())
	}
	return lines
}

func (r *Room) index(name string) int {
	for i, d := range r.devices {
		if d.Name() == name {
			return i
		}
	}
	return -1
}
