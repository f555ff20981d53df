package home

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layout validation limits.
const (
	maxNameLength = 100
	maxSlugLength = 50
)

// Layout is a serialisable description of a home and everything it owns.
// It is used for layout files, stored snapshots and API responses.
type Layout struct {
	Name  string       `yaml:"name" json:"name"`
	Rooms []RoomLayout `yaml:"rooms" json:"rooms"`
}

// RoomLayout describes one room and its devices.
type RoomLayout struct {
	Name    string         `yaml:"name" json:"name"`
	Area    uint           `yaml:"area" json:"area"`
	Devices []DeviceLayout `yaml:"devices" json:"devices"`
}

// DeviceLayout describes one device. Only the fields of its Kind are used.
type DeviceLayout struct {
	Kind        Kind   `yaml:"kind" json:"kind"`
	Name        string `yaml:"name" json:"name"`
	On          bool   `yaml:"on,omitempty" json:"on,omitempty"`
	Capacity    uint16 `yaml:"capacity,omitempty" json:"capacity,omitempty"`
	Temperature uint16 `yaml:"temperature,omitempty" json:"temperature,omitempty"`
}

// Build creates a Home from the layout.
//
// Rooms and devices are added through AddRoom and Install, so a name used
// twice at the same level fails with a *DuplicateNameError.
func (l Layout) Build() (*Home, error) {
	if err := validateName(l.Name); err != nil {
		return nil, fmt.Errorf("home name: %w", err)
	}
	h := New(l.Name)
	for i := range l.Rooms {
		room, err := l.Rooms[i].Build()
		if err != nil {
			return nil, err
		}
		if err := h.AddRoom(room); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Build creates a Room from the layout.
func (rl RoomLayout) Build() (*Room, error) {
	if err := validateName(rl.Name); err != nil {
		return nil, fmt.Errorf("room name: %w", err)
	}
	if rl.Area == 0 {
		return nil, fmt.Errorf("%w: room %q must have a positive area", ErrInvalidLayout, rl.Name)
	}
	room := NewRoom(rl.Name, rl.Area)
	for i := range rl.Devices {
		d, err := rl.Devices[i].Build()
		if err != nil {
			return nil, fmt.Errorf("room %q: %w", rl.Name, err)
		}
		if err := room.Install(d); err != nil {
			return nil, err
		}
	}
	return room, nil
}

// Build creates a Device from the layout.
func (dl DeviceLayout) Build() (Device, error) {
	if err := validateName(dl.Name); err != nil {
		return nil, fmt.Errorf("device name: %w", err)
	}
	switch dl.Kind {
	case KindSmartPlug:
		p := NewSmartPlug(dl.Name, dl.Capacity)
		if dl.On {
			p.TurnOn()
		}
		return p, nil
	case KindThermometer:
		return NewThermometer(dl.Name, dl.Temperature), nil
	default:
		return nil, fmt.Errorf("%w: device %q has unknown kind %q", ErrInvalidLayout, dl.Name, dl.Kind)
	}
}

// Describe snapshots h into a Layout.
func Describe(h *Home) Layout {
	l := Layout{
		Name:  h.Name(),
		Rooms: make([]RoomLayout, 0, h.RoomsCount()),
	}
	for _, room := range h.rooms {
		l.Rooms = append(l.Rooms, DescribeRoom(room))
	}
	return l
}

// DescribeRoom snapshots room into a RoomLayout.
func DescribeRoom(room *Room) RoomLayout {
	rl := RoomLayout{
		Name:    room.Name(),
		Area:    room.Area(),
		Devices: make([]DeviceLayout, 0, room.Len()),
	}
	for _, d := range room.devices {
		rl.Devices = append(rl.Devices, DescribeDevice(d))
	}
	return rl
}

// DescribeDevice snapshots d into a DeviceLayout.
func DescribeDevice(d Device) DeviceLayout {
	dl := DeviceLayout{Kind: d.Kind(), Name: d.Name()}
	switch v := d.(type) {
	case *SmartPlug:
		dl.On = v.IsOn()
		dl.Capacity = v.Capacity()
	case *Thermometer:
		dl.Temperature = v.Temperature()
	}
	return dl
}

// ParseLayout decodes a YAML layout document.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parsing layout: %w", err)
	}
	return l, nil
}

// LoadLayoutFile reads and decodes a YAML layout file.
func LoadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading layout file: %w", err)
	}
	return ParseLayout(data)
}

// MarshalLayout encodes l as YAML.
func MarshalLayout(l Layout) ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encoding layout: %w", err)
	}
	return data, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidLayout)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidLayout, maxNameLength)
	}
	return nil
}

// Slug converts a name into a lowercase, hyphen-separated token that is
// safe in URLs and MQTT topics.
//
// Example: "Country house" -> "country-house"
func Slug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")

	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	slug = strings.Trim(b.String(), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}
