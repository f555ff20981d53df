package home

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testLayoutYAML = `
name: Country house
rooms:
  - name: Hall
    area: 24
    devices:
      - kind: thermometer
        name: t1
        temperature: 12
      - kind: smart_plug
        name: s1
        capacity: 220
        on: true
  - name: Bed room
    area: 12
`

func TestParseLayout_Build(t *testing.T) {
	l, err := ParseLayout([]byte(testLayoutYAML))
	if err != nil {
		t.Fatalf("ParseLayout() error = %v", err)
	}

	h, err := l.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if h.Name() != "Country house" || h.RoomsCount() != 2 {
		t.Fatalf("home = %q with %d rooms", h.Name(), h.RoomsCount())
	}

	hall, ok := h.Find("Hall")
	if !ok {
		t.Fatal("Hall missing")
	}
	d, ok := hall.Find("s1")
	if !ok {
		t.Fatal("s1 missing")
	}
	plug, ok := d.(*SmartPlug)
	if !ok {
		t.Fatalf("s1 is %T, want *SmartPlug", d)
	}
	if !plug.IsOn() || plug.Capacity() != 220 {
		t.Errorf("s1 on=%v capacity=%d", plug.IsOn(), plug.Capacity())
	}
}

func TestLayout_BuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		wantErr error
	}{
		{
			name:    "empty home name",
			layout:  Layout{Name: " "},
			wantErr: ErrInvalidLayout,
		},
		{
			name:    "zero area",
			layout:  Layout{Name: "h", Rooms: []RoomLayout{{Name: "Hall"}}},
			wantErr: ErrInvalidLayout,
		},
		{
			name: "unknown kind",
			layout: Layout{Name: "h", Rooms: []RoomLayout{{
				Name: "Hall", Area: 1,
				Devices: []DeviceLayout{{Kind: "toaster", Name: "x"}},
			}}},
			wantErr: ErrInvalidLayout,
		},
		{
			name: "duplicate room",
			layout: Layout{Name: "h", Rooms: []RoomLayout{
				{Name: "Hall", Area: 1},
				{Name: "Hall", Area: 2},
			}},
			wantErr: ErrDuplicateName,
		},
		{
			name: "duplicate device",
			layout: Layout{Name: "h", Rooms: []RoomLayout{{
				Name: "Hall", Area: 1,
				Devices: []DeviceLayout{
					{Kind: KindSmartPlug, Name: "x"},
					{Kind: KindThermometer, Name: "x"},
				},
			}}},
			wantErr: ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.layout.Build()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDescribe_RoundTrip(t *testing.T) {
	l, err := ParseLayout([]byte(testLayoutYAML))
	if err != nil {
		t.Fatalf("ParseLayout() error = %v", err)
	}
	h, err := l.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	data, err := MarshalLayout(Describe(h))
	if err != nil {
		t.Fatalf("MarshalLayout() error = %v", err)
	}
	again, err := ParseLayout(data)
	if err != nil {
		t.Fatalf("ParseLayout(marshalled) error = %v", err)
	}
	rebuilt, err := again.Build()
	if err != nil {
		t.Fatalf("Build(marshalled) error = %v", err)
	}

	want, got := h.Report(), rebuilt.Report()
	if len(got) != len(want) {
		t.Fatalf("rebuilt report has %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home.yaml")
	if err := os.WriteFile(path, []byte(testLayoutYAML), 0o600); err != nil {
		t.Fatalf("writing layout: %v", err)
	}

	l, err := LoadLayoutFile(path)
	if err != nil {
		t.Fatalf("LoadLayoutFile() error = %v", err)
	}
	if l.Name != "Country house" || len(l.Rooms) != 2 {
		t.Errorf("layout = %+v", l)
	}

	if _, err := LoadLayoutFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadLayoutFile(missing) expected error")
	}
}

func TestParseLayout_Invalid(t *testing.T) {
	if _, err := ParseLayout([]byte("rooms: [unterminated")); err == nil {
		t.Error("ParseLayout() expected error for malformed YAML")
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Country house", "country-house"},
		{"Bed room", "bed-room"},
		{"  Living__Room  ", "living-room"},
		{"Kitchen (main)", "kitchen-main"},
		{"t1", "t1"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
