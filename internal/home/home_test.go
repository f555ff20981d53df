package home

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	h := New("home")
	if h.Name() != "home" {
		t.Errorf("Name() = %q, want %q", h.Name(), "home")
	}
	if h.RoomsCount() != 0 {
		t.Errorf("RoomsCount() = %d, want 0", h.RoomsCount())
	}
}

func TestHome_AddRoomDuplicate(t *testing.T) {
	h := New("Country house")

	if err := h.AddRoom(NewRoom("Hall", 24)); err != nil {
		t.Fatalf("AddRoom(Hall) error = %v", err)
	}
	if !h.Contains("Hall") {
		t.Error("Contains(Hall) = false")
	}
	if h.RoomsCount() != 1 {
		t.Fatalf("RoomsCount() = %d, want 1", h.RoomsCount())
	}

	err := h.AddRoom(NewRoom("Hall", 30))
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("AddRoom(duplicate) error = %v, want ErrDuplicateName", err)
	}
	var dup *DuplicateNameError
	if !errors.As(err, &dup) || dup.Scope != ScopeRoom {
		t.Errorf("error = %#v, want room duplicate", err)
	}
	if h.RoomsCount() != 1 {
		t.Errorf("RoomsCount() = %d after duplicate, want 1", h.RoomsCount())
	}
	room, _ := h.Find("Hall")
	if room.Area() != 24 {
		t.Errorf("original room replaced: area = %d", room.Area())
	}
}

func TestHome_SetupWithRooms(t *testing.T) {
	h := New("Country house")

	bedroom := NewRoom("Bed room", 12)
	if err := bedroom.Install(NewThermometer("t2", 12)); err != nil {
		t.Fatalf("Install(t2) error = %v", err)
	}
	if err := bedroom.Install(NewSmartPlug("p2", 220)); err != nil {
		t.Fatalf("Install(p2) error = %v", err)
	}
	if err := h.AddRoom(bedroom); err != nil {
		t.Fatalf("AddRoom(Bed room) error = %v", err)
	}

	if !h.Contains("Bed room") || h.Contains("Hall") {
		t.Fatal("unexpected Contains results after first room")
	}

	if err := h.AddRoom(NewRoom("Hall", 24)); err != nil {
		t.Fatalf("AddRoom(Hall) error = %v", err)
	}
	if !h.Contains("Hall") || h.RoomsCount() != 2 {
		t.Errorf("Contains(Hall) = %v, RoomsCount() = %d", h.Contains("Hall"), h.RoomsCount())
	}
}

func TestHome_FindAndRemove(t *testing.T) {
	h := New("Country house")
	if err := h.AddRoom(NewRoom("Bed room", 12)); err != nil {
		t.Fatalf("AddRoom() error = %v", err)
	}
	if err := h.AddRoom(NewRoom("Playing room", 24)); err != nil {
		t.Fatalf("AddRoom() error = %v", err)
	}

	room, ok := h.Find("Bed room")
	if !ok || room.Name() != "Bed room" {
		t.Fatalf("Find(Bed room) = %v, %v", room, ok)
	}

	removed, ok := h.Remove("Bed room")
	if !ok || removed.Name() != "Bed room" {
		t.Fatalf("Remove(Bed room) = %v, %v", removed, ok)
	}
	if h.RoomsCount() != 1 {
		t.Errorf("RoomsCount() = %d, want 1", h.RoomsCount())
	}
	if _, ok := h.Find("Bed room"); ok {
		t.Error("Find(Bed room) should miss after Remove")
	}
	if _, ok := h.Find("Playing room"); !ok {
		t.Error("Find(Playing room) should still succeed")
	}
}

func TestHome_RemoveMissing(t *testing.T) {
	h := New("h")
	if err := h.AddRoom(NewRoom("Hall", 24)); err != nil {
		t.Fatalf("AddRoom() error = %v", err)
	}

	room, ok := h.Remove("Attic")
	if ok || room != nil {
		t.Errorf("Remove(Attic) = %v, %v; want nil, false", room, ok)
	}
	if h.RoomsCount() != 1 {
		t.Errorf("RoomsCount() = %d, want 1", h.RoomsCount())
	}
}

func TestHome_ContainsMatchesFind(t *testing.T) {
	h := New("h")
	for _, name := range []string{"Hall", "Kitchen", "Bed room"} {
		if err := h.AddRoom(NewRoom(name, 10)); err != nil {
			t.Fatalf("AddRoom(%s) error = %v", name, err)
		}
	}
	h.Remove("Kitchen")

	for _, name := range []string{"Hall", "Kitchen", "Bed room", "hall", "", "Attic"} {
		_, found := h.Find(name)
		if got := h.Contains(name); got != found {
			t.Errorf("Contains(%q) = %v, Find ok = %v", name, got, found)
		}
	}
}

func TestHome_ReportSingleRoom(t *testing.T) {
	h := New("Country house")
	hall := NewRoom("Hall", 24)
	if err := hall.Install(NewThermometer("t1", 12)); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if err := h.AddRoom(hall); err != nil {
		t.Fatalf("AddRoom() error = %v", err)
	}

	lines := h.Report()
	if len(lines) != 4 {
		t.Fatalf("Report() returned %d lines, want 4: %v", len(lines), lines)
	}

	checks := []struct {
		line     int
		contains []string
	}{
		{0, []string{"Country house", "1"}},
		{1, []string{"Hall", "24"}},
		{2, []string{"t1", "12"}},
	}
	for _, c := range checks {
		for _, want := range c.contains {
			if !strings.Contains(lines[c.line], want) {
				t.Errorf("line %d = %q, missing %q", c.line, lines[c.line], want)
			}
		}
	}
	if lines[3] != "&&" {
		t.Errorf("terminator = %q, want %q", lines[3], "&&")
	}
}

func TestHome_ReportNestedBlocks(t *testing.T) {
	h := New("Country house")

	hall := NewRoom("Hall", 24)
	plug := NewSmartPlug("s2", 120)
	plug.TurnOff()
	plug.TurnOn()
	for _, d := range []Device{NewThermometer("t1", 12), NewSmartPlug("s1", 220), plug} {
		if err := hall.Install(d); err != nil {
			t.Fatalf("Install(%s) error = %v", d.Name(), err)
		}
	}

	bedroom := NewRoom("Bed room", 12)
	for _, d := range []Device{NewThermometer("t1", 12), NewSmartPlug("s1", 220)} {
		if err := bedroom.Install(d); err != nil {
			t.Fatalf("Install(%s) error = %v", d.Name(), err)
		}
	}

	if err := h.AddRoom(hall); err != nil {
		t.Fatalf("AddRoom(Hall) error = %v", err)
	}
	if err := h.AddRoom(bedroom); err != nil {
		t.Fatalf("AddRoom(Bed room) error = %v", err)
	}

	want := []string{
		"Country house report, 2 room(s):",
		"Hall report, room area 24",
		"Thermometer t1: current temperature 12",
		"Smart plug s1, status off, capacity 220",
		"Smart plug s2, status on, capacity 120",
		"&&",
		"Bed room report, room area 12",
		"Thermometer t1: current temperature 12",
		"Smart plug s1, status off, capacity 220",
		"&&",
	}
	got := h.Report()
	if len(got) != len(want) {
		t.Fatalf("Report() returned %d lines, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHome_ReportEmpty(t *testing.T) {
	lines := New("Flat").Report()
	if len(lines) != 1 || lines[0] != "Flat report, 0 room(s):" {
		t.Errorf("Report() = %v", lines)
	}
}

func TestHome_ReportEmptyRoom(t *testing.T) {
	h := New("Flat")
	if err := h.AddRoom(NewRoom("Closet", 2)); err != nil {
		t.Fatalf("AddRoom() error = %v", err)
	}
	want := []string{"Flat report, 1 room(s):", "Closet report, room area 2", "&&"}
	got := h.Report()
	if len(got) != len(want) {
		t.Fatalf("Report() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
