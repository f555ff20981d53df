package home

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the home registry tables.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE homes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;

		CREATE TABLE rooms (
			id TEXT PRIMARY KEY,
			home_id TEXT NOT NULL,
			name TEXT NOT NULL,
			area INTEGER NOT NULL CHECK (area > 0),
			position INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (home_id) REFERENCES homes(id) ON DELETE CASCADE,
			UNIQUE (home_id, name)
		) STRICT;

		CREATE TABLE devices (
			id TEXT PRIMARY KEY,
			room_id TEXT NOT NULL,
			name TEXT NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('smart_plug', 'thermometer')),
			is_on INTEGER NOT NULL DEFAULT 0,
			capacity INTEGER NOT NULL DEFAULT 0,
			temperature INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE,
			UNIQUE (room_id, name)
		) STRICT;
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func testLayout() Layout {
	return Layout{
		Name: "Country house",
		Rooms: []RoomLayout{
			{
				Name: "Hall",
				Area: 24,
				Devices: []DeviceLayout{
					{Kind: KindThermometer, Name: "t1", Temperature: 12},
					{Kind: KindSmartPlug, Name: "s1", Capacity: 220, On: true},
					{Kind: KindSmartPlug, Name: "s2", Capacity: 120},
				},
			},
			{Name: "Bed room", Area: 12, Devices: []DeviceLayout{}},
		},
	}
}

func TestSQLiteRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupTestDB(t))

	if err := repo.Save(ctx, testLayout()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Load(ctx, "Country house")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(got.Rooms) != 2 {
		t.Fatalf("rooms = %d, want 2", len(got.Rooms))
	}
	if got.Rooms[0].Name != "Hall" || got.Rooms[1].Name != "Bed room" {
		t.Errorf("room order = %q, %q", got.Rooms[0].Name, got.Rooms[1].Name)
	}
	hall := got.Rooms[0]
	if hall.Area != 24 || len(hall.Devices) != 3 {
		t.Fatalf("hall = %+v", hall)
	}
	want := testLayout().Rooms[0].Devices
	for i := range want {
		if hall.Devices[i] != want[i] {
			t.Errorf("device %d = %+v, want %+v", i, hall.Devices[i], want[i])
		}
	}
	if len(got.Rooms[1].Devices) != 0 {
		t.Errorf("bed room devices = %v", got.Rooms[1].Devices)
	}
}

func TestSQLiteRepository_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupTestDB(t))

	if err := repo.Save(ctx, testLayout()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	smaller := Layout{Name: "Country house", Rooms: []RoomLayout{{Name: "Kitchen", Area: 9}}}
	if err := repo.Save(ctx, smaller); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := repo.Load(ctx, "Country house")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Rooms) != 1 || got.Rooms[0].Name != "Kitchen" {
		t.Errorf("rooms = %+v, want only Kitchen", got.Rooms)
	}

	names, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 1 {
		t.Errorf("List() = %v, want one home", names)
	}
}

func TestSQLiteRepository_LoadBuildsHome(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupTestDB(t))

	original, err := testLayout().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := repo.Save(ctx, Describe(original)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	l, err := repo.Load(ctx, "Country house")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	restored, err := l.Build()
	if err != nil {
		t.Fatalf("Build(loaded) error = %v", err)
	}

	want, got := original.Report(), restored.Report()
	if len(want) != len(got) {
		t.Fatalf("report lengths differ: %d vs %d", len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSQLiteRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupTestDB(t))

	if _, err := repo.Load(ctx, "nowhere"); !errors.Is(err, ErrHomeNotFound) {
		t.Errorf("Load() error = %v, want ErrHomeNotFound", err)
	}
	if err := repo.Delete(ctx, "nowhere"); !errors.Is(err, ErrHomeNotFound) {
		t.Errorf("Delete() error = %v, want ErrHomeNotFound", err)
	}
}

func TestSQLiteRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)

	if err := repo.Save(ctx, testLayout()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := repo.Save(ctx, Layout{Name: "Flat"}); err != nil {
		t.Fatalf("Save(Flat) error = %v", err)
	}

	if err := repo.Delete(ctx, "Country house"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	names, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 1 || names[0] != "Flat" {
		t.Errorf("List() = %v, want [Flat]", names)
	}

	var devices int
	if err := db.QueryRow("SELECT COUNT(*) FROM devices").Scan(&devices); err != nil {
		t.Fatalf("counting devices: %v", err)
	}
	if devices != 0 {
		t.Errorf("devices left after delete = %d", devices)
	}
}

func TestSQLiteRepository_WithRegistry(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupTestDB(t))

	h, err := testLayout().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	reg := NewRegistry(h)
	reg.SetRepository(repo)

	if err := reg.SetPlugPower(ctx, "Hall", "s2", true); err != nil {
		t.Fatalf("SetPlugPower() error = %v", err)
	}
	if _, err := reg.RemoveRoom(ctx, "Bed room"); err != nil {
		t.Fatalf("RemoveRoom() error = %v", err)
	}

	stored, err := repo.Load(ctx, "Country house")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(stored.Rooms) != 1 {
		t.Fatalf("stored rooms = %d, want 1", len(stored.Rooms))
	}
	for _, d := range stored.Rooms[0].Devices {
		if d.Name == "s2" && !d.On {
			t.Error("s2 power change was not persisted")
		}
	}
}
