package home

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Repository persists home snapshots.
//
// Implementations must be safe for concurrent use.
type Repository interface {
	// Save replaces the stored snapshot of the home named l.Name.
	Save(ctx context.Context, l Layout) error

	// Load returns the stored snapshot of the named home.
	// Returns ErrHomeNotFound if none exists.
	Load(ctx context.Context, name string) (Layout, error)

	// List returns the names of all stored homes, sorted.
	List(ctx context.Context) ([]string, error)

	// Delete removes the stored snapshot of the named home.
	// Returns ErrHomeNotFound if none exists.
	Delete(ctx context.Context, name string) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed home repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save writes l in a single transaction. Rooms and devices keep their
// sequence positions so Load returns them in the same order.
func (r *SQLiteRepository) Save(ctx context.Context, l Layout) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	homeID, err := upsertHome(ctx, tx, l.Name)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM devices WHERE room_id IN (SELECT id FROM rooms WHERE home_id = ?)`, homeID); err != nil {
		return fmt.Errorf("clearing devices of home %s: %w", l.Name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE home_id = ?`, homeID); err != nil {
		return fmt.Errorf("clearing rooms of home %s: %w", l.Name, err)
	}

	for i, room := range l.Rooms {
		roomID := "room-" + uuid.NewString()
		const roomQuery = `INSERT INTO rooms (id, home_id, name, area, position) VALUES (?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, roomQuery, roomID, homeID, room.Name, room.Area, i); err != nil {
			return fmt.Errorf("inserting room %s: %w", room.Name, err)
		}

		for j, d := range room.Devices {
			const deviceQuery = `INSERT INTO devices (id, room_id, name, kind, is_on, capacity, temperature, position)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
			if _, err := tx.ExecContext(ctx, deviceQuery,
				"dev-"+uuid.NewString(), roomID, d.Name, string(d.Kind),
				boolToInt(d.On), d.Capacity, d.Temperature, j); err != nil {
				return fmt.Errorf("inserting device %s/%s: %w", room.Name, d.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing home %s: %w", l.Name, err)
	}
	return nil
}

// upsertHome returns the ID of the named home, creating the row if needed.
func upsertHome(ctx context.Context, tx *sql.Tx, name string) (string, error) {
	var id string
	err := tx.QueryRowContext(ctx, `SELECT id FROM homes WHERE name = ?`, name).Scan(&id)
	switch {
	case err == nil:
		const touch = `UPDATE homes SET updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now') WHERE id = ?`
		if _, err := tx.ExecContext(ctx, touch, id); err != nil {
			return "", fmt.Errorf("updating home %s: %w", name, err)
		}
		return id, nil
	case errors.Is(err, sql.ErrNoRows):
		id = "home-" + uuid.NewString()
		if _, err := tx.ExecContext(ctx, `INSERT INTO homes (id, name) VALUES (?, ?)`, id, name); err != nil {
			return "", fmt.Errorf("inserting home %s: %w", name, err)
		}
		return id, nil
	default:
		return "", fmt.Errorf("looking up home %s: %w", name, err)
	}
}

// Load reads the named home.
func (r *SQLiteRepository) Load(ctx context.Context, name string) (Layout, error) {
	var homeID string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM homes WHERE name = ?`, name).Scan(&homeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Layout{}, ErrHomeNotFound
		}
		return Layout{}, fmt.Errorf("looking up home %s: %w", name, err)
	}

	l := Layout{Name: name, Rooms: []RoomLayout{}}
	roomIndex, err := r.loadRooms(ctx, homeID, &l)
	if err != nil {
		return Layout{}, err
	}
	if err := r.loadDevices(ctx, homeID, &l, roomIndex); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// loadRooms appends the home's rooms to l and maps room IDs to their index.
func (r *SQLiteRepository) loadRooms(ctx context.Context, homeID string, l *Layout) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, area FROM rooms WHERE home_id = ? ORDER BY position`, homeID)
	if err != nil {
		return nil, fmt.Errorf("querying rooms: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var id string
		rl := RoomLayout{Devices: []DeviceLayout{}}
		if err := rows.Scan(&id, &rl.Name, &rl.Area); err != nil {
			return nil, fmt.Errorf("scanning room row: %w", err)
		}
		index[id] = len(l.Rooms)
		l.Rooms = append(l.Rooms, rl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating room rows: %w", err)
	}
	return index, nil
}

// loadDevices attaches devices to the rooms already in l.
func (r *SQLiteRepository) loadDevices(ctx context.Context, homeID string, l *Layout, roomIndex map[string]int) error {
	const query = `SELECT d.room_id, d.name, d.kind, d.is_on, d.capacity, d.temperature
		FROM devices d JOIN rooms r ON r.id = d.room_id
		WHERE r.home_id = ?
		ORDER BY r.position, d.position`
	rows, err := r.db.QueryContext(ctx, query, homeID)
	if err != nil {
		return fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var roomID, kind string
		var on int
		var d DeviceLayout
		if err := rows.Scan(&roomID, &d.Name, &kind, &on, &d.Capacity, &d.Temperature); err != nil {
			return fmt.Errorf("scanning device row: %w", err)
		}
		d.Kind = Kind(kind)
		d.On = on != 0

		i, ok := roomIndex[roomID]
		if !ok {
			continue
		}
		l.Rooms[i].Devices = append(l.Rooms[i].Devices, d)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating device rows: %w", err)
	}
	return nil
}

// List returns the names of all stored homes.
func (r *SQLiteRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM homes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying homes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning home row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating home rows: %w", err)
	}
	return names, nil
}

// Delete removes the named home with its rooms and devices.
func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	var homeID string
	if err := tx.QueryRowContext(ctx, `SELECT id FROM homes WHERE name = ?`, name).Scan(&homeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrHomeNotFound
		}
		return fmt.Errorf("looking up home %s: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM devices WHERE room_id IN (SELECT id FROM rooms WHERE home_id = ?)`, homeID); err != nil {
		return fmt.Errorf("deleting devices of home %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE home_id = ?`, homeID); err != nil {
		return fmt.Errorf("deleting rooms of home %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM homes WHERE id = ?`, homeID); err != nil {
		return fmt.Errorf("deleting home %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete of home %s: %w", name, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
