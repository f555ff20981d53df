package home

import (
	"context"
	"fmt"
	"sync"
)

// Logger defines the logging interface used by the Registry.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry owns one Home and serialises access to it.
//
// Writers (room and device changes, plug power) hold the write lock for the
// whole Home; readers share the read lock. Nothing returned by the Registry
// aliases the Home's internal state: lookups return Layout snapshots.
//
// When a Repository is set, every successful mutation is written through.
// If the write fails the mutation is undone and the error is returned.
//
// All public methods are thread-safe.
type Registry struct {
	mu     sync.RWMutex
	home   *Home
	repo   Repository
	logger Logger
}

// NewRegistry wraps h. The registry takes ownership of h; callers must not
// keep using it directly.
func NewRegistry(h *Home) *Registry {
	return &Registry{
		home:   h,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.mu.Lock()
	r.logger = logger
	r.mu.Unlock()
}

// SetRepository enables write-through persistence.
func (r *Registry) SetRepository(repo Repository) {
	r.mu.Lock()
	r.repo = repo
	r.mu.Unlock()
}

// Name returns the home name.
func (r *Registry) Name() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.home.Name()
}

// AddRoom moves room into the home and returns its snapshot.
// A name collision returns a *DuplicateNameError and room stays with the caller.
// On success the registry owns room; use the returned snapshot instead.
func (r *Registry) AddRoom(ctx context.Context, room *Room) (RoomLayout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.home.AddRoom(room); err != nil {
		return RoomLayout{}, err
	}
	if err := r.persist(ctx); err != nil {
		r.home.Remove(room.Name())
		return RoomLayout{}, err
	}

	r.logger.Info("room added", "room", room.Name(), "area", room.Area(), "devices", room.Len())
	return DescribeRoom(room), nil
}

// RemoveRoom removes the named room and returns its final snapshot.
// Returns ErrRoomNotFound if the room does not exist.
func (r *Registry) RemoveRoom(ctx context.Context, name string) (RoomLayout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.home.Remove(name)
	if !ok {
		return RoomLayout{}, fmt.Errorf("%w: %s", ErrRoomNotFound, name)
	}
	if err := r.persist(ctx); err != nil {
		r.home.rooms = append(r.home.rooms, room)
		return RoomLayout{}, err
	}

	r.logger.Info("room removed", "room", name)
	return DescribeRoom(room), nil
}

// InstallDevice moves d into the named room and returns its snapshot.
// Returns ErrRoomNotFound if the room does not exist, or a
// *DuplicateNameError if the room already has a device with d's name.
func (r *Registry) InstallDevice(ctx context.Context, roomName string, d Device) (DeviceLayout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.home.Find(roomName)
	if !ok {
		return DeviceLayout{}, fmt.Errorf("%w: %s", ErrRoomNotFound, roomName)
	}
	if err := room.Install(d); err != nil {
		return DeviceLayout{}, err
	}
	if err := r.persist(ctx); err != nil {
		room.Uninstall(d.Name())
		return DeviceLayout{}, err
	}

	r.logger.Info("device installed", "room", roomName, "device", d.Name(), "kind", d.Kind())
	return DescribeDevice(d), nil
}

// UninstallDevice removes a device from the named room and returns its final snapshot.
func (r *Registry) UninstallDevice(ctx context.Context, roomName, deviceName string) (DeviceLayout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.home.Find(roomName)
	if !ok {
		return DeviceLayout{}, fmt.Errorf("%w: %s", ErrRoomNotFound, roomName)
	}
	d, ok := room.Uninstall(deviceName)
	if !ok {
		return DeviceLayout{}, fmt.Errorf("%w: %s/%s", ErrDeviceNotFound, roomName, deviceName)
	}
	if err := r.persist(ctx); err != nil {
		room.devices = append(room.devices, d)
		return DeviceLayout{}, err
	}

	r.logger.Info("device uninstalled", "room", roomName, "device", deviceName)
	return DescribeDevice(d), nil
}

// SetPlugPower switches a smart plug on or off.
// Returns ErrNotSmartPlug if the named device is not a plug.
func (r *Registry) SetPlugPower(ctx context.Context, roomName, deviceName string, on bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.home.Find(roomName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, roomName)
	}
	d, ok := room.Find(deviceName)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrDeviceNotFound, roomName, deviceName)
	}
	plug, ok := d.(*SmartPlug)
	if !ok {
		return fmt.Errorf("%w: %s/%s is a %s", ErrNotSmartPlug, roomName, deviceName, d.Kind())
	}

	was := plug.IsOn()
	setPower(plug, on)
	if err := r.persist(ctx); err != nil {
		setPower(plug, was)
		return err
	}

	r.logger.Info("plug power set", "room", roomName, "device", deviceName, "on", on)
	return nil
}

func setPower(p *SmartPlug, on bool) {
	if on {
		p.TurnOn()
	} else {
		p.TurnOff()
	}
}

// Room returns a snapshot of the named room.
func (r *Registry) Room(name string) (RoomLayout, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.home.Find(name)
	if !ok {
		return RoomLayout{}, false
	}
	return DescribeRoom(room), true
}

// Device returns a snapshot of one device.
func (r *Registry) Device(roomName, deviceName string) (DeviceLayout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.home.Find(roomName)
	if !ok {
		return DeviceLayout{}, fmt.Errorf("%w: %s", ErrRoomNotFound, roomName)
	}
	d, ok := room.Find(deviceName)
	if !ok {
		return DeviceLayout{}, fmt.Errorf("%w: %s/%s", ErrDeviceNotFound, roomName, deviceName)
	}
	return DescribeDevice(d), nil
}

// Contains reports whether the named room exists.
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.home.Contains(name)
}

// RoomsCount returns the number of rooms.
func (r *Registry) RoomsCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.home.RoomsCount()
}

// Report returns the full home report.
func (r *Registry) Report() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.home.Report()
}

// RoomReport returns the device lines of one room.
func (r *Registry) RoomReport(name string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.home.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, name)
	}
	return room.Report(), nil
}

// Layout returns a snapshot of the whole home.
func (r *Registry) Layout() Layout {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Describe(r.home)
}

// Save writes the current home to the repository.
// It is a no-op when no repository is set.
func (r *Registry) Save(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.persist(ctx)
}

// persist writes the home through to the repository. Callers hold r.mu.
func (r *Registry) persist(ctx context.Context) error {
	if r.repo == nil {
		return nil
	}
	if err := r.repo.Save(ctx, Describe(r.home)); err != nil {
		r.logger.Error("persisting home failed", "home", r.home.Name(), "error", err)
		return fmt.Errorf("persisting home: %w", err)
	}
	return nil
}

// Stats holds registry statistics for monitoring.
type Stats struct {
	Rooms   int          `json:"rooms"`
	Devices int          `json:"devices"`
	ByKind  map[Kind]int `json:"by_kind"`
	PlugsOn int          `json:"plugs_on"`
}

// GetStats returns current registry statistics.
func (r *Registry) GetStats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		Rooms:  r.home.RoomsCount(),
		ByKind: make(map[Kind]int),
	}
	for _, room := range r.home.rooms {
		for _, d := range room.devices {
			stats.Devices++
			stats.ByKind[d.Kind()]++
			if p, ok := d.(*SmartPlug); ok && p.IsOn() {
				stats.PlugsOn++
			}
		}
	}
	return stats
}
