package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/gray-logic-home/internal/home"
)

// ReportResponse is the body of the report endpoints.
type ReportResponse struct {
	Home  string   `json:"home"`
	Room  string   `json:"room,omitempty"`
	Rooms int      `json:"rooms"`
	Lines []string `json:"lines"`
}

// PowerRequest is the body of PUT .../power.
type PowerRequest struct {
	On *bool `json:"on"`
}

// pathParam returns the URL parameter key as a decoded name. chi matches on
// RawPath when it is set (an escaped "/" in a name), leaving the value encoded.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

// decodeBody decodes a JSON request body into v, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// handleGetHome returns the full home layout.
func (s *Server) handleGetHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Layout())
}

// handleHomeReport returns the nested home report.
func (s *Server) handleHomeReport(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ReportResponse{
		Home:  s.registry.Name(),
		Rooms: s.registry.RoomsCount(),
		Lines: s.registry.Report(),
	})
}

func (s *Server) handleHomeStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.GetStats())
}

// handleCreateRoom adds a room, optionally with devices.
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var body home.RoomLayout
	if err := decodeBody(r, &body); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	room, err := body.Build()
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	added, err := s.registry.AddRoom(r.Context(), room)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "room")

	room, ok := s.registry.Room(name)
	if !ok {
		writeNotFound(w, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// handleDeleteRoom removes a room and returns what was removed.
func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	removed, err := s.registry.RemoveRoom(r.Context(), pathParam(r, "room"))
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, removed)
}

func (s *Server) handleRoomReport(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "room")

	lines, err := s.registry.RoomReport(name)
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ReportResponse{
		Home:  s.registry.Name(),
		Room:  name,
		Rooms: s.registry.RoomsCount(),
		Lines: lines,
	})
}

// handleInstallDevice installs a new device into a room.
func (s *Server) handleInstallDevice(w http.ResponseWriter, r *http.Request) {
	var body home.DeviceLayout
	if err := decodeBody(r, &body); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	d, err := body.Build()
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	installed, err := s.registry.InstallDevice(r.Context(), pathParam(r, "room"), d)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, installed)
}

func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	d, err := s.registry.Device(pathParam(r, "room"), pathParam(r, "device"))
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleUninstallDevice(w http.ResponseWriter, r *http.Request) {
	d, err := s.registry.UninstallDevice(r.Context(), pathParam(r, "room"), pathParam(r, "device"))
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleSetPower switches a smart plug and returns its new state.
func (s *Server) handleSetPower(w http.ResponseWriter, r *http.Request) {
	var body PowerRequest
	if err := decodeBody(r, &body); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if body.On == nil {
		writeBadRequest(w, "on is required")
		return
	}

	roomName, deviceName := pathParam(r, "room"), pathParam(r, "device")
	if err := s.registry.SetPlugPower(r.Context(), roomName, deviceName, *body.On); err != nil {
		writeRegistryError(w, err)
		return
	}

	d, err := s.registry.Device(roomName, deviceName)
	if err != nil {
		// Removed concurrently after the switch.
		if errors.Is(err, home.ErrRoomNotFound) || errors.Is(err, home.ErrDeviceNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
