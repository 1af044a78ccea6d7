package handlers

import (
	"net/http"

	"github.com/caretrack/patientflow/backend/internal/domain/entities"
)

// RosterService exposes the coordinator's live roster views
type RosterService interface {
	Doctors() []entities.Doctor
	Rooms() []entities.Room
}

// RosterHandler handles doctor and room roster HTTP requests
type RosterHandler struct {
	roster RosterService
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(roster RosterService) *RosterHandler {
	return &RosterHandler{
		roster: roster,
	}
}

// ListDoctors handles GET /api/doctors
func (h *RosterHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors := h.roster.Doctors()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// ListRooms handles GET /api/rooms
func (h *RosterHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.roster.Rooms()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"rooms": rooms,
		"count": len(rooms),
	})
}
