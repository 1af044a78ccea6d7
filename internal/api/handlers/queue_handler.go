package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/caretrack/patientflow/backend/internal/domain/entities"
	apperrors "github.com/caretrack/patientflow/backend/pkg/errors"
)

// QueueService defines the coordinator operations the HTTP layer depends on
type QueueService interface {
	Snapshot() entities.QueueSnapshot
	ActiveQueue(doctorID string) []entities.Patient
	RankedQueue(doctorID string) []entities.Patient
	NextWaiting(doctorID string) *entities.Patient
	Stats() entities.QueueStats
	Intake(data entities.Patient) entities.Patient
	SetStatus(patientID string, status entities.PatientStatus) bool
	SetPriority(patientID string, priority entities.Priority) bool
	ReassignDoctor(patientID, doctorID string) bool
	SetDoctorAvailability(doctorID string, isAvailable bool, onBreak *bool) bool
	SetRoomStatus(roomID string, status entities.RoomStatus, patientID string) bool
}

// QueueHandler handles queue-related HTTP requests
type QueueHandler struct {
	queue QueueService
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(queue QueueService) *QueueHandler {
	return &QueueHandler{
		queue: queue,
	}
}

// queueMutationRequest is the discriminated POST /api/queue payload.
// Action selects the operation; the other fields are per-action.
type queueMutationRequest struct {
	Action         string            `json:"action"`
	Patient        *entities.Patient `json:"patient,omitempty"`
	PatientID      string            `json:"patientId,omitempty"`
	Status         string            `json:"status,omitempty"`
	Priority       string            `json:"priority,omitempty"`
	DoctorID       string            `json:"doctorId,omitempty"`
	RoomID         string            `json:"roomId,omitempty"`
	RoomStatus     string            `json:"roomStatus,omitempty"`
	CurrentPatient string            `json:"currentPatient,omitempty"`
	IsAvailable    *bool             `json:"isAvailable,omitempty"`
	OnBreak        *bool             `json:"onBreak,omitempty"`
}

// GetQueue handles GET /api/queue
// ?action=stats returns aggregate statistics, ?action=state returns the
// full snapshot, ?doctorId=X returns that doctor's ranked queue, and the
// bare endpoint returns the raw active queue.
func (h *QueueHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	doctorID := query.Get("doctorId")

	switch query.Get("action") {
	case "stats":
		respondWithJSON(w, http.StatusOK, h.queue.Stats())
		return
	case "state":
		respondWithJSON(w, http.StatusOK, h.queue.Snapshot())
		return
	case "":
		// Fall through to queue listing
	default:
		respondWithAppError(w, apperrors.NewValidationError("unknown action"))
		return
	}

	var patients []entities.Patient
	if doctorID != "" {
		patients = h.queue.RankedQueue(doctorID)
	} else {
		patients = h.queue.ActiveQueue("")
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": patients,
		"count":    len(patients),
	})
}

// MutateQueue handles POST /api/queue
func (h *QueueHandler) MutateQueue(w http.ResponseWriter, r *http.Request) {
	var req queueMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithAppError(w, apperrors.NewValidationError("invalid request body"))
		return
	}

	switch req.Action {
	case "add":
		h.handleAdd(w, &req)
	case "updateStatus":
		h.handleUpdateStatus(w, &req)
	case "updatePriority":
		h.handleUpdatePriority(w, &req)
	case "movePatient":
		h.handleMovePatient(w, &req)
	case "updateDoctor":
		h.handleUpdateDoctor(w, &req)
	case "updateRoom":
		h.handleUpdateRoom(w, &req)
	case "nextPatient":
		h.handleNextPatient(w, &req)
	case "":
		respondWithAppError(w, apperrors.NewValidationError("action is required"))
	default:
		respondWithAppError(w, apperrors.NewValidationError("unknown action"))
	}
}

// GetNextPatient handles GET /api/queue/next
func (h *QueueHandler) GetNextPatient(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.queue.NextWaiting(r.URL.Query().Get("doctorId")))
}

func (h *QueueHandler) handleAdd(w http.ResponseWriter, req *queueMutationRequest) {
	if req.Patient == nil {
		respondWithAppError(w, apperrors.NewValidationError("patient is required"))
		return
	}
	if req.Patient.Name == "" {
		respondWithAppError(w, apperrors.NewValidationError("patient name is required"))
		return
	}
	if req.Patient.DoctorID == "" {
		respondWithAppError(w, apperrors.NewValidationError("doctorId is required"))
		return
	}
	if req.Patient.Priority != "" && !req.Patient.Priority.Valid() {
		respondWithAppError(w, apperrors.NewValidationError("invalid priority"))
		return
	}
	if req.Patient.Status != "" && !req.Patient.Status.Valid() {
		respondWithAppError(w, apperrors.NewValidationError("invalid status"))
		return
	}

	created := h.queue.Intake(*req.Patient)
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *QueueHandler) handleUpdateStatus(w http.ResponseWriter, req *queueMutationRequest) {
	if req.PatientID == "" {
		respondWithAppError(w, apperrors.NewValidationError("patientId is required"))
		return
	}

	status := entities.PatientStatus(req.Status)
	if !status.Valid() {
		respondWithAppError(w, apperrors.NewValidationError("invalid status"))
		return
	}

	if !h.queue.SetStatus(req.PatientID, status) {
		respondWithAppError(w, apperrors.NewNotFoundError("patient not found"))
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *QueueHandler) handleUpdatePriority(w http.ResponseWriter, req *queueMutationRequest) {
	if req.PatientID == "" {
		respondWithAppError(w, apperrors.NewValidationError("patientId is required"))
		return
	}

	priority := entities.Priority(req.Priority)
	if !priority.Valid() {
		respondWithAppError(w, apperrors.NewValidationError("invalid priority"))
		return
	}

	if !h.queue.SetPriority(req.PatientID, priority) {
		respondWithAppError(w, apperrors.NewNotFoundError("patient not found"))
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *QueueHandler) handleMovePatient(w http.ResponseWriter, req *queueMutationRequest) {
	if req.PatientID == "" {
		respondWithAppError(w, apperrors.NewValidationError("patientId is required"))
		return
	}
	if req.DoctorID == "" {
		respondWithAppError(w, apperrors.NewValidationError("doctorId is required"))
		return
	}

	if !h.queue.ReassignDoctor(req.PatientID, req.DoctorID) {
		respondWithAppError(w, apperrors.NewNotFoundError("patient or doctor not found"))
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *QueueHandler) handleNextPatient(w http.ResponseWriter, req *queueMutationRequest) {
	if req.DoctorID == "" {
		respondWithAppError(w, apperrors.NewValidationError("doctorId is required"))
		return
	}
	respondWithJSON(w, http.StatusOK, h.queue.NextWaiting(req.DoctorID))
}

func (h *QueueHandler) handleUpdateDoctor(w http.ResponseWriter, req *queueMutationRequest) {
	if req.DoctorID == "" {
		respondWithAppError(w, apperrors.NewValidationError("doctorId is required"))
		return
	}
	if req.IsAvailable == nil {
		respondWithAppError(w, apperrors.NewValidationError("isAvailable is required"))
		return
	}

	if !h.queue.SetDoctorAvailability(req.DoctorID, *req.IsAvailable, req.OnBreak) {
		respondWithAppError(w, apperrors.NewNotFoundError("doctor not found"))
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *QueueHandler) handleUpdateRoom(w http.ResponseWriter, req *queueMutationRequest) {
	if req.RoomID == "" {
		respondWithAppError(w, apperrors.NewValidationError("roomId is required"))
		return
	}

	status := entities.RoomStatus(req.RoomStatus)
	if !status.Valid() {
		respondWithAppError(w, apperrors.NewValidationError("invalid room status"))
		return
	}

	if !h.queue.SetRoomStatus(req.RoomID, status, req.CurrentPatient) {
		respondWithAppError(w, apperrors.NewNotFoundError("room or patient not found"))
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithAppError(w http.ResponseWriter, appErr *apperrors.AppError) {
	respondWithJSON(w, httpStatusFor(appErr.Type), map[string]string{
		"error": appErr.Message,
	})
}

func httpStatusFor(errType apperrors.ErrorType) int {
	switch errType {
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrorTypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
