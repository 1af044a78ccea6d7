package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caretrack/patientflow/backend/internal/api/handlers"
	"github.com/caretrack/patientflow/backend/internal/domain/entities"
)

// stubQueueService records calls and returns canned data
type stubQueueService struct {
	stats    entities.QueueStats
	snapshot entities.QueueSnapshot
	active   []entities.Patient
	ranked   []entities.Patient
	next     *entities.Patient

	intaken        []entities.Patient
	statusCalls    []string
	priorityCalls  []string
	moveCalls      [][2]string
	doctorCalls    []string
	roomCalls      []string
	mutationResult bool
}

func (s *stubQueueService) Snapshot() entities.QueueSnapshot      { return s.snapshot }
func (s *stubQueueService) ActiveQueue(string) []entities.Patient { return s.active }
func (s *stubQueueService) RankedQueue(string) []entities.Patient { return s.ranked }
func (s *stubQueueService) NextWaiting(string) *entities.Patient  { return s.next }
func (s *stubQueueService) Stats() entities.QueueStats            { return s.stats }

func (s *stubQueueService) Intake(data entities.Patient) entities.Patient {
	data.ID = "generated-id"
	s.intaken = append(s.intaken, data)
	return data
}

func (s *stubQueueService) SetStatus(patientID string, status entities.PatientStatus) bool {
	s.statusCalls = append(s.statusCalls, patientID)
	return s.mutationResult
}

func (s *stubQueueService) SetPriority(patientID string, priority entities.Priority) bool {
	s.priorityCalls = append(s.priorityCalls, patientID)
	return s.mutationResult
}

func (s *stubQueueService) ReassignDoctor(patientID, doctorID string) bool {
	s.moveCalls = append(s.moveCalls, [2]string{patientID, doctorID})
	return s.mutationResult
}

func (s *stubQueueService) SetDoctorAvailability(doctorID string, isAvailable bool, onBreak *bool) bool {
	s.doctorCalls = append(s.doctorCalls, doctorID)
	return s.mutationResult
}

func (s *stubQueueService) SetRoomStatus(roomID string, status entities.RoomStatus, patientID string) bool {
	s.roomCalls = append(s.roomCalls, roomID)
	return s.mutationResult
}

func TestQueueHandler_GetQueue_Stats(t *testing.T) {
	service := &stubQueueService{
		stats: entities.QueueStats{TotalActive: 4, WaitingCount: 3, AvgWaitMinutes: 12},
	}
	handler := handlers.NewQueueHandler(service)

	req := httptest.NewRequest("GET", "/api/queue?action=stats", nil)
	w := httptest.NewRecorder()

	handler.GetQueue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats entities.QueueStats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, 4, stats.TotalActive)
	assert.Equal(t, 3, stats.WaitingCount)
	assert.Equal(t, 12, stats.AvgWaitMinutes)
}

func TestQueueHandler_GetQueue_State(t *testing.T) {
	service := &stubQueueService{
		snapshot: entities.QueueSnapshot{
			Doctors:  []entities.Doctor{{ID: "dr1", Name: "Dr. Sarah Chen"}},
			Patients: []entities.Patient{{ID: "p1", Name: "Ade"}},
			Rooms:    []entities.Room{{ID: "r1", Name: "Room 201"}},
		},
	}
	handler := handlers.NewQueueHandler(service)

	req := httptest.NewRequest("GET", "/api/queue?action=state", nil)
	w := httptest.NewRecorder()

	handler.GetQueue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var snapshot entities.QueueSnapshot
	require.NoError(t, json.NewDecoder(w.Body).Decode(&snapshot))
	assert.Len(t, snapshot.Doctors, 1)
	assert.Len(t, snapshot.Patients, 1)
	assert.Len(t, snapshot.Rooms, 1)
}

func TestQueueHandler_GetQueue_RankedForDoctor(t *testing.T) {
	service := &stubQueueService{
		ranked: []entities.Patient{{ID: "p2"}, {ID: "p1"}},
		active: []entities.Patient{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
	}
	handler := handlers.NewQueueHandler(service)

	req := httptest.NewRequest("GET", "/api/queue?doctorId=dr1", nil)
	w := httptest.NewRecorder()

	handler.GetQueue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Patients []entities.Patient `json:"patients"`
		Count    int                `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, "p2", response.Patients[0].ID)
}

func TestQueueHandler_GetQueue_UnknownAction(t *testing.T) {
	handler := handlers.NewQueueHandler(&stubQueueService{})

	req := httptest.NewRequest("GET", "/api/queue?action=teleport", nil)
	w := httptest.NewRecorder()

	handler.GetQueue(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueueHandler_MutateQueue_Add(t *testing.T) {
	service := &stubQueueService{mutationResult: true}
	handler := handlers.NewQueueHandler(service)

	body := `{"action":"add","patient":{"name":"Kemi Afolabi","doctorId":"dr1","priority":"high","reason":"Chest pain"}}`
	req := httptest.NewRequest("POST", "/api/queue", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.MutateQueue(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, service.intaken, 1)
	assert.Equal(t, "Kemi Afolabi", service.intaken[0].Name)
	assert.Equal(t, entities.PriorityHigh, service.intaken[0].Priority)

	var created entities.Patient
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "generated-id", created.ID)
}

func TestQueueHandler_MutateQueue_Add_MissingFields(t *testing.T) {
	service := &stubQueueService{mutationResult: true}
	handler := handlers.NewQueueHandler(service)

	cases := []struct {
		name string
		body string
	}{
		{"no patient", `{"action":"add"}`},
		{"no name", `{"action":"add","patient":{"doctorId":"dr1"}}`},
		{"no doctor", `{"action":"add","patient":{"name":"Ade"}}`},
		{"bad priority", `{"action":"add","patient":{"name":"Ade","doctorId":"dr1","priority":"critical"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/queue", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			handler.MutateQueue(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, service.intaken)
		})
	}
}

func TestQueueHandler_MutateQueue_UpdateStatus(t *testing.T) {
	service := &stubQueueService{mutationResult: true}
	handler := handlers.NewQueueHandler(service)

	body := `{"action":"updateStatus","patientId":"p1","status":"in-progress"}`
	req := httptest.NewRequest("POST", "/api/queue", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.MutateQueue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"p1"}, service.statusCalls)

	var response map[string]bool
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response["success"])
}

func TestQueueHandler_MutateQueue_UpdateStatus_InvalidStatus(t *testing.T) {
	service := &stubQueueService{mutationResult: true}
	handler := handlers.NewQueueHandler(service)

	body := `{"action":"updateStatus","patientId":"p1","status":"vanished"}`
	req := httptest.NewRequest("POST", "/api/queue", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.MutateQueue(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.statusCalls)
}

func TestQueueHandler_MutateQueue_UpdateStatus_NotFound(t *testing.T) {
	service := &stubQueueService{mutationResult: false}
	handler := handlers.NewQueueHandler(service)

	body := `{"action":"updateStatus","patientId":"ghost","status":"completed"}`
	req := httptest.NewRequest("POST", "/api/queue", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.MutateQueue(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQueueHandler_MutateQueue_MovePatient(t *testing.T) {
	service := &stubQueueService{mutationResult: true}
	handler := handlers.NewQueueHandler(service)

	body := `{"action":"movePatient","patientId":"p1","doctorId":"dr2"}`
	req := httptest.NewRequest("POST", "/api/queue", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.MutateQueue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, service.moveCalls, 1)
	assert.Equal(t, [2]string{"p1", "dr2"}, service.moveCalls[0])
}

func TestQueueHandler_MutateQueue_UpdateDoctor(t *testing.T) {
	service := &stubQueueService{mutationResult: true}
	handler := handlers.NewQueueHandler(service)

	body := `{"action":"updateDoctor","doctorId":"dr1","isAvailable":false,"onBreak":true}`
	req := httptest.NewRequest("POST", "/api/queue", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.MutateQueue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"dr1"}, service.doctorCalls)
}

func TestQueueHandler_MutateQueue_UpdateDoctor_MissingAvailability(t *testing.T) {
	service := &stubQueueService{mutationResult: true}
	handler := handlers.NewQueueHandler(service)

	body := `{"action":"updateDoctor","doctorId":"dr1"}`
	req := httptest.NewRequest("POST", "/api/queue", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.MutateQueue(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.doctorCalls)
}

func TestQueueHandler_MutateQueue_UpdateRoom(t *testing.T) {
	service := &stubQueueService{mutationResult: true}
	handler := handlers.NewQueueHandler(service)

	body := `{"action":"updateRoom","roomId":"r1","roomStatus":"occupied","currentPatient":"p1"}`
	req := httptest.NewRequest("POST", "/api/queue", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.MutateQueue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"r1"}, service.roomCalls)
}

func TestQueueHandler_MutateQueue_NextPatient(t *testing.T) {
	service := &stubQueueService{
		next: &entities.Patient{ID: "p9", Name: "Tunde Bakare"},
	}
	handler := handlers.NewQueueHandler(service)

	body := `{"action":"nextPatient","doctorId":"dr1"}`
	req := httptest.NewRequest("POST", "/api/queue", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.MutateQueue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var patient entities.Patient
	require.NoError(t, json.NewDecoder(w.Body).Decode(&patient))
	assert.Equal(t, "p9", patient.ID)
}

func TestQueueHandler_MutateQueue_NextPatientRequiresDoctor(t *testing.T) {
	service := &stubQueueService{
		next: &entities.Patient{ID: "p9", Name: "Tunde Bakare"},
	}
	handler := handlers.NewQueueHandler(service)

	body := `{"action":"nextPatient"}`
	req := httptest.NewRequest("POST", "/api/queue", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.MutateQueue(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "doctorId is required")
}

func TestQueueHandler_MutateQueue_UnknownAction(t *testing.T) {
	handler := handlers.NewQueueHandler(&stubQueueService{})

	body := `{"action":"discharge"}`
	req := httptest.NewRequest("POST", "/api/queue", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.MutateQueue(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueueHandler_GetNextPatient_Empty(t *testing.T) {
	handler := handlers.NewQueueHandler(&stubQueueService{next: nil})

	req := httptest.NewRequest("GET", "/api/queue/next?doctorId=dr1", nil)
	w := httptest.NewRecorder()

	handler.GetNextPatient(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null\n", w.Body.String())
}
