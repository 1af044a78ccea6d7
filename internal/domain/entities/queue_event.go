package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// QueueEventType represents the type of queue update event
type QueueEventType string

const (
	QueueEventTypePatientAdded   QueueEventType = "patient_added"
	QueueEventTypeStatusUpdate   QueueEventType = "status_update"
	QueueEventTypePriorityUpdate QueueEventType = "priority_update"
	QueueEventTypePatientMoved   QueueEventType = "patient_moved"
	QueueEventTypeDoctorUpdate   QueueEventType = "doctor_update"
	QueueEventTypeRoomUpdate     QueueEventType = "room_update"
	QueueEventTypeWaitTimeUpdate QueueEventType = "wait_time_update"
)

// QueueEvent represents a real-time update to the patient queue.
// DoctorID is empty for events that are not scoped to one doctor's
// queue (room updates, global wait-time refreshes).
type QueueEvent struct {
	ID            string                 `json:"id"`
	DoctorID      string                 `json:"doctorId,omitempty"`
	EventType     QueueEventType         `json:"eventType"`
	Timestamp     time.Time              `json:"timestamp"`
	ChangedFields map[string]interface{} `json:"changedFields,omitempty"`
}

// NewQueueEvent creates a new queue event
func NewQueueEvent(doctorID string, eventType QueueEventType, changedFields map[string]interface{}) *QueueEvent {
	return &QueueEvent{
		ID:            generateEventID(),
		DoctorID:      doctorID,
		EventType:     eventType,
		Timestamp:     time.Now(),
		ChangedFields: changedFields,
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
