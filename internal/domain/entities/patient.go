package entities

import (
	"time"
)

// Priority represents the clinical urgency of a queued patient
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Weight returns the ordering weight of a priority. Higher weight is
// served first. Unknown values weigh 0 and sort below "low".
func (p Priority) Weight() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the known priority levels
func (p Priority) Valid() bool {
	return p.Weight() > 0
}

// PatientStatus represents where a patient is in the visit lifecycle
type PatientStatus string

const (
	PatientStatusScheduled  PatientStatus = "scheduled"
	PatientStatusWaiting    PatientStatus = "waiting"
	PatientStatusInProgress PatientStatus = "in-progress"
	PatientStatusCompleted  PatientStatus = "completed"
	PatientStatusCancelled  PatientStatus = "cancelled"
)

// Valid reports whether s is one of the known patient statuses
func (s PatientStatus) Valid() bool {
	switch s {
	case PatientStatusScheduled, PatientStatusWaiting, PatientStatusInProgress,
		PatientStatusCompleted, PatientStatusCancelled:
		return true
	default:
		return false
	}
}

// Patient is a waiting-room record, not the clinical patient profile.
// DoctorName and Room are denormalized from the assigned Doctor so the
// portal can render a queue row without a join; ReassignDoctor is the
// single write path that refreshes them.
type Patient struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Email             string        `json:"email"`
	Phone             string        `json:"phone"`
	AppointmentTime   string        `json:"appointmentTime"`
	DoctorID          string        `json:"doctorId"`
	DoctorName        string        `json:"doctorName"`
	Room              string        `json:"room"`
	Reason            string        `json:"reason"`
	Priority          Priority      `json:"priority"`
	Status            PatientStatus `json:"status"`
	WaitTime          int           `json:"waitTime"`
	EstimatedDuration int           `json:"estimatedDuration"`
	CheckedInAt       *time.Time    `json:"checkedInAt,omitempty"`
	CalledAt          *time.Time    `json:"calledAt,omitempty"`
	CompletedAt       *time.Time    `json:"completedAt,omitempty"`
}

// Active reports whether the patient still belongs in queue views.
// Cancelled patients remain visible; only completed ones drop out.
func (p *Patient) Active() bool {
	return p.Status != PatientStatusCompleted
}
