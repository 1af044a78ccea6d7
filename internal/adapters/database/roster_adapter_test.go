package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caretrack/patientflow/backend/internal/domain/entities"
)

func TestRoomRecord_CarriesDoctorAssignment(t *testing.T) {
	room := entities.Room{
		ID:       "205",
		Name:     "Room 205",
		Status:   entities.RoomStatusAvailable,
		DoctorID: "dr2",
	}

	record := roomRecord(&room)

	assert.Equal(t, "205", record["id"])
	assert.Equal(t, "Room 205", record["name"])
	assert.Equal(t, entities.RoomStatusAvailable, record["status"])
	assert.Equal(t, "dr2", record["doctor_id"])
}

func TestRoomColumns_MatchScanOrder(t *testing.T) {
	// ListRooms scans ID, Name, Status, DoctorID in that order.
	assert.Equal(t, []interface{}{"id", "name", "status", "doctor_id"}, roomColumns)
}

func TestDoctorRecord_CoversAllFields(t *testing.T) {
	doctor := entities.Doctor{
		ID:          "dr1",
		Name:        "Dr. Sarah Smith",
		Specialty:   "General Medicine",
		Room:        "Room 201",
		IsAvailable: true,
		OnBreak:     false,
	}

	record := doctorRecord(&doctor)

	assert.Len(t, record, len(doctorColumns))
	for _, col := range doctorColumns {
		assert.Contains(t, record, col)
	}
	assert.Equal(t, "Dr. Sarah Smith", record["name"])
	assert.Equal(t, true, record["is_available"])
}
