package entities

// RoomStatus represents the operational state of a consultation room
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusCleaning    RoomStatus = "cleaning"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// Valid reports whether s is one of the known room statuses
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusCleaning, RoomStatusMaintenance:
		return true
	default:
		return false
	}
}

// Room represents a consultation room. CurrentPatient, when set, must
// reference a patient whose Room field points back at this room.
type Room struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Status         RoomStatus `json:"status"`
	CurrentPatient string     `json:"currentPatient,omitempty"`
	DoctorID       string     `json:"doctorId,omitempty"`
}
