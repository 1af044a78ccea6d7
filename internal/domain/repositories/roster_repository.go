package repositories

import (
	"context"

	"github.com/caretrack/patientflow/backend/internal/domain/entities"
)

// RosterRepository defines the interface for the provisioned roster of
// doctors and consultation rooms. The roster is managed out of band
// (admin tooling, seed scripts); the queue coordinator only reads it
// at startup.
type RosterRepository interface {
	// ListDoctors retrieves all provisioned doctors
	ListDoctors(ctx context.Context) ([]entities.Doctor, error)

	// ListRooms retrieves all provisioned rooms
	ListRooms(ctx context.Context) ([]entities.Room, error)

	// UpsertDoctor creates or replaces a doctor record
	UpsertDoctor(ctx context.Context, doctor *entities.Doctor) error

	// UpsertRoom creates or replaces a room record
	UpsertRoom(ctx context.Context, room *entities.Room) error
}
