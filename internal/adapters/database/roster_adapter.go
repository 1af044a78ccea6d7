package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/caretrack/patientflow/backend/internal/domain/entities"
	"github.com/caretrack/patientflow/backend/internal/domain/repositories"
	"github.com/caretrack/patientflow/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/caretrack/patientflow/backend/pkg/errors"
)

// RosterAdapter implements the RosterRepository interface
type RosterAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// Column lists are shared between the select queries and the row scans
// so the two cannot drift apart.
var (
	doctorColumns = []interface{}{"id", "name", "specialty", "room", "is_available", "on_break"}
	roomColumns   = []interface{}{"id", "name", "status", "doctor_id"}
)

func doctorRecord(doctor *entities.Doctor) goqu.Record {
	return goqu.Record{
		"id":           doctor.ID,
		"name":         doctor.Name,
		"specialty":    doctor.Specialty,
		"room":         doctor.Room,
		"is_available": doctor.IsAvailable,
		"on_break":     doctor.OnBreak,
	}
}

func roomRecord(room *entities.Room) goqu.Record {
	return goqu.Record{
		"id":        room.ID,
		"name":      room.Name,
		"status":    room.Status,
		"doctor_id": room.DoctorID,
	}
}

// NewRosterAdapter creates a new roster adapter
func NewRosterAdapter(client *postgres.Client) repositories.RosterRepository {
	return &RosterAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListDoctors retrieves all provisioned doctors
func (a *RosterAdapter) ListDoctors(ctx context.Context) ([]entities.Doctor, error) {
	query, args, err := a.db.Select(doctorColumns...).
		From("doctors").
		Order(goqu.C("name").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build doctors query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list doctors", err)
	}
	defer rows.Close()

	var doctors []entities.Doctor
	for rows.Next() {
		var d entities.Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.Room, &d.IsAvailable, &d.OnBreak); err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor", err)
		}
		doctors = append(doctors, d)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate doctors", err)
	}

	return doctors, nil
}

// ListRooms retrieves all provisioned rooms
func (a *RosterAdapter) ListRooms(ctx context.Context) ([]entities.Room, error) {
	query, args, err := a.db.Select(roomColumns...).
		From("rooms").
		Order(goqu.C("name").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build rooms query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list rooms", err)
	}
	defer rows.Close()

	var rooms []entities.Room
	for rows.Next() {
		var r entities.Room
		if err := rows.Scan(&r.ID, &r.Name, &r.Status, &r.DoctorID); err != nil {
			return nil, apperrors.NewInternalError("failed to scan room", err)
		}
		rooms = append(rooms, r)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate rooms", err)
	}

	return rooms, nil
}

// UpsertDoctor creates or replaces a doctor record
func (a *RosterAdapter) UpsertDoctor(ctx context.Context, doctor *entities.Doctor) error {
	record := doctorRecord(doctor)

	query, args, err := a.db.Insert("doctors").
		Rows(record).
		OnConflict(goqu.DoUpdate("id", record)).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build doctor upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert doctor", err)
	}

	return nil
}

// UpsertRoom creates or replaces a room record
func (a *RosterAdapter) UpsertRoom(ctx context.Context, room *entities.Room) error {
	record := roomRecord(room)

	query, args, err := a.db.Insert("rooms").
		Rows(record).
		OnConflict(goqu.DoUpdate("id", record)).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build room upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert room", err)
	}

	return nil
}
