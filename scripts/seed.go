package main

import (
	"context"
	"log"
	"os"

	"github.com/caretrack/patientflow/backend/internal/adapters/database"
	"github.com/caretrack/patientflow/backend/internal/domain/entities"
	"github.com/caretrack/patientflow/backend/internal/infrastructure/clients/postgres"
	"github.com/caretrack/patientflow/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	// Roster tables are small enough to manage here directly
	_, err = pgClient.DB().ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS doctors (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			specialty    TEXT NOT NULL DEFAULT '',
			room         TEXT NOT NULL DEFAULT '',
			is_available BOOLEAN NOT NULL DEFAULT true,
			on_break     BOOLEAN NOT NULL DEFAULT false
		);
		CREATE TABLE IF NOT EXISTS rooms (
			id        TEXT PRIMARY KEY,
			name      TEXT NOT NULL,
			status    TEXT NOT NULL DEFAULT 'available',
			doctor_id TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		log.Fatalf("Failed to create roster tables: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				doctors,
				rooms
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	rosterRepo := database.NewRosterAdapter(pgClient)

	// 1. Seed Doctors
	doctors := []entities.Doctor{
		{ID: "dr1", Name: "Dr. Sarah Smith", Specialty: "General Medicine", Room: "Room 201", IsAvailable: true},
		{ID: "dr2", Name: "Dr. Michael Johnson", Specialty: "Cardiology", Room: "Room 205", IsAvailable: true},
		{ID: "dr3", Name: "Dr. Emily Davis", Specialty: "Dermatology", Room: "Room 203", IsAvailable: true},
	}

	for i := range doctors {
		if err := rosterRepo.UpsertDoctor(ctx, &doctors[i]); err != nil {
			log.Printf("Failed to seed doctor %s: %v", doctors[i].Name, err)
		}
	}

	// 2. Seed Rooms
	rooms := []entities.Room{
		{ID: "201", Name: "Room 201", Status: entities.RoomStatusAvailable, DoctorID: "dr1"},
		{ID: "202", Name: "Room 202", Status: entities.RoomStatusAvailable},
		{ID: "203", Name: "Room 203", Status: entities.RoomStatusCleaning},
		{ID: "204", Name: "Room 204", Status: entities.RoomStatusAvailable},
		{ID: "205", Name: "Room 205", Status: entities.RoomStatusAvailable, DoctorID: "dr2"},
		{ID: "206", Name: "Room 206", Status: entities.RoomStatusMaintenance},
	}

	for i := range rooms {
		if err := rosterRepo.UpsertRoom(ctx, &rooms[i]); err != nil {
			log.Printf("Failed to seed room %s: %v", rooms[i].Name, err)
		}
	}

	log.Printf("Seeded %d doctors and %d rooms", len(doctors), len(rooms))
}
