package services

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/caretrack/patientflow/backend/internal/domain/entities"
	"github.com/caretrack/patientflow/backend/internal/domain/providers"
	"github.com/caretrack/patientflow/backend/internal/infrastructure/observability"
)

// QueueCoordinator owns the live waiting-room state: every patient in
// the queue plus the doctor and room rosters. All reads and writes are
// serialized by a single mutex so a ranked-queue read never observes a
// half-applied priority change. Queries hand out copies; the only way
// to mutate state is through the coordinator's own methods.
//
// Patient records are retained after completion or cancellation; they
// simply drop out of active queries.
type QueueCoordinator struct {
	mu       sync.Mutex
	patients []entities.Patient
	doctors  []entities.Doctor
	rooms    []entities.Room

	now      func() time.Time
	eventBus providers.EventBus
	metrics  *observability.Metrics
}

// NewQueueCoordinator creates a coordinator seeded with the provisioned
// doctor and room rosters. The rosters are copied; the caller's slices
// are not retained.
func NewQueueCoordinator(doctors []entities.Doctor, rooms []entities.Room) *QueueCoordinator {
	return NewQueueCoordinatorWithClock(doctors, rooms, time.Now)
}

// NewQueueCoordinatorWithClock creates a coordinator with an injectable
// clock so wait-time accrual can be driven deterministically in tests.
func NewQueueCoordinatorWithClock(doctors []entities.Doctor, rooms []entities.Room, clock func() time.Time) *QueueCoordinator {
	c := &QueueCoordinator{
		doctors: make([]entities.Doctor, len(doctors)),
		rooms:   make([]entities.Room, len(rooms)),
		now:     clock,
	}
	copy(c.doctors, doctors)
	copy(c.rooms, rooms)
	return c
}

// SetEventBus configures the optional event bus for real-time queue
// updates. Without a bus the coordinator is polling-only.
func (c *QueueCoordinator) SetEventBus(bus providers.EventBus) {
	c.eventBus = bus
}

// SetMetrics configures the optional metrics sink; published events are
// counted per channel.
func (c *QueueCoordinator) SetMetrics(metrics *observability.Metrics) {
	c.metrics = metrics
}

// Snapshot returns the full queue state: all patient records plus the
// doctor and room rosters.
func (c *QueueCoordinator) Snapshot() entities.QueueSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := entities.QueueSnapshot{
		Doctors:  make([]entities.Doctor, len(c.doctors)),
		Patients: make([]entities.Patient, len(c.patients)),
		Rooms:    make([]entities.Room, len(c.rooms)),
	}
	copy(snap.Doctors, c.doctors)
	copy(snap.Patients, c.patients)
	copy(snap.Rooms, c.rooms)
	return snap
}

// ActiveQueue returns active patients (status != completed), optionally
// filtered to one doctor when doctorID is non-empty. This is the raw,
// unordered view; use RankedQueue when call order matters.
func (c *QueueCoordinator) ActiveQueue(doctorID string) []entities.Patient {
	c.mu.Lock()
	defer c.mu.Unlock()

	queue := make([]entities.Patient, 0)
	for i := range c.patients {
		p := &c.patients[i]
		if !p.Active() {
			continue
		}
		if doctorID != "" && p.DoctorID != doctorID {
			continue
		}
		queue = append(queue, *p)
	}
	return queue
}

// RankedQueue returns one doctor's active patients in call order:
// priority weight descending, then check-in time ascending. A patient
// without a check-in timestamp sorts as if checked in right now, i.e.
// last within its priority tier.
func (c *QueueCoordinator) RankedQueue(doctorID string) []entities.Patient {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rankedQueueLocked(doctorID)
}

func (c *QueueCoordinator) rankedQueueLocked(doctorID string) []entities.Patient {
	queue := make([]entities.Patient, 0)
	for i := range c.patients {
		p := &c.patients[i]
		if p.Active() && p.DoctorID == doctorID {
			queue = append(queue, *p)
		}
	}

	now := c.now()
	checkIn := func(p *entities.Patient) time.Time {
		if p.CheckedInAt != nil {
			return *p.CheckedInAt
		}
		return now
	}

	sort.SliceStable(queue, func(i, j int) bool {
		if wi, wj := queue[i].Priority.Weight(), queue[j].Priority.Weight(); wi != wj {
			return wi > wj
		}
		return checkIn(&queue[i]).Before(checkIn(&queue[j]))
	})
	return queue
}

// NextWaiting returns the first waiting patient in the doctor's ranked
// queue, or nil when nobody is waiting. In-progress and
// scheduled-but-not-checked-in patients are never returned.
func (c *QueueCoordinator) NextWaiting(doctorID string) *entities.Patient {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.rankedQueueLocked(doctorID) {
		if p.Status == entities.PatientStatusWaiting {
			next := p
			return &next
		}
	}
	return nil
}

// Stats aggregates the current queue state
func (c *QueueCoordinator) Stats() entities.QueueStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := entities.QueueStats{TotalRooms: len(c.rooms)}

	waitSum := 0
	for i := range c.patients {
		p := &c.patients[i]
		if p.Active() {
			stats.TotalActive++
		}
		switch p.Status {
		case entities.PatientStatusWaiting:
			stats.WaitingCount++
			waitSum += p.WaitTime
		case entities.PatientStatusInProgress:
			stats.InProgressCount++
		}
	}
	if stats.WaitingCount > 0 {
		stats.AvgWaitMinutes = int(math.Round(float64(waitSum) / float64(stats.WaitingCount)))
	}

	for i := range c.rooms {
		if c.rooms[i].Status == entities.RoomStatusAvailable {
			stats.AvailableRooms++
		}
	}
	return stats
}

// Doctors returns the doctor roster
func (c *QueueCoordinator) Doctors() []entities.Doctor {
	c.mu.Lock()
	defer c.mu.Unlock()

	doctors := make([]entities.Doctor, len(c.doctors))
	copy(doctors, c.doctors)
	return doctors
}

// Rooms returns the room roster
func (c *QueueCoordinator) Rooms() []entities.Room {
	c.mu.Lock()
	defer c.mu.Unlock()

	rooms := make([]entities.Room, len(c.rooms))
	copy(rooms, c.rooms)
	return rooms
}

// Intake adds a new patient to the queue. The coordinator assigns a
// fresh id, zeroes the wait time, and stamps the check-in; the status
// comes from the caller and defaults to waiting.
func (c *QueueCoordinator) Intake(data entities.Patient) entities.Patient {
	c.mu.Lock()

	now := c.now()
	data.ID = uuid.New().String()
	data.WaitTime = 0
	data.CheckedInAt = &now
	if !data.Status.Valid() {
		data.Status = entities.PatientStatusWaiting
	}
	if !data.Priority.Valid() {
		data.Priority = entities.PriorityNormal
	}

	c.patients = append(c.patients, data)
	c.recomputeWaitTimesLocked(now)
	c.mu.Unlock()

	c.publish(entities.NewQueueEvent(data.DoctorID, entities.QueueEventTypePatientAdded, map[string]interface{}{
		"patientId": data.ID,
		"priority":  data.Priority,
		"status":    data.Status,
	}))
	return data
}

// SetStatus updates a patient's status. The transition graph is
// deliberately unvalidated so staff can correct mistakes (e.g. undo a
// premature completion), but the calledAt/completedAt timestamps are
// set exactly once and never overwritten. Returns false when no such
// patient exists.
func (c *QueueCoordinator) SetStatus(patientID string, status entities.PatientStatus) bool {
	c.mu.Lock()

	p := c.findPatientLocked(patientID)
	if p == nil {
		c.mu.Unlock()
		return false
	}

	// Refresh accruals before the transition so a patient leaving the
	// waiting state freezes at the full minutes actually waited.
	now := c.now()
	c.recomputeWaitTimesLocked(now)

	p.Status = status
	switch status {
	case entities.PatientStatusInProgress:
		if p.CalledAt == nil {
			called := now
			p.CalledAt = &called
		}
	case entities.PatientStatusCompleted:
		if p.CompletedAt == nil {
			completed := now
			p.CompletedAt = &completed
		}
	}

	doctorID := p.DoctorID
	c.recomputeWaitTimesLocked(now)
	c.mu.Unlock()

	c.publish(entities.NewQueueEvent(doctorID, entities.QueueEventTypeStatusUpdate, map[string]interface{}{
		"patientId": patientID,
		"status":    status,
	}))
	return true
}

// SetPriority overwrites a patient's priority; the ranked queue
// reorders immediately, with check-in time still breaking ties.
// Returns false when no such patient exists.
func (c *QueueCoordinator) SetPriority(patientID string, priority entities.Priority) bool {
	c.mu.Lock()

	p := c.findPatientLocked(patientID)
	if p == nil {
		c.mu.Unlock()
		return false
	}

	p.Priority = priority
	doctorID := p.DoctorID
	c.recomputeWaitTimesLocked(c.now())
	c.mu.Unlock()

	c.publish(entities.NewQueueEvent(doctorID, entities.QueueEventTypePriorityUpdate, map[string]interface{}{
		"patientId": patientID,
		"priority":  priority,
	}))
	return true
}

// ReassignDoctor moves a patient to another doctor's queue and
// refreshes the denormalized doctorName/room cache from the target
// doctor. Room.CurrentPatient is not touched; callers that placed the
// patient in a room issue a separate SetRoomStatus. Returns false when
// the patient or the doctor does not exist.
func (c *QueueCoordinator) ReassignDoctor(patientID, doctorID string) bool {
	c.mu.Lock()

	p := c.findPatientLocked(patientID)
	d := c.findDoctorLocked(doctorID)
	if p == nil || d == nil {
		c.mu.Unlock()
		return false
	}

	p.DoctorID = d.ID
	p.DoctorName = d.Name
	p.Room = d.Room
	c.recomputeWaitTimesLocked(c.now())
	c.mu.Unlock()

	c.publish(entities.NewQueueEvent(doctorID, entities.QueueEventTypePatientMoved, map[string]interface{}{
		"patientId": patientID,
	}))
	return true
}

// SetDoctorAvailability updates a doctor's availability flags. OnBreak
// is only changed when onBreak is non-nil. Existing queue entries are
// not cascaded. Returns false when no such doctor exists.
func (c *QueueCoordinator) SetDoctorAvailability(doctorID string, isAvailable bool, onBreak *bool) bool {
	c.mu.Lock()

	d := c.findDoctorLocked(doctorID)
	if d == nil {
		c.mu.Unlock()
		return false
	}

	d.IsAvailable = isAvailable
	if onBreak != nil {
		d.OnBreak = *onBreak
	}
	c.mu.Unlock()

	c.publish(entities.NewQueueEvent(doctorID, entities.QueueEventTypeDoctorUpdate, map[string]interface{}{
		"isAvailable": isAvailable,
	}))
	return true
}

// SetRoomStatus updates a room's status and occupant. An empty
// patientID clears the occupant; a non-empty one must reference an
// existing patient, whose cached room field is updated in the same
// step so the two sides never diverge. Returns false when the room (or
// the referenced patient) does not exist.
func (c *QueueCoordinator) SetRoomStatus(roomID string, status entities.RoomStatus, patientID string) bool {
	c.mu.Lock()

	r := c.findRoomLocked(roomID)
	if r == nil {
		c.mu.Unlock()
		return false
	}

	if patientID != "" {
		p := c.findPatientLocked(patientID)
		if p == nil {
			c.mu.Unlock()
			return false
		}
		p.Room = r.Name
	}

	r.Status = status
	r.CurrentPatient = patientID
	c.mu.Unlock()

	c.publish(entities.NewQueueEvent("", entities.QueueEventTypeRoomUpdate, map[string]interface{}{
		"roomId": roomID,
		"status": status,
	}))
	return true
}

// RecomputeWaitTimes refreshes the wait time of every currently-waiting
// patient from the elapsed time since check-in. Patients in any other
// status keep their last computed value as a record of how long they
// waited before being called.
func (c *QueueCoordinator) RecomputeWaitTimes() {
	c.mu.Lock()
	c.recomputeWaitTimesLocked(c.now())
	c.mu.Unlock()

	c.publish(entities.NewQueueEvent("", entities.QueueEventTypeWaitTimeUpdate, nil))
}

func (c *QueueCoordinator) recomputeWaitTimesLocked(now time.Time) {
	for i := range c.patients {
		p := &c.patients[i]
		if p.Status != entities.PatientStatusWaiting || p.CheckedInAt == nil {
			continue
		}
		minutes := int(now.Sub(*p.CheckedInAt).Minutes())
		if minutes < 0 {
			minutes = 0
		}
		p.WaitTime = minutes
	}
}

// StartPeriodicRecompute recomputes wait times at the given interval
// until the context is cancelled. Run it in its own goroutine; it takes
// the same lock as every other mutation.
func (c *QueueCoordinator) StartPeriodicRecompute(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RecomputeWaitTimes()
		}
	}
}

func (c *QueueCoordinator) findPatientLocked(id string) *entities.Patient {
	for i := range c.patients {
		if c.patients[i].ID == id {
			return &c.patients[i]
		}
	}
	return nil
}

func (c *QueueCoordinator) findDoctorLocked(id string) *entities.Doctor {
	for i := range c.doctors {
		if c.doctors[i].ID == id {
			return &c.doctors[i]
		}
	}
	return nil
}

func (c *QueueCoordinator) findRoomLocked(id string) *entities.Room {
	for i := range c.rooms {
		if c.rooms[i].ID == id {
			return &c.rooms[i]
		}
	}
	return nil
}

// publish sends a queue event to the configured event bus, if any.
// Publishing is best-effort; delivery failures are logged and never
// fail the mutation that produced the event.
func (c *QueueCoordinator) publish(event *entities.QueueEvent) {
	if c.eventBus == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.eventBus.Publish(ctx, providers.EventChannelQueueUpdates, event); err != nil {
		log.Warn().Err(err).Str("event", string(event.EventType)).Msg("failed to publish queue event")
	} else {
		observability.RecordEventPublished(ctx, c.metrics, providers.EventChannelQueueUpdates)
	}
	if event.DoctorID != "" {
		doctorChannel := providers.GetDoctorChannel(event.DoctorID)
		if err := c.eventBus.Publish(ctx, doctorChannel, event); err != nil {
			log.Warn().Err(err).Str("doctor", event.DoctorID).Msg("failed to publish doctor queue event")
		} else {
			observability.RecordEventPublished(ctx, c.metrics, doctorChannel)
		}
	}
}
