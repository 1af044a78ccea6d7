package entities

// QueueStats aggregates the current queue state for dashboards.
// AvgWaitMinutes averages WaitTime over waiting patients only and is 0
// when none are waiting.
type QueueStats struct {
	TotalActive     int `json:"totalActive"`
	WaitingCount    int `json:"waitingCount"`
	InProgressCount int `json:"inProgressCount"`
	AvgWaitMinutes  int `json:"avgWaitMinutes"`
	AvailableRooms  int `json:"availableRooms"`
	TotalRooms      int `json:"totalRooms"`
}

// QueueSnapshot is the full state view returned to the portal's
// "state" query: every patient record plus the doctor and room rosters.
type QueueSnapshot struct {
	Doctors  []Doctor  `json:"doctors"`
	Patients []Patient `json:"patients"`
	Rooms    []Room    `json:"rooms"`
}
