package entities

// Doctor represents a practitioner addressable by the queue.
// IsAvailable gates new intake assignments; OnBreak only signals
// operators that the doctor's queue is paused, it does not reject
// mutations.
type Doctor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialty      string `json:"specialty"`
	Room           string `json:"room"`
	IsAvailable    bool   `json:"isAvailable"`
	OnBreak        bool   `json:"onBreak"`
	CurrentPatient string `json:"currentPatient,omitempty"`
}
