package directory

import "time"

// User is a workflow participant resolved for guard evaluation. Hospital and
// university bindings are many-valued: one user may serve several
// institutions.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	AgentType     string    `json:"agent_type,omitempty"`
	HospitalIDs   []string  `json:"hospital_ids,omitempty"`
	UniversityIDs []string  `json:"university_ids,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// Hospital is a receiving medical institution.
type Hospital struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Specialty string    `json:"specialty,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// University is a receiving academic institution.
type University struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Programs  []string  `json:"programs,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
