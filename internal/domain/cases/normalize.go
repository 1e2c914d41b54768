package cases

import (
	"time"

	"github.com/google/uuid"
)

// Placeholder sentinels used when demographic fields are missing. They are
// human readable on purpose so downstream display code never shows blanks.
const (
	PlaceholderName        = "Patient/Student Name"
	PlaceholderDOB         = "Date of Birth"
	PlaceholderGender      = "Not Specified"
	PlaceholderNationality = "Nationality"
	PlaceholderPassport    = "Passport Number"
	PlaceholderPhone       = "Phone Number"
	PlaceholderEmail       = "email@example.com"
	PlaceholderAddress     = "Address"
	PlaceholderCondition   = "Condition/Program"
)

// Normalize completes a partial case into a structurally valid record. It is
// total: any input, including nil, yields a persistable case and no error.
// Supplied values are kept; only gaps are filled.
func Normalize(c *Case) *Case {
	if c == nil {
		c = &Case{}
	}
	now := time.Now().UTC()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.ClientID == "" {
		c.ClientID = "client_" + uuid.New().String()
	}
	if c.AgentID == "" {
		c.AgentID = "agent_" + uuid.New().String()
	}
	if !c.Status.IsValid() {
		c.Status = StatusNew
	}
	if !validPriorities[c.Priority] {
		c.Priority = PriorityMedium
	}

	fillClientInfo(&c.ClientInfo)

	if c.Visa.Status == "" {
		c.Visa.Status = VisaNotStarted
	}

	// History is seeded at new even when the input status is further along:
	// the trail records creation, not the supplied position.
	if len(c.StatusHistory) == 0 {
		c.StatusHistory = []StatusHistoryEntry{{
			Status:    StatusNew,
			Timestamp: now,
			ActorID:   c.AgentID,
			Note:      "Case created",
		}}
	}
	if c.Documents == nil {
		c.Documents = []Document{}
	}
	if c.Payments == nil {
		c.Payments = []Payment{}
	}
	if c.Comments == nil {
		c.Comments = []Comment{}
	}
	if c.ActivityLog == nil {
		c.ActivityLog = []ActivityEntry{}
	}
	for i := range c.ActivityLog {
		if c.ActivityLog[i].CaseID != c.ID {
			c.ActivityLog[i].CaseID = c.ID
		}
		if c.ActivityLog[i].ID == "" {
			c.ActivityLog[i].ID = uuid.New().String()
		}
	}

	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	return c
}

func fillClientInfo(ci *ClientInfo) {
	if ci.Name == "" {
		ci.Name = PlaceholderName
	}
	if ci.DateOfBirth == "" {
		ci.DateOfBirth = PlaceholderDOB
	}
	if ci.Gender == "" {
		ci.Gender = PlaceholderGender
	}
	if ci.Nationality == "" {
		ci.Nationality = PlaceholderNationality
	}
	if ci.Passport == "" {
		ci.Passport = PlaceholderPassport
	}
	if ci.Phone == "" {
		ci.Phone = PlaceholderPhone
	}
	if ci.Email == "" {
		ci.Email = PlaceholderEmail
	}
	if ci.Address == "" {
		ci.Address = PlaceholderAddress
	}
	if ci.Condition == "" {
		ci.Condition = PlaceholderCondition
	}
}
