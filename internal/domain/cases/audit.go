package cases

import (
	"time"

	"github.com/google/uuid"
)

// appendHistory adds one status-history entry. Entries are never edited or
// removed after this point.
func appendHistory(c *Case, status Status, actor Actor, note string) {
	c.StatusHistory = append(c.StatusHistory, StatusHistoryEntry{
		Status:    status,
		Timestamp: time.Now().UTC(),
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Note:      note,
	})
}

// appendActivity adds one activity-log entry bound to the case's own id.
func appendActivity(c *Case, actor Actor, action, details string) {
	c.ActivityLog = append(c.ActivityLog, ActivityEntry{
		ID:        uuid.New().String(),
		CaseID:    c.ID,
		UserID:    actor.ID,
		UserName:  actor.Name,
		UserRole:  actor.Role,
		Action:    action,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}
