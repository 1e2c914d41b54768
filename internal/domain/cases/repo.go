package cases

import "context"

// CaseRepository is the keyed persistence contract the engine reads from and
// writes to. Create must fail with ErrConflict when the id already exists;
// Update is last-write-wins.
type CaseRepository interface {
	Create(ctx context.Context, c *Case) error
	GetByID(ctx context.Context, id string) (*Case, error)
	Update(ctx context.Context, c *Case) error
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*Case, int, error)
	ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]*Case, int, error)
	ListByHospital(ctx context.Context, hospitalID string, limit, offset int) ([]*Case, int, error)
	ListByUniversity(ctx context.Context, universityID string, limit, offset int) ([]*Case, int, error)
	ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Case, int, error)
}
