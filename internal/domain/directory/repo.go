package directory

import "context"

// Repository is the read-only directory contract. The lifecycle engine only
// resolves bindings; user and institution management lives elsewhere.
type Repository interface {
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsersByRole(ctx context.Context, role string, limit, offset int) ([]*User, int, error)
	GetHospital(ctx context.Context, id string) (*Hospital, error)
	ListHospitals(ctx context.Context, limit, offset int) ([]*Hospital, int, error)
	GetUniversity(ctx context.Context, id string) (*University, error)
	ListUniversities(ctx context.Context, limit, offset int) ([]*University, int, error)
}
