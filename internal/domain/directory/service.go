package directory

import "context"

// Service exposes read-only directory lookups.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) ListUsersByRole(ctx context.Context, role string, limit, offset int) ([]*User, int, error) {
	return s.repo.ListUsersByRole(ctx, role, limit, offset)
}

func (s *Service) GetHospital(ctx context.Context, id string) (*Hospital, error) {
	return s.repo.GetHospital(ctx, id)
}

func (s *Service) ListHospitals(ctx context.Context, limit, offset int) ([]*Hospital, int, error) {
	return s.repo.ListHospitals(ctx, limit, offset)
}

func (s *Service) GetUniversity(ctx context.Context, id string) (*University, error) {
	return s.repo.GetUniversity(ctx, id)
}

func (s *Service) ListUniversities(ctx context.Context, limit, offset int) ([]*University, int, error) {
	return s.repo.ListUniversities(ctx, limit, offset)
}
