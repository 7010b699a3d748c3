package reference

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) EnsureTables(ctx context.Context) error {
	return s.repo.EnsureTables(ctx)
}

func (s *Service) SeedDimensions(ctx context.Context) error {
	return s.repo.SeedDimensions(ctx)
}

// GetTreatmentType returns (nil, nil) when no type matches id.
func (s *Service) GetTreatmentType(ctx context.Context, id int64) (*TreatmentType, error) {
	return s.repo.GetTreatmentType(ctx, id)
}

func (s *Service) ListTreatmentTypes(ctx context.Context) ([]*TreatmentType, error) {
	return s.repo.ListTreatmentTypes(ctx)
}

// CreateTreatmentType always fails with a not-permitted error; the
// catalog is fixed at bootstrap.
func (s *Service) CreateTreatmentType(ctx context.Context, t *TreatmentType) error {
	return s.repo.CreateTreatmentType(ctx, t)
}

func (s *Service) DeleteTreatmentType(ctx context.Context, id int64) error {
	return s.repo.DeleteTreatmentType(ctx, id)
}

// GetApplicationMethod returns (nil, nil) when no method matches id.
func (s *Service) GetApplicationMethod(ctx context.Context, id int64) (*ApplicationMethod, error) {
	return s.repo.GetApplicationMethod(ctx, id)
}

func (s *Service) ListApplicationMethods(ctx context.Context) ([]*ApplicationMethod, error) {
	return s.repo.ListApplicationMethods(ctx)
}

func (s *Service) CreateApplicationMethod(ctx context.Context, m *ApplicationMethod) error {
	return s.repo.CreateApplicationMethod(ctx, m)
}

func (s *Service) DeleteApplicationMethod(ctx context.Context, id int64) error {
	return s.repo.DeleteApplicationMethod(ctx, id)
}
