package patient

import (
	"context"

	"github.com/dka/dka/internal/store"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreatePatient validates the candidate record and inserts it, returning
// the assigned identity.
func (s *Service) CreatePatient(ctx context.Context, p *Patient) (int64, error) {
	if err := store.FirstViolation(p.Validate()); err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

// GetPatient returns (nil, nil) when no patient matches id.
func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdatePatient applies the supplied fields only. An empty patch fails
// validation regardless of whether id exists; an unmatched id returns
// (false, nil).
func (s *Service) UpdatePatient(ctx context.Context, id int64, patch Patch) (bool, error) {
	if patch.IsEmpty() {
		return false, &store.ValidationError{Reason: "empty update payload"}
	}
	if err := store.FirstViolation(patch.Validate()); err != nil {
		return false, err
	}
	return s.repo.Update(ctx, id, patch)
}

// DeletePatient removes the patient; the storage layer cascades the
// delete to dependent lab results and treatments.
func (s *Service) DeletePatient(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}
