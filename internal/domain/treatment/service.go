package treatment

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

// CreateTreatment validates the candidate record and inserts it,
// returning the assigned identity.
func (s *Service) CreateTreatment(ctx context.Context, t *Treatment) (int64, error) {
	if err := store.FirstViolation(t.Validate()); err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, t)
	if err != nil {
		return 0, err
	}
	t.ID = id
	return id, nil
}

// GetTreatment returns (nil, nil) when no treatment matches id.
func (s *Service) GetTreatment(ctx context.Context, id int64) (*Treatment, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateTreatment applies the supplied fields only; an empty patch
// fails validation regardless of whether id exists.
func (s *Service) UpdateTreatment(ctx context.Context, id int64, patch Patch) (bool, error) {
	if patch.IsEmpty() {
		return false, &store.ValidationError{Reason: "empty update payload"}
	}
	if err := store.FirstViolation(patch.Validate()); err != nil {
		return false, err
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) DeleteTreatment(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListTreatments(ctx context.Context) ([]*Treatment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*Treatment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
