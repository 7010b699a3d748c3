package lab

import (
	"context"

	"github.com/dka/dka/internal/store"
)

// Suggestion thresholds from the ward protocol: below 70 mg/dL the
// patient is hypoglycemic; below pH 7.3 acidotic.
const (
	hypoglycemiaDTX = 70
	acidosisPH      = 7.3
)

// Suggestion is the rule-based treatment hint derived from a patient's
// most recent lab result.
type Suggestion struct {
	LabID      int64  `json:"lab_id"`
	Suggestion string `json:"suggestion"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateResult validates the candidate record and inserts it, returning
// the assigned identity.
func (s *Service) CreateResult(ctx context.Context, r *Result) (int64, error) {
	if err := store.FirstViolation(r.Validate()); err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, r)
	if err != nil {
		return 0, err
	}
	r.ID = id
	return id, nil
}

// GetResult returns (nil, nil) when no result matches id.
func (s *Service) GetResult(ctx context.Context, id int64) (*Result, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateResult applies the supplied fields only; an empty patch fails
// validation regardless of whether id exists.
func (s *Service) UpdateResult(ctx context.Context, id int64, patch Patch) (bool, error) {
	if patch.IsEmpty() {
		return false, &store.ValidationError{Reason: "empty update payload"}
	}
	if err := store.FirstViolation(patch.Validate()); err != nil {
		return false, err
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) DeleteResult(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListResults(ctx context.Context) ([]*Result, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*Result, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// SuggestTreatment applies the protocol rule to the patient's latest
// result. Returns (nil, nil) when the patient has no lab results.
func (s *Service) SuggestTreatment(ctx context.Context, patientID int64) (*Suggestion, error) {
	results, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	latest := results[len(results)-1]
	return &Suggestion{LabID: latest.ID, Suggestion: suggestFor(latest)}, nil
}

func suggestFor(r *Result) string {
	switch {
	case r.DTX != nil && *r.DTX < hypoglycemiaDTX:
		return "Administer glucose."
	case r.PH != nil && *r.PH < acidosisPH:
		return "Administer bicarbonate."
	default:
		return "No immediate treatment required."
	}
}
