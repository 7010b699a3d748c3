package treatment

import (
	"context"
	"errors"
	"testing"

	"github.com/dka/dka/internal/store"
)

// -- Mock Repository --

type mockTreatmentRepo struct {
	store  map[int64]*Treatment
	nextID int64
}

func newMockTreatmentRepo() *mockTreatmentRepo {
	return &mockTreatmentRepo{store: make(map[int64]*Treatment), nextID: 1}
}

func (m *mockTreatmentRepo) EnsureTable(_ context.Context) error { return nil }

func (m *mockTreatmentRepo) Create(_ context.Context, t *Treatment) (int64, error) {
	id := m.nextID
	m.nextID++
	cp := *t
	cp.ID = id
	m.store[id] = &cp
	return id, nil
}

func (m *mockTreatmentRepo) GetByID(_ context.Context, id int64) (*Treatment, error) {
	t, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *mockTreatmentRepo) Update(_ context.Context, id int64, patch Patch) (bool, error) {
	t, ok := m.store[id]
	if !ok {
		return false, nil
	}
	if patch.PatientID != nil {
		t.PatientID = *patch.PatientID
	}
	if patch.LogTime != nil {
		t.LogTime = *patch.LogTime
	}
	if patch.AdministeredTime != nil {
		t.AdministeredTime = *patch.AdministeredTime
	}
	if patch.EndTime != nil {
		t.EndTime = *patch.EndTime
	}
	if patch.TreatmentTypeID != nil {
		t.TreatmentTypeID = *patch.TreatmentTypeID
	}
	if patch.ApplicationMethodID != nil {
		t.ApplicationMethodID = *patch.ApplicationMethodID
	}
	if patch.AdministrationRate != nil {
		t.AdministrationRate = patch.AdministrationRate
	}
	return true, nil
}

func (m *mockTreatmentRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.store[id]; !ok {
		return false, nil
	}
	delete(m.store, id)
	return true, nil
}

func (m *mockTreatmentRepo) List(_ context.Context) ([]*Treatment, error) {
	out := make([]*Treatment, 0, len(m.store))
	for id := int64(1); id < m.nextID; id++ {
		if t, ok := m.store[id]; ok {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockTreatmentRepo) ListByPatient(_ context.Context, patientID int64) ([]*Treatment, error) {
	out := make([]*Treatment, 0)
	for id := int64(1); id < m.nextID; id++ {
		if t, ok := m.store[id]; ok && t.PatientID == patientID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func newTestService() (*Service, *mockTreatmentRepo) {
	repo := newMockTreatmentRepo()
	return NewService(repo), repo
}

// -- Service Tests --

func TestCreateTreatment_Success(t *testing.T) {
	svc, _ := newTestService()
	tr := validTreatment()
	tr.AdministrationRate = i64(6)
	id, err := svc.CreateTreatment(context.Background(), tr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 || tr.ID != id {
		t.Errorf("expected assigned id on entity, got id=%d tr.ID=%d", id, tr.ID)
	}
}

func TestCreateTreatment_Invalid(t *testing.T) {
	svc, repo := newTestService()
	tr := validTreatment()
	tr.TreatmentTypeID = 0
	_, err := svc.CreateTreatment(context.Background(), tr)
	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "treatment_type_id" {
		t.Errorf("expected treatment_type_id violation, got %q", verr.Field)
	}
	if len(repo.store) != 0 {
		t.Error("invalid treatment must not reach the repository")
	}
}

func TestUpdateTreatment_EmptyPatch(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.UpdateTreatment(context.Background(), 1, Patch{})
	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty patch, got %v", err)
	}
}

func TestUpdateTreatment_NotFound(t *testing.T) {
	svc, _ := newTestService()
	updated, err := svc.UpdateTreatment(context.Background(), 55, Patch{EndTime: i64(1700002000000)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated {
		t.Error("expected updated=false for unmatched id")
	}
}

func TestDeleteTreatment(t *testing.T) {
	svc, _ := newTestService()
	id, _ := svc.CreateTreatment(context.Background(), validTreatment())

	deleted, err := svc.DeleteTreatment(context.Background(), id)
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got deleted=%v err=%v", deleted, err)
	}
	got, err := svc.GetTreatment(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}
}

func TestTreatmentListByPatient(t *testing.T) {
	svc, _ := newTestService()
	for _, pid := range []int64{3, 3, 9} {
		tr := validTreatment()
		tr.PatientID = pid
		if _, err := svc.CreateTreatment(context.Background(), tr); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	got, err := svc.ListByPatient(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 treatments for patient 3, got %d", len(got))
	}
}
