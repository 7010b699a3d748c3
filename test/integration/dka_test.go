package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/dka/dka/internal/domain/lab"
	"github.com/dka/dka/internal/domain/patient"
	"github.com/dka/dka/internal/domain/reference"
	"github.com/dka/dka/internal/domain/treatment"
	"github.com/dka/dka/internal/store"
)

func TestBootstrapIdempotent(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()

	bootstrap(t, ctx, pool)
	// A second run against an existing schema must be a no-op.
	bootstrap(t, ctx, pool)
}

func TestSeededCatalogs(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	bootstrap(t, ctx, pool)

	repo := reference.NewRepoPG(pool)

	types, err := repo.ListTreatmentTypes(ctx)
	if err != nil {
		t.Fatalf("list treatment types: %v", err)
	}
	if len(types) != 3 {
		t.Fatalf("expected 3 treatment types, got %d", len(types))
	}
	wantTypes := map[int64]string{1: "Insulin Therapy", 2: "Fluid Replacement", 3: "Electrolyte Replacement"}
	for _, tt := range types {
		if wantTypes[tt.ID] != tt.Name {
			t.Errorf("type %d: expected %q, got %q", tt.ID, wantTypes[tt.ID], tt.Name)
		}
	}

	methods, err := repo.ListApplicationMethods(ctx)
	if err != nil {
		t.Fatalf("list application methods: %v", err)
	}
	if len(methods) != 4 {
		t.Fatalf("expected 4 application methods, got %d", len(methods))
	}
	wantMethods := map[int64]string{1: "IV_1", 2: "IV_2", 3: "IV_3", 4: "IV_4"}
	for _, m := range methods {
		if wantMethods[m.ID] != m.Name {
			t.Errorf("method %d: expected %q, got %q", m.ID, wantMethods[m.ID], m.Name)
		}
	}
}

func TestDimensionMutationsNotPermitted(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	bootstrap(t, ctx, pool)

	repo := reference.NewRepoPG(pool)

	err := repo.CreateTreatmentType(ctx, &reference.TreatmentType{Name: "Experimental"})
	var nperr *store.NotPermittedError
	if !errors.As(err, &nperr) {
		t.Fatalf("expected NotPermittedError on insert, got %v", err)
	}
	if err := repo.DeleteTreatmentType(ctx, 1); !errors.As(err, &nperr) {
		t.Fatalf("expected NotPermittedError on delete, got %v", err)
	}
	if err := repo.CreateApplicationMethod(ctx, &reference.ApplicationMethod{Name: "IV_5"}); !errors.As(err, &nperr) {
		t.Fatalf("expected NotPermittedError on insert, got %v", err)
	}

	// The catalog must be untouched.
	types, err := repo.ListTreatmentTypes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(types) != 3 {
		t.Errorf("catalog changed: expected 3 rows, got %d", len(types))
	}
}

func TestPatientRoundTrip(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	bootstrap(t, ctx, pool)

	repo := patient.NewRepoPG(pool)
	p := newPatient("HN-RT-001")
	history := "DKA admission, type 1 diabetes"
	p.MedicalHistory = &history

	id, err := repo.Create(ctx, p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected patient, got nil")
	}
	if got.HN != p.HN || got.Name != p.Name || got.Age != p.Age || got.Sex != p.Sex {
		t.Errorf("round trip mismatch: %+v vs %+v", got, p)
	}
	if got.MedicalHistory == nil || *got.MedicalHistory != history {
		t.Errorf("medical history mismatch: %v", got.MedicalHistory)
	}
}

func TestGetByID_Unmatched(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	bootstrap(t, ctx, pool)

	got, err := patient.NewRepoPG(pool).GetByID(ctx, 999999999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unmatched id, got %+v", got)
	}
}

func TestUpdateDelete_Unmatched(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	bootstrap(t, ctx, pool)

	repo := patient.NewRepoPG(pool)
	name := "Nobody"
	updated, err := repo.Update(ctx, 999999999, patient.Patch{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated {
		t.Error("expected updated=false for unmatched id")
	}

	deleted, err := repo.Delete(ctx, 999999999)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted {
		t.Error("expected deleted=false for unmatched id")
	}
}

func TestEmptyUpdateRejected(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	bootstrap(t, ctx, pool)

	svc := patient.NewService(patient.NewRepoPG(pool))
	id, err := svc.CreatePatient(ctx, newPatient("HN-EMPTY-001"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UpdatePatient(ctx, id, patient.Patch{})
	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCascadeDelete(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	bootstrap(t, ctx, pool)

	patientRepo := patient.NewRepoPG(pool)
	labRepo := lab.NewRepoPG(pool)
	treatmentRepo := treatment.NewRepoPG(pool)

	pid, err := patientRepo.Create(ctx, newPatient("HN-CASCADE-001"))
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	if _, err := labRepo.Create(ctx, newLabResult(pid)); err != nil {
		t.Fatalf("create lab: %v", err)
	}
	if _, err := treatmentRepo.Create(ctx, newTreatment(pid)); err != nil {
		t.Fatalf("create treatment: %v", err)
	}

	deleted, err := patientRepo.Delete(ctx, pid)
	if err != nil || !deleted {
		t.Fatalf("delete patient: deleted=%v err=%v", deleted, err)
	}

	labs, err := labRepo.ListByPatient(ctx, pid)
	if err != nil {
		t.Fatalf("list labs: %v", err)
	}
	if len(labs) != 0 {
		t.Errorf("expected labs cascade-deleted, got %d rows", len(labs))
	}
	treatments, err := treatmentRepo.ListByPatient(ctx, pid)
	if err != nil {
		t.Fatalf("list treatments: %v", err)
	}
	if len(treatments) != 0 {
		t.Errorf("expected treatments cascade-deleted, got %d rows", len(treatments))
	}
}

func TestLabRoundTripAndListByPatient(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	bootstrap(t, ctx, pool)

	patientRepo := patient.NewRepoPG(pool)
	labRepo := lab.NewRepoPG(pool)

	pid, err := patientRepo.Create(ctx, newPatient("HN-LAB-001"))
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}

	r := newLabResult(pid)
	r.DTX = i64(250)
	r.PH = f64(7.12)
	r.K = f64(3.4)
	r.Na = f64(138.0)
	r.AG = f64(18.5)
	r.Ketone = f64(4.2)

	id, err := labRepo.Create(ctx, r)
	if err != nil {
		t.Fatalf("create lab: %v", err)
	}

	got, err := labRepo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get lab: %v", err)
	}
	if got == nil {
		t.Fatal("expected lab result, got nil")
	}
	if got.PatientID != pid || got.LogTime != r.LogTime {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.DTX == nil || *got.DTX != 250 {
		t.Errorf("dtx mismatch: %v", got.DTX)
	}
	if got.PH == nil || *got.PH != 7.12 {
		t.Errorf("ph mismatch: %v", got.PH)
	}

	other, err := patientRepo.Create(ctx, newPatient("HN-LAB-002"))
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	if _, err := labRepo.Create(ctx, newLabResult(other)); err != nil {
		t.Fatalf("create lab: %v", err)
	}

	mine, err := labRepo.ListByPatient(ctx, pid)
	if err != nil {
		t.Fatalf("list by patient: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != id {
		t.Errorf("expected exactly the patient's own lab, got %v", mine)
	}
}

func TestLabUpdateScenario(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	bootstrap(t, ctx, pool)

	patientRepo := patient.NewRepoPG(pool)
	labSvc := lab.NewService(lab.NewRepoPG(pool))

	pid, err := patientRepo.Create(ctx, newPatient("HN001-SCENARIO"))
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}

	r := newLabResult(pid)
	r.PH = f64(7.40)
	id, err := labSvc.CreateResult(ctx, r)
	if err != nil {
		t.Fatalf("create lab: %v", err)
	}

	updated, err := labSvc.UpdateResult(ctx, id, lab.Patch{PH: f64(7.35)})
	if err != nil {
		t.Fatalf("update lab: %v", err)
	}
	if !updated {
		t.Fatal("expected updated=true")
	}

	got, err := labSvc.GetResult(ctx, id)
	if err != nil {
		t.Fatalf("get lab: %v", err)
	}
	if got.PH == nil || *got.PH != 7.35 {
		t.Errorf("expected ph 7.35, got %v", got.PH)
	}
	// Untouched fields survive a partial update.
	if got.SampledTime != r.SampledTime {
		t.Errorf("sampled_time changed: %d", got.SampledTime)
	}
}

func TestSuggestTreatmentAgainstStore(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	bootstrap(t, ctx, pool)

	patientRepo := patient.NewRepoPG(pool)
	labSvc := lab.NewService(lab.NewRepoPG(pool))

	pid, err := patientRepo.Create(ctx, newPatient("HN-SUGGEST-001"))
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}

	s, err := labSvc.SuggestTreatment(ctx, pid)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if s != nil {
		t.Fatalf("expected nil suggestion without labs, got %+v", s)
	}

	early := newLabResult(pid)
	early.DTX = i64(65)
	if _, err := labSvc.CreateResult(ctx, early); err != nil {
		t.Fatalf("create lab: %v", err)
	}
	late := newLabResult(pid)
	late.DTX = i64(180)
	late.PH = f64(7.1)
	lateID, err := labSvc.CreateResult(ctx, late)
	if err != nil {
		t.Fatalf("create lab: %v", err)
	}

	s, err = labSvc.SuggestTreatment(ctx, pid)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if s == nil || s.LabID != lateID {
		t.Fatalf("expected suggestion from latest lab %d, got %+v", lateID, s)
	}
	if s.Suggestion != "Administer bicarbonate." {
		t.Errorf("unexpected suggestion %q", s.Suggestion)
	}
}

func TestTreatmentRoundTrip(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	bootstrap(t, ctx, pool)

	patientRepo := patient.NewRepoPG(pool)
	treatmentRepo := treatment.NewRepoPG(pool)

	pid, err := patientRepo.Create(ctx, newPatient("HN-TRT-001"))
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}

	tr := newTreatment(pid)
	tr.TreatmentTypeID = 1
	tr.ApplicationMethodID = 2
	tr.AdministrationRate = i64(6)

	id, err := treatmentRepo.Create(ctx, tr)
	if err != nil {
		t.Fatalf("create treatment: %v", err)
	}

	got, err := treatmentRepo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get treatment: %v", err)
	}
	if got == nil {
		t.Fatal("expected treatment, got nil")
	}
	if got.TreatmentTypeID != 1 || got.ApplicationMethodID != 2 {
		t.Errorf("dimension references mismatch: %+v", got)
	}
	if got.AdministrationRate == nil || *got.AdministrationRate != 6 {
		t.Errorf("administration rate mismatch: %v", got.AdministrationRate)
	}
}

func TestInvalidInsertLeavesStoreUnchanged(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	bootstrap(t, ctx, pool)

	svc := patient.NewService(patient.NewRepoPG(pool))
	before, err := svc.ListPatients(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	_, err = svc.CreatePatient(ctx, &patient.Patient{Name: "No HN", Age: 30, Sex: "female"})
	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	after, err := svc.ListPatients(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("row count changed after failed insert: %d -> %d", len(before), len(after))
	}
}
