package treatment

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dka/dka/internal/store"
)

// Spec describes the treatments table. The patient reference cascades;
// the dimension references do not, since dimension rows are never
// removed.
func Spec() store.TableSpec {
	return store.TableSpec{
		Name:     "treatments",
		IDColumn: "id",
		Columns: []store.Column{
			{Name: "id", Type: "BIGSERIAL", Constraints: "PRIMARY KEY"},
			{Name: "patient_id", Type: "BIGINT", Constraints: "NOT NULL"},
			{Name: "logtime", Type: "BIGINT", Constraints: "NOT NULL"},
			{Name: "administered_time", Type: "BIGINT", Constraints: "NOT NULL"},
			{Name: "end_time", Type: "BIGINT", Constraints: "NOT NULL"},
			{Name: "treatment_type_id", Type: "INTEGER", Constraints: "NOT NULL"},
			{Name: "application_method_id", Type: "INTEGER", Constraints: "NOT NULL"},
			{Name: "administration_rate", Type: "INTEGER"},
		},
		ForeignKeys: []store.ForeignKey{
			{Column: "patient_id", RefTable: "patients", RefColumn: "patient_id", Cascade: true},
			{Column: "treatment_type_id", RefTable: "dim_treatment_type", RefColumn: "treatment_type_id"},
			{Column: "application_method_id", RefTable: "dim_application_method", RefColumn: "application_method_id"},
		},
	}
}

type treatmentRepoPG struct {
	table *store.Table
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &treatmentRepoPG{table: store.NewTable(pool, Spec())}
}

func (r *treatmentRepoPG) EnsureTable(ctx context.Context) error {
	return r.table.EnsureTable(ctx)
}

func (r *treatmentRepoPG) Create(ctx context.Context, t *Treatment) (int64, error) {
	rec := store.Record{
		"patient_id":            t.PatientID,
		"logtime":               t.LogTime,
		"administered_time":     t.AdministeredTime,
		"end_time":              t.EndTime,
		"treatment_type_id":     t.TreatmentTypeID,
		"application_method_id": t.ApplicationMethodID,
	}
	if t.AdministrationRate != nil {
		rec["administration_rate"] = *t.AdministrationRate
	}
	return r.table.Insert(ctx, rec)
}

func (r *treatmentRepoPG) GetByID(ctx context.Context, id int64) (*Treatment, error) {
	rec, err := r.table.GetByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return fromRecord(rec), nil
}

func (r *treatmentRepoPG) Update(ctx context.Context, id int64, patch Patch) (bool, error) {
	return r.table.Update(ctx, id, patch.record())
}

func (r *treatmentRepoPG) Delete(ctx context.Context, id int64) (bool, error) {
	return r.table.Delete(ctx, id)
}

func (r *treatmentRepoPG) List(ctx context.Context) ([]*Treatment, error) {
	recs, err := r.table.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (r *treatmentRepoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Treatment, error) {
	recs, err := r.table.GetAllBy(ctx, "patient_id", patientID)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func fromRecords(recs []store.Record) []*Treatment {
	treatments := make([]*Treatment, len(recs))
	for i, rec := range recs {
		treatments[i] = fromRecord(rec)
	}
	return treatments
}

func fromRecord(rec store.Record) *Treatment {
	t := &Treatment{AdministrationRate: rec.Int64Ptr("administration_rate")}
	t.ID, _ = rec.Int64("id")
	t.PatientID, _ = rec.Int64("patient_id")
	t.LogTime, _ = rec.Int64("logtime")
	t.AdministeredTime, _ = rec.Int64("administered_time")
	t.EndTime, _ = rec.Int64("end_time")
	t.TreatmentTypeID, _ = rec.Int64("treatment_type_id")
	t.ApplicationMethodID, _ = rec.Int64("application_method_id")
	return t
}
