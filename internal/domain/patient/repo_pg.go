package patient

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dka/dka/internal/store"
)

// Spec describes the patients table to the generic access layer.
func Spec() store.TableSpec {
	return store.TableSpec{
		Name:     "patients",
		IDColumn: "patient_id",
		Columns: []store.Column{
			{Name: "patient_id", Type: "BIGSERIAL", Constraints: "PRIMARY KEY"},
			{Name: "hn", Type: "TEXT", Constraints: "NOT NULL UNIQUE"},
			{Name: "name", Type: "TEXT", Constraints: "NOT NULL"},
			{Name: "age", Type: "INTEGER", Constraints: "NOT NULL"},
			{Name: "sex", Type: "TEXT", Constraints: "NOT NULL"},
			{Name: "medical_history", Type: "TEXT"},
		},
	}
}

type patientRepoPG struct {
	table *store.Table
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &patientRepoPG{table: store.NewTable(pool, Spec())}
}

func (r *patientRepoPG) EnsureTable(ctx context.Context) error {
	return r.table.EnsureTable(ctx)
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) (int64, error) {
	rec := store.Record{
		"hn":   p.HN,
		"name": p.Name,
		"age":  p.Age,
		"sex":  p.Sex,
	}
	if p.MedicalHistory != nil {
		rec["medical_history"] = *p.MedicalHistory
	}
	return r.table.Insert(ctx, rec)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	rec, err := r.table.GetByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return fromRecord(rec), nil
}

func (r *patientRepoPG) Update(ctx context.Context, id int64, patch Patch) (bool, error) {
	return r.table.Update(ctx, id, patch.record())
}

func (r *patientRepoPG) Delete(ctx context.Context, id int64) (bool, error) {
	return r.table.Delete(ctx, id)
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	recs, err := r.table.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	patients := make([]*Patient, len(recs))
	for i, rec := range recs {
		patients[i] = fromRecord(rec)
	}
	return patients, nil
}

func fromRecord(rec store.Record) *Patient {
	p := &Patient{MedicalHistory: rec.StringPtr("medical_history")}
	p.ID, _ = rec.Int64("patient_id")
	p.HN, _ = rec.String("hn")
	p.Name, _ = rec.String("name")
	p.Age, _ = rec.Int64("age")
	p.Sex, _ = rec.String("sex")
	return p
}
