package lab

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dka/dka/internal/store"
)

// Spec describes the lab_results table. The patient reference cascades
// so deleting a patient removes their results.
func Spec() store.TableSpec {
	return store.TableSpec{
		Name:     "lab_results",
		IDColumn: "id",
		Columns: []store.Column{
			{Name: "id", Type: "BIGSERIAL", Constraints: "PRIMARY KEY"},
			{Name: "patient_id", Type: "BIGINT", Constraints: "NOT NULL"},
			{Name: "logtime", Type: "BIGINT", Constraints: "NOT NULL"},
			{Name: "sampled_time", Type: "BIGINT", Constraints: "NOT NULL"},
			{Name: "result_time", Type: "BIGINT", Constraints: "NOT NULL"},
			{Name: "dtx", Type: "INTEGER"},
			{Name: "ph", Type: "DOUBLE PRECISION"},
			{Name: "k", Type: "DOUBLE PRECISION"},
			{Name: "na", Type: "DOUBLE PRECISION"},
			{Name: "ag", Type: "DOUBLE PRECISION"},
			{Name: "ketone", Type: "DOUBLE PRECISION"},
		},
		ForeignKeys: []store.ForeignKey{
			{Column: "patient_id", RefTable: "patients", RefColumn: "patient_id", Cascade: true},
		},
	}
}

type labRepoPG struct {
	table *store.Table
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &labRepoPG{table: store.NewTable(pool, Spec())}
}

func (r *labRepoPG) EnsureTable(ctx context.Context) error {
	return r.table.EnsureTable(ctx)
}

func (r *labRepoPG) Create(ctx context.Context, res *Result) (int64, error) {
	rec := store.Record{
		"patient_id":   res.PatientID,
		"logtime":      res.LogTime,
		"sampled_time": res.SampledTime,
		"result_time":  res.ResultTime,
	}
	if res.DTX != nil {
		rec["dtx"] = *res.DTX
	}
	if res.PH != nil {
		rec["ph"] = *res.PH
	}
	if res.K != nil {
		rec["k"] = *res.K
	}
	if res.Na != nil {
		rec["na"] = *res.Na
	}
	if res.AG != nil {
		rec["ag"] = *res.AG
	}
	if res.Ketone != nil {
		rec["ketone"] = *res.Ketone
	}
	return r.table.Insert(ctx, rec)
}

func (r *labRepoPG) GetByID(ctx context.Context, id int64) (*Result, error) {
	rec, err := r.table.GetByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return fromRecord(rec), nil
}

func (r *labRepoPG) Update(ctx context.Context, id int64, patch Patch) (bool, error) {
	return r.table.Update(ctx, id, patch.record())
}

func (r *labRepoPG) Delete(ctx context.Context, id int64) (bool, error) {
	return r.table.Delete(ctx, id)
}

func (r *labRepoPG) List(ctx context.Context) ([]*Result, error) {
	recs, err := r.table.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (r *labRepoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Result, error) {
	recs, err := r.table.GetAllBy(ctx, "patient_id", patientID)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func fromRecords(recs []store.Record) []*Result {
	results := make([]*Result, len(recs))
	for i, rec := range recs {
		results[i] = fromRecord(rec)
	}
	return results
}

func fromRecord(rec store.Record) *Result {
	res := &Result{
		DTX:    rec.Int64Ptr("dtx"),
		PH:     rec.Float64Ptr("ph"),
		K:      rec.Float64Ptr("k"),
		Na:     rec.Float64Ptr("na"),
		AG:     rec.Float64Ptr("ag"),
		Ketone: rec.Float64Ptr("ketone"),
	}
	res.ID, _ = rec.Int64("id")
	res.PatientID, _ = rec.Int64("patient_id")
	res.LogTime, _ = rec.Int64("logtime")
	res.SampledTime, _ = rec.Int64("sampled_time")
	res.ResultTime, _ = rec.Int64("result_time")
	return res
}
