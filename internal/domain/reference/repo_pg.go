package reference

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dka/dka/internal/store"
)

type referenceRepoPG struct {
	treatmentTypes     *store.Dimension
	applicationMethods *store.Dimension
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &referenceRepoPG{
		treatmentTypes:     store.NewDimension(pool, TreatmentTypeSpec()),
		applicationMethods: store.NewDimension(pool, ApplicationMethodSpec()),
	}
}

func (r *referenceRepoPG) EnsureTables(ctx context.Context) error {
	if err := r.treatmentTypes.EnsureTable(ctx); err != nil {
		return err
	}
	return r.applicationMethods.EnsureTable(ctx)
}

func (r *referenceRepoPG) SeedDimensions(ctx context.Context) error {
	if err := r.treatmentTypes.Seed(ctx, TreatmentTypeSeed()); err != nil {
		return err
	}
	return r.applicationMethods.Seed(ctx, ApplicationMethodSeed())
}

func (r *referenceRepoPG) GetTreatmentType(ctx context.Context, id int64) (*TreatmentType, error) {
	rec, err := r.treatmentTypes.GetByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return treatmentTypeFromRecord(rec), nil
}

func (r *referenceRepoPG) ListTreatmentTypes(ctx context.Context) ([]*TreatmentType, error) {
	recs, err := r.treatmentTypes.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	types := make([]*TreatmentType, len(recs))
	for i, rec := range recs {
		types[i] = treatmentTypeFromRecord(rec)
	}
	return types, nil
}

func (r *referenceRepoPG) CreateTreatmentType(ctx context.Context, t *TreatmentType) error {
	_, err := r.treatmentTypes.Insert(ctx, store.Record{"name": t.Name})
	return err
}

func (r *referenceRepoPG) DeleteTreatmentType(ctx context.Context, id int64) error {
	_, err := r.treatmentTypes.Delete(ctx, id)
	return err
}

func (r *referenceRepoPG) GetApplicationMethod(ctx context.Context, id int64) (*ApplicationMethod, error) {
	rec, err := r.applicationMethods.GetByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return applicationMethodFromRecord(rec), nil
}

func (r *referenceRepoPG) ListApplicationMethods(ctx context.Context) ([]*ApplicationMethod, error) {
	recs, err := r.applicationMethods.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	methods := make([]*ApplicationMethod, len(recs))
	for i, rec := range recs {
		methods[i] = applicationMethodFromRecord(rec)
	}
	return methods, nil
}

func (r *referenceRepoPG) CreateApplicationMethod(ctx context.Context, m *ApplicationMethod) error {
	_, err := r.applicationMethods.Insert(ctx, store.Record{"name": m.Name})
	return err
}

func (r *referenceRepoPG) DeleteApplicationMethod(ctx context.Context, id int64) error {
	_, err := r.applicationMethods.Delete(ctx, id)
	return err
}

func treatmentTypeFromRecord(rec store.Record) *TreatmentType {
	t := &TreatmentType{
		Description:     rec.StringPtr("description"),
		RecCreateTime:   rec.Int64Ptr("rec_create_time"),
		RecModifiedTime: rec.Int64Ptr("rec_modified_time"),
	}
	t.ID, _ = rec.Int64("treatment_type_id")
	t.Name, _ = rec.String("name")
	return t
}

func applicationMethodFromRecord(rec store.Record) *ApplicationMethod {
	m := &ApplicationMethod{
		Description:     rec.StringPtr("description"),
		RecCreateTime:   rec.Int64Ptr("rec_create_time"),
		RecModifiedTime: rec.Int64Ptr("rec_modified_time"),
	}
	m.ID, _ = rec.Int64("application_method_id")
	m.Name, _ = rec.String("name")
	return m
}
