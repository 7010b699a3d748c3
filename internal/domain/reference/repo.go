package reference

import "context"

// Repository exposes reads over both dimension tables, plus the
// mutation surface that always fails with a not-permitted error. The
// mutations are kept on the interface so the HTTP layer can surface
// the read-only policy instead of pretending the routes do not exist.
type Repository interface {
	EnsureTables(ctx context.Context) error
	SeedDimensions(ctx context.Context) error

	GetTreatmentType(ctx context.Context, id int64) (*TreatmentType, error)
	ListTreatmentTypes(ctx context.Context) ([]*TreatmentType, error)
	CreateTreatmentType(ctx context.Context, t *TreatmentType) error
	DeleteTreatmentType(ctx context.Context, id int64) error

	GetApplicationMethod(ctx context.Context, id int64) (*ApplicationMethod, error)
	ListApplicationMethods(ctx context.Context) ([]*ApplicationMethod, error)
	CreateApplicationMethod(ctx context.Context, m *ApplicationMethod) error
	DeleteApplicationMethod(ctx context.Context, id int64) error
}
