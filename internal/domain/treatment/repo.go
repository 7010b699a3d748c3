package treatment

import "context"

type Repository interface {
	EnsureTable(ctx context.Context) error
	Create(ctx context.Context, t *Treatment) (int64, error)
	GetByID(ctx context.Context, id int64) (*Treatment, error)
	Update(ctx context.Context, id int64, patch Patch) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]*Treatment, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*Treatment, error)
}
