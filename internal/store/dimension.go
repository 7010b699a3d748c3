package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Dimension is the Accessor implementation for reference tables. Reads
// and table creation behave exactly like Table; Insert, Update and
// Delete fail unconditionally with NotPermittedError so callers can
// distinguish the policy violation from data errors.
type Dimension struct {
	table *Table
}

func NewDimension(pool *pgxpool.Pool, spec TableSpec) *Dimension {
	return &Dimension{table: NewTable(pool, spec)}
}

func (d *Dimension) Spec() TableSpec { return d.table.spec }

func (d *Dimension) EnsureTable(ctx context.Context) error {
	return d.table.EnsureTable(ctx)
}

func (d *Dimension) GetByID(ctx context.Context, id int64) (Record, error) {
	return d.table.GetByID(ctx, id)
}

func (d *Dimension) GetAll(ctx context.Context) ([]Record, error) {
	return d.table.GetAll(ctx)
}

func (d *Dimension) Insert(ctx context.Context, rec Record) (int64, error) {
	return 0, &NotPermittedError{Table: d.table.spec.Name, Op: "insert"}
}

func (d *Dimension) Update(ctx context.Context, id int64, rec Record) (bool, error) {
	return false, &NotPermittedError{Table: d.table.spec.Name, Op: "update"}
}

func (d *Dimension) Delete(ctx context.Context, id int64) (bool, error) {
	return false, &NotPermittedError{Table: d.table.spec.Name, Op: "delete"}
}

// Seed writes the fixed reference rows during bootstrap. It is the only
// write path into a dimension table and is idempotent: rows that already
// exist are left untouched. Unlike Insert, seed payloads carry the
// identity column because dimension ids are externally assigned.
func (d *Dimension) Seed(ctx context.Context, recs []Record) error {
	if len(recs) == 0 {
		return nil
	}
	spec := d.table.spec
	for _, rec := range recs {
		for key := range rec {
			if !spec.HasColumn(key) {
				return validationf(key, "unknown column for table %s", spec.Name)
			}
		}
		keys := sortedKeys(rec)
		placeholders := make([]string, len(keys))
		args := make([]any, len(keys))
		for i, k := range keys {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args[i] = rec[k]
		}
		stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO NOTHING",
			spec.Name, strings.Join(keys, ", "), strings.Join(placeholders, ", "), spec.IDColumn)
		if _, err := d.table.pool.Exec(ctx, stmt, args...); err != nil {
			return &QueryError{Stmt: stmt, Err: err}
		}
	}
	return nil
}
