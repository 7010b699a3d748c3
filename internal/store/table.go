package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Table is the transactional Accessor implementation for operational
// tables, parameterized by a TableSpec. Mutations run inside an explicit
// transaction and roll back on any failure; reads are plain queries.
type Table struct {
	pool *pgxpool.Pool
	spec TableSpec
}

func NewTable(pool *pgxpool.Pool, spec TableSpec) *Table {
	return &Table{pool: pool, spec: spec}
}

func (t *Table) Spec() TableSpec { return t.spec }

func (t *Table) EnsureTable(ctx context.Context) error {
	stmt := createTableSQL(t.spec)
	if _, err := t.pool.Exec(ctx, stmt); err != nil {
		return &QueryError{Stmt: stmt, Err: err}
	}
	return nil
}

func (t *Table) Insert(ctx context.Context, rec Record) (int64, error) {
	if len(rec) == 0 {
		return 0, &ValidationError{Reason: "empty insert payload"}
	}
	if err := t.spec.validateKeys(rec); err != nil {
		return 0, err
	}

	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return 0, &ConnectionError{Err: err}
	}
	defer tx.Rollback(ctx)

	stmt, args := insertSQL(t.spec, rec)
	var id int64
	if err := tx.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, &QueryError{Stmt: stmt, Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, &QueryError{Stmt: stmt, Err: err}
	}
	return id, nil
}

func (t *Table) GetByID(ctx context.Context, id int64) (Record, error) {
	stmt := selectByIDSQL(t.spec)
	rows, err := t.pool.Query(ctx, stmt, id)
	if err != nil {
		return nil, &QueryError{Stmt: stmt, Err: err}
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, &QueryError{Stmt: stmt, Err: err}
		}
		return nil, nil
	}
	return t.scanRecord(rows, stmt)
}

func (t *Table) Update(ctx context.Context, id int64, rec Record) (bool, error) {
	if len(rec) == 0 {
		return false, &ValidationError{Reason: "empty update payload"}
	}
	if err := t.spec.validateKeys(rec); err != nil {
		return false, err
	}

	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return false, &ConnectionError{Err: err}
	}
	defer tx.Rollback(ctx)

	stmt, args := updateSQL(t.spec, id, rec)
	tag, err := tx.Exec(ctx, stmt, args...)
	if err != nil {
		return false, &QueryError{Stmt: stmt, Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return false, &QueryError{Stmt: stmt, Err: err}
	}
	return tag.RowsAffected() > 0, nil
}

func (t *Table) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return false, &ConnectionError{Err: err}
	}
	defer tx.Rollback(ctx)

	stmt := deleteSQL(t.spec)
	tag, err := tx.Exec(ctx, stmt, id)
	if err != nil {
		return false, &QueryError{Stmt: stmt, Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return false, &QueryError{Stmt: stmt, Err: err}
	}
	return tag.RowsAffected() > 0, nil
}

func (t *Table) GetAll(ctx context.Context) ([]Record, error) {
	return t.queryRecords(ctx, selectAllSQL(t.spec))
}

// GetAllBy lists records whose column equals value, ordered by identity.
// The column must be declared in the TableSpec.
func (t *Table) GetAllBy(ctx context.Context, column string, value any) ([]Record, error) {
	if !t.spec.HasColumn(column) {
		return nil, validationf(column, "unknown column for table %s", t.spec.Name)
	}
	return t.queryRecords(ctx, selectBySQL(t.spec, column), value)
}

func (t *Table) queryRecords(ctx context.Context, stmt string, args ...any) ([]Record, error) {
	rows, err := t.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, &QueryError{Stmt: stmt, Err: err}
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := t.scanRecord(rows, stmt)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Stmt: stmt, Err: err}
	}
	return records, nil
}

func (t *Table) scanRecord(rows pgx.Rows, stmt string) (Record, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, &QueryError{Stmt: stmt, Err: err}
	}
	fields := rows.FieldDescriptions()
	rec := make(Record, len(fields))
	for i, f := range fields {
		rec[f.Name] = values[i]
	}
	return rec, nil
}
