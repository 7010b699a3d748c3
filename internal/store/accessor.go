// Package store implements the generic record-access layer: a uniform
// six-operation contract over relational tables, a transactional
// implementation for operational tables, a read-only implementation for
// dimension (reference) tables, and the error taxonomy shared by both.
//
// Concrete accessors in internal/domain describe their table with a
// TableSpec, validate typed payloads, and delegate here. Statements are
// built from declared columns only, so payload keys never reach SQL
// unchecked.
package store

import "context"

// Accessor is the operation surface every table accessor provides.
//
// Universal contracts:
//   - EnsureTable is idempotent; an already existing table is not an error.
//   - Insert returns the newly assigned identity value.
//   - GetByID returns (nil, nil) when no row matches.
//   - Update with an empty payload fails validation; with an unmatched id
//     it returns (false, nil).
//   - Delete with an unmatched id returns (false, nil).
//   - GetAll returns an empty slice, never nil-with-error, for an empty
//     table.
type Accessor interface {
	EnsureTable(ctx context.Context) error
	Insert(ctx context.Context, rec Record) (int64, error)
	GetByID(ctx context.Context, id int64) (Record, error)
	Update(ctx context.Context, id int64, rec Record) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetAll(ctx context.Context) ([]Record, error)
}

// Column declares one column of a table.
type Column struct {
	Name        string
	Type        string // SQL type, e.g. "BIGINT"
	Constraints string // e.g. "NOT NULL UNIQUE"
}

// ForeignKey declares a referential-integrity constraint. Cascade adds
// ON UPDATE CASCADE ON DELETE CASCADE so dependent rows follow their
// parent.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
	Cascade   bool
}

// TableSpec describes a table to the generic layer: its name, identity
// column, ordered column list and constraints.
type TableSpec struct {
	Name        string
	IDColumn    string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// HasColumn reports whether name is a declared column.
func (s TableSpec) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// columnNames returns the declared column names in declaration order.
func (s TableSpec) columnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// validateKeys rejects payload keys that are not declared columns, or
// that name the identity column. Identity values are assigned by the
// store, never by callers.
func (s TableSpec) validateKeys(rec Record) error {
	for key := range rec {
		if key == s.IDColumn {
			return validationf(key, "identity column cannot be set")
		}
		if !s.HasColumn(key) {
			return validationf(key, "unknown column for table %s", s.Name)
		}
	}
	return nil
}
