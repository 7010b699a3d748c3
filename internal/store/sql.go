package store

import (
	"fmt"
	"sort"
	"strings"
)

// Statement builders. All of them are pure functions over a TableSpec
// and a payload; keys are sorted so the generated SQL is deterministic.

func createTableSQL(spec TableSpec) string {
	defs := make([]string, 0, len(spec.Columns)+len(spec.ForeignKeys))
	for _, c := range spec.Columns {
		def := c.Name + " " + c.Type
		if c.Constraints != "" {
			def += " " + c.Constraints
		}
		defs = append(defs, def)
	}
	for _, fk := range spec.ForeignKeys {
		def := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)", fk.Column, fk.RefTable, fk.RefColumn)
		if fk.Cascade {
			def += " ON UPDATE CASCADE ON DELETE CASCADE"
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", spec.Name, strings.Join(defs, ",\n\t"))
}

func sortedKeys(rec Record) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func insertSQL(spec TableSpec, rec Record) (string, []any) {
	keys := sortedKeys(rec)
	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = rec[k]
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		spec.Name, strings.Join(keys, ", "), strings.Join(placeholders, ", "), spec.IDColumn)
	return stmt, args
}

func updateSQL(spec TableSpec, id int64, rec Record) (string, []any) {
	keys := sortedKeys(rec)
	sets := make([]string, len(keys))
	args := make([]any, 0, len(keys)+1)
	for i, k := range keys {
		sets[i] = fmt.Sprintf("%s = $%d", k, i+1)
		args = append(args, rec[k])
	}
	args = append(args, id)
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		spec.Name, strings.Join(sets, ", "), spec.IDColumn, len(keys)+1)
	return stmt, args
}

func deleteSQL(spec TableSpec) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", spec.Name, spec.IDColumn)
}

func selectByIDSQL(spec TableSpec) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		strings.Join(spec.columnNames(), ", "), spec.Name, spec.IDColumn)
}

func selectAllSQL(spec TableSpec) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(spec.columnNames(), ", "), spec.Name, spec.IDColumn)
}

func selectBySQL(spec TableSpec, column string) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s",
		strings.Join(spec.columnNames(), ", "), spec.Name, column, spec.IDColumn)
}
