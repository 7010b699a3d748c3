// Package reference holds the read-only dimension tables: the treatment
// type catalog and the application method catalog. Rows are seeded at
// bootstrap and never mutated by the application; the access layer
// rejects any attempt with a not-permitted failure.
package reference

import "github.com/dka/dka/internal/store"

// TreatmentType is one row of dim_treatment_type. Identities are
// externally assigned small integers, fixed by the seed catalog.
type TreatmentType struct {
	ID              int64   `json:"treatment_type_id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	RecCreateTime   *int64  `json:"rec_create_time,omitempty"`
	RecModifiedTime *int64  `json:"rec_modified_time,omitempty"`
}

// ApplicationMethod is one row of dim_application_method.
type ApplicationMethod struct {
	ID              int64   `json:"application_method_id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	RecCreateTime   *int64  `json:"rec_create_time,omitempty"`
	RecModifiedTime *int64  `json:"rec_modified_time,omitempty"`
}

// TreatmentTypeSpec describes dim_treatment_type to the access layer.
func TreatmentTypeSpec() store.TableSpec {
	return store.TableSpec{
		Name:     "dim_treatment_type",
		IDColumn: "treatment_type_id",
		Columns: []store.Column{
			{Name: "treatment_type_id", Type: "INTEGER", Constraints: "PRIMARY KEY"},
			{Name: "name", Type: "TEXT", Constraints: "NOT NULL"},
			{Name: "description", Type: "TEXT"},
			{Name: "rec_create_time", Type: "BIGINT"},
			{Name: "rec_modified_time", Type: "BIGINT"},
		},
	}
}

// ApplicationMethodSpec describes dim_application_method.
func ApplicationMethodSpec() store.TableSpec {
	return store.TableSpec{
		Name:     "dim_application_method",
		IDColumn: "application_method_id",
		Columns: []store.Column{
			{Name: "application_method_id", Type: "INTEGER", Constraints: "PRIMARY KEY"},
			{Name: "name", Type: "TEXT", Constraints: "NOT NULL"},
			{Name: "description", Type: "TEXT"},
			{Name: "rec_create_time", Type: "BIGINT"},
			{Name: "rec_modified_time", Type: "BIGINT"},
		},
	}
}

// TreatmentTypeSeed is the fixed treatment type catalog.
func TreatmentTypeSeed() []store.Record {
	return []store.Record{
		{"treatment_type_id": 1, "name": "Insulin Therapy", "description": "Administering insulin to control blood sugar levels", "rec_create_time": 0, "rec_modified_time": 0},
		{"treatment_type_id": 2, "name": "Fluid Replacement", "description": "Replenishing lost fluids", "rec_create_time": 0, "rec_modified_time": 0},
		{"treatment_type_id": 3, "name": "Electrolyte Replacement", "description": "Restoring electrolyte balance", "rec_create_time": 0, "rec_modified_time": 0},
	}
}

// ApplicationMethodSeed is the fixed application method catalog.
func ApplicationMethodSeed() []store.Record {
	return []store.Record{
		{"application_method_id": 1, "name": "IV_1", "description": "Intravenous method 1", "rec_create_time": 0, "rec_modified_time": 0},
		{"application_method_id": 2, "name": "IV_2", "description": "Intravenous method 2", "rec_create_time": 0, "rec_modified_time": 0},
		{"application_method_id": 3, "name": "IV_3", "description": "Intravenous method 3", "rec_create_time": 0, "rec_modified_time": 0},
		{"application_method_id": 4, "name": "IV_4", "description": "Intravenous method 4", "rec_create_time": 0, "rec_modified_time": 0},
	}
}
