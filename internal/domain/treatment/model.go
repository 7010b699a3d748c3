package treatment

import "github.com/dka/dka/internal/store"

// Treatment is one administered-treatment fact. Timestamps are unix
// milliseconds. TreatmentTypeID and ApplicationMethodID reference the
// seeded dimension tables.
type Treatment struct {
	ID                  int64  `json:"id"`
	PatientID           int64  `json:"patient_id"`
	LogTime             int64  `json:"logtime"`
	AdministeredTime    int64  `json:"administered_time"`
	EndTime             int64  `json:"end_time"`
	TreatmentTypeID     int64  `json:"treatment_type_id"`
	ApplicationMethodID int64  `json:"application_method_id"`
	AdministrationRate  *int64 `json:"administration_rate,omitempty"`
}

// Patch carries a partial update.
type Patch struct {
	PatientID           *int64 `json:"patient_id,omitempty"`
	LogTime             *int64 `json:"logtime,omitempty"`
	AdministeredTime    *int64 `json:"administered_time,omitempty"`
	EndTime             *int64 `json:"end_time,omitempty"`
	TreatmentTypeID     *int64 `json:"treatment_type_id,omitempty"`
	ApplicationMethodID *int64 `json:"application_method_id,omitempty"`
	AdministrationRate  *int64 `json:"administration_rate,omitempty"`
}

// Validate checks a candidate treatment before insert.
func (t *Treatment) Validate() []store.Violation {
	var vs []store.Violation
	if t.PatientID <= 0 {
		vs = append(vs, store.Violation{Field: "patient_id", Reason: "required"})
	}
	if t.LogTime <= 0 {
		vs = append(vs, store.Violation{Field: "logtime", Reason: "required"})
	}
	if t.AdministeredTime <= 0 {
		vs = append(vs, store.Violation{Field: "administered_time", Reason: "required"})
	}
	if t.EndTime <= 0 {
		vs = append(vs, store.Violation{Field: "end_time", Reason: "required"})
	}
	if t.TreatmentTypeID <= 0 {
		vs = append(vs, store.Violation{Field: "treatment_type_id", Reason: "required"})
	}
	if t.ApplicationMethodID <= 0 {
		vs = append(vs, store.Violation{Field: "application_method_id", Reason: "required"})
	}
	if t.AdministrationRate != nil && *t.AdministrationRate < 0 {
		vs = append(vs, store.Violation{Field: "administration_rate", Reason: "must not be negative"})
	}
	return vs
}

// Validate checks the supplied fields of a partial update.
func (p Patch) Validate() []store.Violation {
	var vs []store.Violation
	if p.PatientID != nil && *p.PatientID <= 0 {
		vs = append(vs, store.Violation{Field: "patient_id", Reason: "must be a valid patient reference"})
	}
	if p.LogTime != nil && *p.LogTime <= 0 {
		vs = append(vs, store.Violation{Field: "logtime", Reason: "must be a positive unix millisecond timestamp"})
	}
	if p.AdministeredTime != nil && *p.AdministeredTime <= 0 {
		vs = append(vs, store.Violation{Field: "administered_time", Reason: "must be a positive unix millisecond timestamp"})
	}
	if p.EndTime != nil && *p.EndTime <= 0 {
		vs = append(vs, store.Violation{Field: "end_time", Reason: "must be a positive unix millisecond timestamp"})
	}
	if p.TreatmentTypeID != nil && *p.TreatmentTypeID <= 0 {
		vs = append(vs, store.Violation{Field: "treatment_type_id", Reason: "must be a valid treatment type reference"})
	}
	if p.ApplicationMethodID != nil && *p.ApplicationMethodID <= 0 {
		vs = append(vs, store.Violation{Field: "application_method_id", Reason: "must be a valid application method reference"})
	}
	if p.AdministrationRate != nil && *p.AdministrationRate < 0 {
		vs = append(vs, store.Violation{Field: "administration_rate", Reason: "must not be negative"})
	}
	return vs
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return p.PatientID == nil && p.LogTime == nil && p.AdministeredTime == nil &&
		p.EndTime == nil && p.TreatmentTypeID == nil &&
		p.ApplicationMethodID == nil && p.AdministrationRate == nil
}

func (p Patch) record() store.Record {
	rec := store.Record{}
	if p.PatientID != nil {
		rec["patient_id"] = *p.PatientID
	}
	if p.LogTime != nil {
		rec["logtime"] = *p.LogTime
	}
	if p.AdministeredTime != nil {
		rec["administered_time"] = *p.AdministeredTime
	}
	if p.EndTime != nil {
		rec["end_time"] = *p.EndTime
	}
	if p.TreatmentTypeID != nil {
		rec["treatment_type_id"] = *p.TreatmentTypeID
	}
	if p.ApplicationMethodID != nil {
		rec["application_method_id"] = *p.ApplicationMethodID
	}
	if p.AdministrationRate != nil {
		rec["administration_rate"] = *p.AdministrationRate
	}
	return rec
}
