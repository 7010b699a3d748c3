package patient

import "github.com/dka/dka/internal/store"

// Patient maps to the patients table. HN is the hospital number, the
// unique external identifier; it is assigned at admission and never
// changes, so Patch has no hn field.
type Patient struct {
	ID             int64   `json:"patient_id"`
	HN             string  `json:"hn"`
	Name           string  `json:"name"`
	Age            int64   `json:"age"`
	Sex            string  `json:"sex"`
	MedicalHistory *string `json:"medical_history,omitempty"`
}

// Patch carries a partial update. Only non-nil fields are applied.
type Patch struct {
	Name           *string `json:"name,omitempty"`
	Age            *int64  `json:"age,omitempty"`
	Sex            *string `json:"sex,omitempty"`
	MedicalHistory *string `json:"medical_history,omitempty"`
}

// Validate checks a candidate patient before insert.
func (p *Patient) Validate() []store.Violation {
	var vs []store.Violation
	if p.HN == "" {
		vs = append(vs, store.Violation{Field: "hn", Reason: "required"})
	}
	if p.Name == "" {
		vs = append(vs, store.Violation{Field: "name", Reason: "required"})
	}
	if p.Age < 0 {
		vs = append(vs, store.Violation{Field: "age", Reason: "must not be negative"})
	}
	if p.Sex == "" {
		vs = append(vs, store.Violation{Field: "sex", Reason: "required"})
	}
	return vs
}

// Validate checks the supplied fields of a partial update.
func (p Patch) Validate() []store.Violation {
	var vs []store.Violation
	if p.Name != nil && *p.Name == "" {
		vs = append(vs, store.Violation{Field: "name", Reason: "must not be empty"})
	}
	if p.Age != nil && *p.Age < 0 {
		vs = append(vs, store.Violation{Field: "age", Reason: "must not be negative"})
	}
	if p.Sex != nil && *p.Sex == "" {
		vs = append(vs, store.Violation{Field: "sex", Reason: "must not be empty"})
	}
	return vs
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil && p.Sex == nil && p.MedicalHistory == nil
}

func (p Patch) record() store.Record {
	rec := store.Record{}
	if p.Name != nil {
		rec["name"] = *p.Name
	}
	if p.Age != nil {
		rec["age"] = *p.Age
	}
	if p.Sex != nil {
		rec["sex"] = *p.Sex
	}
	if p.MedicalHistory != nil {
		rec["medical_history"] = *p.MedicalHistory
	}
	return rec
}
