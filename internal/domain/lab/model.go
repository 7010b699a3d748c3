package lab

import "github.com/dka/dka/internal/store"

// Result maps to the lab_results table. The three timestamps are unix
// milliseconds; the clinical measurements are all optional but must be
// physiologically sane when present.
type Result struct {
	ID          int64 `json:"id"`
	PatientID   int64 `json:"patient_id"`
	LogTime     int64 `json:"logtime"`
	SampledTime int64 `json:"sampled_time"`
	ResultTime  int64 `json:"result_time"`

	DTX    *int64   `json:"dtx,omitempty"`    // Dextrostix, mg/dL
	PH     *float64 `json:"ph,omitempty"`     // blood pH
	K      *float64 `json:"k,omitempty"`      // potassium, mmol/L
	Na     *float64 `json:"na,omitempty"`     // sodium, mmol/L
	AG     *float64 `json:"ag,omitempty"`     // anion gap, mmol/L
	Ketone *float64 `json:"ketone,omitempty"` // ketone, mmol/L
}

// Patch carries a partial update. The owning patient reference is not
// patchable; move a result by deleting and re-inserting it.
type Patch struct {
	LogTime     *int64 `json:"logtime,omitempty"`
	SampledTime *int64 `json:"sampled_time,omitempty"`
	ResultTime  *int64 `json:"result_time,omitempty"`

	DTX    *int64   `json:"dtx,omitempty"`
	PH     *float64 `json:"ph,omitempty"`
	K      *float64 `json:"k,omitempty"`
	Na     *float64 `json:"na,omitempty"`
	AG     *float64 `json:"ag,omitempty"`
	Ketone *float64 `json:"ketone,omitempty"`
}

// Validate checks a candidate result before insert.
func (r *Result) Validate() []store.Violation {
	var vs []store.Violation
	if r.PatientID <= 0 {
		vs = append(vs, store.Violation{Field: "patient_id", Reason: "required"})
	}
	if r.LogTime <= 0 {
		vs = append(vs, store.Violation{Field: "logtime", Reason: "required"})
	}
	if r.SampledTime <= 0 {
		vs = append(vs, store.Violation{Field: "sampled_time", Reason: "required"})
	}
	if r.ResultTime <= 0 {
		vs = append(vs, store.Violation{Field: "result_time", Reason: "required"})
	}
	return append(vs, checkMeasurements(r.DTX, r.PH, r.K, r.Na, r.AG, r.Ketone)...)
}

// Validate checks the supplied fields of a partial update.
func (p Patch) Validate() []store.Violation {
	var vs []store.Violation
	if p.LogTime != nil && *p.LogTime <= 0 {
		vs = append(vs, store.Violation{Field: "logtime", Reason: "must be a positive unix millisecond timestamp"})
	}
	if p.SampledTime != nil && *p.SampledTime <= 0 {
		vs = append(vs, store.Violation{Field: "sampled_time", Reason: "must be a positive unix millisecond timestamp"})
	}
	if p.ResultTime != nil && *p.ResultTime <= 0 {
		vs = append(vs, store.Violation{Field: "result_time", Reason: "must be a positive unix millisecond timestamp"})
	}
	return append(vs, checkMeasurements(p.DTX, p.PH, p.K, p.Na, p.AG, p.Ketone)...)
}

func checkMeasurements(dtx *int64, ph, k, na, ag, ketone *float64) []store.Violation {
	var vs []store.Violation
	if dtx != nil && *dtx < 0 {
		vs = append(vs, store.Violation{Field: "dtx", Reason: "must not be negative"})
	}
	if ph != nil && (*ph < 0 || *ph > 14) {
		vs = append(vs, store.Violation{Field: "ph", Reason: "must be between 0 and 14"})
	}
	if k != nil && *k < 0 {
		vs = append(vs, store.Violation{Field: "k", Reason: "must not be negative"})
	}
	if na != nil && *na < 0 {
		vs = append(vs, store.Violation{Field: "na", Reason: "must not be negative"})
	}
	if ag != nil && *ag < 0 {
		vs = append(vs, store.Violation{Field: "ag", Reason: "must not be negative"})
	}
	if ketone != nil && *ketone < 0 {
		vs = append(vs, store.Violation{Field: "ketone", Reason: "must not be negative"})
	}
	return vs
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return p.LogTime == nil && p.SampledTime == nil && p.ResultTime == nil &&
		p.DTX == nil && p.PH == nil && p.K == nil && p.Na == nil &&
		p.AG == nil && p.Ketone == nil
}

func (p Patch) record() store.Record {
	rec := store.Record{}
	if p.LogTime != nil {
		rec["logtime"] = *p.LogTime
	}
	if p.SampledTime != nil {
		rec["sampled_time"] = *p.SampledTime
	}
	if p.ResultTime != nil {
		rec["result_time"] = *p.ResultTime
	}
	if p.DTX != nil {
		rec["dtx"] = *p.DTX
	}
	if p.PH != nil {
		rec["ph"] = *p.PH
	}
	if p.K != nil {
		rec["k"] = *p.K
	}
	if p.Na != nil {
		rec["na"] = *p.Na
	}
	if p.AG != nil {
		rec["ag"] = *p.AG
	}
	if p.Ketone != nil {
		rec["ketone"] = *p.Ketone
	}
	return rec
}
