package models

// ClinicalHistory represents the per-patient clinical-history record
// ("historia clínica"). The unique index on PatientID enforces at most one
// per patient. Visit data is never stored here; the summary endpoint
// re-reads the patient's visits at render time.
type ClinicalHistory struct {
	BaseModel
	PatientID    string `gorm:"size:36;uniqueIndex;not null" json:"patientId"`
	Observations string `gorm:"type:text" json:"observations"`
}
