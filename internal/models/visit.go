package models

import (
	"math"
	"time"

	"gorm.io/datatypes"
)

// VitalSigns holds the optional structured measurements taken during a visit.
// Every field is optional; the whole object is stored as one JSON column.
type VitalSigns struct {
	SystolicBP       *float64 `json:"systolicBp,omitempty"`
	DiastolicBP      *float64 `json:"diastolicBp,omitempty"`
	HeartRate        *float64 `json:"heartRate,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	RespiratoryRate  *float64 `json:"respiratoryRate,omitempty"`
	OxygenSaturation *float64 `json:"oxygenSaturation,omitempty"`
	WeightKg         *float64 `json:"weightKg,omitempty"`
	HeightCm         *float64 `json:"heightCm,omitempty"`
}

// BMI derives the body-mass index from weight and height. It is computed at
// read time and never stored. Returns nil unless both measurements are present.
func (vs *VitalSigns) BMI() *float64 {
	if vs == nil || vs.WeightKg == nil || vs.HeightCm == nil || *vs.HeightCm <= 0 {
		return nil
	}
	heightM := *vs.HeightCm / 100
	bmi := math.Round(*vs.WeightKg/(heightM*heightM)*10) / 10
	return &bmi
}

// Visit represents a clinical encounter note ("consulta") for a patient.
// The patient reference is weak: deleting the patient does not delete visits.
type Visit struct {
	BaseModel
	PatientID    string                          `gorm:"size:36;index;not null" json:"patientId"`
	VisitDate    time.Time                       `json:"visitDate"`
	Motive       string                          `gorm:"size:255" json:"motive"`
	Diagnosis    string                          `gorm:"type:text" json:"diagnosis,omitempty"`
	Treatment    string                          `gorm:"type:text" json:"treatment,omitempty"`
	Notes        string                          `gorm:"type:text" json:"notes,omitempty"`
	Vitals       *datatypes.JSONType[VitalSigns] `json:"-"`
	FollowUpDate *time.Time                      `json:"followUpDate,omitempty"`
}

// VitalSignsDetail is VitalSigns plus the derived BMI for API responses.
type VitalSignsDetail struct {
	VitalSigns
	BMI *float64 `json:"bmi,omitempty"`
}

// VisitDetail is the API shape of a visit, with vitals expanded and BMI derived.
type VisitDetail struct {
	ID           string            `json:"id"`
	PatientID    string            `json:"patientId"`
	VisitDate    time.Time         `json:"visitDate"`
	Motive       string            `json:"motive"`
	Diagnosis    string            `json:"diagnosis,omitempty"`
	Treatment    string            `json:"treatment,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	Vitals       *VitalSignsDetail `json:"vitals,omitempty"`
	FollowUpDate *time.Time        `json:"followUpDate,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Detail creates a VisitDetail from a Visit model.
func (v *Visit) Detail() VisitDetail {
	detail := VisitDetail{
		ID:           v.ID,
		PatientID:    v.PatientID,
		VisitDate:    v.VisitDate,
		Motive:       v.Motive,
		Diagnosis:    v.Diagnosis,
		Treatment:    v.Treatment,
		Notes:        v.Notes,
		FollowUpDate: v.FollowUpDate,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
	if v.Vitals != nil {
		vs := v.Vitals.Data()
		detail.Vitals = &VitalSignsDetail{VitalSigns: vs, BMI: vs.BMI()}
	}
	return detail
}

// VisitDetails maps a slice of visits to their API shape.
func VisitDetails(visits []Visit) []VisitDetail {
	details := make([]VisitDetail, 0, len(visits))
	for i := range visits {
		details = append(details, visits[i].Detail())
	}
	return details
}
