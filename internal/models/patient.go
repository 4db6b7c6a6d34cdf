package models

import (
	"time"
)

// Patient represents a person receiving care at the office. The DNI is the
// natural business key: the unique index on it is what rejects a second
// record with the same national ID.
type Patient struct {
	BaseModel
	DNI               string     `gorm:"uniqueIndex;size:20;not null" json:"dni"`
	FullName          string     `gorm:"size:200;not null" json:"fullName"`
	BirthDate         *time.Time `json:"birthDate,omitempty"`
	Gender            string     `gorm:"size:20" json:"gender,omitempty"`
	Phone             string     `gorm:"size:50" json:"phone,omitempty"`
	Email             string     `gorm:"size:255" json:"email,omitempty"`
	Address           string     `gorm:"size:255" json:"address,omitempty"`
	InsuranceProvider string     `gorm:"size:100" json:"insuranceProvider,omitempty"`
	InsuranceNumber   string     `gorm:"size:50" json:"insuranceNumber,omitempty"`
}
