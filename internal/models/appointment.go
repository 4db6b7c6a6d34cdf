package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

const (
	// DefaultDurationMinutes is used when a request omits the duration.
	DefaultDurationMinutes = 30
	// MinDurationMinutes is the shortest bookable slot.
	MinDurationMinutes = 5
)

// Appointment represents a scheduled time slot ("turno") for a patient.
// Two non-cancelled appointments must never occupy overlapping intervals.
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;index;not null" json:"patientId"`
	StartTime       time.Time         `gorm:"index" json:"startTime"`
	DurationMinutes int               `gorm:"default:30" json:"durationMinutes"`
	Status          AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	Motive          string            `gorm:"size:255" json:"motive"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
}

// End returns the exclusive end of the appointment's interval.
func (a *Appointment) End() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
