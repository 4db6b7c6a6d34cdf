package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"consultorio-server/internal/models"
	"consultorio-server/internal/scheduling"
	"consultorio-server/internal/utils"
)

// AppointmentHandler handles appointment ("turno") related requests.
type AppointmentHandler struct {
	DB *gorm.DB
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db}
}

// AppointmentRequest represents the request body for creating or updating an
// appointment.
type AppointmentRequest struct {
	PatientID       string                   `json:"patientId" binding:"required,uuid"`
	StartTime       time.Time                `json:"startTime" binding:"required"`
	DurationMinutes int                      `json:"durationMinutes" binding:"omitempty,min=5"`
	Status          models.AppointmentStatus `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	Motive          string                   `json:"motive" binding:"required"`
	Notes           string                   `json:"notes"`
}

// UpdateAppointmentStatusRequest represents the request body for updating an
// appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
	Notes  string                   `json:"notes"` // Optional notes for the status change
}

// checkConflict runs the overlap rule for a candidate slot against every
// non-cancelled appointment in the store. If the calendar rejects the slot,
// it writes the 409 response and returns false. The candidate's own ID (set
// on updates) is excluded inside scheduling.Conflict.
func (h *AppointmentHandler) checkConflict(c *gin.Context, candidate scheduling.Slot) bool {
	var active []models.Appointment
	if err := h.DB.Where("status <> ?", models.StatusCancelled).Find(&active).Error; err != nil {
		utils.InternalServerError(c, "Failed to check the calendar: "+err.Error())
		return false
	}

	slots := make([]scheduling.Slot, 0, len(active))
	for _, a := range active {
		slots = append(slots, scheduling.Slot{
			ID:              a.ID,
			Start:           a.StartTime,
			DurationMinutes: a.DurationMinutes,
		})
	}

	if taken, found := scheduling.Conflict(candidate, slots); found {
		utils.Conflict(c, fmt.Sprintf(
			"Schedule conflict: the selected time overlaps an appointment from %s to %s",
			taken.Start.Format(time.RFC3339), taken.End().Format(time.RFC3339)))
		return false
	}
	return true
}

// GetAppointments handles listing appointments, optionally restricted to a
// time range for the calendar view.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	query := h.DB.Order("start_time asc")

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			utils.BadRequest(c, "Invalid 'from' timestamp, expected RFC3339")
			return
		}
		query = query.Where("start_time >= ?", from)
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			utils.BadRequest(c, "Invalid 'to' timestamp, expected RFC3339")
			return
		}
		query = query.Where("start_time <= ?", to)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentsForPatient handles listing a patient's appointments.
func (h *AppointmentHandler) GetAppointmentsForPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Where("patient_id = ?", patientID).Order("start_time asc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch the patient's appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// CreateAppointment handles booking a new appointment. The slot is rejected
// with a conflict if it overlaps any non-cancelled appointment.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	// Verify patient exists
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	if req.DurationMinutes == 0 {
		req.DurationMinutes = models.DefaultDurationMinutes
	}
	if req.Status == "" {
		req.Status = models.StatusPending
	}

	// A slot booked directly as cancelled occupies no calendar time.
	if req.Status != models.StatusCancelled {
		candidate := scheduling.Slot{Start: req.StartTime, DurationMinutes: req.DurationMinutes}
		if !h.checkConflict(c, candidate) {
			return
		}
	}

	appointment := models.Appointment{
		PatientID:       req.PatientID,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Status:          req.Status,
		Motive:          req.Motive,
		Notes:           req.Notes,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// UpdateAppointment handles updating an appointment in place. The overlap
// rule re-runs when the time slot changes or a cancelled appointment is
// brought back onto the calendar; the appointment's own prior slot never
// counts as a conflict.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.DurationMinutes == 0 {
		req.DurationMinutes = models.DefaultDurationMinutes
	}
	if req.Status == "" {
		req.Status = appointment.Status
	}

	slotChanged := !req.StartTime.Equal(appointment.StartTime) || req.DurationMinutes != appointment.DurationMinutes
	reactivated := appointment.Status == models.StatusCancelled && req.Status != models.StatusCancelled

	if req.Status != models.StatusCancelled && (slotChanged || reactivated) {
		candidate := scheduling.Slot{ID: appointment.ID, Start: req.StartTime, DurationMinutes: req.DurationMinutes}
		if !h.checkConflict(c, candidate) {
			return
		}
	}

	appointment.PatientID = req.PatientID
	appointment.StartTime = req.StartTime
	appointment.DurationMinutes = req.DurationMinutes
	appointment.Status = req.Status
	appointment.Motive = req.Motive
	appointment.Notes = req.Notes

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment updated successfully", appointment)
}

// UpdateAppointmentStatus handles updating only the status of an appointment.
// Transitions are unconstrained, but reactivating a cancelled appointment
// puts its slot back on the calendar and must pass the overlap rule again.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.Status == models.StatusCancelled && req.Status != models.StatusCancelled {
		candidate := scheduling.Slot{ID: appointment.ID, Start: appointment.StartTime, DurationMinutes: appointment.DurationMinutes}
		if !h.checkConflict(c, candidate) {
			return
		}
	}

	appointment.Status = req.Status
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// DeleteAppointment handles deleting an appointment.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	result := h.DB.Delete(&models.Appointment{}, "id = ?", appointmentID)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Appointment not found")
		return
	}

	utils.Success(c, "Appointment deleted successfully", nil)
}
