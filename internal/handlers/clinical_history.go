package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"consultorio-server/internal/models"
	"consultorio-server/internal/utils"
)

// ClinicalHistoryHandler handles clinical history ("historia clínica")
// related requests.
type ClinicalHistoryHandler struct {
	DB *gorm.DB
}

// NewClinicalHistoryHandler creates a new ClinicalHistoryHandler.
func NewClinicalHistoryHandler(db *gorm.DB) *ClinicalHistoryHandler {
	return &ClinicalHistoryHandler{DB: db}
}

// CreateClinicalHistoryRequest represents the request body for initializing
// a patient's clinical history.
type CreateClinicalHistoryRequest struct {
	PatientID    string `json:"patientId" binding:"required,uuid"`
	Observations string `json:"observations"`
}

// UpdateClinicalHistoryRequest represents the request body for updating the
// physician's observations.
type UpdateClinicalHistoryRequest struct {
	Observations string `json:"observations" binding:"required"`
}

// ClinicalHistorySummary is the composed report: patient identity, physician
// observations and the patient's visits, most recent first. It is derived at
// render time and stores nothing.
type ClinicalHistorySummary struct {
	Patient    models.Patient         `json:"patient"`
	History    models.ClinicalHistory `json:"history"`
	Visits     []models.VisitDetail   `json:"visits"`
	VisitCount int                    `json:"visitCount"`
}

// GetClinicalHistoryForPatient handles fetching a patient's clinical-history
// record (metadata and observations, without the visit aggregation).
func (h *ClinicalHistoryHandler) GetClinicalHistoryForPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	var history models.ClinicalHistory
	if err := h.DB.First(&history, "patient_id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Clinical history not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Clinical history fetched successfully", history)
}

// GetClinicalHistorySummary composes the full report for a patient. A patient
// with no visits still gets a summary; the visit list is simply empty.
func (h *ClinicalHistoryHandler) GetClinicalHistorySummary(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var history models.ClinicalHistory
	if err := h.DB.First(&history, "patient_id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Clinical history not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var visits []models.Visit
	if err := h.DB.Where("patient_id = ?", patientID).Order("visit_date desc").Find(&visits).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch the patient's visits: "+err.Error())
		return
	}

	summary := ClinicalHistorySummary{
		Patient:    patient,
		History:    history,
		Visits:     models.VisitDetails(visits),
		VisitCount: len(visits),
	}

	utils.Success(c, "Clinical history summary generated successfully", summary)
}

// CreateClinicalHistory initializes a clinical history for a patient. The
// unique index on patient_id rejects a second record for the same patient.
func (h *ClinicalHistoryHandler) CreateClinicalHistory(c *gin.Context) {
	var req CreateClinicalHistoryRequest
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

	history := models.ClinicalHistory{
		PatientID:    req.PatientID,
		Observations: req.Observations,
	}

	if err := h.DB.Create(&history).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "A clinical history already exists for this patient")
		} else {
			utils.InternalServerError(c, "Failed to create clinical history: "+err.Error())
		}
		return
	}

	utils.Created(c, "Clinical history created successfully", history)
}

// UpdateClinicalHistory updates the physician's observations. The record's
// UpdatedAt timestamp tracks the last modification.
func (h *ClinicalHistoryHandler) UpdateClinicalHistory(c *gin.Context) {
	historyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Clinical History ID format")
		return
	}

	var req UpdateClinicalHistoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var history models.ClinicalHistory
	if err := h.DB.First(&history, "id = ?", historyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Clinical history not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	history.Observations = req.Observations

	if err := h.DB.Save(&history).Error; err != nil {
		utils.InternalServerError(c, "Failed to update clinical history: "+err.Error())
		return
	}

	utils.Success(c, "Clinical history updated successfully", history)
}
