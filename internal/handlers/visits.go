package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"consultorio-server/internal/models"
	"consultorio-server/internal/utils"
)

// VisitHandler handles visit record ("consulta") related requests.
type VisitHandler struct {
	DB *gorm.DB
}

// NewVisitHandler creates a new VisitHandler.
func NewVisitHandler(db *gorm.DB) *VisitHandler {
	return &VisitHandler{DB: db}
}

// VisitRequest represents the request body for creating or updating a visit.
type VisitRequest struct {
	PatientID    string             `json:"patientId" binding:"required,uuid"`
	VisitDate    time.Time          `json:"visitDate" binding:"required"`
	Motive       string             `json:"motive" binding:"required"`
	Diagnosis    string             `json:"diagnosis"`
	Treatment    string             `json:"treatment"`
	Notes        string             `json:"notes"`
	Vitals       *models.VitalSigns `json:"vitals"`
	FollowUpDate *time.Time         `json:"followUpDate"`
}

func vitalsColumn(vs *models.VitalSigns) *datatypes.JSONType[models.VitalSigns] {
	if vs == nil {
		return nil
	}
	col := datatypes.NewJSONType(*vs)
	return &col
}

// GetVisits handles listing all visits, most recent first.
func (h *VisitHandler) GetVisits(c *gin.Context) {
	var visits []models.Visit
	if err := h.DB.Order("visit_date desc").Find(&visits).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch visits: "+err.Error())
		return
	}

	utils.Success(c, "Visits fetched successfully", models.VisitDetails(visits))
}

// GetVisitsForPatient handles listing a patient's visits, most recent first.
func (h *VisitHandler) GetVisitsForPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	var visits []models.Visit
	if err := h.DB.Where("patient_id = ?", patientID).Order("visit_date desc").Find(&visits).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch the patient's visits: "+err.Error())
		return
	}

	utils.Success(c, "Visits fetched successfully", models.VisitDetails(visits))
}

// GetVisitByID handles fetching a single visit.
func (h *VisitHandler) GetVisitByID(c *gin.Context) {
	visitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Visit ID format")
		return
	}

	var visit models.Visit
	if err := h.DB.First(&visit, "id = ?", visitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Visit not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Visit fetched successfully", visit.Detail())
}

// CreateVisit handles recording a new visit.
func (h *VisitHandler) CreateVisit(c *gin.Context) {
	var req VisitRequest
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

	visit := models.Visit{
		PatientID:    req.PatientID,
		VisitDate:    req.VisitDate,
		Motive:       req.Motive,
		Diagnosis:    req.Diagnosis,
		Treatment:    req.Treatment,
		Notes:        req.Notes,
		Vitals:       vitalsColumn(req.Vitals),
		FollowUpDate: req.FollowUpDate,
	}

	if err := h.DB.Create(&visit).Error; err != nil {
		utils.InternalServerError(c, "Failed to create visit: "+err.Error())
		return
	}

	utils.Created(c, "Visit recorded successfully", visit.Detail())
}

// UpdateVisit handles updating an existing visit.
func (h *VisitHandler) UpdateVisit(c *gin.Context) {
	visitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Visit ID format")
		return
	}

	var req VisitRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var visit models.Visit
	if err := h.DB.First(&visit, "id = ?", visitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Visit not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	visit.PatientID = req.PatientID
	visit.VisitDate = req.VisitDate
	visit.Motive = req.Motive
	visit.Diagnosis = req.Diagnosis
	visit.Treatment = req.Treatment
	visit.Notes = req.Notes
	visit.Vitals = vitalsColumn(req.Vitals)
	visit.FollowUpDate = req.FollowUpDate

	if err := h.DB.Save(&visit).Error; err != nil {
		utils.InternalServerError(c, "Failed to update visit: "+err.Error())
		return
	}

	utils.Success(c, "Visit updated successfully", visit.Detail())
}

// DeleteVisit handles deleting a visit.
func (h *VisitHandler) DeleteVisit(c *gin.Context) {
	visitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Visit ID format")
		return
	}

	result := h.DB.Delete(&models.Visit{}, "id = ?", visitID)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete visit: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Visit not found")
		return
	}

	utils.Success(c, "Visit deleted successfully", nil)
}
