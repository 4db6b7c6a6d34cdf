package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"consultorio-server/internal/models"
	"consultorio-server/internal/utils"
)

const (
	defaultPatientSearchLimit = 50
	maxPatientSearchLimit     = 200
)

// PatientHandler handles patient related requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// PatientRequest represents the request body for creating or updating a patient.
type PatientRequest struct {
	DNI               string     `json:"dni" binding:"required"`
	FullName          string     `json:"fullName" binding:"required"`
	BirthDate         *time.Time `json:"birthDate"`
	Gender            string     `json:"gender"`
	Phone             string     `json:"phone"`
	Email             string     `json:"email" binding:"omitempty,email"`
	Address           string     `json:"address"`
	InsuranceProvider string     `json:"insuranceProvider"`
	InsuranceNumber   string     `json:"insuranceNumber"`
}

// GetPatients handles listing patients, optionally filtered by a search
// query over full name or DNI.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	query := h.DB.Order("full_name asc")

	if q := c.Query("q"); q != "" {
		limit := defaultPatientSearchLimit
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				utils.BadRequest(c, "Invalid limit parameter")
				return
			}
			limit = parsed
		}
		if limit > maxPatientSearchLimit {
			limit = maxPatientSearchLimit
		}
		search := "%" + q + "%"
		query = query.Where("LOWER(full_name) LIKE LOWER(?) OR LOWER(dni) LIKE LOWER(?)", search, search).Limit(limit)
	}

	var patients []models.Patient
	if err := query.Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	utils.Success(c, "Patients fetched successfully", patients)
}

// GetPatientByID handles fetching a single patient.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
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

	utils.Success(c, "Patient fetched successfully", patient)
}

// CreatePatient handles creating a new patient. The DNI unique index rejects
// a second record with the same national ID.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req PatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient := models.Patient{
		DNI:               req.DNI,
		FullName:          req.FullName,
		BirthDate:         req.BirthDate,
		Gender:            req.Gender,
		Phone:             req.Phone,
		Email:             req.Email,
		Address:           req.Address,
		InsuranceProvider: req.InsuranceProvider,
		InsuranceNumber:   req.InsuranceNumber,
	}

	if err := h.DB.Create(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "A patient with that DNI already exists")
		} else {
			utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		}
		return
	}

	utils.Created(c, "Patient created successfully", patient)
}

// UpdatePatient handles updating a patient in place.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	var req PatientRequest
	if !utils.BindAndValidate(c, &req) {
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

	patient.DNI = req.DNI
	patient.FullName = req.FullName
	patient.BirthDate = req.BirthDate
	patient.Gender = req.Gender
	patient.Phone = req.Phone
	patient.Email = req.Email
	patient.Address = req.Address
	patient.InsuranceProvider = req.InsuranceProvider
	patient.InsuranceNumber = req.InsuranceNumber

	if err := h.DB.Save(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "A patient with that DNI already exists")
		} else {
			utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		}
		return
	}

	utils.Success(c, "Patient updated successfully", patient)
}

// DeletePatient handles deleting a patient. Hard delete; visits and
// appointments that reference the patient are left in place.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	result := h.DB.Delete(&models.Patient{}, "id = ?", patientID)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete patient: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Patient not found")
		return
	}

	utils.Success(c, "Patient deleted successfully", nil)
}
