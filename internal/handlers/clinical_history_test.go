package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"consultorio-server/internal/handlers"
	"consultorio-server/internal/models"
)

func TestClinicalHistorySingleton(t *testing.T) {
	router, db, token := newTestServer(t)
	patient := createPatient(t, router, token, "30123456", "Ana García")

	w := doRequest(t, router, http.MethodPost, "/api/v1/clinical-histories", token, map[string]string{
		"patientId":    patient.ID,
		"observations": "Paciente con antecedentes de hipertensión",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d (body: %s)", w.Code, w.Body.String())
	}
	var first models.ClinicalHistory
	decodeData(t, w, &first)

	// A second history for the same patient must conflict.
	w = doRequest(t, router, http.MethodPost, "/api/v1/clinical-histories", token, map[string]string{
		"patientId":    patient.ID,
		"observations": "Otra historia",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate: status = %d, want %d (body: %s)", w.Code, http.StatusConflict, w.Body.String())
	}
	if msg := responseError(t, w); !strings.Contains(msg, "already exists") {
		t.Errorf("conflict message %q should say the history already exists", msg)
	}

	// The first record is unchanged.
	var stored models.ClinicalHistory
	if err := db.First(&stored, "id = ?", first.ID).Error; err != nil {
		t.Fatalf("first history missing: %v", err)
	}
	if stored.Observations != "Paciente con antecedentes de hipertensión" {
		t.Errorf("observations changed: %q", stored.Observations)
	}

	// A different patient can still get their own history.
	other := createPatient(t, router, token, "28999111", "Bruno Díaz")
	w = doRequest(t, router, http.MethodPost, "/api/v1/clinical-histories", token, map[string]string{
		"patientId": other.ID,
	})
	if w.Code != http.StatusCreated {
		t.Errorf("other patient's history: status = %d (body: %s)", w.Code, w.Body.String())
	}
}

func TestClinicalHistoryForUnknownPatient(t *testing.T) {
	router, _, token := newTestServer(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/clinical-histories", token, map[string]string{
		"patientId": "3f0e7a92-9135-4e1c-a4a4-78e5f07c1111",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestClinicalHistorySummary(t *testing.T) {
	router, _, token := newTestServer(t)
	patient := createPatient(t, router, token, "30123456", "Ana García")

	w := doRequest(t, router, http.MethodPost, "/api/v1/clinical-histories", token, map[string]string{
		"patientId":    patient.ID,
		"observations": "Sin antecedentes relevantes",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create history: status = %d (body: %s)", w.Code, w.Body.String())
	}

	for _, d := range []int{9, 14, 11} {
		body := visitBody(patient.ID, slotAt(d, 0), "Control")
		if d == 14 {
			body["vitals"] = map[string]float64{"weightKg": 70, "heightCm": 170}
		}
		w := doRequest(t, router, http.MethodPost, "/api/v1/visits", token, body)
		if w.Code != http.StatusCreated {
			t.Fatalf("create visit: status = %d (body: %s)", w.Code, w.Body.String())
		}
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/clinical-histories/patient/"+patient.ID+"/summary", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary: status = %d (body: %s)", w.Code, w.Body.String())
	}
	var summary handlers.ClinicalHistorySummary
	decodeData(t, w, &summary)

	if summary.Patient.DNI != "30123456" {
		t.Errorf("summary patient DNI = %q, want %q", summary.Patient.DNI, "30123456")
	}
	if summary.History.Observations != "Sin antecedentes relevantes" {
		t.Errorf("summary observations = %q", summary.History.Observations)
	}
	if summary.VisitCount != 3 || len(summary.Visits) != 3 {
		t.Fatalf("visitCount = %d with %d visits, want 3", summary.VisitCount, len(summary.Visits))
	}
	// Most recent first.
	if !summary.Visits[0].VisitDate.Equal(slotAt(14, 0)) {
		t.Errorf("first visit = %v, want the 14:00 one", summary.Visits[0].VisitDate)
	}
	// Derived BMI shows up in the aggregation: 70 / 1.7^2 = 24.2.
	if summary.Visits[0].Vitals == nil || summary.Visits[0].Vitals.BMI == nil || *summary.Visits[0].Vitals.BMI != 24.2 {
		t.Errorf("summary visit vitals missing derived BMI: %+v", summary.Visits[0].Vitals)
	}
}

func TestClinicalHistorySummaryEmptyState(t *testing.T) {
	router, _, token := newTestServer(t)
	patient := createPatient(t, router, token, "30123456", "Ana García")

	w := doRequest(t, router, http.MethodPost, "/api/v1/clinical-histories", token, map[string]string{
		"patientId": patient.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create history: status = %d (body: %s)", w.Code, w.Body.String())
	}

	// No visits at all: the summary still renders, with an explicit empty list.
	w = doRequest(t, router, http.MethodGet, "/api/v1/clinical-histories/patient/"+patient.ID+"/summary", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary: status = %d (body: %s)", w.Code, w.Body.String())
	}
	var summary handlers.ClinicalHistorySummary
	decodeData(t, w, &summary)
	if summary.VisitCount != 0 {
		t.Errorf("visitCount = %d, want 0", summary.VisitCount)
	}
	if summary.Visits == nil {
		t.Error("visits should be an empty list, not null")
	}
}

func TestClinicalHistorySummaryWithoutHistory(t *testing.T) {
	router, _, token := newTestServer(t)
	patient := createPatient(t, router, token, "30123456", "Ana García")

	w := doRequest(t, router, http.MethodGet, "/api/v1/clinical-histories/patient/"+patient.ID+"/summary", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestUpdateClinicalHistoryObservations(t *testing.T) {
	router, _, token := newTestServer(t)
	patient := createPatient(t, router, token, "30123456", "Ana García")

	w := doRequest(t, router, http.MethodPost, "/api/v1/clinical-histories", token, map[string]string{
		"patientId":    patient.ID,
		"observations": "Inicial",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d (body: %s)", w.Code, w.Body.String())
	}
	var history models.ClinicalHistory
	decodeData(t, w, &history)

	w = doRequest(t, router, http.MethodPut, "/api/v1/clinical-histories/"+history.ID, token, map[string]string{
		"observations": "Actualizado tras la última consulta",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d (body: %s)", w.Code, w.Body.String())
	}
	var updated models.ClinicalHistory
	decodeData(t, w, &updated)
	if updated.Observations != "Actualizado tras la última consulta" {
		t.Errorf("observations = %q, want updated value", updated.Observations)
	}
	if updated.UpdatedAt.Before(history.UpdatedAt) {
		t.Errorf("updatedAt did not advance: %v -> %v", history.UpdatedAt, updated.UpdatedAt)
	}

	// Fetching by patient returns the updated record.
	w = doRequest(t, router, http.MethodGet, "/api/v1/clinical-histories/patient/"+patient.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get by patient: status = %d (body: %s)", w.Code, w.Body.String())
	}
	var fetched models.ClinicalHistory
	decodeData(t, w, &fetched)
	if fetched.Observations != "Actualizado tras la última consulta" {
		t.Errorf("fetched observations = %q", fetched.Observations)
	}
}
