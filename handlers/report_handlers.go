package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sitevoice/backend/config"
	"github.com/sitevoice/backend/middleware"
	"github.com/sitevoice/backend/models"
	"github.com/sitevoice/backend/pkg/draft"
)

// loadReportForUser fetches a report only when the caller belongs to its
// project, the same membership rule every project-scoped endpoint applies.
// A package-level var so handler tests can substitute a fake backend.
var loadReportForUser = func(reportID, userID uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := config.DB.Where("id = ?", reportID).First(&report).Error; err != nil {
		return nil, err
	}
	var membership models.ProjectUser
	err := config.DB.Where("project_id = ? AND user_id = ?", report.ProjectID, userID).First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

type createReportReq struct {
	ProjectID   uuid.UUID       `json:"project_id"`
	ReportTitle string          `json:"report_title"`
	ReportDate  models.DateOnly `json:"report_date"`
}

// CreateReport starts an empty report: title, date, project and creator.
// Everything else is filled in later through the edit flow. The title is the
// one field the create modal enforces.
func CreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ReportTitle == "" {
		http.Error(w, "report title is required", http.StatusBadRequest)
		return
	}

	userID := middleware.GetUserID(r)
	var membership models.ProjectUser
	err := config.DB.Where("project_id = ? AND user_id = ?", req.ProjectID, userID).First(&membership).Error
	if err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	reportDate := req.ReportDate
	if reportDate.IsZero() {
		reportDate = models.DateOnly(time.Now())
	}

	report := models.Report{
		ProjectID:     req.ProjectID,
		ReportTitle:   req.ReportTitle,
		ReportDate:    reportDate,
		MaterialsUsed: models.MaterialList{},
		Equipment:     models.EquipmentList{},
		Attachments:   models.StringArray{},
		CreatedBy:     userID,
	}
	if err := config.DB.Create(&report).Error; err != nil {
		http.Error(w, "failed to create report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(report)
}

// GetProjectReports lists a project's reports.
func GetProjectReports(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID := vars["id"]
	userID := middleware.GetUserID(r)

	var membership models.ProjectUser
	err := config.DB.Where("project_id = ? AND user_id = ?", projectID, userID).First(&membership).Error
	if err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	params, err := models.ParseReportParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params.Filters["project_id"] = projectID

	service := models.NewReportService(config.DB, models.Report{})
	response, err := service.GetReport(params)
	if err != nil {
		http.Error(w, "failed to fetch reports", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetReport returns the report together with its owning project, the two
// fetches the report page needs. Either one failing fails the whole page.
// Non-members get the same 404 as a missing id.
func GetReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reportID, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "invalid report id", http.StatusBadRequest)
		return
	}

	report, err := loadReportForUser(reportID, middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}

	var project models.Project
	if err := config.DB.Select("id", "name", "description").
		Where("id = ?", report.ProjectID).First(&project).Error; err != nil {
		http.Error(w, "failed to load report data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"report":  report,
		"project": project,
	})
}

// UpdateReport rewrites the whole row from the submitted draft. There is no
// field-level save; every call carries every persistable field. Empty
// required fields are accepted, matching the form's permissive submit.
func UpdateReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reportID, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "invalid report id", http.StatusBadRequest)
		return
	}

	if _, err := loadReportForUser(reportID, middleware.GetUserID(r)); err != nil {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}

	var submitted models.Report
	if err := json.NewDecoder(r.Body).Decode(&submitted); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	patch := draft.BuildPatch(&submitted, time.Now())
	backend := draft.NewGormBackend(config.DB)
	if err := backend.UpdateReport(r.Context(), reportID, patch); err != nil {
		http.Error(w, "failed to save report changes", http.StatusBadGateway)
		return
	}

	var updated models.Report
	if err := config.DB.Where("id = ?", reportID).First(&updated).Error; err != nil {
		http.Error(w, "failed to reload report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}
