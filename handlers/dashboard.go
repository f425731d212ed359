package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/sitevoice/backend/config"
	"github.com/sitevoice/backend/middleware"
	"github.com/sitevoice/backend/models"
)

// GetDashboard assembles the dashboard boot payload in one request: the
// user's projects, the company roster, the onboarding flag and the billing
// status. Projects failing is fatal; the roster failing only drops that
// section, mirroring how the page degrades.
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	companyID := middleware.GetCompanyID(r)

	var projects []models.Project
	err := config.DB.
		Joins("JOIN project_users ON project_users.project_id = projects.id").
		Where("project_users.user_id = ?", userID).
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	var employees []models.Employee
	employeesOK := true
	err = config.DB.Where("company_id = ?", companyID).
		Order("created_at DESC").Find(&employees).Error
	if err != nil {
		log.Printf("dashboard: employee fetch failed: %v", err)
		employeesOK = false
		employees = nil
	}

	hasCompletedOnboarding := false
	var pref models.UserPreference
	err = config.DB.Where("user_id = ?", userID).First(&pref).Error
	if err == nil {
		hasCompletedOnboarding = pref.HasCompletedOnboarding
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("dashboard: preference fetch failed: %v", err)
	}

	gate, err := middleware.CheckGate(r.Context(), r)
	if err != nil {
		log.Printf("dashboard: gate check failed: %v", err)
		gate = &middleware.GateStatus{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"projects":                 projects,
		"employees":                employees,
		"employees_available":      employeesOK,
		"has_completed_onboarding": hasCompletedOnboarding,
		"billing":                  gate,
	})
}

// CompleteOnboarding marks the first-run checklist as done.
func CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	pref := models.UserPreference{
		UserID:                 userID,
		HasCompletedOnboarding: true,
	}
	err := config.DB.Where("user_id = ?", userID).
		Assign(map[string]interface{}{"has_completed_onboarding": true}).
		FirstOrCreate(&pref).Error
	if err != nil {
		http.Error(w, "failed to update onboarding", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pref)
}
