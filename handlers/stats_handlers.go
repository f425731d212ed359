package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sitevoice/backend/config"
	"github.com/sitevoice/backend/middleware"
	"github.com/sitevoice/backend/models"
	"github.com/sitevoice/backend/utils"
)

// GetProjectStats aggregates a project's reports into dashboard numbers.
func GetProjectStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID := vars["id"]
	userID := middleware.GetUserID(r)

	var membership models.ProjectUser
	err := config.DB.Where("project_id = ? AND user_id = ?", projectID, userID).First(&membership).Error
	if err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	var reports []models.Report
	if err := config.DB.Where("project_id = ?", projectID).Find(&reports).Error; err != nil {
		http.Error(w, "failed to fetch reports", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(utils.ComputeProjectStats(reports))
}
