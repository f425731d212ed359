package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/sitevoice/backend/config"
	"github.com/sitevoice/backend/middleware"
	"github.com/sitevoice/backend/models"
)

// GetAllProjects lists the projects the user belongs to, newest first.
func GetAllProjects(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var projects []models.Project
	err := config.DB.
		Joins("JOIN project_users ON project_users.project_id = projects.id").
		Where("project_users.user_id = ?", userID).
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		http.Error(w, "failed to fetch projects", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"projects": projects,
		"count":    len(projects),
	})
}

type projectReq struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	StartDate    models.DateOnly `json:"start_date"`
	EndDate      models.DateOnly `json:"end_date"`
	ContactName  string          `json:"contact_name"`
	ContactPhone string          `json:"contact_phone"`
}

// CreateProject inserts the project and the creator's owner row. All four
// core fields are required, same as the dashboard modal.
func CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Description == "" || req.StartDate.IsZero() || req.EndDate.IsZero() {
		http.Error(w, "all fields are required", http.StatusBadRequest)
		return
	}

	userID := middleware.GetUserID(r)
	project := models.Project{
		Name:         req.Name,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		return tx.Create(&models.ProjectUser{
			ProjectID: project.ID,
			UserID:    userID,
			Role:      "owner",
		}).Error
	})
	if err != nil {
		http.Error(w, "failed to create project: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(project)
}

func GetProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID := vars["id"]
	userID := middleware.GetUserID(r)

	var project models.Project
	err := config.DB.
		Joins("JOIN project_users ON project_users.project_id = projects.id").
		Where("projects.id = ? AND project_users.user_id = ?", projectID, userID).
		First(&project).Error
	if err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(project)
}

func UpdateProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID := vars["id"]
	userID := middleware.GetUserID(r)

	var project models.Project
	err := config.DB.
		Joins("JOIN project_users ON project_users.project_id = projects.id").
		Where("projects.id = ? AND project_users.user_id = ?", projectID, userID).
		First(&project).Error
	if err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	var req projectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{
		"name":          req.Name,
		"description":   req.Description,
		"start_date":    req.StartDate,
		"end_date":      req.EndDate,
		"contact_name":  req.ContactName,
		"contact_phone": req.ContactPhone,
	}
	if err := config.DB.Model(&project).Updates(updates).Error; err != nil {
		http.Error(w, "failed to update project", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(project)
}

// DeleteProject removes the membership rows first, then the project row.
func DeleteProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	userID := middleware.GetUserID(r)

	var membership models.ProjectUser
	err = config.DB.
		Where("project_id = ? AND user_id = ? AND role = ?", projectID, userID, "owner").
		First(&membership).Error
	if err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectUser{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", projectID).Delete(&models.Project{}).Error
	})
	if err != nil {
		http.Error(w, "failed to delete project", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "project deleted"})
}
