package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sitevoice/backend/config"
	"github.com/sitevoice/backend/middleware"
	"github.com/sitevoice/backend/models"
)

// GetAllEmployees lists the company roster, newest first.
func GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetCompanyID(r)
	if companyID == uuid.Nil {
		http.Error(w, "no company on session", http.StatusBadRequest)
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
	params.Filters["company_id"] = companyID.String()

	service := models.NewReportService(config.DB, models.Employee{})
	response, err := service.GetReport(params)
	if err != nil {
		http.Error(w, "failed to fetch employees", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

type employeeReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// CreateEmployee adds one roster entry for the caller's company. A failure
// here is non-blocking for the dashboard; it just surfaces a banner.
func CreateEmployee(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetCompanyID(r)
	if companyID == uuid.Nil {
		http.Error(w, "no company on session", http.StatusBadRequest)
		return
	}

	var req employeeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	employee := models.Employee{
		CompanyID: companyID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
	}
	if err := config.DB.Create(&employee).Error; err != nil {
		http.Error(w, "failed to add employee", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(employee)
}

func UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	employeeID := vars["id"]
	companyID := middleware.GetCompanyID(r)

	var employee models.Employee
	err := config.DB.Where("id = ? AND company_id = ?", employeeID, companyID).First(&employee).Error
	if err != nil {
		http.Error(w, "employee not found", http.StatusNotFound)
		return
	}

	var req struct {
		employeeReq
		IsPresent *bool `json:"is_present"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
		"role":       req.Role,
	}
	if req.IsPresent != nil {
		updates["is_present"] = *req.IsPresent
	}
	if err := config.DB.Model(&employee).Updates(updates).Error; err != nil {
		http.Error(w, "failed to update employee", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employee)
}

func DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	employeeID := vars["id"]
	companyID := middleware.GetCompanyID(r)

	result := config.DB.Where("id = ? AND company_id = ?", employeeID, companyID).Delete(&models.Employee{})
	if result.Error != nil {
		http.Error(w, "failed to delete employee", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "employee not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "employee deleted"})
}
