package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sitevoice/backend/handlers"
	"github.com/sitevoice/backend/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.HandleFunc("/token", handlers.GetCurrentUser).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.SecurityMiddleware)
	api.Use(middleware.JWTMiddleware)

	// User profile endpoint
	api.HandleFunc("/profile", handleProfile).Methods("GET")

	// =====================================================
	// Dashboard (additionally behind the billing gate)
	// =====================================================
	dashboard := api.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(middleware.SubscriptionGate)
	dashboard.HandleFunc("", handlers.GetDashboard).Methods("GET")
	dashboard.HandleFunc("/onboarding/complete", handlers.CompleteOnboarding).Methods("POST")

	// Projects
	api.HandleFunc("/projects", handlers.GetAllProjects).Methods("GET")
	api.HandleFunc("/projects", handlers.CreateProject).Methods("POST")
	api.HandleFunc("/projects/{id}", handlers.GetProject).Methods("GET")
	api.HandleFunc("/projects/{id}", handlers.UpdateProject).Methods("PUT")
	api.HandleFunc("/projects/{id}", handlers.DeleteProject).Methods("DELETE")
	api.HandleFunc("/projects/{id}/stats", handlers.GetProjectStats).Methods("GET")

	// Employees
	api.HandleFunc("/employees", handlers.GetAllEmployees).Methods("GET")
	api.HandleFunc("/employees", handlers.CreateEmployee).Methods("POST")
	api.HandleFunc("/employees/{id}", handlers.UpdateEmployee).Methods("PUT")
	api.HandleFunc("/employees/{id}", handlers.DeleteEmployee).Methods("DELETE")

	// Voice notes
	api.HandleFunc("/voicenotes", handlers.GetVoiceNotes).Methods("GET")
	api.HandleFunc("/voicenotes", handlers.CreateVoiceNote).Methods("POST")
	api.HandleFunc("/voicenotes/{id}/generate", handlers.GenerateFromVoiceNote).Methods("POST")
	api.HandleFunc("/voicenotes/upload", handlers.UploadAudioHandler).Methods("POST")

	// =====================================================
	// Feature-Specific Routes
	// =====================================================
	RegisterReportRoutes(api)

	return r
}

// handleProfile returns user profile information
func handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	user := middleware.GetUser(r)
	if claims == nil || user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	response := map[string]interface{}{
		"userID":     claims.UserID,
		"name":       user.Name,
		"email":      user.Email,
		"role":       user.Role,
		"company_id": user.CompanyID,
	}
	json.NewEncoder(w).Encode(response)
}
