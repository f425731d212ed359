package routes

import (
	"github.com/gorilla/mux"

	"github.com/sitevoice/backend/handlers"
)

// RegisterReportRoutes registers the report CRUD, edit-session and export
// endpoints on the authenticated subrouter.
func RegisterReportRoutes(api *mux.Router) {
	// Report lifecycle
	api.HandleFunc("/reports", handlers.CreateReport).Methods("POST")
	api.HandleFunc("/reports/{id}", handlers.GetReport).Methods("GET")
	api.HandleFunc("/reports/{id}", handlers.UpdateReport).Methods("PUT")
	api.HandleFunc("/projects/{id}/reports", handlers.GetProjectReports).Methods("GET")

	// Edit session: load, mutate the draft, switch tabs, save
	api.HandleFunc("/reports/{id}/session", handlers.OpenReportSession).Methods("POST")
	api.HandleFunc("/reports/{id}/session/view", handlers.GetSessionView).Methods("GET")
	api.HandleFunc("/reports/{id}/session/tab", handlers.SetSessionTab).Methods("PUT")
	api.HandleFunc("/reports/{id}/session/field", handlers.SetSessionField).Methods("PUT")
	api.HandleFunc("/reports/{id}/session/rows", handlers.SetSessionRow).Methods("PUT")
	api.HandleFunc("/reports/{id}/session/rows", handlers.AppendSessionRow).Methods("POST")
	api.HandleFunc("/reports/{id}/session/workforce", handlers.SetSessionWorkforce).Methods("PUT")
	api.HandleFunc("/reports/{id}/session/save", handlers.SaveSession).Methods("POST")

	// Exports
	api.HandleFunc("/projects/{id}/reports/export/excel", handlers.ExportProjectReportsToExcel).Methods("GET")
	api.HandleFunc("/projects/{id}/reports/export/csv", handlers.ExportProjectReportsToCSV).Methods("GET")
}
