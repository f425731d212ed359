package utils

import (
	"strconv"
	"strings"

	"github.com/sitevoice/backend/models"
)

// ProjectStats summarizes a project's daily reports for the dashboard
// widgets: counts, workforce totals and how many days logged incidents.
type ProjectStats struct {
	ReportCount       int     `json:"report_count"`
	TotalPresent      int     `json:"total_present"`
	TotalHoursWorked  float64 `json:"total_hours_worked"`
	TotalAbsentees    int     `json:"total_absentees"`
	DaysWithIncidents int     `json:"days_with_incidents"`
	MaterialEntries   int     `json:"material_entries"`
	EquipmentEntries  int     `json:"equipment_entries"`
}

// ComputeProjectStats aggregates across reports. Workforce counters are
// free-text fields on the form, so anything that doesn't parse counts as
// zero rather than failing the whole aggregation.
func ComputeProjectStats(reports []models.Report) ProjectStats {
	stats := ProjectStats{ReportCount: len(reports)}
	for _, rep := range reports {
		if rep.Workforce != nil {
			stats.TotalPresent += parseCount(rep.Workforce.TotalPresent)
			stats.TotalHoursWorked += parseHours(rep.Workforce.HoursWorked)
			stats.TotalAbsentees += parseCount(rep.Workforce.Absentees)
		}
		if strings.TrimSpace(rep.SafetyIncidents) != "" {
			stats.DaysWithIncidents++
		}
		stats.MaterialEntries += len(rep.MaterialsUsed)
		stats.EquipmentEntries += len(rep.Equipment)
	}
	return stats
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseHours(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
