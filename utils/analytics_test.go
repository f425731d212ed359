package utils

import (
	"testing"

	"github.com/sitevoice/backend/models"
)

func TestComputeProjectStats(t *testing.T) {
	reports := []models.Report{
		{
			Workforce:       &models.Workforce{TotalPresent: "12", HoursWorked: "8.5", Absentees: "2"},
			SafetyIncidents: "ladder slip, no injury",
			MaterialsUsed:   models.MaterialList{{Name: "Cement"}, {Name: "Sand"}},
			Equipment:       models.EquipmentList{{Name: "Excavator"}},
		},
		{
			Workforce: &models.Workforce{TotalPresent: "10", HoursWorked: "8", Absentees: ""},
		},
		{
			// No workforce logged at all.
			SafetyIncidents: "   ",
		},
	}

	stats := ComputeProjectStats(reports)

	if stats.ReportCount != 3 {
		t.Errorf("ReportCount = %d, want 3", stats.ReportCount)
	}
	if stats.TotalPresent != 22 {
		t.Errorf("TotalPresent = %d, want 22", stats.TotalPresent)
	}
	if stats.TotalHoursWorked != 16.5 {
		t.Errorf("TotalHoursWorked = %v, want 16.5", stats.TotalHoursWorked)
	}
	if stats.TotalAbsentees != 2 {
		t.Errorf("TotalAbsentees = %d, want 2", stats.TotalAbsentees)
	}
	if stats.DaysWithIncidents != 1 {
		t.Errorf("DaysWithIncidents = %d, want 1", stats.DaysWithIncidents)
	}
	if stats.MaterialEntries != 2 || stats.EquipmentEntries != 1 {
		t.Errorf("entries = %d/%d, want 2/1", stats.MaterialEntries, stats.EquipmentEntries)
	}
}

func TestParseCountFreeText(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"12", 12},
		{" 7 ", 7},
		{"", 0},
		{"about ten", 0},
		{"-3", 0},
	}
	for _, c := range cases {
		if got := parseCount(c.in); got != c.want {
			t.Errorf("parseCount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseHoursFreeText(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"8", 8},
		{"8.5", 8.5},
		{"full day", 0},
		{"-1", 0},
	}
	for _, c := range cases {
		if got := parseHours(c.in); got != c.want {
			t.Errorf("parseHours(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
