package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/xuri/excelize/v2"

	"github.com/sitevoice/backend/config"
	"github.com/sitevoice/backend/middleware"
	"github.com/sitevoice/backend/models"
)

var exportHeaders = []string{
	"Date", "Title", "Weather", "General Comments", "Challenges",
	"Safety Incidents", "Workforce Present", "Hours Worked", "Absentees",
	"Materials", "Equipment",
}

func exportRow(rep models.Report) []string {
	present, hours, absent := "", "", ""
	if rep.Workforce != nil {
		present = rep.Workforce.TotalPresent
		hours = rep.Workforce.HoursWorked
		absent = rep.Workforce.Absentees
	}
	materials := ""
	for i, m := range rep.MaterialsUsed {
		if i > 0 {
			materials += "; "
		}
		materials += fmt.Sprintf("%s %s %s", m.Name, m.Quantity, m.Unit)
	}
	equipment := ""
	for i, e := range rep.Equipment {
		if i > 0 {
			equipment += "; "
		}
		equipment += fmt.Sprintf("%s used %s", e.Name, e.QuantityUsed)
	}
	return []string{
		rep.ReportDate.String(), rep.ReportTitle, rep.WeatherConditions,
		rep.CommentGeneral, rep.ChallengesEncountered, rep.SafetyIncidents,
		present, hours, absent, materials, equipment,
	}
}

func fetchProjectForExport(r *http.Request) (*models.Project, []models.Report, error) {
	vars := mux.Vars(r)
	projectID := vars["id"]
	userID := middleware.GetUserID(r)

	var project models.Project
	err := config.DB.
		Joins("JOIN project_users ON project_users.project_id = projects.id").
		Where("projects.id = ? AND project_users.user_id = ?", projectID, userID).
		First(&project).Error
	if err != nil {
		return nil, nil, err
	}

	var reports []models.Report
	err = config.DB.Where("project_id = ?", projectID).
		Order("report_date ASC").Find(&reports).Error
	if err != nil {
		return nil, nil, err
	}
	return &project, reports, nil
}

// ExportProjectReportsToExcel downloads all of a project's reports as a
// single styled worksheet.
func ExportProjectReportsToExcel(w http.ResponseWriter, r *http.Request) {
	project, reports, err := fetchProjectForExport(r)
	if err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	excelFile, err := createExcelFile(project.Name, reports)
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	buffer, err := excelFile.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", sanitizeFilename(project.Name), time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportProjectReportsToCSV downloads all of a project's reports as CSV.
func ExportProjectReportsToCSV(w http.ResponseWriter, r *http.Request) {
	project, reports, err := fetchProjectForExport(r)
	if err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	csvData, err := createCSVFile(reports)
	if err != nil {
		http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", sanitizeFilename(project.Name), time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(csvData)))

	w.WriteHeader(http.StatusOK)
	w.Write(csvData)
}

func createExcelFile(projectName string, reports []models.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Daily Reports"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", projectName)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)

	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		f.SetColWidth(sheetName, columnIndexToLetter(colIdx+1), columnIndexToLetter(colIdx+1), 20)
	}

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "CCCCCC", Style: 1},
			{Type: "right", Color: "CCCCCC", Style: 1},
			{Type: "top", Color: "CCCCCC", Style: 1},
			{Type: "bottom", Color: "CCCCCC", Style: 1},
		},
	})

	for rowIdx, rep := range reports {
		for colIdx, value := range exportRow(rep) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			f.SetCellValue(sheetName, cell, value)
			f.SetCellStyle(sheetName, cell, cell, dataStyle)
		}
	}

	f.DeleteSheet("Sheet1")

	return f, nil
}

func createCSVFile(reports []models.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write(exportHeaders)
	for _, rep := range reports {
		writer.Write(exportRow(rep))
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func sanitizeFilename(filename string) string {
	replacements := map[rune]rune{
		'/':  '_',
		'\\': '_',
		':':  '_',
		'*':  '_',
		'?':  '_',
		'"':  '_',
		'<':  '_',
		'>':  '_',
		'|':  '_',
		' ':  '_',
	}

	result := []rune{}
	for _, char := range filename {
		if replacement, exists := replacements[char]; exists {
			result = append(result, replacement)
		} else {
			result = append(result, char)
		}
	}

	return string(result)
}

func columnIndexToLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+(col%26))) + result
		col /= 26
	}
	return result
}
