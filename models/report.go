package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Material is one row of a report's materials table. Every field is free
// text; quantities are whatever the site engineer typed.
type Material struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Remarks  string `json:"remarks"`
}

// EquipmentItem is one row of a report's equipment table.
type EquipmentItem struct {
	Name              string `json:"name"`
	QuantityUsed      string `json:"quantityUsed"`
	QuantityRemaining string `json:"quantityRemaining"`
	Remarks           string `json:"remarks"`
}

// Workforce is the single headcount record on a report. Counters are kept as
// free text, matching what the form collects.
type Workforce struct {
	TotalPresent string `json:"totalPresent"`
	HoursWorked  string `json:"hoursWorked"`
	Absentees    string `json:"absentees"`
}

// MaterialList stores the ordered materials rows as a jsonb column.
type MaterialList []Material

func (m *MaterialList) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func (m MaterialList) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal([]Material{})
	}
	return json.Marshal(m)
}

func (MaterialList) GormDataType() string {
	return "jsonb"
}

// EquipmentList stores the ordered equipment rows as a jsonb column.
type EquipmentList []EquipmentItem

func (e *EquipmentList) Scan(value interface{}) error {
	return scanJSON(value, e)
}

func (e EquipmentList) Value() (driver.Value, error) {
	if e == nil {
		return json.Marshal([]EquipmentItem{})
	}
	return json.Marshal(e)
}

func (EquipmentList) GormDataType() string {
	return "jsonb"
}

// StringArray stores attachment paths as a jsonb array of strings.
type StringArray []string

func (s *StringArray) Scan(value interface{}) error {
	return scanJSON(value, s)
}

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

func (StringArray) GormDataType() string {
	return "jsonb"
}

func (w *Workforce) Scan(value interface{}) error {
	return scanJSON(value, w)
}

func (w Workforce) Value() (driver.Value, error) {
	return json.Marshal(w)
}

func (Workforce) GormDataType() string {
	return "jsonb"
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("scanJSON: unsupported type %T", value)
	}
}

// Report is one daily site report. A report belongs to exactly one project
// and is never hard-deleted; edits rewrite the whole row.
type Report struct {
	ID                    uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID             uuid.UUID     `gorm:"type:uuid;index;not null" json:"project_id"`
	Project               *Project      `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	ReportTitle           string        `gorm:"not null" json:"report_title"`
	ReportDate            DateOnly      `gorm:"not null" json:"report_date"`
	CommentGeneral        string        `gorm:"type:text" json:"comment_general"`
	WeatherConditions     string        `gorm:"type:text" json:"weather_conditions"`
	ChallengesEncountered string        `gorm:"type:text" json:"challengesEncountered"`
	SafetyIncidents       string        `gorm:"type:text" json:"safetyIncidents"`
	MaterialsUsed         MaterialList  `gorm:"type:jsonb;default:'[]'" json:"materials_used"`
	Equipment             EquipmentList `gorm:"type:jsonb;default:'[]'" json:"equipment"`
	Workforce             *Workforce    `gorm:"type:jsonb" json:"workforce,omitempty"`
	Attachments           StringArray   `gorm:"type:jsonb;default:'[]'" json:"attachments"`
	CreatedBy             uuid.UUID     `gorm:"type:uuid" json:"created_by"`
	CreatedAt             time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}

// Clone returns a deep copy. The edit flow keeps a draft copy of the loaded
// report, so the collections must not share backing arrays.
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}
	out := *r
	out.MaterialsUsed = append(MaterialList(nil), r.MaterialsUsed...)
	out.Equipment = append(EquipmentList(nil), r.Equipment...)
	out.Attachments = append(StringArray(nil), r.Attachments...)
	if r.Workforce != nil {
		wf := *r.Workforce
		out.Workforce = &wf
	}
	return &out
}
