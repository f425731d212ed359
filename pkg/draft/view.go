package draft

import (
	"fmt"
	"time"

	"github.com/sitevoice/backend/models"
)

// Tab identifies which projection of the session the page is showing.
type Tab string

const (
	TabReport   Tab = "report"
	TabEdit     Tab = "edit"
	TabGenerate Tab = "generate"
)

// ParseTab validates a tab name from the client.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabReport, TabEdit, TabGenerate:
		return Tab(s), nil
	}
	return "", fmt.Errorf("draft: unknown tab %q", s)
}

// SetTab switches the active tab. Switching never discards the draft:
// leaving edit without saving keeps the unsaved values in memory, and
// returning shows them again. No re-fetch happens on a tab switch.
func (s *Store) SetTab(tab Tab) error {
	if _, err := ParseTab(string(tab)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
	return nil
}

// ActiveTab returns the currently selected tab.
func (s *Store) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

// SummaryView is the read-only projection of the canonical report.
type SummaryView struct {
	ID                    string                 `json:"id"`
	Title                 string                 `json:"report_title"`
	Date                  string                 `json:"report_date"`
	CommentGeneral        string                 `json:"comment_general"`
	WeatherConditions     string                 `json:"weather_conditions"`
	ChallengesEncountered string                 `json:"challengesEncountered"`
	SafetyIncidents       string                 `json:"safetyIncidents"`
	Materials             []models.Material      `json:"materials_used"`
	Equipment             []models.EquipmentItem `json:"equipment"`
	Workforce             *models.Workforce      `json:"workforce,omitempty"`
	Attachments           []string               `json:"attachments"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

// Summary projects the canonical report. It never reads the draft, so
// unsaved edits are invisible here until a save lands.
func (s *Store) Summary() (*SummaryView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canonical == nil {
		return nil, ErrNoReport
	}
	c := s.canonical
	return &SummaryView{
		ID:                    c.ID.String(),
		Title:                 c.ReportTitle,
		Date:                  c.ReportDate.String(),
		CommentGeneral:        c.CommentGeneral,
		WeatherConditions:     c.WeatherConditions,
		ChallengesEncountered: c.ChallengesEncountered,
		SafetyIncidents:       c.SafetyIncidents,
		Materials:             append([]models.Material(nil), c.MaterialsUsed...),
		Equipment:             append([]models.EquipmentItem(nil), c.Equipment...),
		Workforce:             cloneWorkforce(c.Workforce),
		Attachments:           append([]string(nil), c.Attachments...),
		UpdatedAt:             c.UpdatedAt,
	}, nil
}

// EditForm projects the draft for the edit tab. The returned copy is a
// snapshot; mutations go through the store's setters.
func (s *Store) EditForm() (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return nil, ErrNoReport
	}
	return s.draft.Clone(), nil
}

// GenerateView is the placeholder projection for the generate tab. No
// export or PDF pipeline exists behind it.
type GenerateView struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

func (s *Store) Generate() GenerateView {
	return GenerateView{
		Available: false,
		Message:   "Report generation is coming soon.",
	}
}

// View projects whichever tab is active.
func (s *Store) View() (interface{}, error) {
	switch s.ActiveTab() {
	case TabEdit:
		return s.EditForm()
	case TabGenerate:
		return s.Generate(), nil
	default:
		return s.Summary()
	}
}

func cloneWorkforce(w *models.Workforce) *models.Workforce {
	if w == nil {
		return nil
	}
	out := *w
	return &out
}
