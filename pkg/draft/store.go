package draft

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sitevoice/backend/models"
)

// Collection names accepted by the array mutators.
const (
	CollectionMaterials = "materials_used"
	CollectionEquipment = "equipment"
)

// Fetcher loads a report by id.
type Fetcher interface {
	FetchReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
}

// Updater rewrites a report row with a full-field patch.
type Updater interface {
	UpdateReport(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
}

// Store holds the canonical last-fetched report and the draft the edit form
// mutates. The canonical copy is only ever replaced by a successful load or
// save; every field mutation goes to the draft.
type Store struct {
	mu      sync.Mutex
	fetcher Fetcher
	updater Updater
	session *Session
	now     func() time.Time

	reportID  uuid.UUID
	canonical *models.Report
	draft     *models.Report
	activeTab Tab
	saving    bool
	lastErr   *Error
}

func NewStore(fetcher Fetcher, updater Updater, session *Session) *Store {
	return &Store{
		fetcher:   fetcher,
		updater:   updater,
		session:   session,
		now:       time.Now,
		activeTab: TabReport,
	}
}

// Load fetches the report and initializes the draft as a full copy. A load
// for a different id fully replaces both copies; nothing is merged. On
// failure both copies are cleared and a LoadFailed error is recorded.
func (s *Store) Load(ctx context.Context, id uuid.UUID) error {
	if s.session.State() != AuthResolved {
		return ErrSessionNotResolved
	}

	s.mu.Lock()
	s.reportID = id
	s.canonical = nil
	s.draft = nil
	s.activeTab = TabReport
	s.lastErr = nil
	s.mu.Unlock()

	report, err := s.fetcher.FetchReport(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reportID != id {
		// A newer load replaced this one while the fetch was in flight.
		return nil
	}
	if err != nil {
		s.lastErr = &Error{Kind: KindLoadFailed, cause: err}
		return s.lastErr
	}
	s.canonical = report.Clone()
	s.draft = report.Clone()
	return nil
}

// SetField replaces one scalar field on the draft. No required-field
// checking happens here; an empty title is accepted and will only fail if
// the backend rejects it.
func (s *Store) SetField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return ErrNoReport
	}

	switch field {
	case "report_title":
		s.draft.ReportTitle = value
	case "report_date":
		if value == "" {
			s.draft.ReportDate = models.DateOnly{}
			return nil
		}
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return fmt.Errorf("draft: bad report_date %q: %w", value, err)
		}
		s.draft.ReportDate = models.DateOnly(t)
	case "comment_general":
		s.draft.CommentGeneral = value
	case "weather_conditions":
		s.draft.WeatherConditions = value
	case "challengesEncountered":
		s.draft.ChallengesEncountered = value
	case "safetyIncidents":
		s.draft.SafetyIncidents = value
	default:
		return fmt.Errorf("draft: unknown field %q", field)
	}
	return nil
}

// SetArrayItem sets one cell of a collection row. If the index is past the
// end of the collection, blank rows are inserted up to it first, so the
// collection stays dense no matter what order the form populates it in.
func (s *Store) SetArrayItem(collection string, index int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return ErrNoReport
	}
	if index < 0 {
		return fmt.Errorf("draft: negative index %d", index)
	}

	switch collection {
	case CollectionMaterials:
		for len(s.draft.MaterialsUsed) <= index {
			s.draft.MaterialsUsed = append(s.draft.MaterialsUsed, models.Material{})
		}
		item := &s.draft.MaterialsUsed[index]
		switch field {
		case "name":
			item.Name = value
		case "quantity":
			item.Quantity = value
		case "unit":
			item.Unit = value
		case "remarks":
			item.Remarks = value
		default:
			return fmt.Errorf("draft: unknown material field %q", field)
		}
	case CollectionEquipment:
		for len(s.draft.Equipment) <= index {
			s.draft.Equipment = append(s.draft.Equipment, models.EquipmentItem{})
		}
		item := &s.draft.Equipment[index]
		switch field {
		case "name":
			item.Name = value
		case "quantityUsed":
			item.QuantityUsed = value
		case "quantityRemaining":
			item.QuantityRemaining = value
		case "remarks":
			item.Remarks = value
		default:
			return fmt.Errorf("draft: unknown equipment field %q", field)
		}
	default:
		return fmt.Errorf("draft: unknown collection %q", collection)
	}
	return nil
}

// AppendArrayItem adds one blank row to the end of a collection. Rows are
// append-only; there is no reordering or deletion.
func (s *Store) AppendArrayItem(collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return ErrNoReport
	}

	switch collection {
	case CollectionMaterials:
		s.draft.MaterialsUsed = append(s.draft.MaterialsUsed, models.Material{})
	case CollectionEquipment:
		s.draft.Equipment = append(s.draft.Equipment, models.EquipmentItem{})
	default:
		return fmt.Errorf("draft: unknown collection %q", collection)
	}
	return nil
}

// SetWorkforceField merges one counter into the draft's workforce record,
// initializing it with empty defaults when absent.
func (s *Store) SetWorkforceField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return ErrNoReport
	}
	if s.draft.Workforce == nil {
		s.draft.Workforce = &models.Workforce{}
	}

	switch field {
	case "totalPresent":
		s.draft.Workforce.TotalPresent = value
	case "hoursWorked":
		s.draft.Workforce.HoursWorked = value
	case "absentees":
		s.draft.Workforce.Absentees = value
	default:
		return fmt.Errorf("draft: unknown workforce field %q", field)
	}
	return nil
}

// Canonical returns a copy of the last loaded/saved report, or nil.
func (s *Store) Canonical() *models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canonical.Clone()
}

// Draft returns a copy of the current draft, or nil.
func (s *Store) Draft() *models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// Err returns the sticky session error, if any.
func (s *Store) Err() *Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// IsSaving reports whether a save is in flight.
func (s *Store) IsSaving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}
