package draft

import (
	"context"
	"time"

	"github.com/sitevoice/backend/models"
)

// Save persists the draft and reconciles local state with the outcome.
//
// At most one save per store may be in flight: a second call returns
// ErrSaveInFlight instead of racing. The update carries every persistable
// field of the draft plus a caller-set updated_at; there is no field-level
// diffing. On success the canonical copy is replaced wholesale with the
// draft (the backend's echoed row is not re-read) and the active tab flips
// back to the read-only view. On failure canonical and draft are both left
// untouched and a sticky SaveFailed error is recorded; the next attempt
// clears it. Failures are never retried automatically.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return ErrNoReport
	}
	if s.saving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	s.saving = true
	s.lastErr = nil

	id := s.draft.ID
	savedAt := s.now()
	pending := s.draft.Clone()
	patch := BuildPatch(pending, savedAt)
	s.mu.Unlock()

	err := s.updater.UpdateReport(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		s.lastErr = &Error{Kind: KindSaveFailed, cause: err}
		return s.lastErr
	}

	pending.UpdatedAt = savedAt
	s.canonical = pending
	if s.draft != nil && s.draft.ID == id {
		s.draft.UpdatedAt = savedAt
	}
	s.activeTab = TabReport
	return nil
}

// BuildPatch lays out the full-row update for one save. Every persistable
// column is written on every save, whether or not it changed.
func BuildPatch(r *models.Report, savedAt time.Time) map[string]interface{} {
	materials := r.MaterialsUsed
	if materials == nil {
		materials = models.MaterialList{}
	}
	equipment := r.Equipment
	if equipment == nil {
		equipment = models.EquipmentList{}
	}
	attachments := r.Attachments
	if attachments == nil {
		attachments = models.StringArray{}
	}

	patch := map[string]interface{}{
		"report_title":           r.ReportTitle,
		"report_date":            r.ReportDate,
		"comment_general":        r.CommentGeneral,
		"weather_conditions":     r.WeatherConditions,
		"challenges_encountered": r.ChallengesEncountered,
		"safety_incidents":       r.SafetyIncidents,
		"materials_used":         materials,
		"equipment":              equipment,
		"attachments":            attachments,
		"updated_at":             savedAt,
	}
	if r.Workforce != nil {
		patch["workforce"] = *r.Workforce
	} else {
		patch["workforce"] = nil
	}
	return patch
}
