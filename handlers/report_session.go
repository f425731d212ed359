package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sitevoice/backend/config"
	"github.com/sitevoice/backend/middleware"
	"github.com/sitevoice/backend/pkg/draft"
)

// Stores are abandoned without any close call when the user navigates away,
// so idle ones are swept on the next access.
const sessionIdleTTL = time.Hour

// reportSession pairs a draft store with its auth session so the identity can
// be re-resolved from each request's claims.
type reportSession struct {
	store      *draft.Store
	session    *draft.Session
	lastAccess time.Time
}

// Edit sessions are kept per report id. The per-report store enforces the
// at-most-one-save-in-flight rule; the map itself just hands out stores.
var (
	sessionsMu sync.Mutex
	sessions   = map[uuid.UUID]*reportSession{}
)

// sessionFor resolves the report id, verifies the caller belongs to the
// report's project and hands out its session, writing the HTTP error itself
// when any of that fails. Non-members get the same 404 as a missing id.
func sessionFor(w http.ResponseWriter, r *http.Request) (*draft.Store, uuid.UUID, bool) {
	vars := mux.Vars(r)
	reportID, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "invalid report id", http.StatusBadRequest)
		return nil, uuid.Nil, false
	}

	userID := middleware.GetUserID(r)
	if _, err := loadReportForUser(reportID, userID); err != nil {
		http.Error(w, "report not found", http.StatusNotFound)
		return nil, uuid.Nil, false
	}

	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	evictIdleSessions(time.Now())

	entry, ok := sessions[reportID]
	if !ok {
		backend := draft.NewGormBackend(config.DB)
		session := draft.NewSession()
		entry = &reportSession{
			store:   draft.NewStore(backend, backend, session),
			session: session,
		}
		sessions[reportID] = entry
	}
	// Bind the store to the current caller, not whoever opened it first.
	entry.session.Resolve(userID, middleware.GetCompanyID(r))
	entry.lastAccess = time.Now()
	return entry.store, reportID, true
}

// evictIdleSessions drops stores nobody has touched within the TTL. The
// caller holds sessionsMu.
func evictIdleSessions(now time.Time) {
	cutoff := now.Add(-sessionIdleTTL)
	for id, entry := range sessions {
		if entry.lastAccess.Before(cutoff) {
			delete(sessions, id)
		}
	}
}

func writeDraftError(w http.ResponseWriter, err error) {
	var de *draft.Error
	switch {
	case errors.Is(err, draft.ErrSessionNotResolved):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, draft.ErrSaveInFlight):
		http.Error(w, "a save is already in progress", http.StatusConflict)
	case errors.Is(err, draft.ErrNoReport):
		http.Error(w, "no report loaded; open the session first", http.StatusConflict)
	case errors.As(err, &de) && de.Kind == draft.KindLoadFailed:
		http.Error(w, "failed to load report data", http.StatusNotFound)
	case errors.As(err, &de) && de.Kind == draft.KindSaveFailed:
		http.Error(w, "failed to save report changes", http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

// OpenReportSession loads the report into an edit session. Reopening reloads
// and fully replaces the previous canonical and draft.
func OpenReportSession(w http.ResponseWriter, r *http.Request) {
	store, reportID, ok := sessionFor(w, r)
	if !ok {
		return
	}
	if err := store.Load(r.Context(), reportID); err != nil {
		writeDraftError(w, err)
		return
	}

	view, err := store.View()
	if err != nil {
		writeDraftError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"active_tab": store.ActiveTab(),
		"view":       view,
	})
}

// GetSessionView renders whichever tab is active.
func GetSessionView(w http.ResponseWriter, r *http.Request) {
	store, _, ok := sessionFor(w, r)
	if !ok {
		return
	}
	view, err := store.View()
	if err != nil {
		writeDraftError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"active_tab": store.ActiveTab(),
		"is_saving":  store.IsSaving(),
		"view":       view,
	})
}

// SetSessionTab switches the active tab without touching the draft.
func SetSessionTab(w http.ResponseWriter, r *http.Request) {
	store, _, ok := sessionFor(w, r)
	if !ok {
		return
	}
	var req struct {
		Tab string `json:"tab"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	tab, err := draft.ParseTab(req.Tab)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := store.SetTab(tab); err != nil {
		writeDraftError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"active_tab": tab})
}

// SetSessionField writes one scalar field into the draft.
func SetSessionField(w http.ResponseWriter, r *http.Request) {
	store, _, ok := sessionFor(w, r)
	if !ok {
		return
	}
	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := store.SetField(req.Field, req.Value); err != nil {
		writeDraftError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetSessionRow writes one cell of a materials/equipment row, back-filling
// blank rows when the index is past the end.
func SetSessionRow(w http.ResponseWriter, r *http.Request) {
	store, _, ok := sessionFor(w, r)
	if !ok {
		return
	}
	var req struct {
		Collection string `json:"collection"`
		Index      int    `json:"index"`
		Field      string `json:"field"`
		Value      string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := store.SetArrayItem(req.Collection, req.Index, req.Field, req.Value); err != nil {
		writeDraftError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AppendSessionRow adds one blank row to a collection.
func AppendSessionRow(w http.ResponseWriter, r *http.Request) {
	store, _, ok := sessionFor(w, r)
	if !ok {
		return
	}
	var req struct {
		Collection string `json:"collection"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := store.AppendArrayItem(req.Collection); err != nil {
		writeDraftError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetSessionWorkforce merges one workforce counter into the draft.
func SetSessionWorkforce(w http.ResponseWriter, r *http.Request) {
	store, _, ok := sessionFor(w, r)
	if !ok {
		return
	}
	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := store.SetWorkforceField(req.Field, req.Value); err != nil {
		writeDraftError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveSession persists the draft and returns the summary view the page
// flips back to.
func SaveSession(w http.ResponseWriter, r *http.Request) {
	store, _, ok := sessionFor(w, r)
	if !ok {
		return
	}
	if err := store.Save(r.Context()); err != nil {
		writeDraftError(w, err)
		return
	}
	summary, err := store.Summary()
	if err != nil {
		writeDraftError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"active_tab": store.ActiveTab(),
		"report":     summary,
	})
}
