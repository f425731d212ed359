package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/sitevoice/backend/middleware"
	"github.com/sitevoice/backend/models"
)

// stubReportAccess swaps loadReportForUser for a fake that treats the given
// users as project members of the one report and nobody else.
func stubReportAccess(t *testing.T, reportID uuid.UUID, members ...uuid.UUID) {
	t.Helper()
	orig := loadReportForUser
	loadReportForUser = func(id, userID uuid.UUID) (*models.Report, error) {
		if id != reportID {
			return nil, gorm.ErrRecordNotFound
		}
		for _, m := range members {
			if m == userID {
				return &models.Report{ID: id, ReportTitle: "Day 14"}, nil
			}
		}
		return nil, gorm.ErrRecordNotFound
	}
	t.Cleanup(func() { loadReportForUser = orig })
}

func authedRequest(t *testing.T, method string, userID, reportID uuid.UUID) *http.Request {
	t.Helper()
	r := httptest.NewRequest(method, "/api/v1/reports/"+reportID.String(), nil)
	claims := &middleware.Claims{
		UserID:    userID.String(),
		CompanyID: uuid.New().String(),
	}
	r = r.WithContext(middleware.ContextWithClaims(r.Context(), claims))
	return mux.SetURLVars(r, map[string]string{"id": reportID.String()})
}

func resetSessions(t *testing.T) {
	t.Helper()
	sessionsMu.Lock()
	sessions = map[uuid.UUID]*reportSession{}
	sessionsMu.Unlock()
}

func TestGetReportRejectsNonMember(t *testing.T) {
	reportID := uuid.New()
	owner := uuid.New()
	outsider := uuid.New()
	stubReportAccess(t, reportID, owner)

	w := httptest.NewRecorder()
	GetReport(w, authedRequest(t, "GET", outsider, reportID))
	if w.Code != http.StatusNotFound {
		t.Errorf("outsider GetReport status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestUpdateReportRejectsNonMember(t *testing.T) {
	reportID := uuid.New()
	owner := uuid.New()
	outsider := uuid.New()
	stubReportAccess(t, reportID, owner)

	w := httptest.NewRecorder()
	UpdateReport(w, authedRequest(t, "PUT", outsider, reportID))
	if w.Code != http.StatusNotFound {
		t.Errorf("outsider UpdateReport status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestSessionEndpointsRejectNonMember(t *testing.T) {
	reportID := uuid.New()
	owner := uuid.New()
	outsider := uuid.New()
	stubReportAccess(t, reportID, owner)
	resetSessions(t)

	endpoints := []struct {
		name    string
		method  string
		handler http.HandlerFunc
	}{
		{"open", "POST", OpenReportSession},
		{"view", "GET", GetSessionView},
		{"tab", "PUT", SetSessionTab},
		{"field", "PUT", SetSessionField},
		{"row", "PUT", SetSessionRow},
		{"append", "POST", AppendSessionRow},
		{"workforce", "PUT", SetSessionWorkforce},
		{"save", "POST", SaveSession},
	}
	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ep.handler(w, authedRequest(t, ep.method, outsider, reportID))
			if w.Code != http.StatusNotFound {
				t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
			}
		})
	}

	// Denied requests must not leave a store behind.
	sessionsMu.Lock()
	n := len(sessions)
	sessionsMu.Unlock()
	if n != 0 {
		t.Errorf("sessions cached for denied callers: %d", n)
	}
}

func TestSessionGateRunsBeforeStoreState(t *testing.T) {
	reportID := uuid.New()
	member := uuid.New()
	stubReportAccess(t, reportID, member)
	resetSessions(t)

	// A member with no loaded report gets past the gate and hits the
	// store's own no-report guard instead of a 404.
	w := httptest.NewRecorder()
	GetSessionView(w, authedRequest(t, "GET", member, reportID))
	if w.Code != http.StatusConflict {
		t.Errorf("member GetSessionView status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestSessionRebindsToCurrentCaller(t *testing.T) {
	reportID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()
	stubReportAccess(t, reportID, alice, bob)
	resetSessions(t)

	GetSessionView(httptest.NewRecorder(), authedRequest(t, "GET", alice, reportID))
	GetSessionView(httptest.NewRecorder(), authedRequest(t, "GET", bob, reportID))

	sessionsMu.Lock()
	entry := sessions[reportID]
	sessionsMu.Unlock()
	if entry == nil {
		t.Fatal("expected a cached session")
	}
	if got := entry.session.UserID(); got != bob {
		t.Errorf("session bound to %s, want latest caller %s", got, bob)
	}
}

func TestEvictIdleSessions(t *testing.T) {
	resetSessions(t)
	now := time.Now()

	staleID, freshID := uuid.New(), uuid.New()
	sessionsMu.Lock()
	sessions[staleID] = &reportSession{lastAccess: now.Add(-2 * sessionIdleTTL)}
	sessions[freshID] = &reportSession{lastAccess: now.Add(-time.Minute)}
	evictIdleSessions(now)
	_, staleKept := sessions[staleID]
	_, freshKept := sessions[freshID]
	sessionsMu.Unlock()

	if staleKept {
		t.Error("stale session survived eviction")
	}
	if !freshKept {
		t.Error("fresh session was evicted")
	}
}
