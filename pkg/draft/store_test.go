package draft

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/sitevoice/backend/models"
)

type fakeBackend struct {
	report    *models.Report
	fetchErr  error
	updateErr error
	patches   []map[string]interface{}
	block     chan struct{}
}

func (f *fakeBackend) FetchReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.report.Clone(), nil
}

func (f *fakeBackend) UpdateReport(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	if f.block != nil {
		<-f.block
	}
	f.patches = append(f.patches, patch)
	return f.updateErr
}

func testReport() *models.Report {
	return &models.Report{
		ID:             uuid.New(),
		ProjectID:      uuid.New(),
		ReportTitle:    "Day 1",
		CommentGeneral: "ok",
		MaterialsUsed:  models.MaterialList{},
		Equipment:      models.EquipmentList{},
	}
}

func loadedStore(t *testing.T, backend *fakeBackend) *Store {
	t.Helper()
	store := NewStore(backend, backend, ResolvedSession(uuid.New(), uuid.New()))
	if err := store.Load(context.Background(), backend.report.ID); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return store
}

func TestLoadInitializesDraftAsFullCopy(t *testing.T) {
	backend := &fakeBackend{report: testReport()}
	store := loadedStore(t, backend)

	canonical := store.Canonical()
	draftCopy := store.Draft()
	if canonical == nil || draftCopy == nil {
		t.Fatal("expected canonical and draft after load")
	}
	if canonical.ReportTitle != "Day 1" || draftCopy.ReportTitle != "Day 1" {
		t.Errorf("titles = %q, %q, want Day 1", canonical.ReportTitle, draftCopy.ReportTitle)
	}
	if store.ActiveTab() != TabReport {
		t.Errorf("initial tab = %q, want report", store.ActiveTab())
	}
}

func TestLoadFailureClearsBothCopies(t *testing.T) {
	backend := &fakeBackend{report: testReport(), fetchErr: errors.New("boom")}
	store := NewStore(backend, backend, ResolvedSession(uuid.New(), uuid.New()))

	err := store.Load(context.Background(), backend.report.ID)
	if err == nil {
		t.Fatal("expected load error")
	}
	var de *Error
	if !errors.As(err, &de) || de.Kind != KindLoadFailed {
		t.Fatalf("error = %v, want KindLoadFailed", err)
	}
	if store.Canonical() != nil || store.Draft() != nil {
		t.Error("canonical/draft should be nil after failed load")
	}
}

func TestLoadRequiresResolvedSession(t *testing.T) {
	backend := &fakeBackend{report: testReport()}
	for _, tc := range []struct {
		name    string
		prepare func(*Session)
	}{
		{"unresolved", func(s *Session) {}},
		{"loading", func(s *Session) { s.BeginResolve() }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			session := NewSession()
			tc.prepare(session)
			store := NewStore(backend, backend, session)
			if err := store.Load(context.Background(), backend.report.ID); !errors.Is(err, ErrSessionNotResolved) {
				t.Errorf("Load = %v, want ErrSessionNotResolved", err)
			}
		})
	}
}

func TestMutationsNeverTouchCanonical(t *testing.T) {
	backend := &fakeBackend{report: testReport()}
	store := loadedStore(t, backend)

	steps := []func() error{
		func() error { return store.SetField("report_title", "Day 2") },
		func() error { return store.SetField("comment_general", "poured slab") },
		func() error { return store.AppendArrayItem(CollectionMaterials) },
		func() error { return store.SetArrayItem(CollectionMaterials, 0, "name", "cement") },
		func() error { return store.SetArrayItem(CollectionEquipment, 1, "quantityUsed", "2") },
		func() error { return store.SetWorkforceField("totalPresent", "14") },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	canonical := store.Canonical()
	if canonical.ReportTitle != "Day 1" || canonical.CommentGeneral != "ok" {
		t.Errorf("canonical mutated: %+v", canonical)
	}
	if len(canonical.MaterialsUsed) != 0 || len(canonical.Equipment) != 0 || canonical.Workforce != nil {
		t.Errorf("canonical collections mutated: %+v", canonical)
	}

	draftCopy := store.Draft()
	if draftCopy.ReportTitle != "Day 2" {
		t.Errorf("draft title = %q, want Day 2", draftCopy.ReportTitle)
	}
}

func TestSetArrayItemBackfillsBlanks(t *testing.T) {
	backend := &fakeBackend{report: testReport()}
	store := loadedStore(t, backend)

	if err := store.SetArrayItem(CollectionMaterials, 2, "name", "rebar"); err != nil {
		t.Fatalf("SetArrayItem: %v", err)
	}

	materials := store.Draft().MaterialsUsed
	if len(materials) != 3 {
		t.Fatalf("len = %d, want 3", len(materials))
	}
	blank := models.Material{}
	if materials[0] != blank || materials[1] != blank {
		t.Errorf("indices 0-1 should be blank: %+v", materials)
	}
	if materials[2].Name != "rebar" {
		t.Errorf("materials[2].Name = %q, want rebar", materials[2].Name)
	}
}

func TestAppendArrayItemAddsBlankRow(t *testing.T) {
	backend := &fakeBackend{report: testReport()}
	store := loadedStore(t, backend)

	if err := store.AppendArrayItem(CollectionMaterials); err != nil {
		t.Fatalf("AppendArrayItem: %v", err)
	}
	materials := store.Draft().MaterialsUsed
	if len(materials) != 1 {
		t.Fatalf("len = %d, want 1", len(materials))
	}
	if materials[0] != (models.Material{}) {
		t.Errorf("appended row not blank: %+v", materials[0])
	}
}

func TestSetArrayItemRejectsUnknownNames(t *testing.T) {
	backend := &fakeBackend{report: testReport()}
	store := loadedStore(t, backend)

	tests := []struct {
		name       string
		collection string
		field      string
	}{
		{"unknown collection", "tools", "name"},
		{"unknown material field", CollectionMaterials, "weight"},
		{"unknown equipment field", CollectionEquipment, "serial"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.SetArrayItem(tt.collection, 0, tt.field, "x"); err == nil {
				t.Errorf("SetArrayItem(%q, 0, %q) accepted", tt.collection, tt.field)
			}
		})
	}
}

func TestSetWorkforceFieldInitializesAndMerges(t *testing.T) {
	backend := &fakeBackend{report: testReport()}
	store := loadedStore(t, backend)

	if err := store.SetWorkforceField("hoursWorked", "8"); err != nil {
		t.Fatalf("SetWorkforceField: %v", err)
	}
	wf := store.Draft().Workforce
	if wf == nil {
		t.Fatal("workforce not initialized")
	}
	if wf.HoursWorked != "8" || wf.TotalPresent != "" || wf.Absentees != "" {
		t.Errorf("workforce = %+v", wf)
	}

	if err := store.SetWorkforceField("totalPresent", "12"); err != nil {
		t.Fatalf("SetWorkforceField: %v", err)
	}
	wf = store.Draft().Workforce
	if wf.HoursWorked != "8" || wf.TotalPresent != "12" {
		t.Errorf("merge lost a field: %+v", wf)
	}
}

func TestTabSwitchPreservesDraft(t *testing.T) {
	backend := &fakeBackend{report: testReport()}
	store := loadedStore(t, backend)

	if err := store.SetField("report_title", "unsaved edit"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if err := store.SetArrayItem(CollectionMaterials, 0, "name", "gravel"); err != nil {
		t.Fatalf("SetArrayItem: %v", err)
	}

	for _, tab := range []Tab{TabEdit, TabReport, TabGenerate, TabEdit} {
		if err := store.SetTab(tab); err != nil {
			t.Fatalf("SetTab(%q): %v", tab, err)
		}
	}

	draftCopy := store.Draft()
	if draftCopy.ReportTitle != "unsaved edit" {
		t.Errorf("draft title = %q after tab switches", draftCopy.ReportTitle)
	}
	if len(draftCopy.MaterialsUsed) != 1 || draftCopy.MaterialsUsed[0].Name != "gravel" {
		t.Errorf("draft materials lost: %+v", draftCopy.MaterialsUsed)
	}
}

func TestMutatorsWithoutLoadedReport(t *testing.T) {
	backend := &fakeBackend{report: testReport()}
	store := NewStore(backend, backend, ResolvedSession(uuid.New(), uuid.New()))

	if err := store.SetField("report_title", "x"); !errors.Is(err, ErrNoReport) {
		t.Errorf("SetField = %v, want ErrNoReport", err)
	}
	if err := store.AppendArrayItem(CollectionMaterials); !errors.Is(err, ErrNoReport) {
		t.Errorf("AppendArrayItem = %v, want ErrNoReport", err)
	}
	if err := store.Save(context.Background()); !errors.Is(err, ErrNoReport) {
		t.Errorf("Save = %v, want ErrNoReport", err)
	}
}
