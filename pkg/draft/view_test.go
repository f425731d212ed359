package draft

import (
	"context"
	"testing"

	"github.com/sitevoice/backend/models"
)

func TestSummaryProjectsCanonicalOnly(t *testing.T) {
	report := testReport()
	report.MaterialsUsed = models.MaterialList{{Name: "sand", Quantity: "3", Unit: "t"}}
	backend := &fakeBackend{report: report}
	store := loadedStore(t, backend)

	if err := store.SetField("report_title", "unsaved"); err != nil {
		t.Fatalf("SetField: %v", err)
	}

	summary, err := store.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Title != "Day 1" {
		t.Errorf("summary title = %q, unsaved draft edits must not leak into the summary", summary.Title)
	}
	if len(summary.Materials) != 1 || summary.Materials[0].Name != "sand" {
		t.Errorf("summary materials = %+v", summary.Materials)
	}
}

func TestEditFormProjectsDraft(t *testing.T) {
	backend := &fakeBackend{report: testReport()}
	store := loadedStore(t, backend)

	if err := store.SetField("report_title", "in progress"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	form, err := store.EditForm()
	if err != nil {
		t.Fatalf("EditForm: %v", err)
	}
	if form.ReportTitle != "in progress" {
		t.Errorf("form title = %q", form.ReportTitle)
	}

	// The projection is a snapshot; writing to it must not reach the draft.
	form.ReportTitle = "hijacked"
	if got := store.Draft().ReportTitle; got != "in progress" {
		t.Errorf("draft title = %q, snapshot write leaked", got)
	}
}

func TestGenerateTabIsPlaceholder(t *testing.T) {
	backend := &fakeBackend{report: testReport()}
	store := loadedStore(t, backend)

	if err := store.SetTab(TabGenerate); err != nil {
		t.Fatalf("SetTab: %v", err)
	}
	view, err := store.View()
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	gen, ok := view.(GenerateView)
	if !ok {
		t.Fatalf("view = %T, want GenerateView", view)
	}
	if gen.Available {
		t.Error("generate tab must report itself unavailable")
	}
}

func TestViewFollowsActiveTab(t *testing.T) {
	backend := &fakeBackend{report: testReport()}
	store := loadedStore(t, backend)

	tests := []struct {
		tab  Tab
		want string
	}{
		{TabReport, "*draft.SummaryView"},
		{TabEdit, "*models.Report"},
		{TabGenerate, "draft.GenerateView"},
	}
	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			if err := store.SetTab(tt.tab); err != nil {
				t.Fatalf("SetTab: %v", err)
			}
			view, err := store.View()
			if err != nil {
				t.Fatalf("View: %v", err)
			}
			switch tt.tab {
			case TabReport:
				if _, ok := view.(*SummaryView); !ok {
					t.Errorf("view = %T, want %s", view, tt.want)
				}
			case TabEdit:
				if _, ok := view.(*models.Report); !ok {
					t.Errorf("view = %T, want %s", view, tt.want)
				}
			case TabGenerate:
				if _, ok := view.(GenerateView); !ok {
					t.Errorf("view = %T, want %s", view, tt.want)
				}
			}
		})
	}
}

func TestParseTab(t *testing.T) {
	for _, valid := range []string{"report", "edit", "generate"} {
		if _, err := ParseTab(valid); err != nil {
			t.Errorf("ParseTab(%q) = %v", valid, err)
		}
	}
	if _, err := ParseTab("export"); err == nil {
		t.Error("ParseTab(export) accepted")
	}
}

func TestRoundTripLoadEditSaveView(t *testing.T) {
	backend := &fakeBackend{report: testReport()}
	store := loadedStore(t, backend)

	if err := store.SetTab(TabEdit); err != nil {
		t.Fatalf("SetTab: %v", err)
	}
	if err := store.SetField("comment_general", "footings inspected"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if err := store.SetWorkforceField("totalPresent", "11"); err != nil {
		t.Fatalf("SetWorkforceField: %v", err)
	}
	if err := store.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	summary, err := store.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.CommentGeneral != "footings inspected" {
		t.Errorf("summary comment = %q, want the saved edit", summary.CommentGeneral)
	}
	if summary.Workforce == nil || summary.Workforce.TotalPresent != "11" {
		t.Errorf("summary workforce = %+v", summary.Workforce)
	}
}
