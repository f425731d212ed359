package models

import (
	"net/http/httptest"
	"testing"
)

func TestParseReportParamsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/reports", nil)
	p, err := ParseReportParams(r)
	if err != nil {
		t.Fatal(err)
	}
	if p.Page != 1 || p.PageSize != defaultPageSize {
		t.Errorf("defaults = page %d size %d, want 1/%d", p.Page, p.PageSize, defaultPageSize)
	}
	if p.OrderBy != "created_at" || p.Order != "desc" {
		t.Errorf("default ordering = %s %s, want created_at desc", p.OrderBy, p.Order)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestParseReportParamsWindow(t *testing.T) {
	r := httptest.NewRequest("GET", "/reports?from=2025-06-01&to=2025-06-30&page=2&page_size=25", nil)
	p, err := ParseReportParams(r)
	if err != nil {
		t.Fatal(err)
	}
	if p.From == nil || p.To == nil {
		t.Fatal("expected both window bounds set")
	}
	if p.Page != 2 || p.PageSize != 25 {
		t.Errorf("page/size = %d/%d, want 2/25", p.Page, p.PageSize)
	}
}

func TestParseReportParamsRejectsBadInput(t *testing.T) {
	cases := []string{
		"/reports?page=abc",
		"/reports?page_size=ten",
		"/reports?from=June+1st",
		"/reports?to=2025-13-99",
	}
	for _, url := range cases {
		r := httptest.NewRequest("GET", url, nil)
		if _, err := ParseReportParams(r); err == nil {
			t.Errorf("ParseReportParams(%s): expected error", url)
		}
	}
}

func TestReportParamsValidateBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ReportParams)
		ok     bool
	}{
		{"valid", func(p *ReportParams) {}, true},
		{"zero page", func(p *ReportParams) { p.Page = 0 }, false},
		{"oversize page_size", func(p *ReportParams) { p.PageSize = maxPageSize + 1 }, false},
		{"zero page_size", func(p *ReportParams) { p.PageSize = 0 }, false},
		{"bad order", func(p *ReportParams) { p.Order = "sideways" }, false},
		{"sql in order_by", func(p *ReportParams) { p.OrderBy = "created_at; DROP TABLE reports" }, false},
		{"report_date order_by", func(p *ReportParams) { p.OrderBy = "report_date" }, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := &ReportParams{Page: 1, PageSize: 50, OrderBy: "created_at", Order: "desc"}
			c.mutate(p)
			err := p.Validate()
			if c.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !c.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
