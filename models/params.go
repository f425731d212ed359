package models

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// ReportParams are the shared list-query parameters: pagination, ordering and
// an optional created_at window, plus exact-match column filters the handler
// adds before running the query.
type ReportParams struct {
	Page     int
	PageSize int
	OrderBy  string
	Order    string
	From     *time.Time
	To       *time.Time
	Filters  map[string]string
}

// ParseReportParams reads list parameters off the query string.
func ParseReportParams(r *http.Request) (*ReportParams, error) {
	q := r.URL.Query()
	p := &ReportParams{
		Page:     1,
		PageSize: defaultPageSize,
		OrderBy:  "created_at",
		Order:    "desc",
		Filters:  map[string]string{},
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", v)
		}
		p.Page = n
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid page_size %q", v)
		}
		p.PageSize = n
	}
	if v := q.Get("order_by"); v != "" {
		p.OrderBy = v
	}
	if v := q.Get("order"); v != "" {
		p.Order = v
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("invalid from date %q", v)
		}
		p.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("invalid to date %q", v)
		}
		p.To = &t
	}
	return p, nil
}

func (p *ReportParams) Validate() error {
	if p.Page < 1 {
		return fmt.Errorf("page must be >= 1")
	}
	if p.PageSize < 1 || p.PageSize > maxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d", maxPageSize)
	}
	if p.Order != "asc" && p.Order != "desc" {
		return fmt.Errorf("order must be asc or desc")
	}
	// OrderBy is interpolated into SQL, so it is restricted to known columns.
	switch p.OrderBy {
	case "created_at", "updated_at", "report_date", "name", "first_name":
	default:
		return fmt.Errorf("unsupported order_by %q", p.OrderBy)
	}
	return nil
}

// ReportResponse is the envelope every list endpoint returns.
type ReportResponse struct {
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// ReportService runs a parameterized list query for one model type.
type ReportService struct {
	db    *gorm.DB
	model interface{}
}

func NewReportService(db *gorm.DB, model interface{}) *ReportService {
	return &ReportService{db: db, model: model}
}

// GetReport applies filters, window, ordering and pagination and returns the
// matching rows with a total count.
func (s *ReportService) GetReport(p *ReportParams) (*ReportResponse, error) {
	query := s.db.Model(s.model)
	for column, value := range p.Filters {
		query = query.Where(column+" = ?", value)
	}
	if p.From != nil {
		query = query.Where("created_at >= ?", *p.From)
	}
	if p.To != nil {
		query = query.Where("created_at < ?", p.To.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	slicePtr := reflect.New(reflect.SliceOf(reflect.TypeOf(s.model)))
	err := query.
		Order(p.OrderBy + " " + p.Order).
		Offset((p.Page - 1) * p.PageSize).
		Limit(p.PageSize).
		Find(slicePtr.Interface()).Error
	if err != nil {
		return nil, err
	}

	return &ReportResponse{
		Data:     slicePtr.Elem().Interface(),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
