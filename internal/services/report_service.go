package services

import (
	"context"
	"time"

	"timetrack-backend/internal/models"
	"timetrack-backend/internal/reports"
)

// ReportFilter scopes a report to an optional client and date range.
type ReportFilter struct {
	ClientID *int
	From     *time.Time
	To       *time.Time
	Status   *string // invoice reports only
}

func (f ReportFilter) validate() error {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return validationf("invalid date range: from %s is after to %s",
			f.From.Format("2006-01-02"), f.To.Format("2006-01-02"))
	}
	if f.Status != nil && !models.ValidInvoiceStatus(*f.Status) {
		return validationf("invalid invoice status %q", *f.Status)
	}
	return nil
}

// HoursReport is the computed work-hour report exposed to callers.
type HoursReport struct {
	reports.HoursSummary
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// InvoiceDetail is one invoice of an invoice report together with its
// derived billing fields.
type InvoiceDetail struct {
	models.Invoice
	TotalHoursBilled float64             `json:"total_hours_billed"`
	WorkPeriod       *reports.WorkPeriod `json:"work_period"`
}

// InvoiceReport is the computed invoice report exposed to callers.
type InvoiceReport struct {
	reports.InvoiceSummary
	Invoices []InvoiceDetail `json:"invoices"`
}

// ReportService derives hour and invoice reports from the data-access layer.
// All aggregation happens in the reports package; this service only loads the
// filtered snapshot and hands the result to the caller.
type ReportService struct {
	workHours WorkHourStore
	invoices  InvoiceStore
}

func NewReportService(workHours WorkHourStore, invoices InvoiceStore) *ReportService {
	return &ReportService{workHours: workHours, invoices: invoices}
}

func (s *ReportService) GetHoursReport(ctx context.Context, userID int, f ReportFilter) (*HoursReport, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	entries, err := s.workHours.List(ctx, models.WorkHourFilter{
		UserID:   userID,
		ClientID: f.ClientID,
		From:     f.From,
		To:       f.To,
	})
	if err != nil {
		return nil, err
	}
	return &HoursReport{
		HoursSummary: reports.AggregateHours(entries),
		From:         f.From,
		To:           f.To,
	}, nil
}

func (s *ReportService) GetInvoiceReport(ctx context.Context, userID int, f ReportFilter) (*InvoiceReport, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	invoices, err := s.invoices.List(ctx, models.InvoiceFilter{
		UserID:   userID,
		ClientID: f.ClientID,
		From:     f.From,
		To:       f.To,
		Status:   f.Status,
	})
	if err != nil {
		return nil, err
	}

	report := &InvoiceReport{
		InvoiceSummary: reports.AggregateInvoices(invoices),
		Invoices:       make([]InvoiceDetail, 0, len(invoices)),
	}
	for i := range invoices {
		inv := invoices[i]
		report.Invoices = append(report.Invoices, InvoiceDetail{
			Invoice:          inv,
			TotalHoursBilled: reports.TotalHoursBilled(&inv),
			WorkPeriod:       reports.InvoiceWorkPeriod(&inv),
		})
	}
	return report, nil
}
