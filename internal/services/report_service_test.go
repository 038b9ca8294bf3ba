package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"timetrack-backend/internal/models"
)

func TestGetHoursReport(t *testing.T) {
	s := newFakeStore()
	svc := NewReportService(fakeWorkHours{s}, fakeInvoices{s})
	acme := s.addClient(1, "Acme")
	globex := s.addClient(1, "Globex")

	s.addWorkHour(1, acme.ID, nil, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), 5)
	s.addWorkHour(1, acme.ID, nil, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), 3)
	s.addWorkHour(1, globex.ID, nil, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), 2)
	// Outside the range, must not count.
	s.addWorkHour(1, acme.ID, nil, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 8)

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	report, err := svc.GetHoursReport(context.Background(), 1, ReportFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("GetHoursReport: %v", err)
	}

	if report.TotalHours != 10 {
		t.Errorf("total hours = %v, want 10", report.TotalHours)
	}
	if report.TotalDays != 3 {
		t.Errorf("days worked = %d, want 3", report.TotalDays)
	}
	if len(report.ClientBreakdown) != 2 {
		t.Fatalf("client breakdown = %d entries, want 2", len(report.ClientBreakdown))
	}

	clientFilter := ReportFilter{From: &from, To: &to, ClientID: &acme.ID}
	scoped, err := svc.GetHoursReport(context.Background(), 1, clientFilter)
	if err != nil {
		t.Fatalf("GetHoursReport scoped: %v", err)
	}
	if scoped.TotalHours != 8 {
		t.Errorf("scoped total = %v, want 8", scoped.TotalHours)
	}
}

func TestGetHoursReportRejectsInvertedRange(t *testing.T) {
	s := newFakeStore()
	svc := NewReportService(fakeWorkHours{s}, fakeInvoices{s})

	from := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetHoursReport(context.Background(), 1, ReportFilter{From: &from, To: &to})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestGetInvoiceReport(t *testing.T) {
	s := newFakeStore()
	svc := NewReportService(fakeWorkHours{s}, fakeInvoices{s})
	invSvc := NewInvoiceService(fakeInvoices{s}, fakeWorkHours{s}, fakeClients{s}, fakeProjects{s}, 50.0)

	acme := s.addClient(1, "Acme")
	wh1 := s.addWorkHour(1, acme.ID, nil, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), 3)
	wh2 := s.addWorkHour(1, acme.ID, nil, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 5)

	inv, err := invSvc.CreateInvoice(context.Background(), 1, &models.CreateInvoiceRequest{
		ClientID:    acme.ID,
		WorkHourIDs: []int{wh1.ID, wh2.ID},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	report, err := svc.GetInvoiceReport(context.Background(), 1, ReportFilter{})
	if err != nil {
		t.Fatalf("GetInvoiceReport: %v", err)
	}
	if report.TotalInvoices != 1 {
		t.Fatalf("total invoices = %d, want 1", report.TotalInvoices)
	}
	if report.TotalAmount != inv.Amount {
		t.Errorf("total amount = %v, want %v", report.TotalAmount, inv.Amount)
	}

	detail := report.Invoices[0]
	if detail.TotalHoursBilled != 8 {
		t.Errorf("hours billed = %v, want 8", detail.TotalHoursBilled)
	}
	if detail.WorkPeriod == nil {
		t.Fatal("work period missing")
	}
	if !detail.WorkPeriod.From.Equal(wh1.Date) || !detail.WorkPeriod.To.Equal(wh2.Date) {
		t.Errorf("work period = %v..%v, want %v..%v",
			detail.WorkPeriod.From, detail.WorkPeriod.To, wh1.Date, wh2.Date)
	}

	paid := models.InvoiceStatusPaid
	empty, err := svc.GetInvoiceReport(context.Background(), 1, ReportFilter{Status: &paid})
	if err != nil {
		t.Fatalf("GetInvoiceReport filtered: %v", err)
	}
	if empty.TotalInvoices != 0 {
		t.Errorf("filtered total = %d, want 0", empty.TotalInvoices)
	}
}
