package reports

import (
	"testing"
	"time"

	"timetrack-backend/internal/models"
)

func linked(date time.Time, hours float64) models.InvoiceWorkHour {
	return models.InvoiceWorkHour{WorkHour: &models.WorkHour{Date: date, Hours: hours}}
}

func TestAggregateInvoices(t *testing.T) {
	invoices := []models.Invoice{
		{ClientID: 1, Amount: 800, Status: models.InvoiceStatusPending},
		{ClientID: 1, Amount: 1200, Status: models.InvoiceStatusPaid},
		{ClientID: 2, Amount: 300, Status: models.InvoiceStatusCanceled},
		{ClientID: 2, Amount: 450, Status: models.InvoiceStatusPending},
	}
	s := AggregateInvoices(invoices)

	if s.TotalInvoices != 4 || s.PendingInvoices != 2 || s.PaidInvoices != 1 || s.CanceledInvoices != 1 {
		t.Fatalf("status counts wrong: %+v", s)
	}
	if s.TotalAmount != 2750 {
		t.Fatalf("TotalAmount = %v, want 2750", s.TotalAmount)
	}
	if len(s.ClientBreakdown) != 2 {
		t.Fatalf("ClientBreakdown length = %d, want 2", len(s.ClientBreakdown))
	}
	first := s.ClientBreakdown[0]
	if first.ClientID != 1 || first.Total != 2 || first.Pending != 1 || first.Paid != 1 || first.Canceled != 0 {
		t.Fatalf("client 1 breakdown wrong: %+v", first)
	}
	second := s.ClientBreakdown[1]
	if second.ClientID != 2 || second.Total != 2 || second.Pending != 1 || second.Canceled != 1 {
		t.Fatalf("client 2 breakdown wrong: %+v", second)
	}
}

func TestAggregateInvoicesEmpty(t *testing.T) {
	s := AggregateInvoices(nil)
	if s.TotalInvoices != 0 || s.TotalAmount != 0 || len(s.ClientBreakdown) != 0 {
		t.Fatalf("empty input must produce zeroed summary, got %+v", s)
	}
}

func TestTotalHoursBilled(t *testing.T) {
	inv := &models.Invoice{WorkHours: []models.InvoiceWorkHour{
		linked(day(2025, time.June, 10), 3),
		linked(day(2025, time.June, 11), 5),
	}}
	if got := TotalHoursBilled(inv); got != 8 {
		t.Fatalf("TotalHoursBilled = %v, want 8", got)
	}
	if got := TotalHoursBilled(&models.Invoice{}); got != 0 {
		t.Fatalf("TotalHoursBilled(empty) = %v, want 0", got)
	}
}

func TestInvoiceWorkPeriod(t *testing.T) {
	inv := &models.Invoice{WorkHours: []models.InvoiceWorkHour{
		linked(day(2025, time.June, 15), 2),
		linked(day(2025, time.June, 3), 4),
		linked(day(2025, time.June, 10), 1),
	}}
	p := InvoiceWorkPeriod(inv)
	if p == nil {
		t.Fatal("expected a work period")
	}
	if !p.From.Equal(day(2025, time.June, 3)) || !p.To.Equal(day(2025, time.June, 15)) {
		t.Fatalf("work period = %+v", p)
	}

	single := &models.Invoice{WorkHours: []models.InvoiceWorkHour{linked(day(2025, time.June, 10), 2)}}
	p = InvoiceWorkPeriod(single)
	if p == nil || !p.From.Equal(p.To) {
		t.Fatalf("single link must yield a single-day period, got %+v", p)
	}

	if InvoiceWorkPeriod(&models.Invoice{}) != nil {
		t.Fatal("no links must yield a nil work period")
	}
}
