package reports

import (
	"time"

	"timetrack-backend/internal/models"
)

// ClientInvoices is one client's invoice counts by status.
type ClientInvoices struct {
	ClientID int `json:"client_id"`
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Paid     int `json:"paid"`
	Canceled int `json:"canceled"`
}

// InvoiceSummary aggregates a filtered set of invoices.
type InvoiceSummary struct {
	TotalInvoices    int              `json:"total_invoices"`
	PendingInvoices  int              `json:"pending_invoices"`
	PaidInvoices     int              `json:"paid_invoices"`
	CanceledInvoices int              `json:"canceled_invoices"`
	TotalAmount      float64          `json:"total_amount"`
	ClientBreakdown  []ClientInvoices `json:"client_breakdown"`
}

// AggregateInvoices reduces invoices to status counts, the amount total and
// a per-client breakdown in first-occurrence order. Status is only read here;
// transitions belong to the invoice service.
func AggregateInvoices(invoices []models.Invoice) InvoiceSummary {
	summary := InvoiceSummary{ClientBreakdown: make([]ClientInvoices, 0)}
	index := make(map[int]int) // clientID -> position in breakdown

	for _, inv := range invoices {
		summary.TotalInvoices++
		summary.TotalAmount += inv.Amount

		pos, ok := index[inv.ClientID]
		if !ok {
			pos = len(summary.ClientBreakdown)
			index[inv.ClientID] = pos
			summary.ClientBreakdown = append(summary.ClientBreakdown, ClientInvoices{ClientID: inv.ClientID})
		}
		summary.ClientBreakdown[pos].Total++

		switch inv.Status {
		case models.InvoiceStatusPending:
			summary.PendingInvoices++
			summary.ClientBreakdown[pos].Pending++
		case models.InvoiceStatusPaid:
			summary.PaidInvoices++
			summary.ClientBreakdown[pos].Paid++
		case models.InvoiceStatusCanceled:
			summary.CanceledInvoices++
			summary.ClientBreakdown[pos].Canceled++
		}
	}
	summary.TotalAmount = round2(summary.TotalAmount)
	return summary
}

// TotalHoursBilled sums the hours of every work-hour entry linked to inv.
func TotalHoursBilled(inv *models.Invoice) float64 {
	var total float64
	for _, link := range inv.WorkHours {
		if link.WorkHour != nil {
			total += link.WorkHour.Hours
		}
	}
	return round2(total)
}

// WorkPeriod is the inclusive date range spanned by an invoice's linked
// work-hour entries.
type WorkPeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// InvoiceWorkPeriod returns the range from the earliest to the latest linked
// work-hour date, or nil when the invoice has no links.
func InvoiceWorkPeriod(inv *models.Invoice) *WorkPeriod {
	var period *WorkPeriod
	for _, link := range inv.WorkHours {
		if link.WorkHour == nil {
			continue
		}
		d := link.WorkHour.Date
		if period == nil {
			period = &WorkPeriod{From: d, To: d}
			continue
		}
		if d.Before(period.From) {
			period.From = d
		}
		if d.After(period.To) {
			period.To = d
		}
	}
	return period
}
