package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"timetrack-backend/internal/models"
	"timetrack-backend/internal/reports"
	"timetrack-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ObjectStore uploads a document and returns its public URL.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// ErrStorageDisabled is returned when no object storage is configured.
var ErrStorageDisabled = fmt.Errorf("object storage is not configured")

// DocumentService renders invoices as PDF documents and, when object storage
// is configured, uploads them and records the file URL on the invoice.
type DocumentService struct {
	invoices *InvoiceService
	clients  ClientStore
	store    InvoiceStore
	storage  ObjectStore // nil when storage is disabled
}

func NewDocumentService(invoices *InvoiceService, clients ClientStore, store InvoiceStore, storage ObjectStore) *DocumentService {
	return &DocumentService{invoices: invoices, clients: clients, store: store, storage: storage}
}

// RenderInvoicePDF produces the PDF bytes for an invoice owned by userID.
func (s *DocumentService) RenderInvoicePDF(ctx context.Context, userID, invoiceID int) ([]byte, error) {
	inv, err := s.invoices.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.Get(ctx, inv.ClientID)
	if err != nil {
		return nil, mapNotFound(err, "client", inv.ClientID)
	}
	return renderInvoicePDF(inv, client)
}

// PublishInvoicePDF renders the invoice, uploads it to object storage and
// stores the resulting URL as the invoice's file URL.
func (s *DocumentService) PublishInvoicePDF(ctx context.Context, userID, invoiceID int) (string, error) {
	if s.storage == nil {
		return "", ErrStorageDisabled
	}
	pdfBytes, err := s.RenderInvoicePDF(ctx, userID, invoiceID)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("invoices/%d/%d.pdf", userID, invoiceID)
	url, err := s.storage.Upload(ctx, key, pdfBytes, "application/pdf")
	if err != nil {
		return "", err
	}
	if err := s.store.SetFileURL(ctx, invoiceID, url); err != nil {
		return "", mapNotFound(err, "invoice", invoiceID)
	}
	return url, nil
}

func renderInvoicePDF(inv *models.Invoice, client *models.Client) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("Invoice %s", inv.Number), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("02-Jan-2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Client Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Billed To", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Client: %s", client.DisplayName()), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Email: %s", client.Email), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", inv.Status), "LB", 0, "L", false, 0, "")
	if inv.DueDate != nil {
		pdf.CellFormat(95, 7, fmt.Sprintf("Due: %s", inv.DueDate.Format(timeutil.DateLayout)), "RB", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(95, 7, "", "RB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Work-hour table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Billed Work", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 7, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(125, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Hours", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, link := range inv.WorkHours {
		if link.WorkHour == nil {
			continue
		}
		wh := link.WorkHour
		pdf.CellFormat(35, 7, wh.Date.Format(timeutil.DateLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(125, 7, wh.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", wh.Hours), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(160, 7, "Total hours", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", reports.TotalHoursBilled(inv)), "1", 1, "R", true, 0, "")
	if period := reports.InvoiceWorkPeriod(inv); period != nil {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(190, 7, fmt.Sprintf("Work period: %s to %s",
			period.From.Format(timeutil.DateLayout), period.To.Format(timeutil.DateLayout)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, fmt.Sprintf("Amount due: %.2f", inv.Amount), "1", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}
