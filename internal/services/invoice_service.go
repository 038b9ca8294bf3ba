package services

import (
	"context"
	"math"

	"timetrack-backend/internal/cache"
	"timetrack-backend/internal/metrics"
	"timetrack-backend/internal/models"
)

// InvoiceService validates and persists the composition of work-hour entries
// into invoices. It is the only core component that mutates: the invoice row
// and its link set are always written inside one transaction by the store.
type InvoiceService struct {
	invoices    InvoiceStore
	workHours   WorkHourStore
	clients     ClientStore
	projects    ProjectStore
	defaultRate float64
}

func NewInvoiceService(invoices InvoiceStore, workHours WorkHourStore, clients ClientStore, projects ProjectStore, defaultRate float64) *InvoiceService {
	return &InvoiceService{
		invoices:    invoices,
		workHours:   workHours,
		clients:     clients,
		projects:    projects,
		defaultRate: defaultRate,
	}
}

// CreateInvoice composes a new PENDING invoice from the selected work-hour
// entries. Every entry must exist, belong to the requesting user and to the
// invoice's client, and must not already be billed by a non-canceled invoice.
func (s *InvoiceService) CreateInvoice(ctx context.Context, userID int, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	if _, err := s.ownedClient(ctx, userID, req.ClientID); err != nil {
		return nil, err
	}
	entries, err := s.selectedEntries(ctx, userID, req.ClientID, req.WorkHourIDs)
	if err != nil {
		return nil, err
	}
	if err := s.guardDoubleBilling(ctx, req.WorkHourIDs, 0); err != nil {
		return nil, err
	}
	amount, err := s.resolveAmount(ctx, req.Amount, entries)
	if err != nil {
		return nil, err
	}

	inv := &models.Invoice{
		Number:      req.Number,
		ClientID:    req.ClientID,
		UserID:      userID,
		Amount:      amount,
		Status:      models.InvoiceStatusPending,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if err := s.invoices.CreateWithLinks(ctx, inv, req.WorkHourIDs); err != nil {
		return nil, &TransactionError{Op: "create invoice", Err: err}
	}
	metrics.InvoicesCreated.Inc()
	cache.InvalidateDashboard(ctx, userID)
	return s.getOwned(ctx, userID, inv.ID)
}

// UpdateInvoice applies a partial update. A non-nil work-hour selection
// replaces the link set atomically and recomputes the amount unless an
// explicit amount accompanies it.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, userID, id int, req *models.UpdateInvoiceRequest) (*models.Invoice, error) {
	inv, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Number != nil {
		inv.Number = *req.Number
	}
	if req.Description != nil {
		inv.Description = *req.Description
	}
	if req.DueDate != nil {
		inv.DueDate = req.DueDate
	}

	if req.WorkHourIDs != nil {
		entries, err := s.selectedEntries(ctx, userID, inv.ClientID, req.WorkHourIDs)
		if err != nil {
			return nil, err
		}
		if err := s.guardDoubleBilling(ctx, req.WorkHourIDs, inv.ID); err != nil {
			return nil, err
		}
		amount, err := s.resolveAmount(ctx, req.Amount, entries)
		if err != nil {
			return nil, err
		}
		inv.Amount = amount
		if err := s.invoices.ReplaceLinks(ctx, inv.ID, req.WorkHourIDs, amount); err != nil {
			return nil, &TransactionError{Op: "replace invoice links", Err: err}
		}
		if err := s.invoices.Update(ctx, inv); err != nil {
			return nil, &TransactionError{Op: "update invoice", Err: err}
		}
	} else {
		if req.Amount != nil {
			if err := validAmount(*req.Amount); err != nil {
				return nil, err
			}
			inv.Amount = *req.Amount
		}
		if err := s.invoices.Update(ctx, inv); err != nil {
			return nil, &TransactionError{Op: "update invoice", Err: err}
		}
	}

	cache.InvalidateDashboard(ctx, userID)
	return s.getOwned(ctx, userID, id)
}

// UpdateStatus performs a user-driven status transition. PAID and CANCELED
// are terminal.
func (s *InvoiceService) UpdateStatus(ctx context.Context, userID, id int, status string) (*models.Invoice, error) {
	if !models.ValidInvoiceStatus(status) {
		return nil, validationf("invalid invoice status %q", status)
	}
	inv, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != models.InvoiceStatusPending && inv.Status != status {
		return nil, validationf("invoice %d is %s and cannot become %s", id, inv.Status, status)
	}
	if err := s.invoices.UpdateStatus(ctx, id, status); err != nil {
		return nil, &TransactionError{Op: "update invoice status", Err: err}
	}
	cache.InvalidateDashboard(ctx, userID)
	return s.getOwned(ctx, userID, id)
}

func (s *InvoiceService) GetInvoice(ctx context.Context, userID, id int) (*models.Invoice, error) {
	return s.getOwned(ctx, userID, id)
}

func (s *InvoiceService) ListInvoices(ctx context.Context, f models.InvoiceFilter) ([]models.Invoice, error) {
	return s.invoices.List(ctx, f)
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, userID, id int) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.invoices.DeleteWithLinks(ctx, id); err != nil {
		return &TransactionError{Op: "delete invoice", Err: err}
	}
	cache.InvalidateDashboard(ctx, userID)
	return nil
}

func (s *InvoiceService) getOwned(ctx context.Context, userID, id int) (*models.Invoice, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "invoice", id)
	}
	if inv.UserID != userID {
		return nil, &NotFoundError{Entity: "invoice", ID: id}
	}
	return inv, nil
}

func (s *InvoiceService) ownedClient(ctx context.Context, userID, clientID int) (*models.Client, error) {
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return nil, mapNotFound(err, "client", clientID)
	}
	if client.UserID != userID {
		return nil, &NotFoundError{Entity: "client", ID: clientID}
	}
	return client, nil
}

// selectedEntries loads and validates the work-hour selection: non-empty, no
// duplicates, every entry present, owned by the user and belonging to the
// invoice's client.
func (s *InvoiceService) selectedEntries(ctx context.Context, userID, clientID int, workHourIDs []int) ([]models.WorkHour, error) {
	if len(workHourIDs) == 0 {
		return nil, validationf("invoice requires at least one work-hour entry")
	}
	seen := make(map[int]struct{}, len(workHourIDs))
	for _, id := range workHourIDs {
		if _, dup := seen[id]; dup {
			return nil, validationf("work hour %d selected twice", id)
		}
		seen[id] = struct{}{}
	}

	entries, err := s.workHours.ListByIDs(ctx, workHourIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.WorkHour, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	for _, id := range workHourIDs {
		entry, ok := byID[id]
		if !ok || entry.UserID != userID {
			return nil, &NotFoundError{Entity: "work hour", ID: id}
		}
		if entry.ClientID != clientID {
			return nil, validationf("work hour %d belongs to a different client", id)
		}
	}
	return entries, nil
}

func (s *InvoiceService) guardDoubleBilling(ctx context.Context, workHourIDs []int, excludeInvoiceID int) error {
	linked, err := s.invoices.ActiveLinkedInvoices(ctx, workHourIDs, excludeInvoiceID)
	if err != nil {
		return err
	}
	for _, id := range workHourIDs {
		if invoiceID, ok := linked[id]; ok {
			return &DuplicateBillingError{WorkHourID: id, InvoiceID: invoiceID}
		}
	}
	return nil
}

// resolveAmount returns the explicit amount when given, otherwise the sum of
// hours times the applicable rate per entry: the project's hourly rate, or
// the configured default for entries without a project rate.
func (s *InvoiceService) resolveAmount(ctx context.Context, explicit *float64, entries []models.WorkHour) (float64, error) {
	if explicit != nil {
		if err := validAmount(*explicit); err != nil {
			return 0, err
		}
		return *explicit, nil
	}

	rates := make(map[int]float64) // projectID -> rate
	var amount float64
	for _, entry := range entries {
		rate := s.defaultRate
		if entry.ProjectID != nil {
			projectRate, ok := rates[*entry.ProjectID]
			if !ok {
				project, err := s.projects.Get(ctx, *entry.ProjectID)
				if err != nil {
					return 0, mapNotFound(err, "project", *entry.ProjectID)
				}
				projectRate = s.defaultRate
				if project.HourlyRate != nil {
					projectRate = *project.HourlyRate
				}
				rates[*entry.ProjectID] = projectRate
			}
			rate = projectRate
		}
		amount += entry.Hours * rate
	}
	return math.Round(amount*100) / 100, nil
}

func validAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return validationf("invoice amount must be a finite number")
	}
	if amount < 0 {
		return validationf("invoice amount must not be negative")
	}
	return nil
}
