package services

import (
	"context"
	"math"

	"timetrack-backend/internal/cache"
	"timetrack-backend/internal/models"
)

// WorkHourService owns the work-hour entry lifecycle. Aggregations read the
// entries it manages but never mutate them.
type WorkHourService struct {
	workHours WorkHourStore
	invoices  InvoiceStore
	clients   ClientStore
}

func NewWorkHourService(workHours WorkHourStore, invoices InvoiceStore, clients ClientStore) *WorkHourService {
	return &WorkHourService{workHours: workHours, invoices: invoices, clients: clients}
}

func validHours(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return validationf("hours must be a positive number")
	}
	return nil
}

func (s *WorkHourService) Create(ctx context.Context, userID int, req *models.CreateWorkHourRequest) (*models.WorkHour, error) {
	if err := validHours(req.Hours); err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		return nil, validationf("date is required")
	}
	client, err := s.clients.Get(ctx, req.ClientID)
	if err != nil {
		return nil, mapNotFound(err, "client", req.ClientID)
	}
	if client.UserID != userID {
		return nil, &NotFoundError{Entity: "client", ID: req.ClientID}
	}

	wh := &models.WorkHour{
		Date:        req.Date,
		Description: req.Description,
		Hours:       req.Hours,
		ClientID:    req.ClientID,
		ProjectID:   req.ProjectID,
		UserID:      userID,
	}
	if err := s.workHours.Create(ctx, wh); err != nil {
		return nil, err
	}
	cache.InvalidateDashboard(ctx, userID)
	return wh, nil
}

func (s *WorkHourService) Get(ctx context.Context, userID, id int) (*models.WorkHour, error) {
	return s.getOwned(ctx, userID, id)
}

func (s *WorkHourService) List(ctx context.Context, f models.WorkHourFilter) ([]models.WorkHour, error) {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, validationf("invalid date range")
	}
	return s.workHours.List(ctx, f)
}

func (s *WorkHourService) Update(ctx context.Context, userID, id int, req *models.UpdateWorkHourRequest) (*models.WorkHour, error) {
	wh, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Hours != nil {
		if err := validHours(*req.Hours); err != nil {
			return nil, err
		}
		wh.Hours = *req.Hours
	}
	if req.Date != nil {
		wh.Date = *req.Date
	}
	if req.Description != nil {
		wh.Description = *req.Description
	}
	if req.ClientID != nil {
		client, err := s.clients.Get(ctx, *req.ClientID)
		if err != nil {
			return nil, mapNotFound(err, "client", *req.ClientID)
		}
		if client.UserID != userID {
			return nil, &NotFoundError{Entity: "client", ID: *req.ClientID}
		}
		wh.ClientID = *req.ClientID
	}
	if req.ProjectID != nil {
		wh.ProjectID = req.ProjectID
	}
	if err := s.workHours.Update(ctx, wh); err != nil {
		return nil, err
	}
	cache.InvalidateDashboard(ctx, userID)
	return wh, nil
}

// Delete removes a work-hour entry. An entry billed by a PENDING or PAID
// invoice cannot be deleted; links to CANCELED invoices are removed together
// with the entry so no link row is ever orphaned.
func (s *WorkHourService) Delete(ctx context.Context, userID, id int) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	linked, err := s.invoices.ActiveLinkedInvoices(ctx, []int{id}, 0)
	if err != nil {
		return err
	}
	if invoiceID, ok := linked[id]; ok {
		return validationf("work hour %d is billed by invoice %d and cannot be deleted", id, invoiceID)
	}
	if err := s.workHours.DeleteWithLinks(ctx, id); err != nil {
		return &TransactionError{Op: "delete work hour", Err: err}
	}
	cache.InvalidateDashboard(ctx, userID)
	return nil
}

func (s *WorkHourService) getOwned(ctx context.Context, userID, id int) (*models.WorkHour, error) {
	wh, err := s.workHours.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "work hour", id)
	}
	if wh.UserID != userID {
		return nil, &NotFoundError{Entity: "work hour", ID: id}
	}
	return wh, nil
}
