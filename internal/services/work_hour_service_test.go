package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"timetrack-backend/internal/models"
)

func newWorkHourFixture() (*fakeStore, *WorkHourService, *InvoiceService) {
	s := newFakeStore()
	whSvc := NewWorkHourService(fakeWorkHours{s}, fakeInvoices{s}, fakeClients{s})
	invSvc := NewInvoiceService(fakeInvoices{s}, fakeWorkHours{s}, fakeClients{s}, fakeProjects{s}, 50.0)
	return s, whSvc, invSvc
}

func TestCreateWorkHour(t *testing.T) {
	s, svc, _ := newWorkHourFixture()
	client := s.addClient(1, "Acme")
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	wh, err := svc.Create(context.Background(), 1, &models.CreateWorkHourRequest{
		Date:     day,
		Hours:    7.5,
		ClientID: client.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if wh.ID == 0 || wh.Hours != 7.5 || wh.UserID != 1 {
		t.Fatalf("unexpected entry %+v", wh)
	}
}

func TestCreateWorkHourValidation(t *testing.T) {
	s, svc, _ := newWorkHourFixture()
	client := s.addClient(1, "Acme")
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		req  *models.CreateWorkHourRequest
	}{
		{"zero hours", &models.CreateWorkHourRequest{Date: day, Hours: 0, ClientID: client.ID}},
		{"negative hours", &models.CreateWorkHourRequest{Date: day, Hours: -1, ClientID: client.ID}},
		{"missing date", &models.CreateWorkHourRequest{Hours: 2, ClientID: client.ID}},
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), 1, tc.req)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: err = %v, want ValidationError", tc.name, err)
		}
	}

	// Someone else's client is indistinguishable from a missing one.
	var nfe *NotFoundError
	_, err := svc.Create(context.Background(), 2, &models.CreateWorkHourRequest{Date: day, Hours: 2, ClientID: client.ID})
	if !errors.As(err, &nfe) {
		t.Fatalf("foreign client: err = %v, want NotFoundError", err)
	}
}

func TestDeleteWorkHourBilledGuard(t *testing.T) {
	s, svc, invSvc := newWorkHourFixture()
	client := s.addClient(1, "Acme")
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	wh := s.addWorkHour(1, client.ID, nil, day, 3)

	inv, err := invSvc.CreateInvoice(context.Background(), 1, &models.CreateInvoiceRequest{
		ClientID:    client.ID,
		WorkHourIDs: []int{wh.ID},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	var ve *ValidationError
	if err := svc.Delete(context.Background(), 1, wh.ID); !errors.As(err, &ve) {
		t.Fatalf("delete billed entry: err = %v, want ValidationError", err)
	}

	// Canceling the invoice releases the entry.
	if _, err := invSvc.UpdateStatus(context.Background(), 1, inv.ID, models.InvoiceStatusCanceled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := svc.Delete(context.Background(), 1, wh.ID); err != nil {
		t.Fatalf("delete after cancel: %v", err)
	}
	if _, err := svc.Get(context.Background(), 1, wh.ID); err == nil {
		t.Fatal("entry still present after delete")
	}
}

func TestUpdateWorkHourPartial(t *testing.T) {
	s, svc, _ := newWorkHourFixture()
	client := s.addClient(1, "Acme")
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	wh := s.addWorkHour(1, client.ID, nil, day, 3)

	hours := 6.0
	updated, err := svc.Update(context.Background(), 1, wh.ID, &models.UpdateWorkHourRequest{Hours: &hours})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Hours != 6 {
		t.Fatalf("hours = %v, want 6", updated.Hours)
	}
	if !updated.Date.Equal(day) {
		t.Fatalf("date changed to %v", updated.Date)
	}

	bad := -2.0
	var ve *ValidationError
	if _, err := svc.Update(context.Background(), 1, wh.ID, &models.UpdateWorkHourRequest{Hours: &bad}); !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}
