package reports

import (
	"testing"
	"time"

	"timetrack-backend/internal/models"
)

func TestMergeActivityOrdersByRecency(t *testing.T) {
	t0 := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	workHours := []models.WorkHour{{ClientID: 1, Hours: 4, CreatedAt: t0}}
	invoices := []models.Invoice{{ClientID: 1, Amount: 400, CreatedAt: t0.Add(time.Hour)}}
	clients := []models.Client{{ID: 2, Company: "Acme", CreatedAt: t0.Add(-time.Hour)}}
	names := map[int]string{1: "Globex"}

	feed := MergeActivity(workHours, invoices, clients, names, 10)
	if len(feed) != 3 {
		t.Fatalf("feed length = %d, want 3", len(feed))
	}
	wantTypes := []string{ActivityInvoice, ActivityWorkHour, ActivityClient}
	for i, want := range wantTypes {
		if feed[i].Type != want {
			t.Fatalf("feed[%d].Type = %q, want %q (feed %+v)", i, feed[i].Type, want, feed)
		}
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].Date.After(feed[i-1].Date) {
			t.Fatalf("feed not sorted by descending date: %+v", feed)
		}
	}
}

func TestMergeActivityTemplateDescriptors(t *testing.T) {
	t0 := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	feed := MergeActivity(
		[]models.WorkHour{{ClientID: 1, Hours: 2.5, CreatedAt: t0}},
		nil, nil,
		map[int]string{1: "Globex"},
		10,
	)
	if len(feed) != 1 {
		t.Fatalf("feed length = %d, want 1", len(feed))
	}
	d := feed[0].Description
	if d.Key != "activity.workHourLogged" {
		t.Errorf("Key = %q", d.Key)
	}
	if d.Values["hours"] != "2.5" || d.Values["client"] != "Globex" {
		t.Errorf("Values = %v", d.Values)
	}
	if feed[0].Client != "Globex" {
		t.Errorf("Client = %q", feed[0].Client)
	}
}

func TestMergeActivityTruncates(t *testing.T) {
	t0 := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	var workHours []models.WorkHour
	for i := 0; i < 8; i++ {
		workHours = append(workHours, models.WorkHour{ClientID: 1, Hours: 1, CreatedAt: t0.Add(time.Duration(i) * time.Hour)})
	}
	var invoices []models.Invoice
	for i := 0; i < 8; i++ {
		invoices = append(invoices, models.Invoice{ClientID: 1, Amount: 100, CreatedAt: t0.Add(time.Duration(i) * time.Minute)})
	}
	feed := MergeActivity(workHours, invoices, nil, map[int]string{1: "A"}, 10)
	if len(feed) != 10 {
		t.Fatalf("feed length = %d, want 10", len(feed))
	}
}

func TestTopClients(t *testing.T) {
	clients := []models.Client{
		{ID: 1, Name: "Alice", Company: "Acme"},
		{ID: 2, Company: "Globex"},
		{ID: 3, Company: "Initech"},
	}
	workHours := []models.WorkHour{
		{ClientID: 2, Hours: 10},
		{ClientID: 1, Hours: 4},
		{ClientID: 2, Hours: 5},
	}
	invoices := []models.Invoice{
		{ClientID: 1}, {ClientID: 1}, {ClientID: 2},
	}

	top := TopClients(clients, workHours, invoices, 2)
	if len(top) != 2 {
		t.Fatalf("top length = %d, want 2", len(top))
	}
	if top[0].ClientID != 2 || top[0].TotalHours != 15 || top[0].Invoices != 1 {
		t.Fatalf("top[0] = %+v", top[0])
	}
	if top[0].Name != "Globex" {
		t.Fatalf("top[0].Name = %q, want company fallback", top[0].Name)
	}
	if top[1].ClientID != 1 || top[1].TotalHours != 4 || top[1].Invoices != 2 || top[1].Name != "Alice" {
		t.Fatalf("top[1] = %+v", top[1])
	}
}
