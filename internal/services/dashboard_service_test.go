package services

import (
	"context"
	"testing"
	"time"

	"timetrack-backend/internal/reports"
)

func TestGetDashboardStats(t *testing.T) {
	s := newFakeStore()
	svc := NewDashboardService(fakeWorkHours{s}, fakeInvoices{s}, fakeClients{s})
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	acme := s.addClient(1, "Acme")
	globex := s.addClient(1, "Globex")

	// 12h for Acme this month, 8h for Globex last month.
	s.addWorkHour(1, acme.ID, nil, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), 5)
	s.addWorkHour(1, acme.ID, nil, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 7)
	s.addWorkHour(1, globex.ID, nil, time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC), 8)

	stats, err := svc.GetDashboardStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}

	if stats.CurrentMonthHours != 12 {
		t.Errorf("current month hours = %v, want 12", stats.CurrentMonthHours)
	}
	if stats.PreviousMonthHours != 8 {
		t.Errorf("previous month hours = %v, want 8", stats.PreviousMonthHours)
	}
	if stats.HoursGrowth != 50 {
		t.Errorf("growth = %v, want 50", stats.HoursGrowth)
	}

	for i := 1; i < len(stats.WeeklyHours); i++ {
		if stats.WeeklyHours[i-1].Period >= stats.WeeklyHours[i].Period {
			t.Errorf("weekly breakdown out of order: %q >= %q",
				stats.WeeklyHours[i-1].Period, stats.WeeklyHours[i].Period)
		}
	}

	if len(stats.TopClients) == 0 || stats.TopClients[0].Name != "Acme" {
		t.Errorf("top clients = %+v, want Acme first", stats.TopClients)
	}
}

func TestGetDashboardStatsGrowthFromZero(t *testing.T) {
	s := newFakeStore()
	svc := NewDashboardService(fakeWorkHours{s}, fakeInvoices{s}, fakeClients{s})
	svc.Now = func() time.Time { return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC) }

	acme := s.addClient(1, "Acme")
	s.addWorkHour(1, acme.ID, nil, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), 4)

	stats, err := svc.GetDashboardStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	if stats.HoursGrowth != 100 {
		t.Errorf("growth = %v, want 100", stats.HoursGrowth)
	}
}

func TestGetDashboardStatsEmptyUser(t *testing.T) {
	s := newFakeStore()
	svc := NewDashboardService(fakeWorkHours{s}, fakeInvoices{s}, fakeClients{s})
	svc.Now = func() time.Time { return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC) }

	stats, err := svc.GetDashboardStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	if stats.CurrentMonthHours != 0 || stats.HoursGrowth != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
	if len(stats.RecentActivity) != 0 {
		t.Errorf("recent activity = %d items, want 0", len(stats.RecentActivity))
	}
	if len(stats.TopClients) != 0 {
		t.Errorf("top clients = %d items, want 0", len(stats.TopClients))
	}
}

func TestGetDashboardStatsRecentActivity(t *testing.T) {
	s := newFakeStore()
	svc := NewDashboardService(fakeWorkHours{s}, fakeInvoices{s}, fakeClients{s})
	svc.Now = func() time.Time { return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC) }

	acme := s.addClient(1, "Acme")
	s.addWorkHour(1, acme.ID, nil, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), 5)

	stats, err := svc.GetDashboardStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}

	var kinds []string
	for _, item := range stats.RecentActivity {
		kinds = append(kinds, item.Type)
		if item.Description.Key == "" {
			t.Errorf("activity item %q has empty template key", item.Type)
		}
		if item.Description.Values == nil {
			t.Errorf("activity item %q has nil template values", item.Type)
		}
	}
	hasKind := func(k string) bool {
		for _, got := range kinds {
			if got == k {
				return true
			}
		}
		return false
	}
	if !hasKind(reports.ActivityWorkHour) || !hasKind(reports.ActivityClient) {
		t.Errorf("activity kinds = %v, want work_hour and client entries", kinds)
	}
	for i := 1; i < len(stats.RecentActivity); i++ {
		if stats.RecentActivity[i-1].Date.Before(stats.RecentActivity[i].Date) {
			t.Errorf("recent activity not in descending date order")
		}
	}
}
