package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"timetrack-backend/internal/cache"
	"timetrack-backend/internal/models"
	"timetrack-backend/internal/reports"
	"timetrack-backend/internal/timeutil"
)

const (
	recentActivityLimit = 10
	topClientsLimit     = 5
	weeklyHoursWeeks    = 4
)

// DashboardStats is the composed dashboard exposed to callers.
type DashboardStats struct {
	CurrentMonthHours  float64                 `json:"current_month_hours"`
	PreviousMonthHours float64                 `json:"previous_month_hours"`
	HoursGrowth        float64                 `json:"hours_growth"`
	WeeklyHours        []reports.PeriodHours   `json:"weekly_hours"`
	RecentActivity     []reports.ActivityItem  `json:"recent_activity"`
	TopClients         []reports.ClientRanking `json:"top_clients"`
}

// DashboardService composes the dashboard from independent read sub-queries.
// None of them depends on another's result, so they run concurrently and the
// composition step waits for all of them.
type DashboardService struct {
	workHours WorkHourStore
	invoices  InvoiceStore
	clients   ClientStore

	// Now is the clock used to derive the report windows. Tests pin it.
	Now func() time.Time
}

func NewDashboardService(workHours WorkHourStore, invoices InvoiceStore, clients ClientStore) *DashboardService {
	return &DashboardService{
		workHours: workHours,
		invoices:  invoices,
		clients:   clients,
		Now:       time.Now,
	}
}

func (s *DashboardService) GetDashboardStats(ctx context.Context, userID int) (*DashboardStats, error) {
	if data, ok := cache.GetCachedDashboard(ctx, userID); ok {
		stats := &DashboardStats{}
		if err := json.Unmarshal(data, stats); err == nil {
			return stats, nil
		}
		// Corrupt cache entry: fall through and recompute.
	}

	now := s.Now()
	curWindow := timeutil.MonthWindow(now)
	prevWindow := timeutil.PreviousMonthWindow(now)
	weeksWindow := timeutil.LastNWeeksWindow(now, weeklyHoursWeeks)

	var (
		currentMonth   []models.WorkHour
		previousMonth  []models.WorkHour
		lastWeeks      []models.WorkHour
		allWorkHours   []models.WorkHour
		allInvoices    []models.Invoice
		recentHours    []models.WorkHour
		recentInvoices []models.Invoice
		recentClients  []models.Client
		allClients     []models.Client
	)

	fetch := []func() error{
		func() (err error) {
			currentMonth, err = s.workHours.List(ctx, windowFilter(userID, curWindow))
			return
		},
		func() (err error) {
			previousMonth, err = s.workHours.List(ctx, windowFilter(userID, prevWindow))
			return
		},
		func() (err error) {
			lastWeeks, err = s.workHours.List(ctx, windowFilter(userID, weeksWindow))
			return
		},
		func() (err error) {
			allWorkHours, err = s.workHours.List(ctx, models.WorkHourFilter{UserID: userID})
			return
		},
		func() (err error) {
			allInvoices, err = s.invoices.List(ctx, models.InvoiceFilter{UserID: userID})
			return
		},
		func() (err error) {
			recentHours, err = s.workHours.ListRecent(ctx, userID, recentActivityLimit)
			return
		},
		func() (err error) {
			recentInvoices, err = s.invoices.ListRecent(ctx, userID, recentActivityLimit)
			return
		},
		func() (err error) {
			recentClients, err = s.clients.ListRecent(ctx, userID, recentActivityLimit)
			return
		},
		func() (err error) {
			allClients, err = s.clients.List(ctx, userID)
			return
		},
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(fetch))
	for _, fn := range fetch {
		wg.Add(1)
		go func(fn func() error) {
			defer wg.Done()
			if err := fn(); err != nil {
				errs <- err
			}
		}(fn)
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return nil, err
	}

	names := make(map[int]string, len(allClients))
	for i := range allClients {
		names[allClients[i].ID] = allClients[i].DisplayName()
	}

	currentHours := reports.AggregateHours(currentMonth).TotalHours
	previousHours := reports.AggregateHours(previousMonth).TotalHours

	stats := &DashboardStats{
		CurrentMonthHours:  currentHours,
		PreviousMonthHours: previousHours,
		HoursGrowth:        reports.Growth(currentHours, previousHours),
		WeeklyHours:        reports.AggregateHours(lastWeeks).WeeklyBreakdown,
		RecentActivity:     reports.MergeActivity(recentHours, recentInvoices, recentClients, names, recentActivityLimit),
		TopClients:         reports.TopClients(allClients, allWorkHours, allInvoices, topClientsLimit),
	}

	if data, err := json.Marshal(stats); err == nil {
		cache.CacheDashboard(ctx, userID, data)
	}
	return stats, nil
}

func windowFilter(userID int, w timeutil.Window) models.WorkHourFilter {
	from, to := w.From, w.To
	return models.WorkHourFilter{UserID: userID, From: &from, To: &to}
}
