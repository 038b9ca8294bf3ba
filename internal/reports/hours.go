// Package reports holds the pure aggregation core: every function here is a
// total function over already-loaded records, performs no I/O and returns
// zeroed structures for empty input.
package reports

import (
	"math"
	"sort"

	"timetrack-backend/internal/models"
	"timetrack-backend/internal/timeutil"
)

// PeriodHours is one time bucket of a weekly or monthly breakdown.
type PeriodHours struct {
	Period string  `json:"period"`
	Hours  float64 `json:"hours"`
}

// ClientHours is one client's share of a set of work-hour entries.
type ClientHours struct {
	ClientID   int     `json:"client_id"`
	Hours      float64 `json:"hours"`
	Percentage float64 `json:"percentage"`
}

// HoursSummary aggregates a filtered set of work-hour entries.
type HoursSummary struct {
	TotalHours         float64       `json:"total_hours"`
	TotalDays          int           `json:"total_days"`
	AverageHoursPerDay float64       `json:"average_hours_per_day"`
	ActiveClients      int           `json:"active_clients"`
	ClientBreakdown    []ClientHours `json:"client_breakdown"`
	WeeklyBreakdown    []PeriodHours `json:"weekly_breakdown"`
	MonthlyBreakdown   []PeriodHours `json:"monthly_breakdown"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AggregateHours reduces entries to totals, distinct-day counts, a per-client
// breakdown with percentages and week/month buckets. Entry order is
// irrelevant; the client breakdown keeps first-occurrence order and the
// period breakdowns are sorted by key, which for "YYYY-Www" and "YYYY-MM"
// keys is chronological order. Sums run at full precision and are rounded to
// two decimals only on the returned structure.
func AggregateHours(entries []models.WorkHour) HoursSummary {
	var total float64
	days := make(map[string]struct{})
	byClient := make(map[int]float64)
	clientOrder := make([]int, 0)
	byWeek := make(map[string]float64)
	byMonth := make(map[string]float64)

	for _, e := range entries {
		total += e.Hours
		days[timeutil.DayKey(e.Date)] = struct{}{}
		if _, seen := byClient[e.ClientID]; !seen {
			clientOrder = append(clientOrder, e.ClientID)
		}
		byClient[e.ClientID] += e.Hours
		byWeek[timeutil.WeekKey(e.Date)] += e.Hours
		byMonth[timeutil.MonthKey(e.Date)] += e.Hours
	}

	summary := HoursSummary{
		TotalHours:       round2(total),
		TotalDays:        len(days),
		ActiveClients:    len(byClient),
		ClientBreakdown:  make([]ClientHours, 0, len(clientOrder)),
		WeeklyBreakdown:  sortedPeriods(byWeek),
		MonthlyBreakdown: sortedPeriods(byMonth),
	}
	if summary.TotalDays > 0 {
		summary.AverageHoursPerDay = round2(total / float64(summary.TotalDays))
	}
	for _, clientID := range clientOrder {
		hours := byClient[clientID]
		var pct float64
		if total > 0 {
			pct = round2(hours / total * 100)
		}
		summary.ClientBreakdown = append(summary.ClientBreakdown, ClientHours{
			ClientID:   clientID,
			Hours:      round2(hours),
			Percentage: pct,
		})
	}
	return summary
}

func sortedPeriods(buckets map[string]float64) []PeriodHours {
	out := make([]PeriodHours, 0, len(buckets))
	for period, hours := range buckets {
		out = append(out, PeriodHours{Period: period, Hours: round2(hours)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// Growth returns the relative change between a current and a previous
// period's total, in percent. A zero previous period has no baseline: the
// result is 100 when there are current hours and 0 when there are none,
// never a misleading "0% growth".
func Growth(current, previous float64) float64 {
	if previous > 0 {
		return round2((current - previous) / previous * 100)
	}
	if current > 0 {
		return 100
	}
	return 0
}
