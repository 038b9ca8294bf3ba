package reports

import (
	"sort"
	"strconv"
	"time"

	"timetrack-backend/internal/models"
)

// Activity item types
const (
	ActivityWorkHour = "work_hour"
	ActivityInvoice  = "invoice"
	ActivityClient   = "client"
)

// ActivityDescription is a localizable template reference. The aggregation
// core never renders strings; presentation resolves Key against its message
// catalog and interpolates Values.
type ActivityDescription struct {
	Key    string            `json:"key"`
	Values map[string]string `json:"values"`
}

// ActivityItem is one event of the recent-activity feed.
type ActivityItem struct {
	Type        string              `json:"type"`
	Description ActivityDescription `json:"description"`
	Date        time.Time           `json:"date"`
	Client      string              `json:"client"`
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func formatAmount(a float64) string {
	return strconv.FormatFloat(round2(a), 'f', 2, 64)
}

// MergeActivity flattens three independently-sourced, recency-capped event
// lists into one feed sorted by descending creation time and truncated to
// limit items. clientNames maps client IDs to display names for entries and
// invoices; an unknown ID yields an empty client label rather than an error.
func MergeActivity(
	workHours []models.WorkHour,
	invoices []models.Invoice,
	clients []models.Client,
	clientNames map[int]string,
	limit int,
) []ActivityItem {
	items := make([]ActivityItem, 0, len(workHours)+len(invoices)+len(clients))

	for _, wh := range workHours {
		name := clientNames[wh.ClientID]
		items = append(items, ActivityItem{
			Type: ActivityWorkHour,
			Description: ActivityDescription{
				Key: "activity.workHourLogged",
				Values: map[string]string{
					"hours":  formatHours(wh.Hours),
					"client": name,
				},
			},
			Date:   wh.CreatedAt,
			Client: name,
		})
	}
	for _, inv := range invoices {
		name := clientNames[inv.ClientID]
		items = append(items, ActivityItem{
			Type: ActivityInvoice,
			Description: ActivityDescription{
				Key: "activity.invoiceCreated",
				Values: map[string]string{
					"amount": formatAmount(inv.Amount),
					"client": name,
				},
			},
			Date:   inv.CreatedAt,
			Client: name,
		})
	}
	for _, c := range clients {
		name := c.DisplayName()
		items = append(items, ActivityItem{
			Type: ActivityClient,
			Description: ActivityDescription{
				Key:    "activity.clientAdded",
				Values: map[string]string{"client": name},
			},
			Date:   c.CreatedAt,
			Client: name,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// ClientRanking is one row of the top-clients table.
type ClientRanking struct {
	ClientID   int     `json:"client_id"`
	Name       string  `json:"name"`
	TotalHours float64 `json:"total_hours"`
	Invoices   int     `json:"invoices"`
}

// TopClients ranks every client by all-time hours, descending, and returns
// the first n. Clients without any hours still rank (with zero), so a fresh
// account sees its client list rather than an empty table.
func TopClients(clients []models.Client, workHours []models.WorkHour, invoices []models.Invoice, n int) []ClientRanking {
	hoursBy := make(map[int]float64)
	for _, wh := range workHours {
		hoursBy[wh.ClientID] += wh.Hours
	}
	invoicesBy := make(map[int]int)
	for _, inv := range invoices {
		invoicesBy[inv.ClientID]++
	}

	ranking := make([]ClientRanking, 0, len(clients))
	for _, c := range clients {
		ranking = append(ranking, ClientRanking{
			ClientID:   c.ID,
			Name:       c.DisplayName(),
			TotalHours: round2(hoursBy[c.ID]),
			Invoices:   invoicesBy[c.ID],
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].TotalHours > ranking[j].TotalHours })
	if len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}
