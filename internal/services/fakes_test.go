package services

import (
	"context"
	"sort"
	"time"

	"timetrack-backend/internal/models"
	"timetrack-backend/internal/repositories"
)

// In-memory stand-ins for the pgx repositories. They implement the store
// interfaces closely enough for service-level tests: filters, recency caps,
// atomic-looking link replacement.

type fakeStore struct {
	nextID    int
	users     map[int]*models.User
	clients   map[int]*models.Client
	projects  map[int]*models.Project
	workHours map[int]*models.WorkHour
	invoices  map[int]*models.Invoice
	links     map[int][]models.InvoiceWorkHour // invoiceID -> links
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[int]*models.User),
		clients:   make(map[int]*models.Client),
		projects:  make(map[int]*models.Project),
		workHours: make(map[int]*models.WorkHour),
		invoices:  make(map[int]*models.Invoice),
		links:     make(map[int][]models.InvoiceWorkHour),
	}
}

func (f *fakeStore) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) addClient(userID int, company string) *models.Client {
	c := &models.Client{ID: f.id(), Company: company, Email: company + "@example.com", UserID: userID, CreatedAt: time.Now()}
	f.clients[c.ID] = c
	return c
}

func (f *fakeStore) addProject(userID, clientID int, rate *float64) *models.Project {
	p := &models.Project{ID: f.id(), Name: "project", ClientID: clientID, UserID: userID, HourlyRate: rate}
	f.projects[p.ID] = p
	return p
}

func (f *fakeStore) addWorkHour(userID, clientID int, projectID *int, date time.Time, hours float64) *models.WorkHour {
	wh := &models.WorkHour{ID: f.id(), Date: date, Hours: hours, ClientID: clientID, ProjectID: projectID, UserID: userID, CreatedAt: date}
	f.workHours[wh.ID] = wh
	return wh
}

// --- ClientStore ---

type fakeClients struct{ s *fakeStore }

func (r fakeClients) Create(_ context.Context, c *models.Client) error {
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.s.clients[c.ID] = c
	return nil
}

func (r fakeClients) Get(_ context.Context, id int) (*models.Client, error) {
	c, ok := r.s.clients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r fakeClients) List(_ context.Context, userID int) ([]models.Client, error) {
	out := make([]models.Client, 0)
	for _, c := range r.s.clients {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r fakeClients) ListRecent(ctx context.Context, userID, limit int) ([]models.Client, error) {
	out, _ := r.List(ctx, userID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeClients) Update(_ context.Context, c *models.Client) error {
	if _, ok := r.s.clients[c.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *c
	r.s.clients[c.ID] = &copied
	return nil
}

func (r fakeClients) Delete(_ context.Context, id int) error {
	if _, ok := r.s.clients[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.clients, id)
	return nil
}

// --- ProjectStore ---

type fakeProjects struct{ s *fakeStore }

func (r fakeProjects) Create(_ context.Context, p *models.Project) error {
	p.ID = r.s.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	copied := *p
	r.s.projects[p.ID] = &copied
	return nil
}

func (r fakeProjects) Get(_ context.Context, id int) (*models.Project, error) {
	p, ok := r.s.projects[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r fakeProjects) List(_ context.Context, userID int) ([]models.Project, error) {
	out := make([]models.Project, 0)
	for _, p := range r.s.projects {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeProjects) Update(_ context.Context, p *models.Project) error {
	if _, ok := r.s.projects[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *p
	r.s.projects[p.ID] = &copied
	return nil
}

func (r fakeProjects) Delete(_ context.Context, id int) error {
	if _, ok := r.s.projects[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.projects, id)
	return nil
}

// --- WorkHourStore ---

type fakeWorkHours struct{ s *fakeStore }

func (r fakeWorkHours) Create(_ context.Context, wh *models.WorkHour) error {
	wh.ID = r.s.id()
	wh.CreatedAt = time.Now()
	wh.UpdatedAt = wh.CreatedAt
	copied := *wh
	r.s.workHours[wh.ID] = &copied
	return nil
}

func (r fakeWorkHours) Get(_ context.Context, id int) (*models.WorkHour, error) {
	wh, ok := r.s.workHours[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *wh
	return &copied, nil
}

func (r fakeWorkHours) ListByIDs(_ context.Context, ids []int) ([]models.WorkHour, error) {
	out := make([]models.WorkHour, 0)
	for _, id := range ids {
		if wh, ok := r.s.workHours[id]; ok {
			out = append(out, *wh)
		}
	}
	return out, nil
}

func (r fakeWorkHours) List(_ context.Context, f models.WorkHourFilter) ([]models.WorkHour, error) {
	out := make([]models.WorkHour, 0)
	for _, wh := range r.s.workHours {
		if wh.UserID != f.UserID {
			continue
		}
		if f.ClientID != nil && wh.ClientID != *f.ClientID {
			continue
		}
		if f.From != nil && wh.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && wh.Date.After(*f.To) {
			continue
		}
		out = append(out, *wh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r fakeWorkHours) ListRecent(_ context.Context, userID, limit int) ([]models.WorkHour, error) {
	out := make([]models.WorkHour, 0)
	for _, wh := range r.s.workHours {
		if wh.UserID == userID {
			out = append(out, *wh)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeWorkHours) Update(_ context.Context, wh *models.WorkHour) error {
	if _, ok := r.s.workHours[wh.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *wh
	r.s.workHours[wh.ID] = &copied
	return nil
}

func (r fakeWorkHours) DeleteWithLinks(_ context.Context, id int) error {
	if _, ok := r.s.workHours[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.workHours, id)
	for invoiceID, links := range r.s.links {
		kept := links[:0]
		for _, l := range links {
			if l.WorkHourID != id {
				kept = append(kept, l)
			}
		}
		r.s.links[invoiceID] = kept
	}
	return nil
}

// --- InvoiceStore ---

type fakeInvoices struct{ s *fakeStore }

func (r fakeInvoices) CreateWithLinks(_ context.Context, inv *models.Invoice, workHourIDs []int) error {
	inv.ID = r.s.id()
	if inv.Number == "" {
		inv.Number = "INV-TEST"
	}
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	copied := *inv
	r.s.invoices[inv.ID] = &copied
	for _, workHourID := range workHourIDs {
		r.s.links[inv.ID] = append(r.s.links[inv.ID], models.InvoiceWorkHour{
			ID:         r.s.id(),
			InvoiceID:  inv.ID,
			WorkHourID: workHourID,
			CreatedAt:  inv.CreatedAt,
		})
	}
	return nil
}

func (r fakeInvoices) ReplaceLinks(_ context.Context, invoiceID int, workHourIDs []int, amount float64) error {
	inv, ok := r.s.invoices[invoiceID]
	if !ok {
		return repositories.ErrNotFound
	}
	r.s.links[invoiceID] = nil
	for _, workHourID := range workHourIDs {
		r.s.links[invoiceID] = append(r.s.links[invoiceID], models.InvoiceWorkHour{
			ID:         r.s.id(),
			InvoiceID:  invoiceID,
			WorkHourID: workHourID,
			CreatedAt:  time.Now(),
		})
	}
	inv.Amount = amount
	return nil
}

func (r fakeInvoices) withLinks(inv models.Invoice) models.Invoice {
	links := make([]models.InvoiceWorkHour, 0, len(r.s.links[inv.ID]))
	for _, l := range r.s.links[inv.ID] {
		if wh, ok := r.s.workHours[l.WorkHourID]; ok {
			copied := *wh
			l.WorkHour = &copied
		}
		links = append(links, l)
	}
	inv.WorkHours = links
	return inv
}

func (r fakeInvoices) Get(_ context.Context, id int) (*models.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	joined := r.withLinks(*inv)
	return &joined, nil
}

func (r fakeInvoices) List(_ context.Context, f models.InvoiceFilter) ([]models.Invoice, error) {
	out := make([]models.Invoice, 0)
	for _, inv := range r.s.invoices {
		if inv.UserID != f.UserID {
			continue
		}
		if f.ClientID != nil && inv.ClientID != *f.ClientID {
			continue
		}
		if f.Status != nil && inv.Status != *f.Status {
			continue
		}
		if f.From != nil && inv.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && inv.CreatedAt.After(*f.To) {
			continue
		}
		out = append(out, r.withLinks(*inv))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r fakeInvoices) ListRecent(ctx context.Context, userID, limit int) ([]models.Invoice, error) {
	out, _ := r.List(ctx, models.InvoiceFilter{UserID: userID})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeInvoices) ActiveLinkedInvoices(_ context.Context, workHourIDs []int, excludeInvoiceID int) (map[int]int, error) {
	wanted := make(map[int]struct{}, len(workHourIDs))
	for _, id := range workHourIDs {
		wanted[id] = struct{}{}
	}
	linked := make(map[int]int)
	for invoiceID, links := range r.s.links {
		if invoiceID == excludeInvoiceID {
			continue
		}
		inv := r.s.invoices[invoiceID]
		if inv == nil || inv.Status == models.InvoiceStatusCanceled {
			continue
		}
		for _, l := range links {
			if _, ok := wanted[l.WorkHourID]; ok {
				linked[l.WorkHourID] = invoiceID
			}
		}
	}
	return linked, nil
}

func (r fakeInvoices) Update(_ context.Context, inv *models.Invoice) error {
	stored, ok := r.s.invoices[inv.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Number = inv.Number
	stored.Amount = inv.Amount
	stored.Status = inv.Status
	stored.Description = inv.Description
	stored.DueDate = inv.DueDate
	return nil
}

func (r fakeInvoices) UpdateStatus(_ context.Context, id int, status string) error {
	inv, ok := r.s.invoices[id]
	if !ok {
		return repositories.ErrNotFound
	}
	inv.Status = status
	return nil
}

func (r fakeInvoices) SetFileURL(_ context.Context, id int, fileURL string) error {
	inv, ok := r.s.invoices[id]
	if !ok {
		return repositories.ErrNotFound
	}
	inv.FileURL = fileURL
	return nil
}

func (r fakeInvoices) DeleteWithLinks(_ context.Context, id int) error {
	if _, ok := r.s.invoices[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.invoices, id)
	delete(r.s.links, id)
	return nil
}
