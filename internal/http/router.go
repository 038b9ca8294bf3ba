package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"timetrack-backend/internal/handlers"
	"timetrack-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	clientHandler *handlers.ClientHandler,
	projectHandler *handlers.ProjectHandler,
	workHourHandler *handlers.WorkHourHandler,
	invoiceHandler *handlers.InvoiceHandler,
	reportHandler *handlers.ReportHandler,
	dashboardHandler *handlers.DashboardHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Clients and their addresses
	clientsAPI := r.PathPrefix("/api/clients").Subrouter()
	clientsAPI.Use(authMiddleware.Authenticate)
	clientsAPI.HandleFunc("", clientHandler.ListClients).Methods("GET")
	clientsAPI.HandleFunc("", clientHandler.CreateClient).Methods("POST")
	clientsAPI.HandleFunc("/{id}", clientHandler.GetClient).Methods("GET")
	clientsAPI.HandleFunc("/{id}", clientHandler.UpdateClient).Methods("PUT")
	clientsAPI.HandleFunc("/{id}", clientHandler.DeleteClient).Methods("DELETE")
	clientsAPI.HandleFunc("/{id}/addresses", clientHandler.AddAddress).Methods("POST")
	clientsAPI.HandleFunc("/{id}/addresses/{address_id}/primary", clientHandler.SetPrimaryAddress).Methods("PUT")
	clientsAPI.HandleFunc("/{id}/addresses/{address_id}", clientHandler.DeleteAddress).Methods("DELETE")

	// Protected API routes - Projects
	projectsAPI := r.PathPrefix("/api/projects").Subrouter()
	projectsAPI.Use(authMiddleware.Authenticate)
	projectsAPI.HandleFunc("", projectHandler.ListProjects).Methods("GET")
	projectsAPI.HandleFunc("", projectHandler.CreateProject).Methods("POST")
	projectsAPI.HandleFunc("/{id}", projectHandler.GetProject).Methods("GET")
	projectsAPI.HandleFunc("/{id}", projectHandler.UpdateProject).Methods("PUT")
	projectsAPI.HandleFunc("/{id}", projectHandler.DeleteProject).Methods("DELETE")

	// Protected API routes - Work hours
	workHoursAPI := r.PathPrefix("/api/work-hours").Subrouter()
	workHoursAPI.Use(authMiddleware.Authenticate)
	workHoursAPI.HandleFunc("", workHourHandler.ListWorkHours).Methods("GET")
	workHoursAPI.HandleFunc("", workHourHandler.CreateWorkHour).Methods("POST")
	workHoursAPI.HandleFunc("/{id}", workHourHandler.GetWorkHour).Methods("GET")
	workHoursAPI.HandleFunc("/{id}", workHourHandler.UpdateWorkHour).Methods("PUT")
	workHoursAPI.HandleFunc("/{id}", workHourHandler.DeleteWorkHour).Methods("DELETE")

	// Protected API routes - Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("", invoiceHandler.CreateInvoice).Methods("POST")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.UpdateInvoice).Methods("PUT")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.DeleteInvoice).Methods("DELETE")
	invoicesAPI.HandleFunc("/{id}/status", invoiceHandler.UpdateInvoiceStatus).Methods("PATCH")
	invoicesAPI.HandleFunc("/{id}/pdf", invoiceHandler.DownloadInvoicePDF).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/pdf", invoiceHandler.PublishInvoicePDF).Methods("POST")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/hours", reportHandler.HoursReport).Methods("GET")
	reportsAPI.HandleFunc("/invoices", reportHandler.InvoiceReport).Methods("GET")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("", dashboardHandler.GetDashboardStats).Methods("GET")

	// Protected API routes - Profile
	meAPI := r.PathPrefix("/api/me").Subrouter()
	meAPI.Use(authMiddleware.Authenticate)
	meAPI.HandleFunc("", authHandler.GetProfile).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
