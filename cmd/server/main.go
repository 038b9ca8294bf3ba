package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"timetrack-backend/internal/auth"
	"timetrack-backend/internal/cache"
	"timetrack-backend/internal/config"
	"timetrack-backend/internal/database"
	"timetrack-backend/internal/db"
	"timetrack-backend/internal/handlers"
	"timetrack-backend/internal/health"
	h "timetrack-backend/internal/http"
	"timetrack-backend/internal/middleware"
	"timetrack-backend/internal/repositories"
	"timetrack-backend/internal/services"
	"timetrack-backend/internal/storage"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional: dashboards are recomputed on every call without it
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dashboard memoization disabled)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancel()

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	clientRepo := repositories.NewClientRepository(pool)
	addressRepo := repositories.NewAddressRepository(pool)
	projectRepo := repositories.NewProjectRepository(pool)
	workHourRepo := repositories.NewWorkHourRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)

	// Object storage is optional: publishing invoice PDFs requires it,
	// inline rendering works without
	var objectStore services.ObjectStore
	if cfg.Storage.Enabled {
		store, err := storage.New(context.Background(), cfg)
		if err != nil {
			log.Printf("[Storage] Object storage unavailable: %v (PDF publishing disabled)", err)
		} else {
			objectStore = store
			log.Println("[Storage] Object storage configured")
		}
	}

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	clientService := services.NewClientService(clientRepo, addressRepo)
	projectService := services.NewProjectService(projectRepo, clientRepo)
	workHourService := services.NewWorkHourService(workHourRepo, invoiceRepo, clientRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, workHourRepo, clientRepo, projectRepo, cfg.Billing.DefaultHourlyRate)
	documentService := services.NewDocumentService(invoiceService, clientRepo, invoiceRepo, objectStore)
	reportService := services.NewReportService(workHourRepo, invoiceRepo)
	dashboardService := services.NewDashboardService(workHourRepo, invoiceRepo, clientRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	clientHandler := handlers.NewClientHandler(clientService)
	projectHandler := handlers.NewProjectHandler(projectService)
	workHourHandler := handlers.NewWorkHourHandler(workHourService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, documentService)
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		clientHandler,
		projectHandler,
		workHourHandler,
		invoiceHandler,
		reportHandler,
		dashboardHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.RequestLogging(
				corsMiddleware(router))))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server running on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-shutdownCtx.Done()
	log.Println("Shutting down...")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
