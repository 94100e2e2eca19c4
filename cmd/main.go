package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	adminBookingsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/admin_bookings"
	cancelBookingHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_booking"
	getResourcesHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_resources"
	getUserBookingsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_user_bookings"
	getUserWaitlistHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_user_waitlist"
	joinWaitlistHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/join_waitlist"
	manageCatalogHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/manage_catalog"
	quotePriceHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/quote_price"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	waitlistRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/waitlist"
	notificationServiceClient "github.com/m04kA/SMC-CourtBookingService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/notifier"
	bookingsService "github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-CourtBookingService/internal/service/catalog"
	waitlistService "github.com/m04kA/SMC-CourtBookingService/internal/service/waitlist"
	cancelBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/mq"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CourtBookingService...")
	location := cfg.Location()
	log.Info("Configuration loaded (venue timezone=%s, notifications=%s)", location, cfg.Notifications.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка БД: транзакция в контексте, метрики запросов и пула
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxAttempts(cfg.Database.TxMaxAttempts))

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	waitlistRepository := waitlistRepo.NewRepository(wrappedDB)

	// Уведомления о продвижении в очереди ожидания
	var promotionNotifier cancelBookingUC.Notifier
	switch cfg.Notifications.Driver {
	case config.NotificationDriverHTTP:
		promotionNotifier = notificationServiceClient.NewClient(
			cfg.Notifications.URL,
			time.Duration(cfg.Notifications.Timeout)*time.Second,
			log,
		)
		log.Info("Notification client initialized (NotificationService=%s timeout=%ds)",
			cfg.Notifications.URL, cfg.Notifications.Timeout)

	case config.NotificationDriverAMQP:
		publisher, err := mq.NewPublisher(cfg.Notifications.AMQPURL, cfg.Notifications.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		defer publisher.Close()
		promotionNotifier = notifier.NewAMQPNotifier(publisher)
		log.Info("AMQP notifier initialized (exchange=%s)", cfg.Notifications.Exchange)

	default:
		promotionNotifier = notifier.NewLogNotifier(log)
		log.Info("Log notifier initialized")
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogRepository,
		log,
	)
	catalogSvc := catalogService.NewService(
		catalogRepository,
		location,
		log,
	)
	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		bookingRepository,
		catalogRepository,
		txMgr,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		txMgr,
		metricsCollector,
		location,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		waitlistRepository,
		promotionNotifier,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		getAvailableSlotsUC.Hours{
			OpeningHour: cfg.Venue.OpeningHour,
			ClosingHour: cfg.Venue.ClosingHour,
		},
		cfg.Venue.AdvanceBookingDays,
		location,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getResources := getResourcesHandler.NewHandler(catalogSvc, log)
	quotePrice := quotePriceHandler.NewHandler(catalogSvc, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(waitlistSvc, log)
	getUserWaitlist := getUserWaitlistHandler.NewHandler(waitlistSvc, log)
	adminBookings := adminBookingsHandler.NewHandler(bookingSvc, log)
	manageCatalog := manageCatalogHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог для формы бронирования
	api.HandleFunc("/resources", getResources.Resources).Methods(http.MethodGet)
	api.HandleFunc("/pricing-rules", getResources.PricingRules).Methods(http.MethodGet)

	// Проверка слота и предварительный расчёт цены
	api.HandleFunc("/courts/{courtId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/courts/{courtId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/quote", quotePrice.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Изменяющие запросы ограничены по частоте на пользователя
	writes := protected.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.TTL)*time.Second)
		writes.Use(limiter.Limit)
		log.Info("Rate limit enabled: rps=%.1f, burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// --- Бронирования ---
	writes.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	writes.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Очередь ожидания ---
	writes.HandleFunc("/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/me/waitlist", getUserWaitlist.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (X-User-Role: admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/bookings", adminBookings.List).Methods(http.MethodGet)
	admin.HandleFunc("/stats", adminBookings.Stats).Methods(http.MethodGet)

	admin.HandleFunc("/courts", manageCatalog.ListCourts).Methods(http.MethodGet)
	admin.HandleFunc("/courts", manageCatalog.CreateCourt).Methods(http.MethodPost)
	admin.HandleFunc("/courts/{id}", manageCatalog.UpdateCourt).Methods(http.MethodPut)
	admin.HandleFunc("/courts/{id}", manageCatalog.DeleteCourt).Methods(http.MethodDelete)

	admin.HandleFunc("/coaches", manageCatalog.ListCoaches).Methods(http.MethodGet)
	admin.HandleFunc("/coaches", manageCatalog.CreateCoach).Methods(http.MethodPost)
	admin.HandleFunc("/coaches/{id}", manageCatalog.UpdateCoach).Methods(http.MethodPut)
	admin.HandleFunc("/coaches/{id}", manageCatalog.DeleteCoach).Methods(http.MethodDelete)

	admin.HandleFunc("/equipment", manageCatalog.ListEquipment).Methods(http.MethodGet)
	admin.HandleFunc("/equipment", manageCatalog.CreateEquipment).Methods(http.MethodPost)
	admin.HandleFunc("/equipment/{id}", manageCatalog.UpdateEquipment).Methods(http.MethodPut)
	admin.HandleFunc("/equipment/{id}", manageCatalog.DeleteEquipment).Methods(http.MethodDelete)

	admin.HandleFunc("/pricing-rules", manageCatalog.ListPricingRules).Methods(http.MethodGet)
	admin.HandleFunc("/pricing-rules", manageCatalog.CreatePricingRule).Methods(http.MethodPost)
	admin.HandleFunc("/pricing-rules/{id}", manageCatalog.UpdatePricingRule).Methods(http.MethodPut)
	admin.HandleFunc("/pricing-rules/{id}", manageCatalog.DeletePricingRule).Methods(http.MethodDelete)

	// CORS для браузерного клиента
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", middleware.HeaderUserID, middleware.HeaderUserRole, middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID},
		AllowCredentials: false,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
