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

	approveReservationHandler "github.com/m04kA/SMC-StudioReservations/internal/api/handlers/approve_reservation"
	cancelReservationHandler "github.com/m04kA/SMC-StudioReservations/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/m04kA/SMC-StudioReservations/internal/api/handlers/check_availability"
	createReservationHandler "github.com/m04kA/SMC-StudioReservations/internal/api/handlers/create_reservation"
	getFreeSlotsHandler "github.com/m04kA/SMC-StudioReservations/internal/api/handlers/get_free_slots"
	getOccupancyStatsHandler "github.com/m04kA/SMC-StudioReservations/internal/api/handlers/get_occupancy_stats"
	getPendingReservationsHandler "github.com/m04kA/SMC-StudioReservations/internal/api/handlers/get_pending_reservations"
	getPriceQuoteHandler "github.com/m04kA/SMC-StudioReservations/internal/api/handlers/get_price_quote"
	getReservationHandler "github.com/m04kA/SMC-StudioReservations/internal/api/handlers/get_reservation"
	getRoomReservationsHandler "github.com/m04kA/SMC-StudioReservations/internal/api/handlers/get_room_reservations"
	rejectReservationHandler "github.com/m04kA/SMC-StudioReservations/internal/api/handlers/reject_reservation"
	runAutoConfirmHandler "github.com/m04kA/SMC-StudioReservations/internal/api/handlers/run_auto_confirm"
	updateSessionStatusHandler "github.com/m04kA/SMC-StudioReservations/internal/api/handlers/update_session_status"
	"github.com/m04kA/SMC-StudioReservations/internal/api/middleware"
	"github.com/m04kA/SMC-StudioReservations/internal/config"
	catalogRepo "github.com/m04kA/SMC-StudioReservations/internal/infra/storage/catalog"
	reservationRepo "github.com/m04kA/SMC-StudioReservations/internal/infra/storage/reservation"
	notifyServiceClient "github.com/m04kA/SMC-StudioReservations/internal/integrations/notifyservice"
	calendarService "github.com/m04kA/SMC-StudioReservations/internal/service/calendar"
	conflictService "github.com/m04kA/SMC-StudioReservations/internal/service/conflict"
	pricingService "github.com/m04kA/SMC-StudioReservations/internal/service/pricing"
	reservationsService "github.com/m04kA/SMC-StudioReservations/internal/service/reservations"
	statsService "github.com/m04kA/SMC-StudioReservations/internal/service/stats"
	autoConfirmUC "github.com/m04kA/SMC-StudioReservations/internal/usecase/auto_confirm"
	createReservationUC "github.com/m04kA/SMC-StudioReservations/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-StudioReservations/internal/worker"
	"github.com/m04kA/SMC-StudioReservations/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioReservations/pkg/logger"
	"github.com/m04kA/SMC-StudioReservations/pkg/metrics"
	"github.com/m04kA/SMC-StudioReservations/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-StudioReservations...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Booking.Timezone, err)
	}

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

	// Обёртка считает длительность запросов; без метрик только прокидывает вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)

	// Инициализируем клиент сервиса уведомлений
	notifier := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		cfg.NotifyService.Enabled,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("NotifyService client initialized (enabled=%t, url=%s)", cfg.NotifyService.Enabled, cfg.NotifyService.URL)

	// Инициализируем сервисы
	calendarSvc := calendarService.NewService(catalogRepository, reservationRepository, location, log)
	pricingSvc := pricingService.NewService(catalogRepository, log)
	conflictChecker := conflictService.NewChecker(reservationRepository)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		catalogRepository,
		notifier,
		metricsCollector,
		log,
	)
	statsSvc := statsService.NewService(catalogRepository, reservationRepository, calendarSvc, txMgr, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		catalogRepository,
		calendarSvc,
		txMgr,
		notifier,
		metricsCollector,
		log,
	)
	autoConfirmUseCase := autoConfirmUC.NewUseCase(
		reservationRepository,
		reservationsSvc,
		metricsCollector,
		autoConfirmUC.Options{
			Threshold: cfg.Booking.AutoConfirmAfter(),
			Workers:   cfg.Scheduler.Workers,
		},
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, calendarSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getRoomReservations := getRoomReservationsHandler.NewHandler(reservationsSvc, log)
	getPendingReservations := getPendingReservationsHandler.NewHandler(reservationsSvc, log)
	approveReservation := approveReservationHandler.NewHandler(reservationsSvc, log)
	rejectReservation := rejectReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	updateSessionStatus := updateSessionStatusHandler.NewHandler(reservationsSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(calendarSvc, conflictChecker, log)
	getFreeSlots := getFreeSlotsHandler.NewHandler(calendarSvc, log)
	getPriceQuote := getPriceQuoteHandler.NewHandler(pricingSvc, log)
	getOccupancyStats := getOccupancyStatsHandler.NewHandler(statsSvc, location, log)
	runAutoConfirm := runAutoConfirmHandler.NewHandler(autoConfirmUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные окна комнаты на дату
	api.HandleFunc("/rooms/{roomId}/free-slots", getFreeSlots.Handle).Methods(http.MethodGet)

	// Проверка доступности окна
	api.HandleFunc("/rooms/{roomId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Расчёт стоимости окна
	api.HandleFunc("/rooms/{roomId}/quote", getPriceQuote.Handle).Methods(http.MethodGet)

	// Ручной запуск автоподтверждения (закрыт на уровне сети)
	api.HandleFunc("/internal/auto-confirm", runAutoConfirm.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования клиента ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Управление студией (для владельцев) ---
	protected.HandleFunc("/rooms/{roomId}/reservations", getRoomReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/studios/{studioId}/reservations/pending", getPendingReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/approve", approveReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/reject", rejectReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/session", updateSessionStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/owners/{ownerId}/occupancy", getOccupancyStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/owners/{ownerId}/occupancy/current-month", getOccupancyStats.Handle).Methods(http.MethodGet)

	// Фоновое автоподтверждение
	var sweeper *worker.Worker
	if cfg.Scheduler.Enabled {
		sweeper = worker.New("auto-confirm", cfg.Scheduler.Interval(), worker.JobFunc(func(ctx context.Context) error {
			_, err := autoConfirmUseCase.Execute(ctx)
			return err
		}), log)
		sweeper.Start(context.Background())
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	if sweeper != nil {
		sweeper.Stop()
	}

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
