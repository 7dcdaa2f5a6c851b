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

	cancelReservationHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/get_available_slots"
	getGuestReservationsHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/get_guest_reservations"
	getPolicyHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/get_policy"
	getReservationHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/get_reservation"
	getSpaceReservationsHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/get_space_reservations"
	resetPolicyHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/reset_policy"
	reviewReservationHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/review_reservation"
	updatePolicyHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/update_policy"
	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBookingService/internal/config"
	policyRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/policy"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
	spaceServiceClient "github.com/m04kA/SMC-SpaceBookingService/internal/integrations/spaceservice"
	userServiceClient "github.com/m04kA/SMC-SpaceBookingService/internal/integrations/userservice"
	policyService "github.com/m04kA/SMC-SpaceBookingService/internal/service/policy"
	reservationsService "github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations"
	cancelReservationUC "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/create_reservation"
	expireReservationsUC "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/expire_reservations"
	getAvailableSlotsUC "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/get_available_slots"
	reviewReservationUC "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/review_reservation"
	"github.com/m04kA/SMC-SpaceBookingService/internal/worker/expiry"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/keymutex"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
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

	log.Info("Starting SMC-SpaceBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены). При выключенных метриках
	// коллектор остаётся nil, все его методы ничего не делают.
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(cfg.UserService.URL, cfg.UserService.TimeoutDuration(), log)
	spaceClient := spaceServiceClient.NewClient(cfg.SpaceService.URL, cfg.SpaceService.TimeoutDuration(), log)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, SpaceService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.SpaceService.URL, cfg.SpaceService.Timeout)

	// Репозитории, транзакции и блокировки пространств
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	policyRepository := policyRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Один locker на процесс: создание и одобрение бронирований одного
	// пространства не должны выполняться параллельно
	spaceLocker := keymutex.New[int64]()

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, spaceClient, log)
	policySvc := policyService.NewService(policyRepository, spaceClient, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		policyRepository,
		spaceClient,
		userClient,
		spaceLocker,
		txMgr,
		metricsCollector,
		log,
	)
	reviewReservationUseCase := reviewReservationUC.NewUseCase(
		reservationRepository,
		spaceClient,
		spaceLocker,
		txMgr,
		metricsCollector,
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		spaceClient,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		policyRepository,
		spaceClient,
		cfg.Engine.SlotHorizonDays,
		cfg.Engine.MaxSlotsPerRequest,
		log,
	)
	expireReservationsUseCase := expireReservationsUC.NewUseCase(reservationRepository, metricsCollector, log)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	approveReservation := reviewReservationHandler.NewApproveHandler(reviewReservationUseCase, log)
	rejectReservation := reviewReservationHandler.NewRejectHandler(reviewReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getGuestReservations := getGuestReservationsHandler.NewHandler(reservationsSvc, log)
	getSpaceReservations := getSpaceReservationsHandler.NewHandler(reservationsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getPolicy := getPolicyHandler.NewHandler(policySvc, log)
	updatePolicy := updatePolicyHandler.NewHandler(policySvc, log)
	resetPolicy := resetPolicyHandler.NewHandler(policySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Свободные окна пространства
	api.HandleFunc("/spaces/{spaceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Правила бронирования пространства
	api.HandleFunc("/spaces/{spaceId}/policy", getPolicy.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования гостя ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/reservations", getGuestReservations.Handle).Methods(http.MethodGet)

	// --- Управление пространством (для владельцев) ---
	protected.HandleFunc("/reservations/{reservationId}/approve", approveReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}/reject", rejectReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/spaces/{spaceId}/reservations", getSpaceReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/spaces/{spaceId}/policy", updatePolicy.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/spaces/{spaceId}/policy", resetPolicy.Handle).Methods(http.MethodDelete)

	// Фоновое истечение заявок
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		expiry.NewWorker(expireReservationsUseCase, cfg.Engine.ExpirySweepInterval(), log).Run(workerCtx)
	}()

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopWorker()
	<-workerDone

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
