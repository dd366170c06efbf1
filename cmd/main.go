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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	clearTokensHandler "github.com/m04kA/SMC-CanteenBooking/internal/api/handlers/clear_tokens"
	getDayMenuHandler "github.com/m04kA/SMC-CanteenBooking/internal/api/handlers/get_day_menu"
	getPortionHandler "github.com/m04kA/SMC-CanteenBooking/internal/api/handlers/get_portion"
	getTokenHandler "github.com/m04kA/SMC-CanteenBooking/internal/api/handlers/get_token"
	listActiveTokensHandler "github.com/m04kA/SMC-CanteenBooking/internal/api/handlers/list_active_tokens"
	redeemTokenHandler "github.com/m04kA/SMC-CanteenBooking/internal/api/handlers/redeem_token"
	requestBookingHandler "github.com/m04kA/SMC-CanteenBooking/internal/api/handlers/request_booking"
	"github.com/m04kA/SMC-CanteenBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CanteenBooking/internal/config"
	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
	portionRepo "github.com/m04kA/SMC-CanteenBooking/internal/infra/storage/portion"
	tokenRepo "github.com/m04kA/SMC-CanteenBooking/internal/infra/storage/token"
	"github.com/m04kA/SMC-CanteenBooking/internal/integrations/kitchenfeed"
	"github.com/m04kA/SMC-CanteenBooking/internal/integrations/menuservice"
	portionsService "github.com/m04kA/SMC-CanteenBooking/internal/service/portions"
	tokensService "github.com/m04kA/SMC-CanteenBooking/internal/service/tokens"
	getDayMenuUC "github.com/m04kA/SMC-CanteenBooking/internal/usecase/get_day_menu"
	requestBookingUC "github.com/m04kA/SMC-CanteenBooking/internal/usecase/request_booking"
	"github.com/m04kA/SMC-CanteenBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CanteenBooking/pkg/logger"
	"github.com/m04kA/SMC-CanteenBooking/pkg/metrics"
	"github.com/m04kA/SMC-CanteenBooking/pkg/txmanager"
)

// Хранилища, которые выбираются конфигурацией
type (
	portionLedger interface {
		Ensure(ctx context.Context, date string, counts map[string]int) error
		Remaining(ctx context.Context, date, portionKey string) (int, bool, error)
		TryDecrement(ctx context.Context, date, portionKey string) (bool, error)
		Snapshot(ctx context.Context, date string) (map[string]int, error)
	}

	tokenStore interface {
		Issue(ctx context.Context, booking *domain.Booking) error
		Get(ctx context.Context, token string) (*domain.Booking, error)
		ListActive(ctx context.Context, now time.Time) ([]*domain.Booking, error)
		MarkConsumed(ctx context.Context, token string, at time.Time) error
		ClearAll(ctx context.Context) (int64, error)
	}

	menuSource interface {
		GetDayMenu(ctx context.Context, date string) (*domain.DayMenu, error)
		AvailableDates(ctx context.Context) ([]string, error)
	}

	eventPublisher interface {
		PublishBookingIssued(ctx context.Context, event kitchenfeed.BookingIssued) error
		Close() error
	}

	txManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
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

	log.Info("Starting SMC-CanteenBooking...")
	log.Info("Configuration loaded (ledger=%s, tokens=%s, timezone=%s)",
		cfg.Storage.Ledger, cfg.Storage.Tokens, cfg.App.Timezone)

	location := cfg.Location()

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		outcomeRecorder  requestBookingUC.OutcomeRecorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		outcomeRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных, если она нужна хранилищам
	var wrappedDB *dbmetrics.DB
	if cfg.Storage.UsesPostgres() {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	}

	// Менеджер транзакций: SQL при наличии базы, иначе только компенсации
	var txMgr txManager
	if wrappedDB != nil {
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		txMgr = txmanager.NewNoopManager()
	}

	// Счетчики порций
	var ledger portionLedger
	switch cfg.Storage.Ledger {
	case config.BackendPostgres:
		ledger = portionRepo.NewRepository(wrappedDB)
	case config.BackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()

		ledger = portionRepo.NewRedisLedger(
			redisClient,
			cfg.Redis.KeyPrefix,
			time.Duration(cfg.Redis.CounterTTL)*time.Hour,
			log,
		)
		log.Info("Portion ledger on redis (addr=%s)", cfg.Redis.Addr)
	default:
		ledger = portionRepo.NewMemoryLedger()
	}

	// Хранилище токенов
	var tokens tokenStore
	switch cfg.Storage.Tokens {
	case config.BackendPostgres:
		tokens = tokenRepo.NewRepository(wrappedDB)
	default:
		tokens = tokenRepo.NewMemoryStore()
	}

	// Источник меню
	var menu menuSource
	if cfg.MenuService.URL != "" {
		menu = menuservice.NewClient(
			cfg.MenuService.URL,
			time.Duration(cfg.MenuService.Timeout)*time.Second,
			time.Duration(cfg.MenuService.CacheTTL)*time.Second,
			log,
		)
		log.Info("Menu service client initialized (url=%s, timeout=%ds, cache=%ds)",
			cfg.MenuService.URL, cfg.MenuService.Timeout, cfg.MenuService.CacheTTL)
	} else {
		menu = menuservice.NewFileSource(cfg.MenuService.File)
		log.Info("Menu snapshot read from file %s", cfg.MenuService.File)
	}

	// Лента событий для кухни
	var publisher eventPublisher = kitchenfeed.NoopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = kitchenfeed.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		log.Info("Kitchen feed enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer publisher.Close()

	// Инициализируем сервисы
	tokenSvc := tokensService.NewService(tokens, log)
	portionSvc := portionsService.NewService(ledger, menu, location, log)

	// Инициализируем use cases
	requestBookingUseCase := requestBookingUC.NewUseCase(
		ledger,
		tokens,
		menu,
		publisher,
		outcomeRecorder,
		txMgr,
		location,
		log,
	)
	getDayMenuUseCase := getDayMenuUC.NewUseCase(menu, ledger, location, log)

	// Инициализируем handlers
	requestBooking := requestBookingHandler.NewHandler(requestBookingUseCase, log)
	getDayMenu := getDayMenuHandler.NewHandler(getDayMenuUseCase, log)
	getPortion := getPortionHandler.NewHandler(portionSvc, log)
	listActiveTokens := listActiveTokensHandler.NewHandler(tokenSvc, log)
	getToken := getTokenHandler.NewHandler(tokenSvc, log)
	redeemToken := redeemTokenHandler.NewHandler(tokenSvc, log)
	clearTokens := clearTokensHandler.NewHandler(tokenSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Меню и остатки ---
	api.HandleFunc("/menu/{date}", getDayMenu.Handle).Methods(http.MethodGet)
	api.HandleFunc("/portions/{date}/{portionKey}", getPortion.Handle).Methods(http.MethodGet)

	// --- Бронирование ---
	api.HandleFunc("/bookings", requestBooking.Handle).Methods(http.MethodPost)

	// --- Токены ---
	// /tokens/active регистрируется раньше /tokens/{token}
	api.HandleFunc("/tokens/active", listActiveTokens.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tokens/{token}", getToken.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tokens/{token}/redeem", redeemToken.Handle).Methods(http.MethodPost)
	api.HandleFunc("/tokens", clearTokens.Handle).Methods(http.MethodDelete)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
