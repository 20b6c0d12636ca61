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
	"github.com/redis/go-redis/v9"

	confirmBookingHandler "github.com/zomesstay/ZS-SearchService/internal/api/handlers/confirm_booking"
	getCitiesHandler "github.com/zomesstay/ZS-SearchService/internal/api/handlers/get_cities"
	searchPropertiesHandler "github.com/zomesstay/ZS-SearchService/internal/api/handlers/search_properties"
	"github.com/zomesstay/ZS-SearchService/internal/api/middleware"
	"github.com/zomesstay/ZS-SearchService/internal/config"
	"github.com/zomesstay/ZS-SearchService/internal/infra/cache/searchcache"
	bookingRepo "github.com/zomesstay/ZS-SearchService/internal/infra/storage/booking"
	propertyRepo "github.com/zomesstay/ZS-SearchService/internal/infra/storage/property"
	roomRepo "github.com/zomesstay/ZS-SearchService/internal/infra/storage/room"
	agentServiceClient "github.com/zomesstay/ZS-SearchService/internal/integrations/agentservice"
	pricingServiceClient "github.com/zomesstay/ZS-SearchService/internal/integrations/pricingservice"
	propertiesService "github.com/zomesstay/ZS-SearchService/internal/service/properties"
	confirmBookingUC "github.com/zomesstay/ZS-SearchService/internal/usecase/confirm_booking"
	searchPropertiesUC "github.com/zomesstay/ZS-SearchService/internal/usecase/search_properties"
	"github.com/zomesstay/ZS-SearchService/pkg/dbmetrics"
	"github.com/zomesstay/ZS-SearchService/pkg/logger"
	"github.com/zomesstay/ZS-SearchService/pkg/metrics"
	"github.com/zomesstay/ZS-SearchService/pkg/simpletxmanager"
	"github.com/zomesstay/ZS-SearchService/pkg/txmanager"
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

	log.Info("Starting ZS-SearchService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем кеш результатов поиска (если включен)
	var searchCache *searchcache.Cache
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		searchCache = searchcache.New(
			redisClient,
			cfg.Cache.LocalMaxSize,
			time.Duration(cfg.Cache.LocalTTL)*time.Second,
			time.Duration(cfg.Cache.RedisTTL)*time.Second,
			metricsCollector,
			log,
		)
		log.Info("Search cache enabled (redis=%s, local_max_size=%d)",
			cfg.Cache.RedisAddr, cfg.Cache.LocalMaxSize)
	}

	// Инициализируем интеграционных клиентов
	pricingClient := pricingServiceClient.NewClient(
		cfg.PricingService.URL,
		time.Duration(cfg.PricingService.Timeout)*time.Second,
		log,
	)
	agentClient := agentServiceClient.NewClient(
		cfg.AgentService.URL,
		time.Duration(cfg.AgentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PricingService=%s timeout=%ds, AgentService=%s timeout=%ds)",
		cfg.PricingService.URL, cfg.PricingService.Timeout, cfg.AgentService.URL, cfg.AgentService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		roomRepository     *roomRepo.Repository
		bookingRepository  *bookingRepo.Repository
		propertyRepository *propertyRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		roomRepository = roomRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB, log)
		propertyRepository = propertyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		roomRepository = roomRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db, log)
		propertyRepository = propertyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	propertiesSvc := propertiesService.NewService(propertyRepository, log)

	// Инициализируем use cases
	var cacheForSearch searchPropertiesUC.SearchCache
	if searchCache != nil {
		cacheForSearch = searchCache
	}

	searchPropertiesUseCase := searchPropertiesUC.NewUseCase(
		roomRepository,
		bookingRepository,
		propertyRepository,
		pricingClient,
		agentClient,
		cacheForSearch,
		cfg.Search.MaxStayNights,
		cfg.Search.Policy(),
		log,
	)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		propertyRepository,
		txMgr,
		cfg.Search.MaxStayNights,
		log,
	)

	// Инициализируем handlers
	searchProperties := searchPropertiesHandler.NewHandler(searchPropertiesUseCase, log)
	getCities := getCitiesHandler.NewHandler(propertiesSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Поиск доступных объектов на период проживания
	api.HandleFunc("/properties/search", searchProperties.Handle).Methods(http.MethodGet)

	// Список городов с активными объектами
	api.HandleFunc("/properties/cities", getCities.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Подтверждение бронирования комнат
	protected.HandleFunc("/bookings", confirmBooking.Handle).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
