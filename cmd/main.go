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

	adminCancelBookingHandler "github.com/meonjeo/ad-booking-service/internal/api/handlers/admin_cancel_booking"
	adminListBookingsHandler "github.com/meonjeo/ad-booking-service/internal/api/handlers/admin_list_bookings"
	adminRelistBookingHandler "github.com/meonjeo/ad-booking-service/internal/api/handlers/admin_relist_booking"
	adminSweepHandler "github.com/meonjeo/ad-booking-service/internal/api/handlers/admin_sweep"
	cancelBookingHandler "github.com/meonjeo/ad-booking-service/internal/api/handlers/cancel_booking"
	confirmPaymentHandler "github.com/meonjeo/ad-booking-service/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/meonjeo/ad-booking-service/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/meonjeo/ad-booking-service/internal/api/handlers/get_availability"
	getBookingHandler "github.com/meonjeo/ad-booking-service/internal/api/handlers/get_booking"
	getSellerBookingsHandler "github.com/meonjeo/ad-booking-service/internal/api/handlers/get_seller_bookings"
	sampleOverallHandler "github.com/meonjeo/ad-booking-service/internal/api/handlers/sample_overall"
	serveAdsHandler "github.com/meonjeo/ad-booking-service/internal/api/handlers/serve_ads"
	updateBookingHandler "github.com/meonjeo/ad-booking-service/internal/api/handlers/update_booking"
	"github.com/meonjeo/ad-booking-service/internal/api/middleware"
	"github.com/meonjeo/ad-booking-service/internal/config"
	"github.com/meonjeo/ad-booking-service/internal/houseads"
	bookingRepo "github.com/meonjeo/ad-booking-service/internal/infra/storage/booking"
	productServiceClient "github.com/meonjeo/ad-booking-service/internal/integrations/productservice"
	"github.com/meonjeo/ad-booking-service/internal/pricing"
	bookingsService "github.com/meonjeo/ad-booking-service/internal/service/bookings"
	servingService "github.com/meonjeo/ad-booking-service/internal/service/serving"
	createBookingUC "github.com/meonjeo/ad-booking-service/internal/usecase/create_booking"
	getAvailabilityUC "github.com/meonjeo/ad-booking-service/internal/usecase/get_availability"
	"github.com/meonjeo/ad-booking-service/pkg/dbmetrics"
	"github.com/meonjeo/ad-booking-service/pkg/logger"
	"github.com/meonjeo/ad-booking-service/pkg/metrics"
	"github.com/meonjeo/ad-booking-service/pkg/simpletxmanager"
	"github.com/meonjeo/ad-booking-service/pkg/txmanager"
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

	log.Info("Starting ad-booking-service...")
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

	// Инициализируем интеграционных клиентов
	productClient := productServiceClient.NewClient(
		cfg.ProductService.URL,
		time.Duration(cfg.ProductService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProductService=%s timeout=%ds)",
		cfg.ProductService.URL, cfg.ProductService.Timeout)

	// Инициализируем репозиторий (с метриками или без)
	var bookingRepository *bookingRepo.Repository

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Хаус-баннеры для пустых позиций
	houseProvider := houseads.New(
		cfg.Ads.HouseRolling,
		cfg.Ads.HouseSide,
		cfg.Ads.HouseCategoryTop,
		cfg.Ads.HouseOrderComplete,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		productClient,
		txMgr,
		bookingsService.Policy{AllowAdminCancelActive: cfg.Ads.AllowAdminCancelActive},
		log,
	)

	servingSvc := servingService.NewService(
		bookingRepository,
		houseProvider,
		cfg.Ads.Categories,
		log,
	)

	// Кеш выдачи поверх сервиса (если включен redis)
	var servingProvider servingService.Provider = servingSvc
	if cfg.Redis.Enabled && cfg.Ads.ServeCacheTTLSeconds > 0 {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		servingProvider = servingService.NewCachingProvider(
			servingSvc,
			redisClient,
			time.Duration(cfg.Ads.ServeCacheTTLSeconds)*time.Second,
			log,
		)
		log.Info("Serving cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Ads.ServeCacheTTLSeconds)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		productClient,
		createBookingUC.PriceFunc(pricing.Price),
		txMgr,
		cfg.Ads.BookingGraceDays,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getSellerBookings := getSellerBookingsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	serveAds := serveAdsHandler.NewHandler(servingProvider, log)
	sampleOverall := sampleOverallHandler.NewHandler(servingProvider, log)
	adminListBookings := adminListBookingsHandler.NewHandler(bookingSvc, log)
	adminCancelBooking := adminCancelBookingHandler.NewHandler(bookingSvc, log)
	adminRelistBooking := adminRelistBookingHandler.NewHandler(bookingSvc, log)
	adminSweep := adminSweepHandler.NewHandler(bookingSvc, log)

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
	api := r.PathPrefix("/api/v1/ads").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (витрина и интеграции, без аутентификации)
	// ============================================================

	// Выдача рекламы на витрину
	api.HandleFunc("/serve/{slotType}", serveAds.Handle).Methods(http.MethodGet)

	// Случайная подборка категорийной рекламы для главной
	api.HandleFunc("/serve-sample", sampleOverall.Handle).Methods(http.MethodGet)

	// Календарь доступности слотов
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Колбэк платёжного шлюза
	api.HandleFunc("/payments/confirm", confirmPayment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Изменение неоплаченного бронирования
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований селлера
	protected.HandleFunc("/sellers/me/bookings", getSellerBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-ID и X-Admin: true)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.AdminOnly)

	// Список бронирований с фильтрацией
	admin.HandleFunc("/bookings", adminListBookings.Handle).Methods(http.MethodGet)

	// Принудительная отмена бронирования
	admin.HandleFunc("/bookings/{bookingId}/cancel", adminCancelBooking.Handle).Methods(http.MethodPatch)

	// Перенос бронирования на новые даты
	admin.HandleFunc("/bookings/{bookingId}/relist", adminRelistBooking.Handle).Methods(http.MethodPatch)

	// Ручной запуск перевода статусов
	admin.HandleFunc("/sweep", adminSweep.Handle).Methods(http.MethodPost)

	// Фоновый проход по просроченным статусам
	stopSweepCh := make(chan struct{})
	if cfg.Ads.SweepIntervalMinutes > 0 {
		go runSweeper(bookingSvc, time.Duration(cfg.Ads.SweepIntervalMinutes)*time.Minute, stopSweepCh, log)
		log.Info("Status sweeper started (interval=%dm)", cfg.Ads.SweepIntervalMinutes)
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

	// Останавливаем фоновые процессы
	if cfg.Ads.SweepIntervalMinutes > 0 {
		close(stopSweepCh)
	}
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

// runSweeper периодически переводит просроченные статусы.
// Первый проход выполняется сразу при старте, чтобы догнать
// пропущенные при простое переходы.
func runSweeper(svc *bookingsService.Service, interval time.Duration, stopCh <-chan struct{}, log *logger.Logger) {
	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, _, err := svc.Sweep(ctx); err != nil {
			log.Error("Sweeper: sweep failed: %v", err)
		}
	}

	sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sweep()
		case <-stopCh:
			return
		}
	}
}
