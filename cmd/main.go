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

	cancelBookingHandler "github.com/m04kA/SMC-TurfBooking/internal/api/handlers/cancel_booking"
	confirmPaymentHandler "github.com/m04kA/SMC-TurfBooking/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SMC-TurfBooking/internal/api/handlers/create_booking"
	createTurfHandler "github.com/m04kA/SMC-TurfBooking/internal/api/handlers/create_turf"
	getBookingHandler "github.com/m04kA/SMC-TurfBooking/internal/api/handlers/get_booking"
	getBusySlotsHandler "github.com/m04kA/SMC-TurfBooking/internal/api/handlers/get_busy_slots"
	getTurfHandler "github.com/m04kA/SMC-TurfBooking/internal/api/handlers/get_turf"
	getTurfBookingsHandler "github.com/m04kA/SMC-TurfBooking/internal/api/handlers/get_turf_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-TurfBooking/internal/api/handlers/get_user_bookings"
	listTurfsHandler "github.com/m04kA/SMC-TurfBooking/internal/api/handlers/list_turfs"
	rescheduleBookingHandler "github.com/m04kA/SMC-TurfBooking/internal/api/handlers/reschedule_booking"
	sendContactMessageHandler "github.com/m04kA/SMC-TurfBooking/internal/api/handlers/send_contact_message"
	updateTurfHandler "github.com/m04kA/SMC-TurfBooking/internal/api/handlers/update_turf"
	"github.com/m04kA/SMC-TurfBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TurfBooking/internal/config"
	"github.com/m04kA/SMC-TurfBooking/internal/infra/cache/busyslots"
	"github.com/m04kA/SMC-TurfBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/booking"
	contactRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/contact"
	"github.com/m04kA/SMC-TurfBooking/internal/infra/storage/migrations"
	turfRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/turf"
	bookingsService "github.com/m04kA/SMC-TurfBooking/internal/service/bookings"
	contactService "github.com/m04kA/SMC-TurfBooking/internal/service/contact"
	turfsService "github.com/m04kA/SMC-TurfBooking/internal/service/turfs"
	cancelBookingUC "github.com/m04kA/SMC-TurfBooking/internal/usecase/cancel_booking"
	confirmPaymentUC "github.com/m04kA/SMC-TurfBooking/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/SMC-TurfBooking/internal/usecase/create_booking"
	getBusySlotsUC "github.com/m04kA/SMC-TurfBooking/internal/usecase/get_busy_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-TurfBooking/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-TurfBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfBooking/pkg/logger"
	"github.com/m04kA/SMC-TurfBooking/pkg/metrics"
	"github.com/m04kA/SMC-TurfBooking/pkg/txmanager"
)

// BusySlotsCache общий интерфейс redis-кэша и заглушки
type BusySlotsCache interface {
	getBusySlotsUC.BusySlotsCache
	Invalidate(ctx context.Context, turfID int64) error
}

// EventPublisher общий интерфейс RabbitMQ и заглушки
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
	Close() error
}

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

	log.Info("Starting SMC-TurfBooking...")
	log.Info("Configuration loaded from config.toml (timezone=%s)", cfg.Booking.Location())

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

	// Без метрик обёртка просто проксирует вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(context.Background(), wrappedDB, txMgr, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database schema is up to date")
	}

	// Кэш занятых слотов
	var slotsCache BusySlotsCache = busyslots.NopCache{}
	if cfg.Redis.Enabled {
		redisClient := busyslots.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := busyslots.Ping(pingCtx, redisClient)
		cancel()
		if err != nil {
			// Кэш не обязателен, работаем напрямую с БД
			log.Warn("Redis unavailable at %s, busy slots cache disabled: %v", cfg.Redis.Address, err)
		} else {
			slotsCache = busyslots.NewCache(redisClient, time.Duration(cfg.Redis.BusySlotsTTL)*time.Second)
			log.Info("Busy slots cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Address, cfg.Redis.BusySlotsTTL)
		}
	}

	// Публикация событий бронирования
	var publisher EventPublisher = events.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		p, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = p
		log.Info("Booking events are published to exchange %q", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	turfRepository := turfRepo.NewRepository(wrappedDB)
	contactRepository := contactRepo.NewRepository(wrappedDB)

	loc := cfg.Booking.Location()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, turfRepository, cfg.Admin, log)
	turfSvc := turfsService.NewService(turfRepository, cfg.Admin, log)
	contactSvc := contactService.NewService(contactRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		turfRepository,
		txMgr,
		slotsCache,
		publisher,
		metricsCollector,
		loc,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		turfRepository,
		txMgr,
		slotsCache,
		publisher,
		metricsCollector,
		loc,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		txMgr,
		publisher,
		metricsCollector,
		loc,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		slotsCache,
		publisher,
		metricsCollector,
		loc,
		log,
	)
	getBusySlotsUseCase := getBusySlotsUC.NewUseCase(
		bookingRepository,
		turfRepository,
		slotsCache,
		loc,
		log,
	)

	// Инициализируем handlers
	listTurfs := listTurfsHandler.NewHandler(turfSvc, log)
	getTurf := getTurfHandler.NewHandler(turfSvc, log)
	createTurf := createTurfHandler.NewHandler(turfSvc, log)
	updateTurf := updateTurfHandler.NewHandler(turfSvc, log)
	getBusySlots := getBusySlotsHandler.NewHandler(getBusySlotsUseCase, log)
	sendContactMessage := sendContactMessageHandler.NewHandler(contactSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getTurfBookings := getTurfBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		// Ключи неактивных клиентов удаляются, чтобы карта лимитеров не росла бесконечно
		limiter.StartCleanup(
			time.Duration(cfg.RateLimit.CleanupInterval)*time.Second,
			time.Duration(cfg.RateLimit.IdleTimeout)*time.Second,
			stopMetricsCh,
		)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, лимит по IP)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if limiter != nil {
		public.Use(limiter.Middleware)
	}

	// Каталог и поиск площадок
	public.HandleFunc("/turfs", listTurfs.Handle).Methods(http.MethodGet)
	public.HandleFunc("/turfs/{turfId}", getTurf.Handle).Methods(http.MethodGet)

	// Занятые слоты площадки
	public.HandleFunc("/turfs/{turfId}/busy-slots", getBusySlots.Handle).Methods(http.MethodGet)

	// Форма обратной связи
	public.HandleFunc("/contact", sendContactMessage.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT при заданном секрете, иначе X-User-ID; лимит по пользователю)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))
	if limiter != nil {
		protected.Use(limiter.Middleware)
	}

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/pay", confirmPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Личный кабинет
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование (права проверяются в сервисах по [admin] user_ids) ---
	protected.HandleFunc("/turfs", createTurf.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/turfs/{turfId}", updateTurf.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/turfs/{turfId}/bookings", getTurfBookings.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool и очистку лимитеров
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
