package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/internal/adapter"
	"github.com/grandstay/service-hotel/internal/application"
	"github.com/grandstay/service-hotel/internal/cache"
	"github.com/grandstay/service-hotel/internal/config"
	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/internal/domain/payment"
	"github.com/grandstay/service-hotel/internal/domain/review"
	hotelEvents "github.com/grandstay/service-hotel/internal/events"
	"github.com/grandstay/service-hotel/internal/handler"
	"github.com/grandstay/service-hotel/internal/metrics"
	"github.com/grandstay/service-hotel/internal/repository"
	"github.com/grandstay/service-hotel/internal/repository/memory"
	"github.com/grandstay/service-hotel/internal/saga"
	"github.com/grandstay/service-hotel/pkg/auth"
	"github.com/grandstay/service-hotel/pkg/database"
	"github.com/grandstay/service-hotel/pkg/events"
	"github.com/grandstay/service-hotel/pkg/health"
	"github.com/grandstay/service-hotel/pkg/kafka"
	"github.com/grandstay/service-hotel/pkg/logger"
	"github.com/grandstay/service-hotel/pkg/middleware"
	"github.com/grandstay/service-hotel/pkg/validation"
)

const serviceName = "service-hotel"

// storage bundles the persistence ports for one storage driver.
type storage struct {
	tx        application.Transactor
	pinger    health.Pinger
	roomTypes catalog.RoomTypeRepository
	rooms     catalog.RoomRepository
	bookings  booking.BookingRepository
	payments  payment.PaymentRepository
	reviews   review.ReviewRepository
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.StorageDriver),
		zap.String("timezone", cfg.Timezone.String()),
	)

	store := openStorage(cfg, zapLogger)

	// Register custom validation rules on gin's binding engine
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.Configure(v)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.AccessTTL)
	clock := application.SystemClock{Location: cfg.Timezone}

	// Room type cache, only when Redis is configured
	var roomTypeCache application.RoomTypeCache
	if cfg.RedisConfig.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Addr,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		defer rdb.Close()
		roomTypeCache = cache.NewRoomTypeCache(rdb, cfg.CacheTTL, zapLogger)
		zapLogger.Info("room type cache enabled", zap.String("addr", cfg.RedisConfig.Addr))
	}

	// Event publisher
	var publisher application.EventPublisher = hotelEvents.NewNopPublisher(zapLogger)
	var kafkaProducer *kafka.Producer
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer = kafka.NewProducer(cfg.KafkaConfig.Brokers, zapLogger)
		defer kafkaProducer.Close()
		publisher = hotelEvents.NewKafkaPublisher(kafkaProducer, zapLogger)
	}

	// Payment gateway and settlement saga
	gateway := adapter.NewSimulatedGateway(zapLogger)
	settlement := saga.NewSettlementSaga(store.tx, store.bookings, store.rooms, store.payments, gateway, clock.Now, zapLogger)

	// Application services
	catalogService := application.NewCatalogService(store.roomTypes, store.rooms, store.reviews, roomTypeCache, clock, zapLogger)
	availabilityService := application.NewAvailabilityService(store.rooms, store.bookings, clock, zapLogger)
	bookingService := application.NewBookingService(store.tx, store.bookings, store.rooms, store.payments, publisher, clock, zapLogger)
	paymentService := application.NewPaymentService(settlement, publisher, zapLogger)
	reviewService := application.NewReviewService(store.reviews, store.bookings, store.rooms, clock, zapLogger)
	dashboardService := application.NewDashboardService(store.bookings, store.payments, store.rooms, zapLogger)

	// Kafka consumer for front-desk checkout events
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	if len(cfg.KafkaConfig.Brokers) > 0 {
		stayConsumer := hotelEvents.NewStayEventConsumer(
			cfg.KafkaConfig.Brokers,
			cfg.KafkaConfig.GroupID,
			bookingService,
			zapLogger,
			kafka.WithDeadLetter(kafkaProducer, events.TopicStayDeadLetter),
		)
		defer stayConsumer.Close()

		go func() {
			zapLogger.Info("starting stay event consumer")
			if err := stayConsumer.Start(consumerCtx); err != nil {
				if consumerCtx.Err() == nil {
					zapLogger.Error("stay event consumer failed", zap.Error(err))
				}
			}
		}()
	}

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(metrics.GinMiddleware())

	// Register health check and metrics routes
	healthHandler := health.NewHandler(store.pinger, serviceName)
	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Register API routes
	apiV1 := router.Group("/api/v1")
	handler.NewRoomHandler(catalogService, availabilityService, bookingService, reviewService).RegisterRoutes(apiV1, jwtManager)
	handler.NewBookingHandler(bookingService).RegisterRoutes(apiV1, jwtManager)
	handler.NewPaymentHandler(paymentService).RegisterRoutes(apiV1, jwtManager)
	handler.NewAdminHandler(dashboardService, bookingService, catalogService).RegisterRoutes(apiV1, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down " + serviceName + "...")

	// Cancel Kafka consumer
	consumerCancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info(serviceName + " stopped")
}

// openStorage connects the configured storage driver and prepares its schema.
func openStorage(cfg *config.ServiceConfig, zapLogger *zap.Logger) storage {
	if cfg.StorageDriver == config.StorageDriverMemory {
		zapLogger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return storage{
			tx:        store,
			pinger:    store,
			roomTypes: memory.NewRoomTypeRepository(store),
			rooms:     memory.NewRoomRepository(store),
			bookings:  memory.NewBookingRepository(store),
			payments:  memory.NewPaymentRepository(store),
			reviews:   memory.NewReviewRepository(store),
		}
	}

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := repository.AutoMigrate(db); err != nil {
			zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		zapLogger.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), cfg.MigrationsDir, zapLogger); err != nil {
			zapLogger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("failed to access database handle", zap.Error(err))
	}

	return storage{
		tx:        repository.NewTransactor(db),
		pinger:    sqlDB,
		roomTypes: repository.NewRoomTypeRepository(db),
		rooms:     repository.NewRoomRepository(db),
		bookings:  repository.NewBookingRepository(db),
		payments:  repository.NewPaymentRepository(db),
		reviews:   repository.NewReviewRepository(db),
	}
}
