package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	appanalytics "github.com/dedeepya55/SmartStockAIBackend/internal/application/analytics"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/inventory"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/ports"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/usecase"
	domainanalytics "github.com/dedeepya55/SmartStockAIBackend/internal/domain/analytics"
	domaininv "github.com/dedeepya55/SmartStockAIBackend/internal/domain/inventory"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
	infraai "github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/ai"
	"github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/export"
	"github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/idempotency"
	"github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/memory"
	inframetrics "github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/metrics"
	infrapdf "github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/pdf"
	"github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/postgres"
	httpRouter "github.com/dedeepya55/SmartStockAIBackend/internal/interfaces/http"
	"github.com/dedeepya55/SmartStockAIBackend/pkg/config"
	"github.com/dedeepya55/SmartStockAIBackend/pkg/logger"
)

// repositories agrupa los adaptadores de persistencia elegidos por STORAGE_DRIVER.
type repositories struct {
	products      repository.ProductRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	tx            inventory.TxRunner
	close         func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer repos.close()

	// Métricas: contadores del libro expuestos en /metrics si METRICS_ENABLED.
	var ledgerMetrics ports.LedgerMetrics = ports.NopLedgerMetrics{}
	var promMetrics *inframetrics.LedgerMetrics
	if cfg.Metrics.Enabled {
		promMetrics = inframetrics.NewLedgerMetrics()
		ledgerMetrics = promMetrics
	}

	ledger := domaininv.NewLedger(domaininv.Policy{
		AllowNegative:       cfg.Ledger.AllowNegative,
		ReconcileOverwrites: cfg.Ledger.ReconcileOverwrites,
	})
	ledgerUC := inventory.NewLedgerUseCase(repos.tx, ledger, ledgerMetrics, loc)
	productUC := usecase.NewProductUseCase(repos.products, cfg.Ledger.DefaultPageSize)
	analyticsUC := appanalytics.NewAnalyticsUseCase(
		repos.products,
		domainanalytics.NewAggregator(loc),
		infrapdf.NewMarotoReportGenerator(),
		export.NewMovementExporter(),
	)

	inspector := infraai.NewHTTPInspectionService(cfg.Inspection.URL)
	qualityUC := usecase.NewQualityCheckUseCase(inspector, repos.users, repos.notifications, cfg.Inspection.Timeout)
	assistantUC := usecase.NewAssistantUseCase(repos.products, repos.notifications)
	notificationUC := usecase.NewNotificationUseCase(repos.notifications)
	userUC := usecase.NewUserUseCase(repos.users)

	idemStore := openIdempotencyStore(ctx, cfg, log)

	rateLimiter := httpRouter.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
	go rateLimiter.CleanupLoop(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 << 20, // imágenes de inspección hasta 10 MB
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Stock Ledger API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	deps := httpRouter.RouterDeps{
		ProductUC:      productUC,
		LedgerUC:       ledgerUC,
		AnalyticsUC:    analyticsUC,
		QualityUC:      qualityUC,
		AssistantUC:    assistantUC,
		NotificationUC: notificationUC,
		UserUC:         userUC,
		Idempotency:    idemStore,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		RateLimiter:    rateLimiter,
		JWTSecret:      cfg.JWT.Secret,
		Log:            log.Component("api"),
	}
	if promMetrics != nil {
		deps.Metrics = promMetrics.Handler()
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &repositories{
			products:      memory.NewProductRepository(store),
			users:         memory.NewUserRepository(store),
			notifications: memory.NewNotificationRepository(store),
			tx:            memory.NewTxRunner(store),
			close:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &repositories{
		products:      postgres.NewProductRepository(pool),
		users:         postgres.NewUserRepository(pool),
		notifications: postgres.NewNotificationRepository(pool),
		tx:            postgres.NewTxRunner(pool),
		close:         pool.Close,
	}, nil
}

// openIdempotencyStore usa Redis si REDIS_ADDR está definido; si no, memoria local.
func openIdempotencyStore(ctx context.Context, cfg *config.Config, log *logger.Logger) ports.IdempotencyStore {
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible; idempotencia en memoria")
		} else {
			go func() {
				<-ctx.Done()
				_ = rdb.Close()
			}()
			return idempotency.NewRedisStore(rdb)
		}
		_ = rdb.Close()
	}
	store := idempotency.NewMemoryStore()
	go store.Cleanup(ctx, time.Minute)
	return store
}
