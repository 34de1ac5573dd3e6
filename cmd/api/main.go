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

	_ "github.com/jhoicas/donepaid-api/docs"
	"github.com/jhoicas/donepaid-api/internal/application/analytics"
	"github.com/jhoicas/donepaid-api/internal/application/auth"
	"github.com/jhoicas/donepaid-api/internal/application/billing"
	"github.com/jhoicas/donepaid-api/internal/application/onboarding"
	"github.com/jhoicas/donepaid-api/internal/application/usecase"
	"github.com/jhoicas/donepaid-api/internal/domain/repository"
	"github.com/jhoicas/donepaid-api/internal/infrastructure/memory"
	"github.com/jhoicas/donepaid-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/donepaid-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/donepaid-api/internal/interfaces/http"
	"github.com/jhoicas/donepaid-api/pkg/config"
	"github.com/jhoicas/donepaid-api/pkg/logger"
)

// @title                       Done & Paid API
// @version                     1.0
// @description                 Facturación, catálogo y proyectos para pequeños negocios.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Revocación de sesiones: Redis si está configurado, si no memoria del proceso.
	var sessions repository.SessionStore
	if cfg.Redis.Addr != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		sessions = infraredis.NewSessionStore(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: revocaciones en memoria, no se comparten entre instancias")
		sessions = memory.NewSessionStore()
	}

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	onboardingUC := onboarding.NewOnboardingUseCase(userRepo, log)
	userUC := usecase.NewUserUseCase(userRepo, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo)
	projectUC := usecase.NewProjectUseCase(projectRepo, customerRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	documentUC := billing.NewDocumentUseCase(txRunner, documentRepo, log)
	dashboardUC := analytics.NewDashboardUseCase(dashboardRepo, documentRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Done & Paid API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		OnboardingUC: onboardingUC,
		UserUC:       userUC,
		CategoryUC:   categoryUC,
		SupplierUC:   supplierUC,
		ProductUC:    productUC,
		ProjectUC:    projectUC,
		CustomerUC:   customerUC,
		DocumentUC:   documentUC,
		DashboardUC:  dashboardUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
