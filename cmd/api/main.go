package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/crm-dashboard-api/internal/application/analytics"
	appauth "github.com/jhoicas/crm-dashboard-api/internal/application/auth"
	"github.com/jhoicas/crm-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/crm-dashboard-api/internal/infrastructure/csvio"
	"github.com/jhoicas/crm-dashboard-api/internal/infrastructure/localfile"
	"github.com/jhoicas/crm-dashboard-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/crm-dashboard-api/internal/infrastructure/pdf"
	"github.com/jhoicas/crm-dashboard-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/crm-dashboard-api/internal/interfaces/http"
	"github.com/jhoicas/crm-dashboard-api/pkg/config"
	"github.com/jhoicas/crm-dashboard-api/pkg/logger"
	"github.com/jhoicas/crm-dashboard-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Record Store en memoria con datos sintéticos.
	store := memory.NewSeededStore(cfg.Seed.Count)
	log.Info().Int("count", cfg.Seed.Count).Msg("record store inicializado")

	// Ajustes persistentes: PostgreSQL si hay DATABASE_URL, archivo JSON local
	// en caso contrario.
	var settingsRepo repository.SettingsRepository
	if cfg.Store.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pgRepo := postgres.NewSettingsRepository(pool)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema de ajustes")
		}
		settingsRepo = pgRepo
		log.Info().Msg("ajustes en PostgreSQL")
	} else {
		settingsRepo = localfile.NewSettingsStore(cfg.Store.Path)
		log.Info().Str("path", cfg.Store.Path).Msg("ajustes en archivo local")
	}

	preferenceUC := usecase.NewPreferenceUseCase(settingsRepo)
	if err := preferenceUC.Load(ctx); err != nil {
		// El store queda en defaults y los guardados siguen bloqueados
		// hasta una carga exitosa.
		log.Warn().Err(err).Msg("carga de preferencias fallida, se usan valores por defecto")
	}

	customerUC := usecase.NewCustomerUseCase(store, csvio.Codec{})
	dashboardUC := appanalytics.NewDashboardUseCase(store, infrapdf.NewMarotoReportGenerator())

	userRepo := memory.NewUserRepository()
	authUC := appauth.NewAuthUseCase(userRepo, appauth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err := authUC.EnsureAdmin(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		log.Fatal().Err(err).Msg("provisionar usuario admin")
	}

	m := metrics.New(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware(m))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CRM Dashboard API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:   customerUC,
		PreferenceUC: preferenceUC,
		DashboardUC:  dashboardUC,
		AuthUC:       authUC,
		Metrics:      m,
		JWTSecret:    cfg.JWT.Secret,
		AppName:      cfg.App.Name,
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
