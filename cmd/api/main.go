package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appcatalog "github.com/jhoicas/rentabilidad-api/internal/application/catalog"
	"github.com/jhoicas/rentabilidad-api/internal/application/report"
	"github.com/jhoicas/rentabilidad-api/internal/infrastructure/excel"
	"github.com/jhoicas/rentabilidad-api/internal/infrastructure/sklad"
	httpRouter "github.com/jhoicas/rentabilidad-api/internal/interfaces/http"
	"github.com/jhoicas/rentabilidad-api/pkg/config"
	"github.com/jhoicas/rentabilidad-api/pkg/logger"
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

	velocityFrom, err := time.Parse("2006-01-02", cfg.Report.VelocityFrom)
	if err != nil {
		log.Fatal().Err(err).Msg("REPORT_VELOCITY_FROM inválido (YYYY-MM-DD)")
	}

	skladClient := sklad.NewClient(cfg.Sklad)

	token := report.NewCancellationToken()
	buildUC := report.NewBuildReportUseCase(
		skladClient, skladClient, skladClient,
		token,
		report.Settings{
			PageSize:       cfg.Sklad.PageSize,
			VelocityFrom:   velocityFrom,
			PlanningDays:   cfg.Report.PlanningDays,
			SortDescending: cfg.Report.SortDescending,
			Grouped:        cfg.Report.Grouped,
		},
		log,
	)
	catalogUC := appcatalog.NewUseCase(skladClient, cfg.Sklad.PageSize)

	renderer := excel.NewRenderer(excel.Options{
		DistinguishNoData: cfg.Report.DistinguishNoData,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 120, // el build completo puede tardar: una llamada al libro por artículo
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Rentabilidad API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportHandler:  httpRouter.NewReportHandler(buildUC, renderer, log),
		CatalogHandler: httpRouter.NewCatalogHandler(catalogUC),
		JWTSecret:      cfg.JWT.Secret,
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
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	log.Info().Msg("aplicación detenida")
}
