package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportHandler  *ReportHandler
	CatalogHandler *CatalogHandler
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogos de la plataforma (protegido)
	catalogGroup := protected.Group("/catalog")
	catalogGroup.Get("/stores", deps.CatalogHandler.ListStores)
	catalogGroup.Get("/categories", deps.CatalogHandler.ListCategories)
	catalogGroup.Get("/categories/:id/children", deps.CatalogHandler.ListSubcategories)

	// Reportes (protegido)
	reports := protected.Group("/reports")
	reports.Post("/profitability", deps.ReportHandler.Generate)
	reports.Post("/cancel", deps.ReportHandler.Cancel)
}
