package report

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/rentabilidad-api/internal/domain/entity"
)

// ProfitQuery parámetros de la consulta de rentabilidad contra la plataforma remota.
type ProfitQuery struct {
	Start       time.Time
	End         time.Time
	LocationID  string
	CategoryIDs []string
}

// ProfitSource puerto de salida hacia el reporte de rentabilidad remoto.
// La paginación la maneja el caller: pide páginas hasta reunir total filas,
// verificando la cancelación entre página y página.
type ProfitSource interface {
	// FetchProfitFactsPage devuelve una página de filas y el total de la consulta.
	FetchProfitFactsPage(ctx context.Context, q ProfitQuery, limit, offset int) (rows []entity.ProfitFact, total int, err error)
}

// MovementSource puerto de salida hacia el libro de movimientos de stock.
type MovementSource interface {
	// FetchMovementEvents devuelve los movimientos de un artículo en una bodega,
	// filtrados por el servidor a la ventana dada (una sola llamada).
	FetchMovementEvents(ctx context.Context, itemID, itemKind, locationID string, start, end time.Time) ([]entity.MovementEvent, error)
}

// CatalogSource puerto de salida hacia los catálogos de la plataforma
// (categorías de producto y bodegas). Paginación dirigida por el caller.
type CatalogSource interface {
	FetchCategoriesPage(ctx context.Context, limit, offset int) (rows []entity.CategoryRecord, total int, err error)
	FetchStores(ctx context.Context) ([]StoreRecord, error)
}

// StoreRecord bodega/punto de venta del catálogo remoto.
type StoreRecord struct {
	ID   string
	Name string
}

// GridRenderer puerto de salida hacia el colaborador de render (XLSX).
// Recibe la grilla con sus metadatos (MaxDepth, SuggestedTitle) y escribe el archivo.
type GridRenderer interface {
	Render(grid *entity.ReportGrid, w io.Writer) error
}
