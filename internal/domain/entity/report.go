package entity

import "github.com/shopspring/decimal"

// Estado de la celda de velocidad de una fila del reporte.
const (
	// VelocityOK la velocidad se calculó con datos del libro de movimientos.
	VelocityOK = "ok"
	// VelocityNoData el libro no devolvió movimientos para el artículo.
	VelocityNoData = "no_data"
	// VelocityIdentityError la referencia del artículo no coincide con
	// /variant/ ni /product/; error acotado a la fila, no aborta el build.
	VelocityIdentityError = "identity_error"
)

// ReportRow fila de artículo del reporte de rentabilidad, ya enriquecida
// con la ruta de categoría y la velocidad de ventas. Vive solo durante un build.
type ReportRow struct {
	CategoryPath   []string // nombres desde la raíz hasta la categoría del artículo
	CategoryIDPath []string // ids paralelos a CategoryPath
	DisplayName    string
	SoldQuantity   decimal.Decimal
	Profit         decimal.Decimal
	VelocityStatus string
	Velocity       decimal.Decimal // válida solo cuando VelocityStatus == VelocityOK
	// Forecast = Velocity × días de planeación; nil en filas con error o sin datos.
	Forecast *decimal.Decimal
	ItemID   string
	ItemHref string
}

// Tipo de fila dentro de la grilla final.
const (
	GridRowItem   = "item"
	GridRowHeader = "header"
)

// GridRow fila de la grilla: un artículo o un pseudo-encabezado de grupo.
type GridRow struct {
	Kind string
	// Level nivel de categoría del encabezado (1 = primer subnivel mostrado).
	Level int
	// Label nombre del grupo cuando Kind == GridRowHeader.
	Label string
	// Item la fila de artículo cuando Kind == GridRowItem.
	Item *ReportRow
}

// ReportGrid secuencia ordenada de filas con metadatos para el render.
// La produce el ensamblador, la consume el renderizador y luego se descarta.
type ReportGrid struct {
	Rows []GridRow
	// MaxDepth profundidad máxima de categoría observada; el renderizador
	// la usa para dimensionar las columnas fijas de encabezado.
	MaxDepth int
	// SuggestedTitle título sugerido de la hoja, derivado de las categorías presentes.
	SuggestedTitle string
}
