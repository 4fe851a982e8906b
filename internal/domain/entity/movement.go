package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación del libro de movimientos de la plataforma remota.
// OperationRetailSale es el único tipo que cuenta como demanda para la
// velocidad de ventas; el resto solo mueve el stock.
const (
	OperationRetailSale = "retaildemand"
	OperationSupply     = "supply"
	OperationLoss       = "loss"
	OperationMove       = "move"
)

// MovementEvent un movimiento de stock de un artículo en una bodega.
// Llega sin orden cronológico garantizado y es inmutable una vez leído.
type MovementEvent struct {
	ItemID   string
	ItemHref string // permalink del artículo en la plataforma
	Moment   time.Time
	// Quantity con signo: positivo entrada, negativo salida.
	Quantity      decimal.Decimal
	OperationKind string
	LocationID    string
	// Categoría del artículo según la fila del libro; se usa solo para el join.
	CategoryID   string
	CategoryName string
}
