// Package velocity calcula la velocidad de ventas de un artículo:
// promedio de unidades vendidas por día, ponderado por el tiempo en que el
// artículo tuvo stock disponible ("ventana con stock").
package velocity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/rentabilidad-api/internal/domain/entity"
)

var secondsPerDay = decimal.NewFromInt(86400)

// Result velocidad derivada de un conjunto de movimientos, más los datos de
// categoría e identidad del artículo tomados de la primera fila del libro
// (se usan solo para el join, no para el cálculo). Se recalcula por reporte.
type Result struct {
	RatePerDay   decimal.Decimal
	CategoryID   string
	CategoryName string
	ItemID       string
	ItemHref     string
}

// Estimate reconstruye los intervalos de stock disponible a partir del libro
// de movimientos de un artículo en una bodega y devuelve la demanda por día.
//
// Los eventos pueden llegar desordenados: se ordenan por fecha internamente y
// el resultado es invariante ante cualquier permutación de la entrada.
// Reglas:
//   - Solo acumula tiempo mientras el stock reconstruido es > 0.
//   - Las salidas nunca dejan el stock negativo (se recorta a 0).
//   - Solo las ventas al detalle suman unidades de demanda.
//   - Si el artículo queda con stock al corte, se acredita el tramo final
//     hasta periodEnd.
//
// Sin eventos, o sin tiempo con stock, la velocidad es 0 y los campos de
// identidad quedan vacíos; nunca falla.
func Estimate(events []entity.MovementEvent, periodStart, periodEnd time.Time) Result {
	res := Result{RatePerDay: decimal.Zero}
	if len(events) == 0 {
		return res
	}

	// Orden estable: movimientos con el mismo instante conservan el orden de llegada
	sorted := make([]entity.MovementEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Moment.Before(sorted[j].Moment)
	})

	first := sorted[0]
	res.CategoryID = first.CategoryID
	res.CategoryName = first.CategoryName
	res.ItemID = first.ItemID
	res.ItemHref = first.ItemHref

	stock := decimal.Zero
	demand := decimal.Zero
	var timeInStock time.Duration
	var lastMoment time.Time
	hasLast := false

	for _, ev := range sorted {
		if hasLast && stock.IsPositive() {
			timeInStock += ev.Moment.Sub(lastMoment)
		}
		if ev.Quantity.IsPositive() {
			stock = stock.Add(ev.Quantity)
		} else {
			qty := ev.Quantity.Abs()
			stock = stock.Sub(qty)
			if stock.IsNegative() {
				stock = decimal.Zero
			}
			if ev.OperationKind == entity.OperationRetailSale {
				demand = demand.Add(qty)
			}
		}
		lastMoment = ev.Moment
		hasLast = true
	}

	// Tramo final: el artículo sigue con stock al corte del periodo
	if hasLast && stock.IsPositive() {
		timeInStock += periodEnd.Sub(lastMoment)
	}

	days := decimal.NewFromFloat(timeInStock.Seconds()).Div(secondsPerDay)
	if days.IsPositive() {
		res.RatePerDay = demand.Div(days).Round(2)
	}
	return res
}
