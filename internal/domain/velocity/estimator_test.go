package velocity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rentabilidad-api/internal/domain/entity"
	"github.com/jhoicas/rentabilidad-api/internal/domain/velocity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var t0 = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func ev(moment time.Time, qty float64, kind string) entity.MovementEvent {
	return entity.MovementEvent{
		ItemID:        "item-1",
		Moment:        moment,
		Quantity:      decimal.NewFromFloat(qty),
		OperationKind: kind,
		LocationID:    "store-1",
	}
}

func days(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }

// TestEstimate_SinEventos sin movimientos la velocidad es 0 y nunca falla.
func TestEstimate_SinEventos(t *testing.T) {
	res := velocity.Estimate(nil, t0, t0.Add(days(30)))

	assert.True(t, res.RatePerDay.IsZero(), "sin eventos la velocidad debe ser 0")
	assert.Empty(t, res.CategoryID)
	assert.Empty(t, res.ItemID)
}

// TestEstimate_SoloEntradas con solo entradas no hay demanda: velocidad 0
// aunque el artículo acumule mucho tiempo con stock.
func TestEstimate_SoloEntradas(t *testing.T) {
	events := []entity.MovementEvent{
		ev(t0, 10, entity.OperationSupply),
		ev(t0.Add(days(5)), 20, entity.OperationSupply),
	}

	res := velocity.Estimate(events, t0, t0.Add(days(30)))
	assert.True(t, res.RatePerDay.IsZero())
}

// TestEstimate_VectorDeReferencia el caso de referencia del algoritmo:
// entrada de 10 en t0, venta al detalle de 4 un día después, corte dos días
// después de t0. Tiempo con stock = 1 día (t0→t1, stock 10) + 1 día (t1→corte,
// stock 6) = 2 días; demanda = 4; velocidad = 4/2 = 2.00.
func TestEstimate_VectorDeReferencia(t *testing.T) {
	events := []entity.MovementEvent{
		ev(t0, 10, entity.OperationSupply),
		ev(t0.Add(days(1)), -4, entity.OperationRetailSale),
	}

	res := velocity.Estimate(events, t0, t0.Add(days(2)))
	assert.True(t, res.RatePerDay.Equal(decimal.NewFromInt(2)),
		"velocidad esperada 2.00, obtenida %s", res.RatePerDay)
}

// TestEstimate_InvarianteAnteOrden la entrada puede llegar desordenada:
// el resultado debe ser idéntico para cualquier permutación.
func TestEstimate_InvarianteAnteOrden(t *testing.T) {
	a := ev(t0, 10, entity.OperationSupply)
	b := ev(t0.Add(days(1)), -4, entity.OperationRetailSale)
	c := ev(t0.Add(days(3)), -2, entity.OperationRetailSale)
	end := t0.Add(days(10))

	base := velocity.Estimate([]entity.MovementEvent{a, b, c}, t0, end)

	permutations := [][]entity.MovementEvent{
		{a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}
	for _, p := range permutations {
		res := velocity.Estimate(p, t0, end)
		assert.True(t, res.RatePerDay.Equal(base.RatePerDay),
			"la velocidad debe ser invariante ante el orden de entrada")
	}
}

// TestEstimate_StockNuncaNegativo una salida mayor al stock reconstruido
// recorta a 0; el tiempo posterior no cuenta hasta la próxima entrada.
func TestEstimate_StockNuncaNegativo(t *testing.T) {
	events := []entity.MovementEvent{
		ev(t0, 5, entity.OperationSupply),
		// Venden 8 teniendo 5: el stock queda en 0, no en -3
		ev(t0.Add(days(1)), -8, entity.OperationRetailSale),
	}

	// Del día 1 al corte (día 11) no hay stock: solo cuenta 1 día
	res := velocity.Estimate(events, t0, t0.Add(days(11)))
	assert.True(t, res.RatePerDay.Equal(decimal.NewFromInt(8)),
		"demanda 8 en 1 día con stock: velocidad 8.00, obtenida %s", res.RatePerDay)
}

// TestEstimate_SalidasNoDetalleNoCuentanDemanda mermas y traslados mueven el
// stock pero no suman unidades de demanda.
func TestEstimate_SalidasNoDetalleNoCuentanDemanda(t *testing.T) {
	events := []entity.MovementEvent{
		ev(t0, 10, entity.OperationSupply),
		ev(t0.Add(days(1)), -3, entity.OperationLoss),
		ev(t0.Add(days(2)), -2, entity.OperationRetailSale),
	}

	// 4 días con stock (t0 → corte en día 4, stock siempre > 0), demanda solo 2
	res := velocity.Estimate(events, t0, t0.Add(days(4)))
	assert.True(t, res.RatePerDay.Equal(decimal.RequireFromString("0.5")),
		"solo la venta al detalle cuenta: 2/4 = 0.50, obtenida %s", res.RatePerDay)
}

// TestEstimate_RedondeoADosDecimales la velocidad se redondea a 2 decimales.
func TestEstimate_RedondeoADosDecimales(t *testing.T) {
	events := []entity.MovementEvent{
		ev(t0, 10, entity.OperationSupply),
		ev(t0.Add(days(3)), -1, entity.OperationRetailSale),
	}

	// 1 unidad en 3 días = 0.333... → 0.33
	res := velocity.Estimate(events, t0, t0.Add(days(3)))
	assert.True(t, res.RatePerDay.Equal(decimal.RequireFromString("0.33")),
		"esperado 0.33, obtenido %s", res.RatePerDay)
}

// TestEstimate_IdentidadDeLaPrimeraFila la categoría y el permalink del
// artículo salen de la primera fila en orden cronológico.
func TestEstimate_IdentidadDeLaPrimeraFila(t *testing.T) {
	first := ev(t0, 10, entity.OperationSupply)
	first.CategoryID = "cat-1"
	first.CategoryName = "Calzado"
	first.ItemHref = "https://sklad/entity/product/item-1"

	second := ev(t0.Add(days(1)), -4, entity.OperationRetailSale)
	second.CategoryID = "cat-otra"

	// Entrada desordenada a propósito: debe ganar la fila más antigua
	res := velocity.Estimate([]entity.MovementEvent{second, first}, t0, t0.Add(days(2)))

	require.Equal(t, "cat-1", res.CategoryID)
	assert.Equal(t, "Calzado", res.CategoryName)
	assert.Equal(t, "item-1", res.ItemID)
	assert.Equal(t, "https://sklad/entity/product/item-1", res.ItemHref)
}

// TestEstimate_SinTiempoConStock todos los eventos en el mismo instante del
// corte: no hay intervalo con stock, la velocidad es 0 (no se divide entre 0).
func TestEstimate_SinTiempoConStock(t *testing.T) {
	end := t0
	events := []entity.MovementEvent{
		ev(t0, 10, entity.OperationSupply),
		ev(t0, -10, entity.OperationRetailSale),
	}

	res := velocity.Estimate(events, t0, end)
	assert.True(t, res.RatePerDay.IsZero())
}
