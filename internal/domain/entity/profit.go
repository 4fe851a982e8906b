package entity

import "github.com/shopspring/decimal"

// Tipo de artículo referenciado por una fila de rentabilidad.
const (
	ItemKindProduct = "product"
	ItemKindVariant = "variant"
)

var hundred = decimal.NewFromInt(100)

// ProfitFact fila de rentabilidad por artículo del reporte remoto
// (entrada de solo lectura para el núcleo).
type ProfitFact struct {
	DisplayName    string
	AssortmentHref string // href del producto o modificación; de aquí se resuelve el id
	SoldQuantity   decimal.Decimal
	// ProfitMinor ganancia en unidades menores (centavos), tal como la entrega
	// la plataforma; se divide entre 100 al presentar.
	ProfitMinor decimal.Decimal
}

// Profit devuelve la ganancia en unidades mayores, redondeada a 2 decimales.
func (f ProfitFact) Profit() decimal.Decimal {
	return f.ProfitMinor.Div(hundred).Round(2)
}
