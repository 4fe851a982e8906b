package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/rentabilidad-api/internal/domain/category"
	"github.com/jhoicas/rentabilidad-api/internal/domain/entity"
	"github.com/jhoicas/rentabilidad-api/internal/domain/velocity"
)

// VelocityLookup resuelve la velocidad calculada de un artículo.
// found == false cuando el libro de movimientos no devolvió datos.
type VelocityLookup func(itemID string) (res velocity.Result, found bool)

// AssembleOptions variantes del ensamblado.
type AssembleOptions struct {
	PlanningDays int
	// SortDescending ordena la grilla descendente por la llave de ruta de
	// categoría (variante simple); la variante agrupada usa ascendente.
	// Las dos direcciones existen en producción, por eso es configurable.
	SortDescending bool
	// Grouped intercala pseudo-filas de encabezado por nivel de categoría.
	Grouped bool
}

// Assembler une las filas de rentabilidad con la velocidad calculada y la
// ruta de categoría, y produce la grilla ordenada del reporte.
type Assembler struct{}

// NewAssembler construye el ensamblador.
func NewAssembler() *Assembler { return &Assembler{} }

// Assemble produce la grilla final. La pertenencia a categoría se descubre de
// forma transitiva: el id de categoría viene del join con los movimientos
// (lookup de velocidad), no de la fila de rentabilidad. token se consulta por
// fila; si la cancelación llega a mitad del ensamblado se descarta la grilla
// parcial y se devuelve domain.ErrCancelled.
func (a *Assembler) Assemble(
	facts []entity.ProfitFact,
	lookup VelocityLookup,
	forest []*entity.CategoryNode,
	opts AssembleOptions,
	token *CancellationToken,
) (*entity.ReportGrid, error) {
	planning := decimal.NewFromInt(int64(opts.PlanningDays))

	rows := make([]entity.ReportRow, 0, len(facts))
	for _, fact := range facts {
		if err := token.Check(); err != nil {
			return nil, err
		}

		row := entity.ReportRow{
			DisplayName:  fact.DisplayName,
			SoldQuantity: fact.SoldQuantity,
			Profit:       fact.Profit(),
			Velocity:     decimal.Zero,
		}

		_, itemID, ok := ResolveIdentity(fact.AssortmentHref)
		if !ok {
			row.VelocityStatus = entity.VelocityIdentityError
			rows = append(rows, row)
			continue
		}
		row.ItemID = itemID

		vel, found := lookup(itemID)
		if !found {
			row.VelocityStatus = entity.VelocityNoData
			rows = append(rows, row)
			continue
		}

		row.VelocityStatus = entity.VelocityOK
		row.Velocity = vel.RatePerDay
		row.ItemHref = vel.ItemHref
		forecast := vel.RatePerDay.Mul(planning)
		row.Forecast = &forecast

		if vel.CategoryID != "" {
			row.CategoryPath, row.CategoryIDPath = category.FindPath(forest, vel.CategoryID)
		}
		rows = append(rows, row)
	}

	sortRows(rows, opts.SortDescending)

	grid := &entity.ReportGrid{SuggestedTitle: SuggestTitle(rows)}
	for _, row := range rows {
		if len(row.CategoryPath) > grid.MaxDepth {
			grid.MaxDepth = len(row.CategoryPath)
		}
	}

	var prevIDPath []string
	for i := range rows {
		if err := token.Check(); err != nil {
			return nil, err
		}
		row := &rows[i]
		if opts.Grouped {
			grid.Rows = append(grid.Rows, headerRows(prevIDPath, row)...)
			prevIDPath = row.CategoryIDPath
		}
		grid.Rows = append(grid.Rows, entity.GridRow{Kind: entity.GridRowItem, Item: row})
	}

	return grid, nil
}

// sortRows ordena por la ruta de ids unida como una sola llave.
func sortRows(rows []entity.ReportRow, descending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a := strings.Join(rows[i].CategoryIDPath, "/")
		b := strings.Join(rows[j].CategoryIDPath, "/")
		if descending {
			return a > b
		}
		return a < b
	})
}

// headerRows emite un pseudo-encabezado por cada nivel de categoría recién
// entrado respecto a la fila anterior, omitiendo el nivel raíz. Un prefijo
// que no cambió nunca repite encabezado.
func headerRows(prevIDPath []string, row *entity.ReportRow) []entity.GridRow {
	common := 0
	for common < len(prevIDPath) && common < len(row.CategoryIDPath) &&
		prevIDPath[common] == row.CategoryIDPath[common] {
		common++
	}

	var headers []entity.GridRow
	start := common
	if start < 1 {
		start = 1 // el nivel raíz no lleva encabezado
	}
	for level := start; level < len(row.CategoryPath); level++ {
		headers = append(headers, entity.GridRow{
			Kind:  entity.GridRowHeader,
			Level: level,
			Label: row.CategoryPath[level],
		})
	}
	return headers
}

// maxTitleRunes límite de Excel para el nombre de una hoja.
const maxTitleRunes = 31

// SuggestTitle deriva el título sugerido de la hoja a partir de los nombres
// distintos de categoría de segundo nivel presentes en las filas, en orden
// lexicográfico, con tope de tres nombres y truncado al límite de Excel.
// Función pura sobre las filas ensambladas para poder probarla sin render.
func SuggestTitle(rows []entity.ReportRow) string {
	seen := make(map[string]struct{})
	var names []string
	for _, row := range rows {
		if len(row.CategoryPath) < 2 {
			continue
		}
		name := row.CategoryPath[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "Rentabilidad"
	}
	sort.Strings(names)
	if len(names) > 3 {
		names = names[:3]
	}
	title := strings.Join(names, ", ")
	runes := []rune(title)
	if len(runes) > maxTitleRunes {
		title = string(runes[:maxTitleRunes])
	}
	return title
}
