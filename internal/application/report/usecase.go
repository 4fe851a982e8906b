package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rentabilidad-api/internal/domain"
	"github.com/jhoicas/rentabilidad-api/internal/domain/category"
	"github.com/jhoicas/rentabilidad-api/internal/domain/entity"
	"github.com/jhoicas/rentabilidad-api/internal/domain/velocity"
	"github.com/jhoicas/rentabilidad-api/pkg/logger"
)

// BuildParams parámetros de un build de reporte de rentabilidad.
type BuildParams struct {
	Start        time.Time
	End          time.Time
	LocationID   string
	CategoryIDs  []string
	PlanningDays int
	// Grouped anula la variante configurada cuando no es nil.
	Grouped *bool
}

// Settings comportamiento por defecto del usecase (viene de la configuración).
type Settings struct {
	PageSize       int
	VelocityFrom   time.Time // inicio fijo de la ventana del libro de movimientos
	PlanningDays   int
	SortDescending bool
	Grouped        bool
}

// BuildReportUseCase orquesta un build completo: catálogo de categorías,
// filas de rentabilidad paginadas, velocidad por artículo y ensamblado final.
// Un solo build lógico corre a la vez; el CancellationToken es el único
// estado mutable compartido con el exterior.
type BuildReportUseCase struct {
	profits   ProfitSource
	movements MovementSource
	catalog   CatalogSource
	assembler *Assembler
	token     *CancellationToken
	settings  Settings
	log       *logger.Logger
}

// NewBuildReportUseCase construye el caso de uso.
func NewBuildReportUseCase(
	profits ProfitSource,
	movements MovementSource,
	catalog CatalogSource,
	token *CancellationToken,
	settings Settings,
	log *logger.Logger,
) *BuildReportUseCase {
	return &BuildReportUseCase{
		profits:   profits,
		movements: movements,
		catalog:   catalog,
		assembler: NewAssembler(),
		token:     token,
		settings:  settings,
		log:       log,
	}
}

// Token expone el token compartido (el transporte lo usa para cancelar).
func (uc *BuildReportUseCase) Token() *CancellationToken { return uc.token }

// BuildReport ejecuta un build. Errores de fetch abortan de inmediato sin
// entrega parcial; la cancelación devuelve domain.ErrCancelled y descarta
// todo lo acumulado. Cero filas utilizables devuelve domain.ErrNoData.
func (uc *BuildReportUseCase) BuildReport(ctx context.Context, params BuildParams) (*entity.ReportGrid, error) {
	buildID := uuid.New().String()
	// Reset de bandera e inicio de build en una sola transición
	uc.token.BeginBuild(buildID)

	log := uc.log.With().Str("build_id", buildID).Logger()
	log.Info().
		Time("start", params.Start).
		Time("end", params.End).
		Str("location_id", params.LocationID).
		Msg("iniciando build de reporte de rentabilidad")

	forest, err := uc.fetchForest(ctx)
	if err != nil {
		return nil, err
	}

	facts, err := uc.fetchProfitFacts(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(facts) == 0 {
		log.Info().Msg("la selección no tiene filas de rentabilidad")
		return nil, domain.ErrNoData
	}

	velocities, err := uc.computeVelocities(ctx, params, facts)
	if err != nil {
		return nil, err
	}

	opts := AssembleOptions{
		PlanningDays:   params.PlanningDays,
		SortDescending: uc.settings.SortDescending,
		Grouped:        uc.settings.Grouped,
	}
	if opts.PlanningDays <= 0 {
		opts.PlanningDays = uc.settings.PlanningDays
	}
	if params.Grouped != nil {
		opts.Grouped = *params.Grouped
		// La variante agrupada ordena ascendente; la simple, según configuración
		if opts.Grouped {
			opts.SortDescending = false
		}
	}

	lookup := func(itemID string) (velocity.Result, bool) {
		res, ok := velocities[itemID]
		return res, ok
	}
	grid, err := uc.assembler.Assemble(facts, lookup, forest, opts, uc.token)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("rows", len(grid.Rows)).
		Int("max_depth", grid.MaxDepth).
		Str("title", grid.SuggestedTitle).
		Msg("build de reporte completado")
	return grid, nil
}

// fetchForest trae el catálogo completo de categorías (paginado) y arma el bosque.
func (uc *BuildReportUseCase) fetchForest(ctx context.Context) ([]*entity.CategoryNode, error) {
	var records []entity.CategoryRecord
	offset := 0
	for {
		if err := uc.token.Check(); err != nil {
			return nil, err
		}
		page, total, err := uc.catalog.FetchCategoriesPage(ctx, uc.settings.PageSize, offset)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
		if len(records) >= total || len(page) == 0 {
			break
		}
		offset += uc.settings.PageSize
	}
	return category.BuildForest(records), nil
}

// fetchProfitFacts pagina el reporte de rentabilidad hasta reunir el total.
func (uc *BuildReportUseCase) fetchProfitFacts(ctx context.Context, params BuildParams) ([]entity.ProfitFact, error) {
	q := ProfitQuery{
		Start:       params.Start,
		End:         params.End,
		LocationID:  params.LocationID,
		CategoryIDs: params.CategoryIDs,
	}
	var facts []entity.ProfitFact
	offset := 0
	for {
		if err := uc.token.Check(); err != nil {
			return nil, err
		}
		page, total, err := uc.profits.FetchProfitFactsPage(ctx, q, uc.settings.PageSize, offset)
		if err != nil {
			return nil, err
		}
		facts = append(facts, page...)
		if len(facts) >= total || len(page) == 0 {
			break
		}
		offset += uc.settings.PageSize
	}
	return facts, nil
}

// computeVelocities trae el libro de movimientos de cada artículo resoluble y
// calcula su velocidad. Un artículo sin movimientos no entra al mapa: el
// ensamblador lo marca como "sin datos".
func (uc *BuildReportUseCase) computeVelocities(
	ctx context.Context,
	params BuildParams,
	facts []entity.ProfitFact,
) (map[string]velocity.Result, error) {
	periodEnd := endOfDay(params.End)
	velocities := make(map[string]velocity.Result, len(facts))
	seen := make(map[string]struct{}, len(facts))

	for _, fact := range facts {
		if err := uc.token.Check(); err != nil {
			return nil, err
		}
		kind, itemID, ok := ResolveIdentity(fact.AssortmentHref)
		if !ok {
			continue
		}
		if _, done := seen[itemID]; done {
			continue
		}
		seen[itemID] = struct{}{}
		events, err := uc.movements.FetchMovementEvents(
			ctx, itemID, kind, params.LocationID, uc.settings.VelocityFrom, periodEnd)
		if err != nil {
			return nil, err
		}
		if len(events) == 0 {
			continue
		}
		velocities[itemID] = velocity.Estimate(events, uc.settings.VelocityFrom, periodEnd)
	}
	return velocities, nil
}

// endOfDay lleva la fecha al corte 23:59:59 del mismo día, como hace la
// plataforma remota con momentTo.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
