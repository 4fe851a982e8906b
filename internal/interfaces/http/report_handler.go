package http

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/rentabilidad-api/internal/application/report"
	"github.com/jhoicas/rentabilidad-api/internal/domain"
	"github.com/jhoicas/rentabilidad-api/pkg/logger"
)

const (
	dateLayout  = "2006-01-02"
	contentXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// statusClientClosedRequest código estilo nginx para "el cliente canceló";
	// distingue la cancelación cooperativa de un fallo genérico.
	statusClientClosedRequest = 499
)

// ReportHandler maneja las peticiones HTTP del reporte de rentabilidad (protegido).
type ReportHandler struct {
	buildUC  *report.BuildReportUseCase
	renderer report.GridRenderer
	log      *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(buildUC *report.BuildReportUseCase, renderer report.GridRenderer, log *logger.Logger) *ReportHandler {
	return &ReportHandler{buildUC: buildUC, renderer: renderer, log: log}
}

// Generate godoc
// @Summary      Generar reporte de rentabilidad
// @Description  Construye el reporte (rentabilidad + velocidad de venta + pronóstico)
//
//	y lo devuelve como archivo XLSX descargable.
//
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  dto.ProfitabilityReportRequest  true  "start_date, end_date, store_id, category_ids, planning_days"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      499  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/profitability [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.ProfitabilityReportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválido (YYYY-MM-DD)"})
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválido (YYYY-MM-DD)"})
	}
	if end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date debe ser mayor o igual a start_date"})
	}

	grid, err := h.buildUC.BuildReport(c.Context(), report.BuildParams{
		Start:        start,
		End:          end,
		LocationID:   in.StoreID,
		CategoryIDs:  in.CategoryIDs,
		PlanningDays: in.PlanningDays,
		Grouped:      in.Grouped,
	})
	if err != nil {
		return h.mapBuildError(c, err)
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(grid, &buf); err != nil {
		h.log.Error().Err(err).Msg("render del reporte XLSX")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RENDER", Message: "no se pudo generar el archivo"})
	}

	filename := fmt.Sprintf("reporte_rentabilidad_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, contentXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// Cancel godoc
// @Summary      Cancelar el build de reporte en curso
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      202  {object}  map[string]string
// @Router       /api/reports/cancel [post]
func (h *ReportHandler) Cancel(c *fiber.Ctx) error {
	h.buildUC.Token().Cancel()
	h.log.Info().Str("build_id", h.buildUC.Token().BuildID()).Msg("cancelación de reporte solicitada")
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "cancelación registrada"})
}

// mapBuildError traduce los errores del build a la respuesta HTTP:
// sin datos -> 404, cancelado -> 499, upstream o genérico -> 500 con detalle.
func (h *ReportHandler) mapBuildError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNoData):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_DATA", Message: "no hay datos para formar el reporte con los parámetros seleccionados"})
	case errors.Is(err, domain.ErrCancelled):
		return c.Status(statusClientClosedRequest).JSON(dto.ErrorResponse{Code: "CANCELLED", Message: "la generación del reporte fue cancelada"})
	case errors.Is(err, domain.ErrUpstream):
		var upstream *domain.UpstreamError
		msg := "plataforma de inventario no disponible"
		if errors.As(err, &upstream) {
			msg = fmt.Sprintf("error al obtener datos: estado %d. Respuesta del servidor: %s", upstream.Status, upstream.Body)
		}
		h.log.Error().Err(err).Msg("fallo upstream durante el build")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: msg})
	default:
		h.log.Error().Err(err).Msg("fallo al construir el reporte")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
