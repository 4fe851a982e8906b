// Package sklad implementa los puertos de datos del reporte contra la API
// remota de la plataforma de inventario (reporte de rentabilidad, libro de
// movimientos y catálogos). Usa net/http de la stdlib, como el resto de los
// clientes salientes del proyecto.
package sklad

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/rentabilidad-api/internal/application/report"
	"github.com/jhoicas/rentabilidad-api/internal/domain"
	"github.com/jhoicas/rentabilidad-api/internal/domain/entity"
	"github.com/jhoicas/rentabilidad-api/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa los puertos del reporte.
var (
	_ report.ProfitSource   = (*Client)(nil)
	_ report.MovementSource = (*Client)(nil)
	_ report.CatalogSource  = (*Client)(nil)
)

const momentLayout = "2006-01-02 15:04:05"

// Formatos de fecha que la plataforma usa en los momentos de operación.
var momentParseLayouts = []string{
	"2006-01-02 15:04:05.000",
	momentLayout,
	time.RFC3339,
}

// Client cliente autenticado de la API remota.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient construye el cliente. El timeout cubre cada llamada individual;
// no hay reintentos: un fetch fallido aborta el build completo.
func NewClient(cfg config.SkladConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ── ProfitSource ──────────────────────────────────────────────────────────────

// FetchProfitFactsPage pide una página del reporte de rentabilidad por
// modificación. El filtro de bodega y carpetas va en un solo parámetro
// `filter` con partes separadas por `;`.
func (c *Client) FetchProfitFactsPage(
	ctx context.Context,
	q report.ProfitQuery,
	limit, offset int,
) ([]entity.ProfitFact, int, error) {
	params := url.Values{}
	params.Set("momentFrom", q.Start.Format(momentLayout))
	params.Set("momentTo", endOfDay(q.End).Format(momentLayout))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var filterParts []string
	if q.LocationID != "" {
		filterParts = append(filterParts, "store="+c.baseURL+"/entity/store/"+q.LocationID)
	}
	for _, id := range q.CategoryIDs {
		filterParts = append(filterParts, "productFolder="+c.baseURL+"/entity/productfolder/"+id)
	}
	if len(filterParts) > 0 {
		params.Set("filter", strings.Join(filterParts, ";"))
	}

	var resp profitResponse
	if err := c.get(ctx, "report/profit/byvariant", params, &resp); err != nil {
		return nil, 0, err
	}

	facts := make([]entity.ProfitFact, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		facts = append(facts, entity.ProfitFact{
			DisplayName:    row.Assortment.Name,
			AssortmentHref: row.Assortment.Meta.Href,
			SoldQuantity:   decimal.NewFromFloat(row.SellQuantity),
			ProfitMinor:    decimal.NewFromFloat(row.Profit),
		})
	}
	return facts, resp.Meta.Size, nil
}

// ── MovementSource ────────────────────────────────────────────────────────────

// FetchMovementEvents trae el libro de movimientos de un artículo en una
// bodega. El filtro del servidor no es exacto por modificación, así que se
// re-filtra en el cliente por el UUID final del href del assortment.
func (c *Client) FetchMovementEvents(
	ctx context.Context,
	itemID, itemKind, locationID string,
	start, end time.Time,
) ([]entity.MovementEvent, error) {
	params := url.Values{}
	params.Set("momentFrom", start.Format(momentLayout))
	params.Set("momentTo", end.Format(momentLayout))

	filterParts := []string{
		itemKind + "=" + c.baseURL + "/entity/" + itemKind + "/" + itemID,
	}
	if locationID != "" {
		filterParts = append(filterParts, "store="+c.baseURL+"/entity/store/"+locationID)
	}
	params.Set("filter", strings.Join(filterParts, ";"))

	var resp turnoverResponse
	if err := c.get(ctx, "report/turnover/byoperations", params, &resp); err != nil {
		return nil, err
	}

	events := make([]entity.MovementEvent, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		if lastSegment(row.Assortment.Meta.Href) != itemID {
			continue
		}
		moment, err := parseMoment(row.Operation.Moment)
		if err != nil {
			return nil, fmt.Errorf("sklad: momento de operación %q: %w", row.Operation.Moment, err)
		}
		ev := entity.MovementEvent{
			ItemID:        itemID,
			ItemHref:      row.Assortment.Meta.Href,
			Moment:        moment,
			Quantity:      decimal.NewFromFloat(row.Quantity),
			OperationKind: row.Operation.Meta.Type,
			LocationID:    locationID,
		}
		if row.Assortment.ProductFolder != nil {
			ev.CategoryID = lastSegment(row.Assortment.ProductFolder.Meta.Href)
			ev.CategoryName = row.Assortment.ProductFolder.Name
		}
		events = append(events, ev)
	}
	return events, nil
}

// ── CatalogSource ─────────────────────────────────────────────────────────────

// FetchCategoriesPage pide una página de carpetas de producto. El id del padre
// se extrae del último segmento del href de la carpeta contenedora.
func (c *Client) FetchCategoriesPage(ctx context.Context, limit, offset int) ([]entity.CategoryRecord, int, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var resp folderResponse
	if err := c.get(ctx, "entity/productfolder", params, &resp); err != nil {
		return nil, 0, err
	}

	records := make([]entity.CategoryRecord, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		rec := entity.CategoryRecord{ID: row.ID, Name: row.Name}
		if row.ProductFolder != nil {
			rec.ParentID = lastSegment(row.ProductFolder.Meta.Href)
		}
		records = append(records, rec)
	}
	return records, resp.Meta.Size, nil
}

// FetchStores lista las bodegas de la cuenta (para el selector del formulario).
func (c *Client) FetchStores(ctx context.Context) ([]report.StoreRecord, error) {
	var resp storeResponse
	if err := c.get(ctx, "entity/store", nil, &resp); err != nil {
		return nil, err
	}
	stores := make([]report.StoreRecord, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		stores = append(stores, report.StoreRecord{ID: row.ID, Name: row.Name})
	}
	return stores, nil
}

// ── Transporte común ──────────────────────────────────────────────────────────

// get hace la llamada GET autenticada y deserializa el cuerpo en out.
// Un estado no 2xx se convierte en domain.UpstreamError con un fragmento del
// cuerpo para diagnóstico; no se reintenta.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	fullURL := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("sklad: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sklad: llamada HTTP a %s fallida: %w", endpoint, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("sklad: leer respuesta de %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.UpstreamError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     bodySnippet(rawBody),
		}
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("sklad: deserializar respuesta de %s: %w", endpoint, err)
	}
	return nil
}

func bodySnippet(body []byte) string {
	const max = 512
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max]
	}
	return s
}

// lastSegment devuelve el último segmento de un href (el UUID de la entidad).
func lastSegment(href string) string {
	if href == "" {
		return ""
	}
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}

func parseMoment(s string) (time.Time, error) {
	for _, layout := range momentParseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("formato de fecha no reconocido")
}

// endOfDay lleva la fecha al corte 23:59:59, como espera momentTo.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
