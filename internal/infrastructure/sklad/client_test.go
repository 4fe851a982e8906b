package sklad_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rentabilidad-api/internal/application/report"
	"github.com/jhoicas/rentabilidad-api/internal/domain"
	"github.com/jhoicas/rentabilidad-api/internal/domain/entity"
	"github.com/jhoicas/rentabilidad-api/internal/infrastructure/sklad"
	"github.com/jhoicas/rentabilidad-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newTestClient(t *testing.T, handler http.HandlerFunc) (*sklad.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := sklad.NewClient(config.SkladConfig{
		BaseURL:  srv.URL,
		Token:    "test-token",
		PageSize: 1000,
		Timeout:  5 * time.Second,
	})
	return client, srv
}

// TestFetchProfitFactsPage_RequestYParseo verifica el header Bearer, los
// parámetros de la consulta (momentos, filtro combinado con `;`) y el mapeo
// de las filas, incluyendo el total de meta.size para la paginación.
func TestFetchProfitFactsPage_RequestYParseo(t *testing.T) {
	var gotAuth, gotFilter, gotMomentTo string
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/report/profit/byvariant", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotFilter = r.URL.Query().Get("filter")
		gotMomentTo = r.URL.Query().Get("momentTo")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"meta": {"size": 42},
			"rows": [{
				"assortment": {"meta": {"href": "https://sklad/entity/product/p1"}, "name": "Tenis"},
				"sellQuantity": 4,
				"profit": 150050
			}]
		}`))
	})

	q := report.ProfitQuery{
		Start:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		LocationID:  "store-1",
		CategoryIDs: []string{"folder-1"},
	}
	facts, total, err := client.FetchProfitFactsPage(context.Background(), q, 1000, 0)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "2025-03-31 23:59:59", gotMomentTo, "momentTo debe ir al corte del día")
	assert.Equal(t,
		"store="+srv.URL+"/entity/store/store-1;productFolder="+srv.URL+"/entity/productfolder/folder-1",
		gotFilter, "las partes del filtro van unidas por punto y coma")

	assert.Equal(t, 42, total)
	require.Len(t, facts, 1)
	assert.Equal(t, "Tenis", facts[0].DisplayName)
	assert.True(t, facts[0].SoldQuantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, facts[0].ProfitMinor.Equal(decimal.NewFromInt(150050)))
}

// TestFetchMovementEvents_RefiltradoPorHref el filtro del servidor no es
// exacto por modificación: las filas de otros artículos se descartan por el
// UUID final del href del assortment.
func TestFetchMovementEvents_RefiltradoPorHref(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/report/turnover/byoperations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"rows": [
				{
					"assortment": {
						"meta": {"href": "https://sklad/entity/variant/v1"},
						"productFolder": {"meta": {"href": "https://sklad/entity/productfolder/c1"}, "name": "Calzado"}
					},
					"quantity": 10,
					"operation": {"meta": {"type": "supply"}, "moment": "2025-03-01 10:30:00.000"}
				},
				{
					"assortment": {"meta": {"href": "https://sklad/entity/variant/v2"}},
					"quantity": -1,
					"operation": {"meta": {"type": "retaildemand"}, "moment": "2025-03-02 11:00:00.000"}
				}
			]
		}`))
	})

	events, err := client.FetchMovementEvents(context.Background(),
		"v1", entity.ItemKindVariant, "store-1",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, events, 1, "la fila de v2 debe descartarse")
	ev := events[0]
	assert.Equal(t, "v1", ev.ItemID)
	assert.Equal(t, entity.OperationSupply, ev.OperationKind)
	assert.Equal(t, "c1", ev.CategoryID)
	assert.Equal(t, "Calzado", ev.CategoryName)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), ev.Moment)
	assert.True(t, ev.Quantity.Equal(decimal.NewFromInt(10)))
}

// TestFetchCategoriesPage_PadreDelHref el id del padre se extrae del último
// segmento del href de la carpeta contenedora; sin carpeta el registro es raíz.
func TestFetchCategoriesPage_PadreDelHref(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/entity/productfolder", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"meta": {"size": 2},
			"rows": [
				{"id": "r1", "name": "Ropa"},
				{"id": "c1", "name": "Calzado", "productFolder": {"meta": {"href": "https://sklad/entity/productfolder/r1"}}}
			]
		}`))
	})

	records, total, err := client.FetchCategoriesPage(context.Background(), 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, records, 2)
	assert.Equal(t, "", records[0].ParentID)
	assert.Equal(t, "r1", records[1].ParentID)
}

// TestGet_EstadoNoExitoso un estado no 2xx se convierte en UpstreamError con
// el estado y un fragmento del cuerpo, clasificable con errors.Is/As.
func TestGet_EstadoNoExitoso(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"error":"token inválido"}]}`))
	})

	_, _, err := client.FetchCategoriesPage(context.Background(), 1000, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.Status)
	assert.Contains(t, upstream.Body, "token inválido")
}

// TestFetchStores_Listado mapeo básico del catálogo de bodegas.
func TestFetchStores_Listado(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/entity/store", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rows": [{"id": "s1", "name": "Bodega Principal"}]}`))
	})

	stores, err := client.FetchStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, report.StoreRecord{ID: "s1", Name: "Bodega Principal"}, stores[0])
}
