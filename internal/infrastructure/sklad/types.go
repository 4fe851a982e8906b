package sklad

// Estructuras internas del protocolo JSON de la plataforma de inventario.
// Solo se mapean los campos que el reporte consume.

type listMeta struct {
	Size int `json:"size"`
}

type entityMeta struct {
	Href string `json:"href"`
	Type string `json:"type"`
}

type entityRef struct {
	Meta entityMeta `json:"meta"`
	Name string     `json:"name"`
}

// ── report/profit/byvariant ───────────────────────────────────────────────────

type profitResponse struct {
	Meta listMeta    `json:"meta"`
	Rows []profitRow `json:"rows"`
}

type profitRow struct {
	Assortment   entityRef `json:"assortment"`
	SellQuantity float64   `json:"sellQuantity"`
	// Profit viene en unidades menores (centavos)
	Profit float64 `json:"profit"`
}

// ── report/turnover/byoperations ──────────────────────────────────────────────

type turnoverResponse struct {
	Rows []turnoverRow `json:"rows"`
}

type turnoverRow struct {
	Assortment turnoverAssortment `json:"assortment"`
	Quantity   float64            `json:"quantity"`
	Operation  turnoverOperation  `json:"operation"`
}

type turnoverAssortment struct {
	Meta          entityMeta `json:"meta"`
	Name          string     `json:"name"`
	ProductFolder *entityRef `json:"productFolder"`
}

type turnoverOperation struct {
	Meta   entityMeta `json:"meta"`
	Moment string     `json:"moment"`
}

// ── entity/productfolder ──────────────────────────────────────────────────────

type folderResponse struct {
	Meta listMeta    `json:"meta"`
	Rows []folderRow `json:"rows"`
}

type folderRow struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	ProductFolder *entityRef `json:"productFolder"` // carpeta padre; nil si es raíz
}

// ── entity/store ──────────────────────────────────────────────────────────────

type storeResponse struct {
	Rows []storeRow `json:"rows"`
}

type storeRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
