package dto

// ErrorResponse respuesta de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProfitabilityReportRequest parámetros del reporte de rentabilidad.
type ProfitabilityReportRequest struct {
	StartDate    string   `json:"start_date"`    // YYYY-MM-DD
	EndDate      string   `json:"end_date"`      // YYYY-MM-DD
	StoreID      string   `json:"store_id"`      // bodega / punto de venta
	CategoryIDs  []string `json:"category_ids"`  // filtro opcional de carpetas de producto
	PlanningDays int      `json:"planning_days"` // horizonte del pronóstico; 0 = default
	Grouped      *bool    `json:"grouped"`       // nil = variante configurada
}

// StoreDTO bodega del catálogo remoto.
type StoreDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryDTO nodo del bosque de categorías para el selector del cliente.
type CategoryDTO struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Children []CategoryDTO `json:"children"`
}
