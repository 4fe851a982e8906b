package entity

// CategoryRecord registro plano de categoría tal como llega de la plataforma remota.
type CategoryRecord struct {
	ID       string
	Name     string
	ParentID string // vacío si es raíz
}

// CategoryNode nodo del bosque de categorías. Parent es solo para consulta;
// la propiedad del nodo la tiene la lista de hijos de su padre (o la raíz del bosque).
type CategoryNode struct {
	ID       string
	Name     string
	Children []*CategoryNode
	Parent   *CategoryNode
}
