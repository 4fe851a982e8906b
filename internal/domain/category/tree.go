// Package category construye el bosque de categorías de producto a partir
// del listado plano de la plataforma remota y resuelve rutas dentro de él.
package category

import (
	"sort"

	"github.com/jhoicas/rentabilidad-api/internal/domain/entity"
)

// BuildForest arma el bosque en dos pasadas: primero crea un nodo por registro,
// después engancha cada nodo a su padre. Un ParentID que no resuelve a un id
// conocido degrada el nodo a raíz en silencio (comportamiento heredado de la
// plataforma; ver DESIGN.md). Las raíces y cada lista de hijos quedan ordenadas
// lexicográficamente por nombre, estable y sensible a mayúsculas.
func BuildForest(records []entity.CategoryRecord) []*entity.CategoryNode {
	byID := make(map[string]*entity.CategoryNode, len(records))
	for _, r := range records {
		byID[r.ID] = &entity.CategoryNode{ID: r.ID, Name: r.Name}
	}

	var roots []*entity.CategoryNode
	for _, r := range records {
		node := byID[r.ID]
		if r.ParentID != "" {
			if parent, ok := byID[r.ParentID]; ok {
				node.Parent = parent
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortByName(roots)
	for _, node := range byID {
		sortByName(node.Children)
	}
	return roots
}

func sortByName(nodes []*entity.CategoryNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Name < nodes[j].Name
	})
}

// FindPath busca targetID en profundidad y devuelve la ruta de nombres e ids
// desde la raíz hasta el nodo (primer match). Si no existe, ambas rutas vacías.
func FindPath(forest []*entity.CategoryNode, targetID string) (namePath, idPath []string) {
	for _, root := range forest {
		if names, ids, ok := findPathFrom(root, targetID, nil, nil); ok {
			return names, ids
		}
	}
	return nil, nil
}

func findPathFrom(node *entity.CategoryNode, targetID string, names, ids []string) ([]string, []string, bool) {
	names = append(names, node.Name)
	ids = append(ids, node.ID)
	if node.ID == targetID {
		return names, ids, true
	}
	for _, child := range node.Children {
		if n, i, ok := findPathFrom(child, targetID, names, ids); ok {
			return n, i, ok
		}
	}
	return nil, nil, false
}

// FindName devuelve el nombre de la categoría targetID con el mismo recorrido
// en profundidad que FindPath, o cadena vacía si no está en el bosque.
func FindName(forest []*entity.CategoryNode, targetID string) string {
	names, _ := FindPath(forest, targetID)
	if len(names) == 0 {
		return ""
	}
	return names[len(names)-1]
}
