// Package catalog expone los catálogos de la plataforma remota (bodegas y
// bosque de categorías) para el formulario del cliente.
package catalog

import (
	"context"

	"github.com/jhoicas/rentabilidad-api/internal/application/report"
	"github.com/jhoicas/rentabilidad-api/internal/domain/category"
	"github.com/jhoicas/rentabilidad-api/internal/domain/entity"
)

// UseCase lee los catálogos a través del puerto de la plataforma.
type UseCase struct {
	source   report.CatalogSource
	pageSize int
}

// NewUseCase construye el caso de uso.
func NewUseCase(source report.CatalogSource, pageSize int) *UseCase {
	return &UseCase{source: source, pageSize: pageSize}
}

// Stores devuelve las bodegas de la cuenta.
func (uc *UseCase) Stores(ctx context.Context) ([]report.StoreRecord, error) {
	return uc.source.FetchStores(ctx)
}

// CategoryForest trae todas las carpetas de producto (paginado) y devuelve
// el bosque ordenado por nombre.
func (uc *UseCase) CategoryForest(ctx context.Context) ([]*entity.CategoryNode, error) {
	var records []entity.CategoryRecord
	offset := 0
	for {
		page, total, err := uc.source.FetchCategoriesPage(ctx, uc.pageSize, offset)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
		if len(records) >= total || len(page) == 0 {
			break
		}
		offset += uc.pageSize
	}
	return category.BuildForest(records), nil
}

// Subcategories devuelve los hijos directos de una categoría, o nil si el id
// no está en el bosque.
func (uc *UseCase) Subcategories(ctx context.Context, categoryID string) ([]*entity.CategoryNode, error) {
	forest, err := uc.CategoryForest(ctx)
	if err != nil {
		return nil, err
	}
	if node := findNode(forest, categoryID); node != nil {
		return node.Children, nil
	}
	return nil, nil
}

func findNode(forest []*entity.CategoryNode, id string) *entity.CategoryNode {
	for _, root := range forest {
		if root.ID == id {
			return root
		}
		if found := findNode(root.Children, id); found != nil {
			return found
		}
	}
	return nil
}
