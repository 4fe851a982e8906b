package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentabilidad-api/internal/application/catalog"
	"github.com/jhoicas/rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/rentabilidad-api/internal/domain/entity"
)

// CatalogHandler expone bodegas y categorías para el formulario del cliente.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListStores godoc
// @Summary      Listar bodegas
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StoreDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/catalog/stores [get]
func (h *CatalogHandler) ListStores(c *fiber.Ctx) error {
	stores, err := h.uc.Stores(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: err.Error()})
	}
	out := make([]dto.StoreDTO, 0, len(stores))
	for _, s := range stores {
		out = append(out, dto.StoreDTO{ID: s.ID, Name: s.Name})
	}
	return c.JSON(out)
}

// ListCategories godoc
// @Summary      Bosque de categorías de producto
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CategoryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	forest, err := h.uc.CategoryForest(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: err.Error()})
	}
	return c.JSON(toCategoryDTOs(forest))
}

// ListSubcategories godoc
// @Summary      Hijos directos de una categoría
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id de la categoría"
// @Success      200  {array}   dto.CategoryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/catalog/categories/{id}/children [get]
func (h *CatalogHandler) ListSubcategories(c *fiber.Ctx) error {
	children, err := h.uc.Subcategories(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: err.Error()})
	}
	return c.JSON(toCategoryDTOs(children))
}

func toCategoryDTOs(nodes []*entity.CategoryNode) []dto.CategoryDTO {
	out := make([]dto.CategoryDTO, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.CategoryDTO{
			ID:       n.ID,
			Name:     n.Name,
			Children: toCategoryDTOs(n.Children),
		})
	}
	return out
}
