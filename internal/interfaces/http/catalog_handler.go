package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corretor-landing-api/internal/application/dto"
	"github.com/jhoicas/corretor-landing-api/internal/domain/catalog"
)

// CatalogHandler catálogo de planes (informativo).
type CatalogHandler struct {
	plans *catalog.PlanCatalog
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(plans *catalog.PlanCatalog) *CatalogHandler {
	return &CatalogHandler{plans: plans}
}

// Plans godoc
// @Summary      Catálogo de planes
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.PlanResponse
// @Router       /api/plans [get]
func (h *CatalogHandler) Plans(c *fiber.Ctx) error {
	list := h.plans.List()
	out := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PlanFromEntity(p))
	}
	return c.JSON(out)
}
