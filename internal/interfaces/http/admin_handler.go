package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/corretor-landing-api/internal/application/dto"
	"github.com/jhoicas/corretor-landing-api/internal/application/entitlement"
	"github.com/jhoicas/corretor-landing-api/internal/application/landing"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/pkg/logger"
)

// AdminHandler gestión de roles y planes, y consulta de configuraciones ajenas.
// Las rutas ya pasan por RequireRole/RequireFeature; el resolver vuelve a exigir admin
// con los roles persistidos.
type AdminHandler struct {
	entitlements *entitlement.Resolver
	configs      *landing.ConfigResolver
	log          *logger.Logger
}

// NewAdminHandler construye el handler.
func NewAdminHandler(entitlements *entitlement.Resolver, configs *landing.ConfigResolver, log *logger.Logger) *AdminHandler {
	return &AdminHandler{entitlements: entitlements, configs: configs, log: log}
}

// GrantRole POST /api/admin/accounts/:id/roles/:role
func (h *AdminHandler) GrantRole(c *fiber.Ctx) error {
	id, ok := accountParam(c)
	if !ok {
		return nil
	}
	role := entity.Role(c.Params("role"))
	if err := h.entitlements.GrantRole(c.UserContext(), GetAccountID(c), id, role); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RevokeRole DELETE /api/admin/accounts/:id/roles/:role
func (h *AdminHandler) RevokeRole(c *fiber.Ctx) error {
	id, ok := accountParam(c)
	if !ok {
		return nil
	}
	role := entity.Role(c.Params("role"))
	if err := h.entitlements.RevokeRole(c.UserContext(), GetAccountID(c), id, role); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangePlan PUT /api/admin/accounts/:id/plan
func (h *AdminHandler) ChangePlan(c *fiber.Ctx) error {
	id, ok := accountParam(c)
	if !ok {
		return nil
	}
	var in dto.ChangePlanRequest
	if err := c.BodyParser(&in); err != nil || in.PlanID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "plan_id es requerido"})
	}
	if err := h.entitlements.ChangePlan(c.UserContext(), GetAccountID(c), id, entity.PlanID(in.PlanID)); err != nil {
		return writeError(c, h.log, err)
	}
	caps, err := h.entitlements.Resolve(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(caps)
}

// GetConfig GET /api/admin/accounts/:id/config (moderación).
func (h *AdminHandler) GetConfig(c *fiber.Ctx) error {
	id, ok := accountParam(c)
	if !ok {
		return nil
	}
	cfg, err := h.configs.Resolve(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(cfg)
}

// accountParam valida el :id de la ruta; si es inválido ya respondió 400.
func accountParam(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if err := uuid.Validate(id); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de cuenta inválido"})
		return "", false
	}
	return id, true
}
