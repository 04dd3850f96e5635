package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/corretor-landing-api/internal/application/dto"
	"github.com/jhoicas/corretor-landing-api/internal/application/landing"
	"github.com/jhoicas/corretor-landing-api/pkg/logger"
)

// LandingHandler landing pública y editor de configuración del corretor.
type LandingHandler struct {
	resolver     *landing.ConfigResolver
	templates    *landing.TemplateRegistry
	capabilities capabilityResolver
	log          *logger.Logger
}

// NewLandingHandler construye el handler.
func NewLandingHandler(resolver *landing.ConfigResolver, templates *landing.TemplateRegistry, capabilities capabilityResolver, log *logger.Logger) *LandingHandler {
	return &LandingHandler{resolver: resolver, templates: templates, capabilities: capabilities, log: log}
}

// Public godoc
// @Summary      Landing pública del corretor
// @Description  Nunca responde error: ante fallos sirve la página mínima (fallback=true).
// @Tags         public
// @Produce      json
// @Param        id   path      string  true  "ID del corretor"
// @Success      200  {object}  entity.ResolvedConfig
// @Router       /api/public/corretores/{id}/landing [get]
func (h *LandingHandler) Public(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := uuid.Validate(id); err != nil {
		h.log.Debug().Str("account_id", id).Msg("id de corretor inválido, sirviendo página mínima")
		return c.JSON(landing.MinimalConfig(id))
	}
	return c.JSON(h.resolver.ResolvePublic(c.UserContext(), id))
}

// GetConfig godoc
// @Summary      Configuración resuelta para el editor
// @Tags         editor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.ResolvedConfig
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/me/config [get]
func (h *LandingHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.resolver.Resolve(c.UserContext(), GetAccountID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(cfg)
}

// PutConfig godoc
// @Summary      Guardar campos del editor
// @Description  Escritura parcial. Devuelve el estado confirmado ya resuelto.
// @Description  Campos con tipo incorrecto se reportan en 422 junto con el resto de errores.
// @Tags         editor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.ConfigPatchRequest  true  "campos a guardar"
// @Success      200   {object}  entity.ResolvedConfig
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/me/config [put]
func (h *LandingHandler) PutConfig(c *fiber.Ctx) error {
	var body map[string]json.RawMessage
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in, typeErrs := dto.DecodeConfigPatch(body)
	cfg, err := h.resolver.SaveAndResolve(c.UserContext(), GetAccountID(c), landing.Patch{
		Fields:     in.Fields(),
		LeadForm:   in.LeadForm,
		TypeErrors: typeErrs,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(cfg)
}

// Capabilities godoc
// @Summary      Capacidades efectivas de la cuenta
// @Tags         editor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.CapabilitySet
// @Router       /api/me/capabilities [get]
func (h *LandingHandler) Capabilities(c *fiber.Ctx) error {
	caps, err := h.capabilities.Resolve(c.UserContext(), GetAccountID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(caps)
}

// Templates plantillas que el plan de la cuenta puede seleccionar.
func (h *LandingHandler) Templates(c *fiber.Ctx) error {
	caps, err := h.capabilities.Resolve(c.UserContext(), GetAccountID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	eligible, err := h.templates.Eligible(c.UserContext(), caps.PlanID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.TemplateResponse, 0, len(eligible))
	for _, t := range eligible {
		out = append(out, dto.TemplateFromEntity(t))
	}
	return c.JSON(out)
}
