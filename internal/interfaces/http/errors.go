package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corretor-landing-api/internal/application/dto"
	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/pkg/logger"
)

// writeError traduce errores de dominio a respuestas HTTP.
// Lo no clasificado se trata como fallo transitorio: 503 con retryable.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var (
		verr *domain.ValidationError
		pv   *domain.PlanViolationError
	)
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "hay campos inválidos",
			Fields:  verr.Fields,
		})
	case errors.As(err, &pv):
		return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{
			Code:            "PLAN_VIOLATION",
			Message:         pv.Reason,
			Fields:          []domain.FieldError{{Field: pv.Field, Message: pv.Reason}},
			UpgradeRequired: true,
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrConfiguration):
		log.Error().Err(err).Str("path", c.Path()).Msg("catálogo mal configurado")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:      "CONFIGURATION",
			Message:   "servicio temporalmente no disponible",
			Retryable: true,
		})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error de infraestructura")
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Code:      "UNAVAILABLE",
		Message:   "no se pudo completar la operación, intente nuevamente",
		Retryable: true,
	})
}
