package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corretor-landing-api/internal/application/dto"
	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

// capabilityResolver es el contrato mínimo que necesita el middleware.
// Lo implementa *entitlement.Resolver; el uso de interfaz evita el import circular.
type capabilityResolver interface {
	Resolve(ctx context.Context, accountID string) (entity.CapabilitySet, error)
}

// RequireFeature verifica con las capacidades recalculadas (plan + roles persistidos)
// que la cuenta del token tiene la feature. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 FEATURE_DISABLED → el plan o los roles no la conceden.
//   - 503 Service Unavailable → fallo de infraestructura al resolver capacidades.
func RequireFeature(feature entity.Feature, resolver capabilityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID := GetAccountID(c)
		if accountID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "account_id no encontrado en el token",
			})
		}

		caps, err := resolver.Resolve(c.UserContext(), accountID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Code:    "UNAUTHORIZED",
					Message: "la cuenta del token no existe",
				})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:      "CAPABILITY_CHECK_FAILED",
				Message:   "no se pudo verificar el acceso, intente más tarde",
				Retryable: true,
			})
		}

		if !caps.Has(feature) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FEATURE_DISABLED",
				Message: "la funcionalidad '" + string(feature) + "' no está habilitada para esta cuenta",
			})
		}
		return c.Next()
	}
}
