package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corretor-landing-api/internal/application/dto"
	"github.com/jhoicas/corretor-landing-api/pkg/jwt"
)

// Locals keys para AccountID y Roles en Fiber.
const (
	LocalAccountID = "account_id"
	LocalRoles     = "roles"
)

// AuthMiddleware valida el Bearer Token JWT y extrae AccountID y Roles a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalAccountID, claims.AccountID)
		c.Locals(LocalRoles, claims.Roles)
		return c.Next()
	}
}

// RequireRole deja pasar si el token trae alguno de los roles indicados.
// Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 MISSING_ROLE → token sin roles.
//   - 403 FORBIDDEN    → ninguno de los roles permitidos.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles := GetRoles(c)
		if len(roles) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye roles"})
		}
		for _, r := range roles {
			for _, a := range allowed {
				if r == a {
					return c.Next()
				}
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
	}
}

// GetAccountID devuelve el AccountID del contexto (después del middleware de auth).
func GetAccountID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalAccountID).(string)
	return s
}

// GetRoles devuelve los roles del token.
func GetRoles(c *fiber.Ctx) []string {
	roles, _ := c.Locals(LocalRoles).([]string)
	return roles
}
