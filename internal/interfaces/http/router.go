package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/corretor-landing-api/internal/application/auth"
	"github.com/jhoicas/corretor-landing-api/internal/application/entitlement"
	"github.com/jhoicas/corretor-landing-api/internal/application/landing"
	"github.com/jhoicas/corretor-landing-api/internal/domain/catalog"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Entitlements *entitlement.Resolver
	Configs      *landing.ConfigResolver
	Templates    *landing.TemplateRegistry
	Plans        *catalog.PlanCatalog
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("http")

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Catálogo y landing pública
	catalogHandler := NewCatalogHandler(deps.Plans)
	api.Get("/plans", catalogHandler.Plans)

	landingHandler := NewLandingHandler(deps.Configs, deps.Templates, deps.Entitlements, log)
	api.Get("/public/corretores/:id/landing", landingHandler.Public)

	// Editor (requiere Bearer Token)
	me := api.Group("/me", AuthMiddleware(deps.JWTSecret))
	me.Get("/capabilities", landingHandler.Capabilities)
	me.Get("/config", landingHandler.GetConfig)
	me.Put("/config", landingHandler.PutConfig)
	me.Get("/templates", landingHandler.Templates)

	// Administración
	adminHandler := NewAdminHandler(deps.Entitlements, deps.Configs, log)
	admin := api.Group("/admin/accounts", AuthMiddleware(deps.JWTSecret))
	admin.Post("/:id/roles/:role", RequireRole(string(entity.RoleAdmin)), adminHandler.GrantRole)
	admin.Delete("/:id/roles/:role", RequireRole(string(entity.RoleAdmin)), adminHandler.RevokeRole)
	admin.Put("/:id/plan", RequireRole(string(entity.RoleAdmin)), adminHandler.ChangePlan)
	admin.Get("/:id/config", RequireFeature(entity.FeatureAdminPanel, deps.Entitlements), adminHandler.GetConfig)
}
