// Package bootstrap arma las dependencias compartidas por la API y el CLI
// según STORAGE_DRIVER (postgres o memoria).
package bootstrap

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/corretor-landing-api/internal/application/auth"
	"github.com/jhoicas/corretor-landing-api/internal/application/entitlement"
	"github.com/jhoicas/corretor-landing-api/internal/application/landing"
	"github.com/jhoicas/corretor-landing-api/internal/domain/catalog"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
	"github.com/jhoicas/corretor-landing-api/internal/infrastructure/cache"
	"github.com/jhoicas/corretor-landing-api/internal/infrastructure/memory"
	"github.com/jhoicas/corretor-landing-api/internal/infrastructure/postgres"
	"github.com/jhoicas/corretor-landing-api/pkg/config"
	"github.com/jhoicas/corretor-landing-api/pkg/logger"
)

// Container dependencias construidas. PlanRepo es nil con el driver en memoria.
type Container struct {
	Plans        *catalog.PlanCatalog
	Accounts     repository.AccountRepository
	Roles        repository.RoleRepository
	Configs      repository.ConfigRepository
	Templates    repository.TemplateRepository
	PlanRepo     repository.PlanRepository
	Entitlements *entitlement.Resolver
	Registry     *landing.TemplateRegistry
	Resolver     *landing.ConfigResolver
	AuthUC       *auth.AuthUseCase

	closers []func()
}

// Close libera pool y clientes en orden inverso.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build construye el contenedor. El catálogo de planes se valida siempre al arrancar.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	c := &Container{Plans: catalog.Default()}

	var tx landing.TxRunner
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		if err := seedMemory(ctx, store); err != nil {
			return nil, err
		}
		c.Accounts, c.Roles, c.Configs, c.Templates = store.Accounts(), store.Roles(), store.Configs(), store.Templates()
		tx = store
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")

	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		if cfg.DB.AutoMigrate {
			if err := postgres.RunMigrations(ctx, pool, log.Named("migrations")); err != nil {
				c.Close()
				return nil, err
			}
		}
		c.wirePostgres(pool)
		tx = postgres.NewTxRunner(pool)
	}

	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// Sin caché se sigue sirviendo desde el repositorio.
			log.Warn().Err(err).Msg("redis no disponible, caché de plantillas desactivada")
		} else {
			c.closers = append(c.closers, func() { _ = client.Close() })
			c.Templates = cache.NewTemplateRepository(c.Templates, cache.NewRedisStore(client), cfg.Redis.TemplateCacheTTL, log)
		}
	}

	c.Entitlements = entitlement.NewResolver(c.Accounts, c.Roles, c.Plans, log)
	c.Registry = landing.NewTemplateRegistry(c.Templates, c.Plans)
	c.Resolver = landing.NewConfigResolver(c.Configs, c.Registry, c.Entitlements, c.Plans, tx, log)
	c.AuthUC = auth.NewAuthUseCase(c.Accounts, c.Roles, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	return c, nil
}

func (c *Container) wirePostgres(pool *pgxpool.Pool) {
	c.Accounts = postgres.NewAccountRepository(pool)
	c.Roles = postgres.NewRoleRepository(pool)
	c.Configs = postgres.NewConfigRepository(pool)
	c.Templates = postgres.NewTemplateRepository(pool)
	c.PlanRepo = postgres.NewPlanRepository(pool)
}

// Cuentas de demostración del driver en memoria (password: DemoPassword).
var (
	DemoAdminID  = uuid.NewSHA1(uuid.NameSpaceURL, []byte("corretor-landing/demo/admin")).String()
	DemoBrokerID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("corretor-landing/demo/broker")).String()
)

// DemoPassword contraseña de las cuentas de demostración.
const DemoPassword = "corretor-demo"

func seedMemory(ctx context.Context, store *memory.Store) error {
	for _, t := range catalog.DefaultTemplates() {
		if err := store.Templates().Upsert(ctx, t); err != nil {
			return fmt.Errorf("sembrar plantillas: %w", err)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo: %w", err)
	}
	store.PutAccount(entity.Account{
		ID: DemoAdminID, Email: "admin@corretor.local", Name: "Administrador",
		PasswordHash: string(hash), PlanID: entity.PlanCorretorAutoridade, Status: entity.AccountActive,
	}, entity.RoleAdmin, entity.RoleBroker)
	store.PutAccount(entity.Account{
		ID: DemoBrokerID, Email: "corretor@corretor.local", Name: "Corretor Demo",
		PasswordHash: string(hash), PlanID: entity.PlanCorretorEssencial, Status: entity.AccountActive,
	}, entity.RoleBroker)
	return nil
}
