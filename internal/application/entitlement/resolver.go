// Package entitlement combina plan y roles de una cuenta en su conjunto efectivo de capacidades.
package entitlement

import (
	"context"
	"fmt"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/catalog"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
	"github.com/jhoicas/corretor-landing-api/pkg/logger"
)

// Resolver calcula el CapabilitySet de una cuenta. No guarda estado entre llamadas:
// el resultado depende solo del par (roles, plan).
type Resolver struct {
	accounts repository.AccountRepository
	roles    repository.RoleRepository
	plans    *catalog.PlanCatalog
	log      *logger.Logger
}

// NewResolver construye el resolver inyectando repositorios y catálogo.
func NewResolver(
	accounts repository.AccountRepository,
	roles repository.RoleRepository,
	plans *catalog.PlanCatalog,
	log *logger.Logger,
) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{accounts: accounts, roles: roles, plans: plans, log: log.Named("entitlement")}
}

// Resolve devuelve las capacidades efectivas de la cuenta.
//
// Errores:
//   - domain.ErrNotFound si la cuenta no existe.
//   - domain.ErrConfiguration si el plan no está en el catálogo.
func (r *Resolver) Resolve(ctx context.Context, accountID string) (entity.CapabilitySet, error) {
	planID, err := r.accounts.GetPlan(ctx, accountID)
	if err != nil {
		return entity.CapabilitySet{}, fmt.Errorf("entitlement: plan de %s: %w", accountID, err)
	}
	plan, err := r.plans.Get(planID)
	if err != nil {
		return entity.CapabilitySet{}, fmt.Errorf("entitlement: cuenta %s: %w", accountID, err)
	}
	tags, err := r.roles.GetRoles(ctx, accountID)
	if err != nil {
		return entity.CapabilitySet{}, fmt.Errorf("entitlement: roles de %s: %w", accountID, err)
	}
	roles := r.knownRoles(accountID, tags)
	return Compute(accountID, plan, roles), nil
}

// knownRoles descarta etiquetas desconocidas (compatibilidad con roles futuros) con un warn.
func (r *Resolver) knownRoles(accountID string, tags []entity.Role) entity.RoleSet {
	set := entity.NewRoleSet()
	for _, tag := range tags {
		if !tag.IsKnown() {
			r.log.Warn().
				Str("account_id", accountID).
				Str("role", string(tag)).
				Msg("rol desconocido ignorado")
			continue
		}
		set[tag] = struct{}{}
	}
	return set
}

// Compute es la parte pura del cálculo: features del plan filtradas por gates de rol,
// unidas a las concesiones de todos los roles.
func Compute(accountID string, plan entity.Plan, roles entity.RoleSet) entity.CapabilitySet {
	features := make([]entity.Feature, 0, len(plan.Features)+4)
	for _, f := range plan.Features {
		gate := catalog.FeatureGate(f)
		if len(gate) > 0 && !roles.HasAny(gate...) {
			continue
		}
		features = append(features, f)
	}
	for _, role := range roles.Sorted() {
		features = append(features, catalog.RoleGrants(role)...)
	}
	return entity.CapabilitySet{
		AccountID: accountID,
		PlanID:    plan.ID,
		Family:    plan.Family,
		Tier:      plan.Tier,
		Roles:     roles.Sorted(),
		Features:  entity.SortFeatures(features),
		Limits:    plan.Limits,
	}
}

// GrantRole agrega un rol a la cuenta. Solo un admin puede hacerlo.
// Conceder un rol ya presente es un no-op exitoso (reintentos seguros desde el panel).
func (r *Resolver) GrantRole(ctx context.Context, actorID, accountID string, role entity.Role) error {
	if err := r.checkRoleMutation(ctx, actorID, accountID, role); err != nil {
		return err
	}
	if err := r.roles.AddRole(ctx, accountID, role); err != nil {
		return fmt.Errorf("entitlement: agregar rol: %w", err)
	}
	r.log.Info().Str("actor_id", actorID).Str("account_id", accountID).Str("role", string(role)).Msg("rol concedido")
	return nil
}

// RevokeRole quita un rol de la cuenta. Quitar un rol ausente es un no-op exitoso.
func (r *Resolver) RevokeRole(ctx context.Context, actorID, accountID string, role entity.Role) error {
	if err := r.checkRoleMutation(ctx, actorID, accountID, role); err != nil {
		return err
	}
	if err := r.roles.RemoveRole(ctx, accountID, role); err != nil {
		return fmt.Errorf("entitlement: quitar rol: %w", err)
	}
	r.log.Info().Str("actor_id", actorID).Str("account_id", accountID).Str("role", string(role)).Msg("rol revocado")
	return nil
}

// ChangePlan reasigna el plan de la cuenta (informativo, sin cobro). Solo admin.
func (r *Resolver) ChangePlan(ctx context.Context, actorID, accountID string, planID entity.PlanID) error {
	if err := r.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if _, err := r.plans.Get(planID); err != nil {
		return err
	}
	if err := r.requireAccount(ctx, accountID); err != nil {
		return err
	}
	if err := r.accounts.UpdatePlan(ctx, accountID, planID); err != nil {
		return fmt.Errorf("entitlement: cambiar plan: %w", err)
	}
	r.log.Info().Str("actor_id", actorID).Str("account_id", accountID).Str("plan_id", string(planID)).Msg("plan reasignado")
	return nil
}

func (r *Resolver) checkRoleMutation(ctx context.Context, actorID, accountID string, role entity.Role) error {
	if !role.IsKnown() {
		verr := &domain.ValidationError{}
		verr.Add("role", fmt.Sprintf("rol %q desconocido", role))
		return verr
	}
	if err := r.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	return r.requireAccount(ctx, accountID)
}

func (r *Resolver) requireAdmin(ctx context.Context, actorID string) error {
	tags, err := r.roles.GetRoles(ctx, actorID)
	if err != nil {
		return fmt.Errorf("entitlement: roles del actor: %w", err)
	}
	if !entity.NewRoleSet(tags...).Has(entity.RoleAdmin) {
		return domain.ErrForbidden
	}
	return nil
}

func (r *Resolver) requireAccount(ctx context.Context, accountID string) error {
	acc, err := r.accounts.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("entitlement: cuenta: %w", err)
	}
	if acc == nil {
		return domain.NotFound("cuenta", accountID)
	}
	return nil
}
