package landing

import (
	"context"
	"fmt"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/catalog"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
)

// TemplateRegistry expone las plantillas persistidas con las reglas de elegibilidad por plan.
type TemplateRegistry struct {
	repo  repository.TemplateRepository
	plans *catalog.PlanCatalog
}

// NewTemplateRegistry construye el registro sobre el repositorio de plantillas.
func NewTemplateRegistry(repo repository.TemplateRepository, plans *catalog.PlanCatalog) *TemplateRegistry {
	return &TemplateRegistry{repo: repo, plans: plans}
}

// List devuelve las plantillas en orden de registro.
func (r *TemplateRegistry) List(ctx context.Context, activeOnly bool) ([]entity.Template, error) {
	list, err := r.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("templates: listar: %w", err)
	}
	return list, nil
}

// Get devuelve la plantilla o domain.ErrNotFound.
func (r *TemplateRegistry) Get(ctx context.Context, id string) (entity.Template, error) {
	t, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return entity.Template{}, fmt.Errorf("templates: obtener %s: %w", id, err)
	}
	if t == nil {
		return entity.Template{}, domain.NotFound("plantilla", id)
	}
	return *t, nil
}

// Eligible devuelve las plantillas activas que el plan puede seleccionar, en orden de registro.
func (r *TemplateRegistry) Eligible(ctx context.Context, plan entity.PlanID) ([]entity.Template, error) {
	list, err := r.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Template, 0, len(list))
	for _, t := range list {
		if t.AllowsPlan(plan) {
			out = append(out, t)
		}
	}
	return out, nil
}

// IsAllowed informa si el plan puede seleccionar la plantilla. Plantilla inexistente es ErrNotFound.
func (r *TemplateRegistry) IsAllowed(ctx context.Context, templateID string, plan entity.PlanID) (bool, error) {
	t, err := r.Get(ctx, templateID)
	if err != nil {
		return false, err
	}
	return allowed(t, plan), nil
}

func allowed(t entity.Template, plan entity.PlanID) bool {
	return t.Active && t.AllowsPlan(plan)
}

// LowestEligible elige la plantilla de menor nivel habilitada para el plan.
// Empate: la de menor posición en el registro. Sin candidatas es ErrConfiguration:
// un plan sin plantillas es un error de catálogo, no un estado recuperable.
func (r *TemplateRegistry) LowestEligible(ctx context.Context, plan entity.PlanID) (entity.Template, error) {
	eligible, err := r.Eligible(ctx, plan)
	if err != nil {
		return entity.Template{}, err
	}
	if len(eligible) == 0 {
		return entity.Template{}, domain.Configuration("plan %s sin plantillas elegibles", plan)
	}
	best := eligible[0]
	for _, t := range eligible[1:] {
		if t.Tier < best.Tier {
			best = t
		}
	}
	return best, nil
}

// Validate verifica las plantillas persistidas contra el catálogo de planes.
func (r *TemplateRegistry) Validate(ctx context.Context) error {
	list, err := r.List(ctx, false)
	if err != nil {
		return err
	}
	return catalog.ValidateTemplates(r.plans, list)
}
