// Package catalog contiene el catálogo estático de planes y las plantillas base de landing.
// Los planes no cambian en runtime: cambiar el plan de un corretor es reasignar el ID en Account.
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

// PlanCatalog registro inmutable de planes.
type PlanCatalog struct {
	plans map[entity.PlanID]entity.Plan
	order []entity.PlanID
}

// NewPlanCatalog construye un catálogo a partir de una lista de planes.
// Devuelve ErrConfiguration si hay IDs repetidos o niveles fuera de rango.
func NewPlanCatalog(plans []entity.Plan) (*PlanCatalog, error) {
	c := &PlanCatalog{plans: make(map[entity.PlanID]entity.Plan, len(plans))}
	for _, p := range plans {
		if p.ID == "" {
			return nil, domain.Configuration("plan sin ID")
		}
		if _, dup := c.plans[p.ID]; dup {
			return nil, domain.Configuration("plan %s duplicado", p.ID)
		}
		if p.Tier < entity.TierEssencial || p.Tier > entity.TierAutoridade {
			return nil, domain.Configuration("plan %s con nivel %d inválido", p.ID, p.Tier)
		}
		if p.Limits.MaxLandingPages < 1 || p.Limits.MaxTemplates < 1 {
			return nil, domain.Configuration("plan %s con límites inválidos", p.ID)
		}
		c.plans[p.ID] = clonePlan(p)
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// Default devuelve el catálogo de producción (2 familias × 3 niveles).
func Default() *PlanCatalog {
	c, err := NewPlanCatalog(defaultPlans())
	if err != nil {
		panic("catálogo de planes inválido: " + err.Error())
	}
	return c
}

// Get devuelve el plan por ID. Un ID desconocido es ErrConfiguration: nunca se conceden
// capacidades por defecto.
func (c *PlanCatalog) Get(id entity.PlanID) (entity.Plan, error) {
	p, ok := c.plans[id]
	if !ok {
		return entity.Plan{}, domain.Configuration("plan desconocido %q", id)
	}
	return clonePlan(p), nil
}

// Has informa si el plan existe.
func (c *PlanCatalog) Has(id entity.PlanID) bool {
	_, ok := c.plans[id]
	return ok
}

// List devuelve los planes ordenados por familia y nivel.
func (c *PlanCatalog) List() []entity.Plan {
	out := make([]entity.Plan, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, clonePlan(c.plans[id]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Family != out[j].Family {
			return out[i].Family < out[j].Family
		}
		return out[i].Tier < out[j].Tier
	})
	return out
}

// LowestTier devuelve el plan de menor nivel de la familia.
func (c *PlanCatalog) LowestTier(family entity.PlanFamily) (entity.Plan, bool) {
	var best entity.Plan
	found := false
	for _, id := range c.order {
		p := c.plans[id]
		if p.Family != family {
			continue
		}
		if !found || p.Tier < best.Tier {
			best, found = p, true
		}
	}
	return clonePlan(best), found
}

func clonePlan(p entity.Plan) entity.Plan {
	p.Features = append([]entity.Feature(nil), p.Features...)
	return p
}

func defaultPlans() []entity.Plan {
	essencial := []entity.Feature{
		entity.FeatureLandingPage,
		entity.FeatureSocialLinks,
		entity.FeatureLeadForm,
	}
	profissional := append(append([]entity.Feature{}, essencial...),
		entity.FeatureCustomBadges,
		entity.FeatureCustomBackground,
		entity.FeaturePropertyListings,
		entity.FeatureClientCRM,
	)
	autoridade := append(append([]entity.Feature{}, profissional...),
		entity.FeatureAnalytics,
		entity.FeatureCustomDomain,
	)
	withTeam := func(f []entity.Feature) []entity.Feature {
		return append(append([]entity.Feature{}, f...), entity.FeatureTeamManagement)
	}

	return []entity.Plan{
		{
			ID: entity.PlanCorretorEssencial, Family: entity.FamilyCorretor, Tier: entity.TierEssencial,
			Name: "Corretor Essencial", Price: decimal.RequireFromString("49.90"), Currency: "BRL",
			Features: essencial,
			Limits:   entity.PlanLimits{MaxLandingPages: 1, MaxTemplates: 1},
		},
		{
			ID: entity.PlanCorretorProfissional, Family: entity.FamilyCorretor, Tier: entity.TierProfissional,
			Name: "Corretor Profissional", Price: decimal.RequireFromString("99.90"), Currency: "BRL",
			Features: profissional,
			Limits:   entity.PlanLimits{MaxLandingPages: 3, MaxTemplates: 2},
		},
		{
			ID: entity.PlanCorretorAutoridade, Family: entity.FamilyCorretor, Tier: entity.TierAutoridade,
			Name: "Corretor Autoridade", Price: decimal.RequireFromString("199.90"), Currency: "BRL",
			Features: autoridade,
			Limits:   entity.PlanLimits{MaxLandingPages: 10, MaxTemplates: 3},
		},
		{
			ID: entity.PlanImobiliariaEssencial, Family: entity.FamilyImobiliaria, Tier: entity.TierEssencial,
			Name: "Imobiliária Essencial", Price: decimal.RequireFromString("149.90"), Currency: "BRL",
			Features: withTeam(essencial),
			Limits:   entity.PlanLimits{MaxLandingPages: 3, MaxTemplates: 2},
		},
		{
			ID: entity.PlanImobiliariaProfissional, Family: entity.FamilyImobiliaria, Tier: entity.TierProfissional,
			Name: "Imobiliária Profissional", Price: decimal.RequireFromString("299.90"), Currency: "BRL",
			Features: withTeam(profissional),
			Limits:   entity.PlanLimits{MaxLandingPages: 10, MaxTemplates: 3},
		},
		{
			ID: entity.PlanImobiliariaAutoridade, Family: entity.FamilyImobiliaria, Tier: entity.TierAutoridade,
			Name: "Imobiliária Autoridade", Price: decimal.RequireFromString("599.90"), Currency: "BRL",
			Features: withTeam(autoridade),
			Limits:   entity.PlanLimits{MaxLandingPages: 50, MaxTemplates: 4},
		},
	}
}
