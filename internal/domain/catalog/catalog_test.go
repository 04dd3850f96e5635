package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/catalog"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

func TestDefault_SeisPlanesDosFamilias(t *testing.T) {
	c := catalog.Default()
	plans := c.List()
	require.Len(t, plans, 6)

	families := map[entity.PlanFamily]int{}
	for _, p := range plans {
		families[p.Family]++
		assert.False(t, p.Price.IsNegative(), "precio informativo no negativo")
		assert.NotEmpty(t, p.Features)
	}
	assert.Equal(t, 3, families[entity.FamilyCorretor])
	assert.Equal(t, 3, families[entity.FamilyImobiliaria])
}

func TestGet_PlanDesconocido_ErrConfiguration(t *testing.T) {
	_, err := catalog.Default().Get("gold_lifetime")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestGet_DevuelveCopia(t *testing.T) {
	c := catalog.Default()
	p, err := c.Get(entity.PlanCorretorEssencial)
	require.NoError(t, err)
	p.Features[0] = "hacked"

	again, err := c.Get(entity.PlanCorretorEssencial)
	require.NoError(t, err)
	assert.Equal(t, entity.FeatureLandingPage, again.Features[0], "el catálogo es inmutable")
}

func TestLowestTier(t *testing.T) {
	p, ok := catalog.Default().LowestTier(entity.FamilyImobiliaria)
	require.True(t, ok)
	assert.Equal(t, entity.PlanImobiliariaEssencial, p.ID)
}

func TestNewPlanCatalog_Duplicado(t *testing.T) {
	p := entity.Plan{ID: "x", Tier: 1, Limits: entity.PlanLimits{MaxLandingPages: 1, MaxTemplates: 1}}
	_, err := catalog.NewPlanCatalog([]entity.Plan{p, p})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestValidateTemplates_CatalogoBase(t *testing.T) {
	assert.NoError(t, catalog.ValidateTemplates(catalog.Default(), catalog.DefaultTemplates()))
}

func TestValidateTemplates_PlanSinPlantillas(t *testing.T) {
	var templates []entity.Template
	for _, tpl := range catalog.DefaultTemplates() {
		if tpl.ID != catalog.TemplateClassic {
			templates = append(templates, tpl)
		}
	}
	err := catalog.ValidateTemplates(catalog.Default(), templates)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), string(entity.PlanCorretorEssencial))
}

func TestValidateTemplates_PlanDesconocido(t *testing.T) {
	templates := catalog.DefaultTemplates()
	templates[0].AllowedPlans = append(templates[0].AllowedPlans, "legacy_plan")
	assert.ErrorIs(t, catalog.ValidateTemplates(catalog.Default(), templates), domain.ErrConfiguration)
}

func TestValidateTemplates_ExcedeMaxTemplates(t *testing.T) {
	templates := catalog.DefaultTemplates()
	templates = append(templates, entity.Template{
		ID: "extra-template", Active: true, AllowedPlans: []entity.PlanID{entity.PlanCorretorEssencial},
	})
	err := catalog.ValidateTemplates(catalog.Default(), templates)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestRoleGrants_YGates(t *testing.T) {
	assert.Contains(t, catalog.RoleGrants(entity.RoleAdmin), entity.FeatureRoleManagement)
	assert.Empty(t, catalog.RoleGrants(entity.RoleUser))
	assert.ElementsMatch(t,
		[]entity.Role{entity.RoleAdmin, entity.RoleModerator},
		catalog.FeatureGate(entity.FeatureTeamManagement))
	assert.Empty(t, catalog.FeatureGate(entity.FeatureLandingPage))
}
