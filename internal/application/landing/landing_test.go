package landing_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corretor-landing-api/internal/application/entitlement"
	"github.com/jhoicas/corretor-landing-api/internal/application/landing"
	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/catalog"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/infrastructure/memory"
)

const (
	adminID      = "admin-1"
	essencialID  = "corretor-essencial"
	proID        = "corretor-pro"
	autoridadeID = "corretor-autoridade"
)

type fixture struct {
	store    *memory.Store
	resolver *landing.ConfigResolver
	ents     *entitlement.Resolver
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	for _, tpl := range catalog.DefaultTemplates() {
		require.NoError(t, store.Templates().Upsert(ctx, tpl))
	}
	store.PutAccount(entity.Account{ID: adminID, PlanID: entity.PlanCorretorEssencial}, entity.RoleAdmin)
	store.PutAccount(entity.Account{ID: essencialID, PlanID: entity.PlanCorretorEssencial}, entity.RoleBroker)
	store.PutAccount(entity.Account{ID: proID, PlanID: entity.PlanCorretorProfissional}, entity.RoleBroker)
	store.PutAccount(entity.Account{ID: autoridadeID, PlanID: entity.PlanCorretorAutoridade}, entity.RoleBroker)

	plans := catalog.Default()
	ents := entitlement.NewResolver(store.Accounts(), store.Roles(), plans, nil)
	registry := landing.NewTemplateRegistry(store.Templates(), plans)
	return fixture{
		store:    store,
		ents:     ents,
		resolver: landing.NewConfigResolver(store.Configs(), registry, ents, plans, store, nil),
	}
}

func str(s string) *string { return &s }
func intp(n int) *int      { return &n }

func TestResolve_SinRegistroUsaDefaultsDePlantilla(t *testing.T) {
	f := newFixture(t)
	cfg, err := f.resolver.Resolve(context.Background(), autoridadeID)
	require.NoError(t, err)

	classic := catalog.DefaultTemplates()[0]
	assert.Equal(t, catalog.TemplateClassic, cfg.TemplateID, "menor nivel elegible, orden del registro")
	assert.True(t, cfg.TemplateFallback)
	assert.Equal(t, *classic.Defaults.Headline, cfg.Headline)
	assert.Equal(t, *classic.Defaults.Subheadline, cfg.Subheadline)
	assert.Equal(t, *classic.Defaults.BackgroundImageURL, cfg.BackgroundImageURL)
	assert.Equal(t, "", cfg.Nome)
	assert.NotNil(t, cfg.Badges)
	assert.Empty(t, cfg.Badges)
	assert.True(t, cfg.LeadForm.Objetivo.Visivel)
	assert.Equal(t, 1, cfg.LandingPages)
	assert.False(t, cfg.Fallback)
}

func TestResolve_PlantillaGuardadaNoElegibleCaeALaMenor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.store.Configs().Upsert(ctx, essencialID, entity.ConfigFields{TemplateID: str(catalog.TemplateAuthority)})
	require.NoError(t, err)

	first, err := f.resolver.Resolve(ctx, essencialID)
	require.NoError(t, err)
	second, err := f.resolver.Resolve(ctx, essencialID)
	require.NoError(t, err)

	assert.Equal(t, catalog.TemplateClassic, first.TemplateID)
	assert.True(t, first.TemplateFallback)
	assert.Equal(t, first, second)
}

func TestResolve_PlantillaGuardadaDesconocidaCaeALaMenor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.store.Configs().Upsert(ctx, proID, entity.ConfigFields{TemplateID: str("retirada")})
	require.NoError(t, err)

	cfg, err := f.resolver.Resolve(ctx, proID)
	require.NoError(t, err)
	assert.Equal(t, catalog.TemplateClassic, cfg.TemplateID)
}

func TestResolve_CapacidadesRecortanOverrides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.store.Configs().Upsert(ctx, essencialID, entity.ConfigFields{
		BackgroundImageURL: str("https://img.example.com/meu-fundo.jpg"),
		Badges:             []entity.Badge{{Label: "Top vendas"}},
		Instagram:          str("https://instagram.com/ana"),
	})
	require.NoError(t, err)

	cfg, err := f.resolver.Resolve(ctx, essencialID)
	require.NoError(t, err)

	classic := catalog.DefaultTemplates()[0]
	assert.Equal(t, *classic.Defaults.BackgroundImageURL, cfg.BackgroundImageURL, "sin custom_background se usa el de la plantilla")
	assert.Empty(t, cfg.Badges, "sin custom_badges se ignoran los selos propios")
	assert.True(t, cfg.Social.Instagram.Visible)
	assert.False(t, cfg.Social.Facebook.Visible, "sin URL no se muestra")
}

func TestResolve_OverridesHonradosConCapacidad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.resolver.Save(ctx, proID, landing.Patch{Fields: entity.ConfigFields{
		TemplateID:         str(catalog.TemplateModern),
		BackgroundImageURL: str("https://img.example.com/fundo.jpg"),
		Badges:             []entity.Badge{},
	}})
	require.NoError(t, err)

	cfg, err := f.resolver.Resolve(ctx, proID)
	require.NoError(t, err)
	assert.Equal(t, catalog.TemplateModern, cfg.TemplateID)
	assert.False(t, cfg.TemplateFallback)
	assert.Equal(t, "https://img.example.com/fundo.jpg", cfg.BackgroundImageURL)
	assert.Empty(t, cfg.Badges, "lista vacía explícita reemplaza los defaults")
}

func TestSave_WhatsappNoTocaOtrosCampos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.resolver.Save(ctx, proID, landing.Patch{Fields: entity.ConfigFields{
		Nome:     str("Ana Souza"),
		Headline: str("Casas em Campinas"),
	}})
	require.NoError(t, err)

	cfg, err := f.resolver.SaveAndResolve(ctx, proID, landing.Patch{Fields: entity.ConfigFields{
		Whatsapp: str("5519988887777"),
	}})
	require.NoError(t, err)
	assert.Equal(t, "5519988887777", cfg.Whatsapp)
	assert.Equal(t, "Ana Souza", cfg.Nome)
	assert.Equal(t, "Casas em Campinas", cfg.Headline)
}

func TestSave_NormalizaTexto(t *testing.T) {
	f := newFixture(t)
	// "José" con acento combinado (NFD) y espacios.
	rec, err := f.resolver.Save(context.Background(), proID, landing.Patch{Fields: entity.ConfigFields{
		Nome: str("  Jose\u0301 Lima \t"),
	}})
	require.NoError(t, err)
	require.NotNil(t, rec.Nome)
	assert.Equal(t, "José Lima", *rec.Nome)
}

func TestSave_PlantillaFueraDelPlanEsPlanViolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.resolver.Save(ctx, essencialID, landing.Patch{Fields: entity.ConfigFields{
		TemplateID: str(catalog.TemplateClassic),
	}})
	require.NoError(t, err)

	_, err = f.resolver.Save(ctx, essencialID, landing.Patch{Fields: entity.ConfigFields{
		TemplateID: str(catalog.TemplateAuthority),
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPlanViolation)
	var pv *domain.PlanViolationError
	require.True(t, errors.As(err, &pv))
	assert.Equal(t, "template_id", pv.Field)
	assert.Equal(t, string(entity.PlanCorretorEssencial), pv.PlanID)

	rec, err := f.store.Configs().Get(ctx, essencialID)
	require.NoError(t, err)
	assert.Equal(t, catalog.TemplateClassic, *rec.TemplateID, "la escritura rechazada no modifica el registro")
}

func TestSave_LandingPagesSobreElLimite(t *testing.T) {
	f := newFixture(t)
	_, err := f.resolver.Save(context.Background(), proID, landing.Patch{Fields: entity.ConfigFields{
		LandingPages: intp(4),
	}})
	assert.ErrorIs(t, err, domain.ErrPlanViolation)
}

func TestSave_PlantillaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.resolver.Save(context.Background(), proID, landing.Patch{Fields: entity.ConfigFields{
		TemplateID: str("no-existe"),
	}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSave_AcumulaErroresDeValidacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.resolver.Save(context.Background(), proID, landing.Patch{
		Fields: entity.ConfigFields{
			Whatsapp:  str("12ab"),
			Email:     str("no-es-email"),
			Instagram: str("ftp://x"),
		},
		LeadForm: json.RawMessage(`{"version":1,"campos":{"renda":{"visivel":"sim"}}}`),
	})
	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Fields))
	for _, fe := range verr.Fields {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"whatsapp", "email", "instagram", "lead_form.renda.visivel"}, fields)

	rec, err := f.store.Configs().Get(context.Background(), proID)
	require.NoError(t, err)
	assert.Nil(t, rec, "nada se persiste")
}

func TestSave_ParcheVacio(t *testing.T) {
	f := newFixture(t)
	_, err := f.resolver.Save(context.Background(), proID, landing.Patch{LeadForm: json.RawMessage("null")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSave_FormularioLegadoSeMigra(t *testing.T) {
	f := newFixture(t)
	cfg, err := f.resolver.SaveAndResolve(context.Background(), proID, landing.Patch{
		LeadForm: json.RawMessage(`{"renda":{"visivel":false,"obrigatorio":true},"entrada":{"visivel":true}}`),
	})
	require.NoError(t, err)
	assert.False(t, cfg.LeadForm.Renda.Obrigatorio, "obligatorio implica visible")
	assert.True(t, cfg.LeadForm.Entrada.Visivel)
}

func TestResolve_DowngradeRecortaLandingPages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.resolver.Save(ctx, autoridadeID, landing.Patch{Fields: entity.ConfigFields{
		TemplateID:   str(catalog.TemplateAuthority),
		LandingPages: intp(10),
	}})
	require.NoError(t, err)

	require.NoError(t, f.ents.ChangePlan(ctx, adminID, autoridadeID, entity.PlanCorretorEssencial))

	cfg, err := f.resolver.Resolve(ctx, autoridadeID)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.LandingPages)
	assert.Equal(t, catalog.TemplateClassic, cfg.TemplateID)

	rec, err := f.store.Configs().Get(ctx, autoridadeID)
	require.NoError(t, err)
	assert.Equal(t, 10, *rec.LandingPages, "el registro guardado no se reescribe")
}

func TestResolvePublic_FallbackMinimo(t *testing.T) {
	f := newFixture(t)
	cfg := f.resolver.ResolvePublic(context.Background(), "no-existe")
	assert.True(t, cfg.Fallback)
	assert.Equal(t, "", cfg.TemplateID)
	assert.Equal(t, 1, cfg.LandingPages)
	assert.NotNil(t, cfg.Badges)
	assert.Empty(t, cfg.Capabilities.Features)
}

func TestResolve_PropagaNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.resolver.Resolve(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateRegistry_Eligible(t *testing.T) {
	f := newFixture(t)
	registry := landing.NewTemplateRegistry(f.store.Templates(), catalog.Default())
	ctx := context.Background()

	eligible, err := registry.Eligible(ctx, entity.PlanCorretorProfissional)
	require.NoError(t, err)
	ids := make([]string, 0, len(eligible))
	for _, tpl := range eligible {
		ids = append(ids, tpl.ID)
	}
	assert.Equal(t, []string{catalog.TemplateClassic, catalog.TemplateModern}, ids)

	lowest, err := registry.LowestEligible(ctx, entity.PlanImobiliariaAutoridade)
	require.NoError(t, err)
	assert.Equal(t, catalog.TemplateClassic, lowest.ID)

	require.NoError(t, registry.Validate(ctx))
}

func TestResolve_PlanSinPlantillasActivas_ErrConfiguration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, tpl := range catalog.DefaultTemplates() {
		tpl.Active = false
		require.NoError(t, f.store.Templates().Upsert(ctx, tpl))
	}

	_, err := f.resolver.Resolve(ctx, proID)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	cfg := f.resolver.ResolvePublic(ctx, proID)
	assert.True(t, cfg.Fallback, "la landing pública sirve la página mínima")
	assert.Equal(t, "", cfg.TemplateID)
}

func TestResolve_FormularioGuardadoObligatorioOcultoSeNormaliza(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.store.Configs().Upsert(ctx, proID, entity.ConfigFields{
		LeadForm: &entity.LeadFormSchema{
			Renda:   entity.LeadFormField{Visivel: false, Obrigatorio: true},
			Entrada: entity.LeadFormField{Visivel: true, Obrigatorio: true},
		},
	})
	require.NoError(t, err)

	cfg, err := f.resolver.Resolve(ctx, proID)
	require.NoError(t, err)
	assert.False(t, cfg.LeadForm.Renda.Visivel)
	assert.False(t, cfg.LeadForm.Renda.Obrigatorio, "obligatorio implica visible")
	assert.True(t, cfg.LeadForm.Entrada.Obrigatorio)
}

func TestSave_PlantillaInactivaEsValidacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	classic := catalog.DefaultTemplates()[0]
	classic.Active = false
	require.NoError(t, f.store.Templates().Upsert(ctx, classic))

	_, err := f.resolver.Save(ctx, autoridadeID, landing.Patch{Fields: entity.ConfigFields{
		TemplateID: str(catalog.TemplateClassic),
	}})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrPlanViolation), "ningún upgrade habilita una plantilla inactiva")
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "template_id", verr.Fields[0].Field)
}

func TestSave_ErroresDeTipoSeAcumulanConLosDeValidacion(t *testing.T) {
	f := newFixture(t)
	typeErrs := &domain.ValidationError{}
	typeErrs.Add("nome", "debe ser texto")
	typeErrs.Add("landing_pages", "debe ser un número entero")

	_, err := f.resolver.Save(context.Background(), proID, landing.Patch{
		Fields:     entity.ConfigFields{Whatsapp: str("abc")},
		TypeErrors: typeErrs,
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Fields))
	for _, fe := range verr.Fields {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"whatsapp", "nome", "landing_pages"}, fields)
}

// configsSinLectura guarda normalmente pero falla al leer, como una réplica caída.
type configsSinLectura struct {
	err error
}

func (c configsSinLectura) Get(context.Context, string) (*entity.ConfigRecord, error) {
	return nil, c.err
}

func (c configsSinLectura) Upsert(context.Context, string, entity.ConfigFields) (*entity.ConfigRecord, bool, error) {
	return nil, false, c.err
}

func TestSaveAndResolve_FalloAlResolverTrasGuardarEsReintentable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	readErr := errors.New("lectura caída")
	plans := catalog.Default()
	resolver := landing.NewConfigResolver(configsSinLectura{err: readErr},
		landing.NewTemplateRegistry(f.store.Templates(), plans), f.ents, plans, f.store, nil)

	patch := landing.Patch{Fields: entity.ConfigFields{Nome: str("Ana"), Whatsapp: str("5511999999999")}}
	_, err := resolver.SaveAndResolve(ctx, proID, patch)
	require.ErrorIs(t, err, readErr)

	first, err := f.store.Configs().Get(ctx, proID)
	require.NoError(t, err)
	require.NotNil(t, first, "la escritura quedó confirmada")

	_, err = resolver.SaveAndResolve(ctx, proID, patch)
	require.ErrorIs(t, err, readErr)
	second, err := f.store.Configs().Get(ctx, proID)
	require.NoError(t, err)
	assert.Equal(t, first.ConfigFields, second.ConfigFields, "reaplicar el mismo parche no cambia los campos")
}
