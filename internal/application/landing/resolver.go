// Package landing resuelve la configuración de la landing page del corretor:
// overrides guardados › defaults de la plantilla › fallback fijo, recortado por capacidades.
package landing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/catalog"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
	"github.com/jhoicas/corretor-landing-api/pkg/logger"
)

// CapabilityResolver contrato mínimo del EntitlementResolver que necesita la resolución.
// Lo implementa *entitlement.Resolver.
type CapabilityResolver interface {
	Resolve(ctx context.Context, accountID string) (entity.CapabilitySet, error)
}

// TxRunner ejecuta la escritura de configuración dentro de una transacción:
// la verificación de plan y el upsert ven el mismo estado, y una cancelación no deja escrituras parciales.
type TxRunner interface {
	RunConfigSave(ctx context.Context, fn func(
		accounts repository.AccountRepository,
		configs repository.ConfigRepository,
	) error) error
}

// ConfigResolver combina ConfigRecord, plantilla y capacidades en un ResolvedConfig.
type ConfigResolver struct {
	configs      repository.ConfigRepository
	templates    *TemplateRegistry
	entitlements CapabilityResolver
	plans        *catalog.PlanCatalog
	tx           TxRunner
	log          *logger.Logger
}

// NewConfigResolver construye el resolver. Todas las dependencias se inyectan: no hay cliente global.
func NewConfigResolver(
	configs repository.ConfigRepository,
	templates *TemplateRegistry,
	entitlements CapabilityResolver,
	plans *catalog.PlanCatalog,
	tx TxRunner,
	log *logger.Logger,
) *ConfigResolver {
	if log == nil {
		log = logger.Nop()
	}
	return &ConfigResolver{
		configs:      configs,
		templates:    templates,
		entitlements: entitlements,
		plans:        plans,
		tx:           tx,
		log:          log.Named("landing"),
	}
}

// Resolve calcula la configuración lista para render. Uso del editor: los errores
// (ErrNotFound, ErrConfiguration, infraestructura) se propagan al llamador.
func (r *ConfigResolver) Resolve(ctx context.Context, accountID string) (entity.ResolvedConfig, error) {
	caps, err := r.entitlements.Resolve(ctx, accountID)
	if err != nil {
		return entity.ResolvedConfig{}, err
	}

	rec, err := r.configs.Get(ctx, accountID)
	if err != nil {
		return entity.ResolvedConfig{}, fmt.Errorf("landing: config de %s: %w", accountID, err)
	}
	var stored entity.ConfigFields
	if rec != nil {
		stored = rec.ConfigFields
	}

	tpl, fellBack, err := r.effectiveTemplate(ctx, stored.TemplateID, caps.PlanID)
	if err != nil {
		return entity.ResolvedConfig{}, err
	}
	if fellBack && stored.TemplateID != nil {
		r.log.Debug().
			Str("account_id", accountID).
			Str("stored_template", *stored.TemplateID).
			Str("template", tpl.ID).
			Msg("plantilla guardada no elegible, usando fallback")
	}
	return compose(accountID, stored, tpl, caps, fellBack), nil
}

// ResolvePublic resolución para la landing pública: prioriza disponibilidad.
// Ante cualquier error registra el fallo y devuelve la página mínima sin plantilla.
func (r *ConfigResolver) ResolvePublic(ctx context.Context, accountID string) entity.ResolvedConfig {
	cfg, err := r.Resolve(ctx, accountID)
	if err != nil {
		ev := r.log.Error()
		if errors.Is(err, domain.ErrNotFound) {
			ev = r.log.Warn()
		}
		ev.Err(err).Str("account_id", accountID).Msg("resolución pública fallida, sirviendo página mínima")
		return MinimalConfig(accountID)
	}
	return cfg
}

// MinimalConfig página mínima sin plantilla usada cuando la resolución falla.
func MinimalConfig(accountID string) entity.ResolvedConfig {
	return entity.ResolvedConfig{
		CorretorID:   accountID,
		Fallback:     true,
		Badges:       []entity.Badge{},
		LandingPages: 1,
		Capabilities: entity.CapabilitySet{
			AccountID: accountID,
			Roles:     []entity.Role{},
			Features:  []entity.Feature{},
		},
	}
}

// effectiveTemplate usa la plantilla guardada si existe, está activa y el plan la permite;
// si no, la de menor nivel elegible. fellBack indica que no se usó la guardada.
func (r *ConfigResolver) effectiveTemplate(ctx context.Context, storedID *string, plan entity.PlanID) (entity.Template, bool, error) {
	if storedID != nil && *storedID != "" {
		t, err := r.templates.Get(ctx, *storedID)
		switch {
		case err == nil && allowed(t, plan):
			return t, false, nil
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return entity.Template{}, false, err
		}
	}
	t, err := r.templates.LowestEligible(ctx, plan)
	if err != nil {
		return entity.Template{}, false, err
	}
	return t, true, nil
}

// compose mezcla campo por campo: override › default de plantilla › fallback fijo.
func compose(accountID string, stored entity.ConfigFields, tpl entity.Template, caps entity.CapabilitySet, fellBack bool) entity.ResolvedConfig {
	def := tpl.Defaults
	out := entity.ResolvedConfig{
		CorretorID:       accountID,
		TemplateID:       tpl.ID,
		TemplateFallback: fellBack,
		Nome:             pick(stored.Nome, def.Nome),
		Creci:            pick(stored.Creci, def.Creci),
		Whatsapp:         pick(stored.Whatsapp, def.Whatsapp),
		Telefone:         pick(stored.Telefone, def.Telefone),
		Email:            pick(stored.Email, def.Email),
		Headline:         pick(stored.Headline, def.Headline),
		Subheadline:      pick(stored.Subheadline, def.Subheadline),
		LogoURL:          pick(stored.LogoURL, def.LogoURL),
		Capabilities:     caps.Clone(),
	}

	if caps.Has(entity.FeatureSocialLinks) {
		out.Social = entity.SocialLinks{
			Instagram: socialLink(pick(stored.Instagram, def.Instagram)),
			Facebook:  socialLink(pick(stored.Facebook, def.Facebook)),
			Linkedin:  socialLink(pick(stored.Linkedin, def.Linkedin)),
			Youtube:   socialLink(pick(stored.Youtube, def.Youtube)),
		}
	}

	if caps.Has(entity.FeatureCustomBackground) {
		out.BackgroundImageURL = pick(stored.BackgroundImageURL, def.BackgroundImageURL)
	} else {
		out.BackgroundImageURL = pick(nil, def.BackgroundImageURL)
	}

	badges := def.Badges
	if caps.Has(entity.FeatureCustomBadges) && stored.Badges != nil {
		badges = stored.Badges
	}
	out.Badges = append([]entity.Badge{}, badges...)

	if caps.Has(entity.FeatureLeadForm) {
		var form entity.LeadFormSchema
		switch {
		case stored.LeadForm != nil:
			form = *stored.LeadForm
		case def.LeadForm != nil:
			form = *def.LeadForm
		}
		out.LeadForm = entity.ResolvedFromSchema(form)
	}

	pages := 1
	switch {
	case stored.LandingPages != nil:
		pages = *stored.LandingPages
	case def.LandingPages != nil:
		pages = *def.LandingPages
	}
	out.LandingPages = clamp(pages, 1, caps.Limits.MaxLandingPages)
	return out
}

func pick(override, def *string) string {
	if override != nil {
		return *override
	}
	if def != nil {
		return *def
	}
	return ""
}

func socialLink(url string) entity.SocialLink {
	return entity.SocialLink{URL: url, Visible: url != ""}
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
