package catalog

import (
	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

// Plantillas base. Se siembran con `corretorctl templates seed`.
const (
	TemplateClassic   = "classic-template"
	TemplateAgency    = "agency-template"
	TemplateModern    = "modern-template"
	TemplateAuthority = "authority-template"
)

// DefaultTemplates devuelve las plantillas base en su orden declarado.
func DefaultTemplates() []entity.Template {
	allPlans := []entity.PlanID{
		entity.PlanCorretorEssencial, entity.PlanCorretorProfissional, entity.PlanCorretorAutoridade,
		entity.PlanImobiliariaEssencial, entity.PlanImobiliariaProfissional, entity.PlanImobiliariaAutoridade,
	}
	visible := entity.LeadFormField{Visivel: true}
	return []entity.Template{
		{
			ID: TemplateClassic, Name: "Clássico", Position: 1, Tier: entity.TierEssencial, Active: true,
			Description: "Layout simples com foto, contato e formulário de interesse.",
			PreviewURL:  "/static/templates/classic.png",
			Defaults: entity.ConfigFields{
				Headline:           str("Encontre o imóvel ideal"),
				Subheadline:        str("Atendimento personalizado do primeiro contato às chaves."),
				BackgroundImageURL: str("https://cdn.corretor.app/templates/classic/bg.jpg"),
				LeadForm:           &entity.LeadFormSchema{Objetivo: visible},
				LandingPages:       intp(1),
			},
			AllowedPlans: allPlans,
		},
		{
			ID: TemplateAgency, Name: "Imobiliária", Position: 2, Tier: entity.TierEssencial, Active: true,
			Description: "Vitrine de equipe com destaque para a marca da imobiliária.",
			PreviewURL:  "/static/templates/agency.png",
			Defaults: entity.ConfigFields{
				Headline:           str("Sua próxima conquista começa aqui"),
				Subheadline:        str("Uma equipe inteira dedicada ao seu negócio."),
				BackgroundImageURL: str("https://cdn.corretor.app/templates/agency/bg.jpg"),
				LeadForm:           &entity.LeadFormSchema{Objetivo: visible, Renda: visible},
			},
			AllowedPlans: []entity.PlanID{
				entity.PlanImobiliariaEssencial, entity.PlanImobiliariaProfissional, entity.PlanImobiliariaAutoridade,
			},
		},
		{
			ID: TemplateModern, Name: "Moderno", Position: 3, Tier: entity.TierProfissional, Active: true,
			Description: "Seções em cards, selos de credibilidade e vitrine de imóveis.",
			PreviewURL:  "/static/templates/modern.png",
			Defaults: entity.ConfigFields{
				Headline:           str("Imóveis selecionados para você"),
				Subheadline:        str("Curadoria, financiamento e documentação em um só lugar."),
				BackgroundImageURL: str("https://cdn.corretor.app/templates/modern/bg.jpg"),
				Badges:             []entity.Badge{{Label: "CRECI ativo", Icon: "shield"}},
				LeadForm: &entity.LeadFormSchema{
					Renda:    visible,
					Objetivo: entity.LeadFormField{Visivel: true, Obrigatorio: true},
				},
			},
			AllowedPlans: []entity.PlanID{
				entity.PlanCorretorProfissional, entity.PlanCorretorAutoridade,
				entity.PlanImobiliariaProfissional, entity.PlanImobiliariaAutoridade,
			},
		},
		{
			ID: TemplateAuthority, Name: "Autoridade", Position: 4, Tier: entity.TierAutoridade, Active: true,
			Description: "Página de marca pessoal com prova social e múltiplas landings.",
			PreviewURL:  "/static/templates/authority.png",
			Defaults: entity.ConfigFields{
				Headline:           str("Referência em imóveis de alto padrão"),
				Subheadline:        str("Mais de uma década conectando pessoas aos melhores endereços."),
				BackgroundImageURL: str("https://cdn.corretor.app/templates/authority/bg.jpg"),
				Badges: []entity.Badge{
					{Label: "CRECI ativo", Icon: "shield"},
					{Label: "Especialista em alto padrão", Icon: "star"},
				},
				LeadForm: &entity.LeadFormSchema{
					Renda:    entity.LeadFormField{Visivel: true, Obrigatorio: true},
					Objetivo: entity.LeadFormField{Visivel: true, Obrigatorio: true},
					Entrada:  visible,
				},
				LandingPages: intp(3),
			},
			AllowedPlans: []entity.PlanID{entity.PlanCorretorAutoridade, entity.PlanImobiliariaAutoridade},
		},
	}
}

// ValidateTemplates verifica el conjunto de plantillas contra el catálogo de planes:
// IDs únicos, planes conocidos, al menos una plantilla activa por plan y
// no más plantillas elegibles que el límite max_templates del plan.
func ValidateTemplates(plans *PlanCatalog, templates []entity.Template) error {
	seen := make(map[string]struct{}, len(templates))
	perPlan := make(map[entity.PlanID]int)
	for _, t := range templates {
		if t.ID == "" {
			return domain.Configuration("plantilla sin ID")
		}
		if _, dup := seen[t.ID]; dup {
			return domain.Configuration("plantilla %s duplicada", t.ID)
		}
		seen[t.ID] = struct{}{}
		for _, p := range t.AllowedPlans {
			if !plans.Has(p) {
				return domain.Configuration("plantilla %s referencia plan desconocido %q", t.ID, p)
			}
			if t.Active {
				perPlan[p]++
			}
		}
	}
	for _, p := range plans.List() {
		n := perPlan[p.ID]
		if n == 0 {
			return domain.Configuration("plan %s sin plantillas activas", p.ID)
		}
		if n > p.Limits.MaxTemplates {
			return domain.Configuration("plan %s tiene %d plantillas y su límite es %d", p.ID, n, p.Limits.MaxTemplates)
		}
	}
	return nil
}

func str(s string) *string { return &s }

func intp(n int) *int { return &n }
