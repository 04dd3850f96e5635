package entity

import "github.com/shopspring/decimal"

// PlanID identificador de plan (enumeración fija: 2 familias × 3 niveles).
type PlanID string

const (
	PlanCorretorEssencial       PlanID = "corretor_essencial"
	PlanCorretorProfissional    PlanID = "corretor_profissional"
	PlanCorretorAutoridade      PlanID = "corretor_autoridade"
	PlanImobiliariaEssencial    PlanID = "imobiliaria_essencial"
	PlanImobiliariaProfissional PlanID = "imobiliaria_profissional"
	PlanImobiliariaAutoridade   PlanID = "imobiliaria_autoridade"
)

// PlanFamily agrupa planes para corretor individual o imobiliária.
type PlanFamily string

const (
	FamilyCorretor    PlanFamily = "corretor"
	FamilyImobiliaria PlanFamily = "imobiliaria"
)

// Niveles de plan; menor número = nivel más bajo.
const (
	TierEssencial    = 1
	TierProfissional = 2
	TierAutoridade   = 3
)

// PlanLimits límites numéricos del plan.
type PlanLimits struct {
	MaxLandingPages int `json:"max_landing_pages"`
	MaxTemplates    int `json:"max_templates"`
}

// Plan entrada inmutable del catálogo. Price es solo informativo, no autoritativo para cobro.
type Plan struct {
	ID       PlanID
	Family   PlanFamily
	Tier     int
	Name     string
	Price    decimal.Decimal // mensual
	Currency string
	Features []Feature // orden de presentación
	Limits   PlanLimits
}
