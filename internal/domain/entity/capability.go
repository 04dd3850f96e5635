package entity

import "sort"

// Feature capacidad nombrada que un corretor puede usar.
type Feature string

// Features de plan.
const (
	FeatureLandingPage      Feature = "landing_page"
	FeatureSocialLinks      Feature = "social_links"
	FeatureLeadForm         Feature = "lead_form"
	FeatureCustomBadges     Feature = "custom_badges"
	FeatureCustomBackground Feature = "custom_background"
	FeaturePropertyListings Feature = "property_listings"
	FeatureClientCRM        Feature = "client_crm"
	FeatureAnalytics        Feature = "analytics"
	FeatureCustomDomain     Feature = "custom_domain"
	FeatureTeamManagement   Feature = "team_management"
)

// Features administrativas (concedidas por rol, nunca por plan).
const (
	FeatureAdminPanel        Feature = "admin_panel"
	FeatureRoleManagement    Feature = "role_management"
	FeatureCatalogManagement Feature = "catalog_management"
	FeatureContentModeration Feature = "content_moderation"
)

// CapabilitySet conjunto efectivo de capacidades de una cuenta.
// Es un valor: dos resoluciones con el mismo (roles, plan) producen el mismo contenido.
type CapabilitySet struct {
	AccountID string     `json:"account_id"`
	PlanID    PlanID     `json:"plan_id"`
	Family    PlanFamily `json:"family"`
	Tier      int        `json:"tier"`
	Roles     []Role     `json:"roles"`
	Features  []Feature  `json:"features"` // ordenadas
	Limits    PlanLimits `json:"limits"`
}

// Has informa si la capacidad está habilitada.
func (c CapabilitySet) Has(f Feature) bool {
	i := sort.Search(len(c.Features), func(i int) bool { return c.Features[i] >= f })
	return i < len(c.Features) && c.Features[i] == f
}

// HasRole informa si la cuenta tiene el rol.
func (c CapabilitySet) HasRole(r Role) bool {
	for _, have := range c.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// Clone copia los slices para que el llamador no comparta estado.
func (c CapabilitySet) Clone() CapabilitySet {
	out := c
	out.Roles = append([]Role(nil), c.Roles...)
	out.Features = append([]Feature(nil), c.Features...)
	return out
}

// SortFeatures ordena y deduplica.
func SortFeatures(in []Feature) []Feature {
	seen := make(map[Feature]struct{}, len(in))
	out := make([]Feature, 0, len(in))
	for _, f := range in {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
