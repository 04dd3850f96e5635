package catalog

import "github.com/jhoicas/corretor-landing-api/internal/domain/entity"

// roleGrants capacidades administrativas que concede cada rol, independientes del plan.
var roleGrants = map[entity.Role][]entity.Feature{
	entity.RoleAdmin: {
		entity.FeatureAdminPanel,
		entity.FeatureRoleManagement,
		entity.FeatureCatalogManagement,
	},
	entity.RoleModerator: {
		entity.FeatureAdminPanel,
		entity.FeatureContentModeration,
	},
}

// featureGates features de plan que además exigen alguno de estos roles.
var featureGates = map[entity.Feature][]entity.Role{
	entity.FeatureTeamManagement: {entity.RoleAdmin, entity.RoleModerator},
}

// RoleGrants devuelve las capacidades concedidas por el rol.
func RoleGrants(r entity.Role) []entity.Feature {
	return append([]entity.Feature(nil), roleGrants[r]...)
}

// FeatureGate devuelve los roles que habilitan la feature; vacío si no está restringida.
func FeatureGate(f entity.Feature) []entity.Role {
	return append([]entity.Role(nil), featureGates[f]...)
}
