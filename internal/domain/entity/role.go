package entity

import "sort"

// Role etiqueta administrativa de una cuenta. Independiente del plan.
type Role string

// Roles conocidos. Etiquetas desconocidas se ignoran al resolver capacidades.
const (
	RoleAdmin     Role = "admin"
	RoleBroker    Role = "broker"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// KnownRoles lista de roles válidos en orden estable.
var KnownRoles = []Role{RoleAdmin, RoleBroker, RoleModerator, RoleUser}

// IsKnown informa si el rol pertenece al conjunto soportado.
func (r Role) IsKnown() bool {
	for _, k := range KnownRoles {
		if r == k {
			return true
		}
	}
	return false
}

// RoleSet conjunto de roles (cada rol aparece a lo sumo una vez).
type RoleSet map[Role]struct{}

// NewRoleSet construye el conjunto descartando duplicados.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Has informa si el conjunto contiene el rol.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// HasAny informa si el conjunto contiene alguno de los roles.
func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Sorted devuelve los roles ordenados alfabéticamente.
func (s RoleSet) Sorted() []Role {
	out := make([]Role, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings devuelve los roles ordenados como strings (claims JWT, respuestas HTTP).
func (s RoleSet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, r := range sorted {
		out[i] = string(r)
	}
	return out
}
