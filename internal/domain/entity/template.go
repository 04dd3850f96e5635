package entity

// Template plantilla de landing page con sus valores por defecto.
type Template struct {
	ID           string
	Name         string
	Description  string
	PreviewURL   string
	Tier         int // nivel mínimo orientativo; desempata la elección de fallback
	Position     int // orden declarado en el registro
	Active       bool
	Defaults     ConfigFields
	AllowedPlans []PlanID
}

// AllowsPlan informa si el plan puede seleccionar la plantilla.
func (t Template) AllowsPlan(plan PlanID) bool {
	for _, p := range t.AllowedPlans {
		if p == plan {
			return true
		}
	}
	return false
}
