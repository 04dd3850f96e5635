package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

// PlanResponse entrada del catálogo de planes (precio informativo).
type PlanResponse struct {
	ID       string            `json:"id"`
	Family   string            `json:"family"`
	Tier     int               `json:"tier"`
	Name     string            `json:"name"`
	Price    decimal.Decimal   `json:"price"`
	Currency string            `json:"currency"`
	Features []string          `json:"features"`
	Limits   entity.PlanLimits `json:"limits"`
}

// TemplateResponse plantilla seleccionable en el editor.
type TemplateResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PreviewURL  string `json:"preview_url"`
	Tier        int    `json:"tier"`
}

// ChangePlanRequest cuerpo de PUT /api/admin/accounts/:id/plan.
type ChangePlanRequest struct {
	PlanID string `json:"plan_id"`
}

// PlanFromEntity convierte un plan del catálogo.
func PlanFromEntity(p entity.Plan) PlanResponse {
	features := make([]string, 0, len(p.Features))
	for _, f := range p.Features {
		features = append(features, string(f))
	}
	return PlanResponse{
		ID:       string(p.ID),
		Family:   string(p.Family),
		Tier:     p.Tier,
		Name:     p.Name,
		Price:    p.Price,
		Currency: p.Currency,
		Features: features,
		Limits:   p.Limits,
	}
}

// TemplateFromEntity convierte una plantilla para el selector del editor.
func TemplateFromEntity(t entity.Template) TemplateResponse {
	return TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		PreviewURL:  t.PreviewURL,
		Tier:        t.Tier,
	}
}
