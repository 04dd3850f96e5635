package repository

import (
	"context"

	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

// TemplateRepository persistencia de plantillas de landing.
type TemplateRepository interface {
	// List devuelve las plantillas en su orden declarado (Position).
	List(ctx context.Context, activeOnly bool) ([]entity.Template, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Template, error)
	Upsert(ctx context.Context, t entity.Template) error
}
