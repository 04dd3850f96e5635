package repository

import (
	"context"

	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

// PlanRepository replica el catálogo estático en la tabla plans (lectura de reportes externos).
// El catálogo en código sigue siendo la única fuente de verdad.
type PlanRepository interface {
	Sync(ctx context.Context, plans []entity.Plan) error
}
