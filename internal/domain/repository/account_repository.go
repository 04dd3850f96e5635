package repository

import (
	"context"

	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// GetByID/GetByEmail devuelven (nil, nil) si la cuenta no existe.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	// GetPlan devuelve domain.ErrNotFound si la cuenta no existe.
	GetPlan(ctx context.Context, accountID string) (entity.PlanID, error)
	UpdatePlan(ctx context.Context, accountID string, plan entity.PlanID) error
}
