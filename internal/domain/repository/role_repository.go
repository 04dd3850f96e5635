package repository

import (
	"context"

	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

// RoleRepository persistencia de roles por cuenta (RoleStore).
// AddRole y RemoveRole son idempotentes: agregar un rol existente o quitar uno ausente no es error.
type RoleRepository interface {
	GetRoles(ctx context.Context, accountID string) ([]entity.Role, error)
	AddRole(ctx context.Context, accountID string, role entity.Role) error
	RemoveRole(ctx context.Context, accountID string, role entity.Role) error
}
