package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo roles por cuenta en account_roles.
type RoleRepo struct {
	db Querier
}

// NewRoleRepository construye el adaptador de roles.
func NewRoleRepository(db Querier) *RoleRepo {
	return &RoleRepo{db: db}
}

// GetRoles devuelve las etiquetas tal como están guardadas, incluidas las desconocidas.
func (r *RoleRepo) GetRoles(ctx context.Context, accountID string) ([]entity.Role, error) {
	rows, err := r.db.Query(ctx, `SELECT role FROM account_roles WHERE account_id = $1 ORDER BY role`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var out []entity.Role
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, entity.Role(role))
	}
	return out, rows.Err()
}

// AddRole idempotente: ON CONFLICT DO NOTHING.
func (r *RoleRepo) AddRole(ctx context.Context, accountID string, role entity.Role) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO account_roles (account_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		accountID, string(role),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("cuenta", accountID)
		}
		return fmt.Errorf("add role: %w", err)
	}
	return nil
}

// RemoveRole idempotente: quitar un rol ausente no es error.
func (r *RoleRepo) RemoveRole(ctx context.Context, accountID string, role entity.Role) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM account_roles WHERE account_id = $1 AND role = $2`, accountID, string(role)); err != nil {
		return fmt.Errorf("remove role: %w", err)
	}
	return nil
}
