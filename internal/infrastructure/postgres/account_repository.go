package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, email, name, password_hash, plan_id, status, created_at, updated_at`

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	db       Querier
	lockPlan bool
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(db Querier) *AccountRepo {
	return &AccountRepo{db: db}
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// GetByEmail obtiene una cuenta por email (sin distinguir mayúsculas).
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE lower(email) = lower($1) LIMIT 1`, email)
}

// GetPlan devuelve el plan actual. Dentro de TxRunner bloquea la fila en modo compartido.
func (r *AccountRepo) GetPlan(ctx context.Context, accountID string) (entity.PlanID, error) {
	query := `SELECT plan_id FROM accounts WHERE id = $1`
	if r.lockPlan {
		query += ` FOR SHARE`
	}
	var plan string
	if err := r.db.QueryRow(ctx, query, accountID).Scan(&plan); err != nil {
		if isNoRows(err) {
			return "", domain.NotFound("cuenta", accountID)
		}
		return "", fmt.Errorf("get account plan: %w", err)
	}
	return entity.PlanID(plan), nil
}

// UpdatePlan reasigna el plan de la cuenta.
func (r *AccountRepo) UpdatePlan(ctx context.Context, accountID string, plan entity.PlanID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET plan_id = $2, updated_at = now() WHERE id = $1`,
		accountID, string(plan),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Configuration("plan %s no sincronizado en la tabla plans", plan)
		}
		return fmt.Errorf("update account plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("cuenta", accountID)
	}
	return nil
}

func (r *AccountRepo) findOne(ctx context.Context, query string, arg string) (*entity.Account, error) {
	var (
		a    entity.Account
		plan string
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.Name, &a.PasswordHash, &plan, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	a.PlanID = entity.PlanID(plan)
	return &a, nil
}
