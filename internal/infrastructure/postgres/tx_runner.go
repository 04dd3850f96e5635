package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/corretor-landing-api/internal/application/landing"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
)

var _ landing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunConfigSave inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La cancelación del contexto aborta la tx: no quedan escrituras parciales.
func (r *TxRunner) RunConfigSave(ctx context.Context, fn func(
	accounts repository.AccountRepository,
	configs repository.ConfigRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// FOR SHARE en GetPlan: un cambio de plan concurrente espera a que termine el guardado.
	accounts := &AccountRepo{db: tx, lockPlan: true}
	configs := NewConfigRepository(tx)

	if err := fn(accounts, configs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
