package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo réplica del catálogo en la tabla plans. price es NUMERIC vía pgx-shopspring-decimal.
type PlanRepo struct {
	pool *pgxpool.Pool
}

// NewPlanRepository construye el adaptador.
func NewPlanRepository(pool *pgxpool.Pool) *PlanRepo {
	return &PlanRepo{pool: pool}
}

// Sync reemplaza el contenido de plans por el catálogo en una sola transacción.
// Los planes retirados del catálogo solo se borran si ninguna cuenta los referencia.
func (r *PlanRepo) Sync(ctx context.Context, plans []entity.Plan) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ids := make([]string, 0, len(plans))
	for _, p := range plans {
		features := make([]string, 0, len(p.Features))
		for _, f := range p.Features {
			features = append(features, string(f))
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO plans (id, family, tier, name, price, currency, features, max_landing_pages, max_templates, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
			ON CONFLICT (id) DO UPDATE SET
				family = EXCLUDED.family,
				tier = EXCLUDED.tier,
				name = EXCLUDED.name,
				price = EXCLUDED.price,
				currency = EXCLUDED.currency,
				features = EXCLUDED.features,
				max_landing_pages = EXCLUDED.max_landing_pages,
				max_templates = EXCLUDED.max_templates,
				updated_at = now()`,
			string(p.ID), string(p.Family), p.Tier, p.Name, p.Price, p.Currency, features,
			p.Limits.MaxLandingPages, p.Limits.MaxTemplates,
		)
		if err != nil {
			return fmt.Errorf("upsert plan %s: %w", p.ID, err)
		}
		ids = append(ids, string(p.ID))
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM plans
		WHERE id <> ALL($1)
		  AND NOT EXISTS (SELECT 1 FROM accounts a WHERE a.plan_id = plans.id)`, ids)
	if err != nil {
		return fmt.Errorf("prune plans: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
