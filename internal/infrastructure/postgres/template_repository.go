package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

const templateColumns = `id, name, description, preview_url, tier, position, active, defaults, allowed_plans`

// TemplateRepo plantillas con defaults en JSONB y planes permitidos en TEXT[].
type TemplateRepo struct {
	db Querier
}

// NewTemplateRepository construye el adaptador de plantillas.
func NewTemplateRepository(db Querier) *TemplateRepo {
	return &TemplateRepo{db: db}
}

// List devuelve las plantillas ordenadas por posición.
func (r *TemplateRepo) List(ctx context.Context, activeOnly bool) ([]entity.Template, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+templateColumns+`
		FROM templates
		WHERE active OR NOT $1
		ORDER BY position, id`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Template, 0, 8)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetByID devuelve (nil, nil) si la plantilla no existe.
func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*entity.Template, error) {
	t, err := scanTemplate(r.db.QueryRow(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Upsert crea o reemplaza la plantilla completa (siembra desde el CLI).
func (r *TemplateRepo) Upsert(ctx context.Context, t entity.Template) error {
	defaults, err := json.Marshal(t.Defaults)
	if err != nil {
		return fmt.Errorf("encode template defaults: %w", err)
	}
	plans := make([]string, 0, len(t.AllowedPlans))
	for _, p := range t.AllowedPlans {
		plans = append(plans, string(p))
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO templates (`+templateColumns+`, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			preview_url = EXCLUDED.preview_url,
			tier = EXCLUDED.tier,
			position = EXCLUDED.position,
			active = EXCLUDED.active,
			defaults = EXCLUDED.defaults,
			allowed_plans = EXCLUDED.allowed_plans,
			updated_at = now()`,
		t.ID, t.Name, t.Description, t.PreviewURL, t.Tier, t.Position, t.Active, string(defaults), plans,
	)
	if err != nil {
		return fmt.Errorf("upsert template %s: %w", t.ID, err)
	}
	return nil
}

func scanTemplate(row rowScanner) (entity.Template, error) {
	var (
		t        entity.Template
		defaults []byte
		plans    []string
	)
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.PreviewURL, &t.Tier, &t.Position, &t.Active, &defaults, &plans)
	if err != nil {
		if isNoRows(err) {
			return t, err
		}
		return t, fmt.Errorf("scan template: %w", err)
	}
	if len(defaults) > 0 {
		if err := json.Unmarshal(defaults, &t.Defaults); err != nil {
			return t, fmt.Errorf("decode defaults de %s: %w", t.ID, err)
		}
	}
	t.AllowedPlans = make([]entity.PlanID, 0, len(plans))
	for _, p := range plans {
		t.AllowedPlans = append(t.AllowedPlans, entity.PlanID(p))
	}
	return t, nil
}
