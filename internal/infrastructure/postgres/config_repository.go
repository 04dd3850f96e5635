package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
)

var _ repository.ConfigRepository = (*ConfigRepo)(nil)

const configColumns = `corretor_id, template_id, nome, creci, whatsapp, telefone, email,
	instagram, facebook, linkedin, youtube, headline, subheadline, background_image_url, logo_url,
	badges, form_config, landing_pages, created_at, updated_at`

// ConfigRepo corretor_configs: una fila por corretor, NULL = sin override.
type ConfigRepo struct {
	db Querier
}

// NewConfigRepository construye el adaptador de configuración.
func NewConfigRepository(db Querier) *ConfigRepo {
	return &ConfigRepo{db: db}
}

// Get devuelve (nil, nil) si el corretor no tiene fila.
func (r *ConfigRepo) Get(ctx context.Context, corretorID string) (*entity.ConfigRecord, error) {
	rec, _, err := scanConfig(r.db.QueryRow(ctx,
		`SELECT `+configColumns+`, false FROM corretor_configs WHERE corretor_id = $1`, corretorID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get corretor config: %w", err)
	}
	return rec, nil
}

// Upsert escribe solo las columnas presentes en una única sentencia: COALESCE conserva
// el valor guardado cuando el parámetro es NULL. xmax = 0 identifica la fila recién insertada.
func (r *ConfigRepo) Upsert(ctx context.Context, corretorID string, f entity.ConfigFields) (*entity.ConfigRecord, bool, error) {
	badges, err := jsonParam(f.Badges != nil, f.Badges)
	if err != nil {
		return nil, false, fmt.Errorf("encode badges: %w", err)
	}
	form, err := jsonParam(f.LeadForm != nil, f.LeadForm)
	if err != nil {
		return nil, false, fmt.Errorf("encode form_config: %w", err)
	}

	query := `
		INSERT INTO corretor_configs (
			corretor_id, template_id, nome, creci, whatsapp, telefone, email,
			instagram, facebook, linkedin, youtube, headline, subheadline, background_image_url, logo_url,
			badges, form_config, landing_pages, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, now(), now())
		ON CONFLICT (corretor_id) DO UPDATE SET
			template_id          = COALESCE(EXCLUDED.template_id, corretor_configs.template_id),
			nome                 = COALESCE(EXCLUDED.nome, corretor_configs.nome),
			creci                = COALESCE(EXCLUDED.creci, corretor_configs.creci),
			whatsapp             = COALESCE(EXCLUDED.whatsapp, corretor_configs.whatsapp),
			telefone             = COALESCE(EXCLUDED.telefone, corretor_configs.telefone),
			email                = COALESCE(EXCLUDED.email, corretor_configs.email),
			instagram            = COALESCE(EXCLUDED.instagram, corretor_configs.instagram),
			facebook             = COALESCE(EXCLUDED.facebook, corretor_configs.facebook),
			linkedin             = COALESCE(EXCLUDED.linkedin, corretor_configs.linkedin),
			youtube              = COALESCE(EXCLUDED.youtube, corretor_configs.youtube),
			headline             = COALESCE(EXCLUDED.headline, corretor_configs.headline),
			subheadline          = COALESCE(EXCLUDED.subheadline, corretor_configs.subheadline),
			background_image_url = COALESCE(EXCLUDED.background_image_url, corretor_configs.background_image_url),
			logo_url             = COALESCE(EXCLUDED.logo_url, corretor_configs.logo_url),
			badges               = COALESCE(EXCLUDED.badges, corretor_configs.badges),
			form_config          = COALESCE(EXCLUDED.form_config, corretor_configs.form_config),
			landing_pages        = COALESCE(EXCLUDED.landing_pages, corretor_configs.landing_pages),
			updated_at           = now()
		RETURNING ` + configColumns + `, (xmax = 0)`

	rec, created, err := scanConfig(r.db.QueryRow(ctx, query,
		corretorID, f.TemplateID, f.Nome, f.Creci, f.Whatsapp, f.Telefone, f.Email,
		f.Instagram, f.Facebook, f.Linkedin, f.Youtube, f.Headline, f.Subheadline,
		f.BackgroundImageURL, f.LogoURL, badges, form, f.LandingPages,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, false, domain.NotFound("cuenta", corretorID)
		}
		return nil, false, fmt.Errorf("upsert corretor config: %w", err)
	}
	return rec, created, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConfig(row rowScanner) (*entity.ConfigRecord, bool, error) {
	var (
		rec          entity.ConfigRecord
		badges, form []byte
		created      bool
	)
	f := &rec.ConfigFields
	err := row.Scan(
		&rec.CorretorID, &f.TemplateID, &f.Nome, &f.Creci, &f.Whatsapp, &f.Telefone, &f.Email,
		&f.Instagram, &f.Facebook, &f.Linkedin, &f.Youtube, &f.Headline, &f.Subheadline,
		&f.BackgroundImageURL, &f.LogoURL, &badges, &form, &f.LandingPages,
		&rec.CreatedAt, &rec.UpdatedAt, &created,
	)
	if err != nil {
		return nil, false, err
	}
	if badges != nil {
		f.Badges = []entity.Badge{}
		if err := json.Unmarshal(badges, &f.Badges); err != nil {
			return nil, false, fmt.Errorf("decode badges: %w", err)
		}
	}
	if form != nil {
		lf, err := entity.DecodeLeadForm(form)
		if err != nil {
			return nil, false, fmt.Errorf("decode form_config: %w", err)
		}
		f.LeadForm = &lf
	}
	return &rec, created, nil
}

// jsonParam serializa v para una columna JSONB; ausente viaja como NULL.
func jsonParam(present bool, v any) (any, error) {
	if !present {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
