package landing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
)

// Patch escritura parcial del editor. Solo los campos presentes cambian.
// LeadForm llega crudo para validar sus flags junto con el resto de campos.
// TypeErrors son los campos que el transporte no pudo decodificar.
type Patch struct {
	Fields     entity.ConfigFields
	LeadForm   json.RawMessage
	TypeErrors *domain.ValidationError
}

// Save aplica el parche sobre el ConfigRecord del corretor.
//
// Errores:
//   - *domain.ValidationError con todos los campos inválidos.
//   - domain.ErrNotFound si la cuenta o la plantilla no existen.
//   - *domain.PlanViolationError si la plantilla o landing_pages exceden el plan (recuperable).
func (r *ConfigResolver) Save(ctx context.Context, accountID string, patch Patch) (*entity.ConfigRecord, error) {
	fields, err := r.prepare(patch)
	if err != nil {
		return nil, err
	}

	var tpl *entity.Template
	if fields.TemplateID != nil {
		t, err := r.templates.Get(ctx, *fields.TemplateID)
		if err != nil {
			return nil, err
		}
		// Inactiva no es un problema de plan: ningún upgrade la habilita.
		if !t.Active {
			verr := &domain.ValidationError{}
			verr.Add("template_id", fmt.Sprintf("la plantilla %s no está disponible", t.ID))
			return nil, verr
		}
		tpl = &t
	}

	var (
		rec     *entity.ConfigRecord
		created bool
	)
	err = r.tx.RunConfigSave(ctx, func(accounts repository.AccountRepository, configs repository.ConfigRepository) error {
		planID, err := accounts.GetPlan(ctx, accountID)
		if err != nil {
			return err
		}
		plan, err := r.plans.Get(planID)
		if err != nil {
			return err
		}
		if tpl != nil && !allowed(*tpl, planID) {
			return &domain.PlanViolationError{
				PlanID: string(planID),
				Field:  "template_id",
				Reason: fmt.Sprintf("la plantilla %s no está disponible en el plan", tpl.ID),
			}
		}
		if fields.LandingPages != nil && *fields.LandingPages > plan.Limits.MaxLandingPages {
			return &domain.PlanViolationError{
				PlanID: string(planID),
				Field:  "landing_pages",
				Reason: fmt.Sprintf("el plan permite hasta %d landing pages", plan.Limits.MaxLandingPages),
			}
		}
		rec, created, err = configs.Upsert(ctx, accountID, fields)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrPlanViolation) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConfiguration) {
			return nil, err
		}
		return nil, fmt.Errorf("landing: guardar config de %s: %w", accountID, err)
	}

	transition := "actualizada"
	if created {
		transition = "creada"
	}
	r.log.Info().Str("account_id", accountID).Str("transition", transition).Msg("configuración guardada")
	return rec, nil
}

// SaveAndResolve guarda y devuelve el estado confirmado ya resuelto.
// El editor solo actualiza su copia local con esta respuesta.
//
// Si la escritura confirma y la resolución posterior falla, el error se devuelve igual
// (503 retryable). Reintentar el mismo parche es seguro: solo fija los campos presentes
// a los mismos valores, así que el resultado no depende de cuántas veces se aplique.
func (r *ConfigResolver) SaveAndResolve(ctx context.Context, accountID string, patch Patch) (entity.ResolvedConfig, error) {
	if _, err := r.Save(ctx, accountID, patch); err != nil {
		return entity.ResolvedConfig{}, err
	}
	cfg, err := r.Resolve(ctx, accountID)
	if err != nil {
		r.log.Warn().Err(err).Str("account_id", accountID).Msg("configuración guardada pero no resuelta")
		return entity.ResolvedConfig{}, fmt.Errorf("landing: resolver tras guardar: %w", err)
	}
	return cfg, nil
}

// prepare normaliza textos, decodifica el formulario y acumula los errores de validación.
func (r *ConfigResolver) prepare(patch Patch) (entity.ConfigFields, error) {
	fields := normalizeText(patch.Fields)
	verr := validateFields(fields)
	verr.Merge("", patch.TypeErrors)

	raw := bytes.TrimSpace(patch.LeadForm)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		form, err := entity.DecodeLeadForm(raw)
		var formErr *domain.ValidationError
		switch {
		case errors.As(err, &formErr):
			verr.Merge("", formErr)
		case err != nil:
			verr.Add("lead_form", err.Error())
		default:
			form = form.Normalize()
			fields.LeadForm = &form
		}
	}

	if !verr.HasErrors() && fields.IsEmpty() {
		verr.Add("body", "ningún campo para actualizar")
	}
	if err := verr.ErrOrNil(); err != nil {
		return entity.ConfigFields{}, err
	}
	return fields, nil
}
