package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrConfiguration = errors.New("catálogo mal configurado")
	ErrPlanViolation = errors.New("operación no permitida por el plan")
	ErrValidation    = errors.New("entrada inválida")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
)

// FieldError describe un campo inválido en una escritura del editor.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError acumula todos los campos inválidos de una operación.
// El editor los resalta todos a la vez, por eso no se corta en el primero.
type ValidationError struct {
	Fields []FieldError
}

// Add registra un campo inválido.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Merge incorpora los campos de otro ValidationError, prefijando el nombre si se indica.
func (e *ValidationError) Merge(prefix string, other *ValidationError) {
	if other == nil {
		return
	}
	for _, f := range other.Fields {
		name := f.Field
		if prefix != "" {
			name = prefix + "." + name
		}
		e.Add(name, f.Message)
	}
}

// HasErrors informa si hay al menos un campo inválido.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// ErrOrNil devuelve el propio error si tiene campos, o nil.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PlanViolationError indica que la escritura es válida pero el plan actual no la permite.
// Es recuperable: el editor debe ofrecer el flujo de upgrade.
type PlanViolationError struct {
	PlanID string
	Field  string
	Reason string
}

func (e *PlanViolationError) Error() string {
	return fmt.Sprintf("%s: %s (%s, plan %s)", ErrPlanViolation.Error(), e.Reason, e.Field, e.PlanID)
}

// Is permite errors.Is(err, ErrPlanViolation).
func (e *PlanViolationError) Is(target error) bool { return target == ErrPlanViolation }

// NotFound envuelve ErrNotFound con el recurso buscado.
func NotFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
}

// Configuration envuelve ErrConfiguration con el detalle de la inconsistencia.
func Configuration(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
