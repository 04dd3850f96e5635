package dto

import "github.com/jhoicas/corretor-landing-api/internal/domain"

// ErrorResponse cuerpo de error HTTP.
// Fields acompaña a VALIDATION; UpgradeRequired a PLAN_VIOLATION; Retryable a fallos transitorios.
type ErrorResponse struct {
	Code            string              `json:"code"`
	Message         string              `json:"message"`
	Fields          []domain.FieldError `json:"fields,omitempty"`
	UpgradeRequired bool                `json:"upgrade_required,omitempty"`
	Retryable       bool                `json:"retryable,omitempty"`
}
