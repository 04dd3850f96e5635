package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
)

// LeadFormVersion versión actual del esquema persistido en form_config.
const LeadFormVersion = 1

// Campos del formulario de captación.
const (
	LeadFieldRenda    = "renda"
	LeadFieldObjetivo = "objetivo"
	LeadFieldEntrada  = "entrada"
)

var leadFieldNames = []string{LeadFieldRenda, LeadFieldObjetivo, LeadFieldEntrada}

// LeadFormField par visibilidad/obligatoriedad de un campo.
type LeadFormField struct {
	Visivel     bool `json:"visivel"`
	Obrigatorio bool `json:"obrigatorio"`
}

// LeadFormSchema formulario de captación de leads (renda, objetivo, entrada).
// El valor cero es el formulario totalmente oculto.
type LeadFormSchema struct {
	Renda    LeadFormField
	Objetivo LeadFormField
	Entrada  LeadFormField
}

// Normalize aplica la invariante obrigatorio ⇒ visivel: un campo oculto nunca es obligatorio.
func (s LeadFormSchema) Normalize() LeadFormSchema {
	s.Renda = s.Renda.normalize()
	s.Objetivo = s.Objetivo.normalize()
	s.Entrada = s.Entrada.normalize()
	return s
}

func (f LeadFormField) normalize() LeadFormField {
	if f.Obrigatorio && !f.Visivel {
		f.Obrigatorio = false
	}
	return f
}

func (s *LeadFormSchema) field(name string) *LeadFormField {
	switch name {
	case LeadFieldRenda:
		return &s.Renda
	case LeadFieldObjetivo:
		return &s.Objetivo
	case LeadFieldEntrada:
		return &s.Entrada
	}
	return nil
}

type leadFormEnvelope struct {
	Version int                      `json:"version"`
	Campos  map[string]LeadFormField `json:"campos"`
}

// MarshalJSON escribe siempre la versión actual del esquema.
func (s LeadFormSchema) MarshalJSON() ([]byte, error) {
	return json.Marshal(leadFormEnvelope{
		Version: LeadFormVersion,
		Campos: map[string]LeadFormField{
			LeadFieldRenda:    s.Renda,
			LeadFieldObjetivo: s.Objetivo,
			LeadFieldEntrada:  s.Entrada,
		},
	})
}

// UnmarshalJSON acepta la versión actual y la versión 0 (objeto sin "version").
func (s *LeadFormSchema) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeLeadForm(data)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// DecodeLeadForm interpreta un form_config persistido o enviado por el editor.
//
// Versión 0: {"renda": {"visivel": true, "obrigatorio": false}, ...}
// Versión 1: {"version": 1, "campos": {"renda": {...}, ...}}
//
// Los flags deben ser booleanos JSON; cada flag inválido se reporta como campo
// en un *domain.ValidationError.
func DecodeLeadForm(data []byte) (LeadFormSchema, error) {
	var out LeadFormSchema
	verr := &domain.ValidationError{}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil || top == nil {
		verr.Add("lead_form", "debe ser un objeto JSON")
		return out, verr
	}

	campos := top
	if rawVersion, ok := top["version"]; ok {
		var version int
		if err := json.Unmarshal(rawVersion, &version); err != nil {
			verr.Add("lead_form.version", "debe ser un entero")
			return out, verr
		}
		if version != LeadFormVersion {
			verr.Add("lead_form.version", fmt.Sprintf("versión %d no soportada", version))
			return out, verr
		}
		campos = nil
		if rawCampos, ok := top["campos"]; ok {
			if err := json.Unmarshal(rawCampos, &campos); err != nil {
				verr.Add("lead_form.campos", "debe ser un objeto JSON")
				return out, verr
			}
		}
	}

	for _, name := range leadFieldNames {
		raw, ok := campos[name]
		if !ok {
			continue
		}
		var flags map[string]json.RawMessage
		if err := json.Unmarshal(raw, &flags); err != nil || flags == nil {
			verr.Add("lead_form."+name, "debe ser un objeto con visivel y obrigatorio")
			continue
		}
		target := out.field(name)
		if v, ok := flags["visivel"]; ok {
			b, err := decodeFlag(v)
			if err != nil {
				verr.Add("lead_form."+name+".visivel", "debe ser booleano")
			}
			target.Visivel = b
		}
		if v, ok := flags["obrigatorio"]; ok {
			b, err := decodeFlag(v)
			if err != nil {
				verr.Add("lead_form."+name+".obrigatorio", "debe ser booleano")
			}
			target.Obrigatorio = b
		}
	}

	if verr.HasErrors() {
		return LeadFormSchema{}, verr
	}
	return out, nil
}

func decodeFlag(raw json.RawMessage) (bool, error) {
	raw = bytes.TrimSpace(raw)
	switch string(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("flag no booleano: %s", raw)
}
