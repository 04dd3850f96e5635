package dto

import (
	"encoding/json"
	"sort"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

// ConfigPatchRequest cuerpo de PUT /api/me/config. Solo los campos presentes se guardan;
// un string vacío es un override explícito en blanco.
type ConfigPatchRequest struct {
	TemplateID         *string         `json:"template_id"`
	Nome               *string         `json:"nome"`
	Creci              *string         `json:"creci"`
	Whatsapp           *string         `json:"whatsapp"`
	Telefone           *string         `json:"telefone"`
	Email              *string         `json:"email"`
	Instagram          *string         `json:"instagram"`
	Facebook           *string         `json:"facebook"`
	Linkedin           *string         `json:"linkedin"`
	Youtube            *string         `json:"youtube"`
	Headline           *string         `json:"headline"`
	Subheadline        *string         `json:"subheadline"`
	BackgroundImageURL *string         `json:"background_image_url"`
	LogoURL            *string         `json:"logo_url"`
	Badges             []entity.Badge  `json:"badges"`
	LeadForm           json.RawMessage `json:"lead_form"`
	LandingPages       *int            `json:"landing_pages"`
}

// DecodeConfigPatch decodifica el cuerpo campo a campo. Cada valor con tipo incorrecto
// queda registrado en el ValidationError en lugar de cortar la decodificación.
// Las claves desconocidas se ignoran; lead_form se guarda crudo.
func DecodeConfigPatch(body map[string]json.RawMessage) (ConfigPatchRequest, *domain.ValidationError) {
	var in ConfigPatchRequest
	verr := &domain.ValidationError{}

	text := map[string]**string{
		"template_id":          &in.TemplateID,
		"nome":                 &in.Nome,
		"creci":                &in.Creci,
		"whatsapp":             &in.Whatsapp,
		"telefone":             &in.Telefone,
		"email":                &in.Email,
		"instagram":            &in.Instagram,
		"facebook":             &in.Facebook,
		"linkedin":             &in.Linkedin,
		"youtube":              &in.Youtube,
		"headline":             &in.Headline,
		"subheadline":          &in.Subheadline,
		"background_image_url": &in.BackgroundImageURL,
		"logo_url":             &in.LogoURL,
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := body[key]
		switch key {
		case "lead_form":
			in.LeadForm = raw
		case "badges":
			var badges []entity.Badge
			if err := json.Unmarshal(raw, &badges); err != nil {
				verr.Add(key, "debe ser una lista de selos {label, icon}")
				continue
			}
			in.Badges = badges
		case "landing_pages":
			var n *int
			if err := json.Unmarshal(raw, &n); err != nil {
				verr.Add(key, "debe ser un número entero")
				continue
			}
			in.LandingPages = n
		default:
			dst, ok := text[key]
			if !ok {
				continue
			}
			var s *string
			if err := json.Unmarshal(raw, &s); err != nil {
				verr.Add(key, "debe ser texto")
				continue
			}
			*dst = s
		}
	}
	return in, verr
}

// Fields campos tipados del parche; lead_form se decodifica aparte para acumular sus errores.
func (r ConfigPatchRequest) Fields() entity.ConfigFields {
	return entity.ConfigFields{
		TemplateID:         r.TemplateID,
		Nome:               r.Nome,
		Creci:              r.Creci,
		Whatsapp:           r.Whatsapp,
		Telefone:           r.Telefone,
		Email:              r.Email,
		Instagram:          r.Instagram,
		Facebook:           r.Facebook,
		Linkedin:           r.Linkedin,
		Youtube:            r.Youtube,
		Headline:           r.Headline,
		Subheadline:        r.Subheadline,
		BackgroundImageURL: r.BackgroundImageURL,
		LogoURL:            r.LogoURL,
		Badges:             r.Badges,
		LandingPages:       r.LandingPages,
	}
}
