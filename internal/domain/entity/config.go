package entity

import "time"

// Badge selo personalizado mostrado na landing.
type Badge struct {
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
}

// ConfigFields fragmento de configuración con todos los campos opcionales.
// nil significa "no definido": en un ConfigRecord usa el default de la plantilla,
// en un parche de escritura deja el valor almacenado intacto.
// En Badges la distinción es nil (no definido) frente a slice vacío (sin selos).
type ConfigFields struct {
	TemplateID         *string         `json:"template_id,omitempty"`
	Nome               *string         `json:"nome,omitempty"`
	Creci              *string         `json:"creci,omitempty"`
	Whatsapp           *string         `json:"whatsapp,omitempty"`
	Telefone           *string         `json:"telefone,omitempty"`
	Email              *string         `json:"email,omitempty"`
	Instagram          *string         `json:"instagram,omitempty"`
	Facebook           *string         `json:"facebook,omitempty"`
	Linkedin           *string         `json:"linkedin,omitempty"`
	Youtube            *string         `json:"youtube,omitempty"`
	Headline           *string         `json:"headline,omitempty"`
	Subheadline        *string         `json:"subheadline,omitempty"`
	BackgroundImageURL *string         `json:"background_image_url,omitempty"`
	LogoURL            *string         `json:"logo_url,omitempty"`
	Badges             []Badge         `json:"badges,omitempty"`
	LeadForm           *LeadFormSchema `json:"lead_form,omitempty"`
	LandingPages       *int            `json:"landing_pages,omitempty"`
}

// Apply devuelve una copia con los campos presentes en patch sobrescritos.
func (f ConfigFields) Apply(patch ConfigFields) ConfigFields {
	out := f.Clone()
	for _, p := range []struct{ dst, src **string }{
		{&out.TemplateID, &patch.TemplateID},
		{&out.Nome, &patch.Nome},
		{&out.Creci, &patch.Creci},
		{&out.Whatsapp, &patch.Whatsapp},
		{&out.Telefone, &patch.Telefone},
		{&out.Email, &patch.Email},
		{&out.Instagram, &patch.Instagram},
		{&out.Facebook, &patch.Facebook},
		{&out.Linkedin, &patch.Linkedin},
		{&out.Youtube, &patch.Youtube},
		{&out.Headline, &patch.Headline},
		{&out.Subheadline, &patch.Subheadline},
		{&out.BackgroundImageURL, &patch.BackgroundImageURL},
		{&out.LogoURL, &patch.LogoURL},
	} {
		if *p.src != nil {
			v := **p.src
			*p.dst = &v
		}
	}
	if patch.Badges != nil {
		out.Badges = append([]Badge{}, patch.Badges...)
	}
	if patch.LeadForm != nil {
		lf := *patch.LeadForm
		out.LeadForm = &lf
	}
	if patch.LandingPages != nil {
		n := *patch.LandingPages
		out.LandingPages = &n
	}
	return out
}

// Clone copia profunda (punteros y slices propios).
func (f ConfigFields) Clone() ConfigFields {
	src := f
	var out ConfigFields
	out.TemplateID = cloneStr(src.TemplateID)
	out.Nome = cloneStr(src.Nome)
	out.Creci = cloneStr(src.Creci)
	out.Whatsapp = cloneStr(src.Whatsapp)
	out.Telefone = cloneStr(src.Telefone)
	out.Email = cloneStr(src.Email)
	out.Instagram = cloneStr(src.Instagram)
	out.Facebook = cloneStr(src.Facebook)
	out.Linkedin = cloneStr(src.Linkedin)
	out.Youtube = cloneStr(src.Youtube)
	out.Headline = cloneStr(src.Headline)
	out.Subheadline = cloneStr(src.Subheadline)
	out.BackgroundImageURL = cloneStr(src.BackgroundImageURL)
	out.LogoURL = cloneStr(src.LogoURL)
	if src.Badges != nil {
		out.Badges = append([]Badge{}, src.Badges...)
	}
	if src.LeadForm != nil {
		lf := *src.LeadForm
		out.LeadForm = &lf
	}
	if src.LandingPages != nil {
		n := *src.LandingPages
		out.LandingPages = &n
	}
	return out
}

// IsEmpty informa si el parche no trae ningún campo.
func (f ConfigFields) IsEmpty() bool {
	return f.TemplateID == nil && f.Nome == nil && f.Creci == nil && f.Whatsapp == nil &&
		f.Telefone == nil && f.Email == nil && f.Instagram == nil && f.Facebook == nil &&
		f.Linkedin == nil && f.Youtube == nil && f.Headline == nil && f.Subheadline == nil &&
		f.BackgroundImageURL == nil && f.LogoURL == nil && f.Badges == nil &&
		f.LeadForm == nil && f.LandingPages == nil
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// ConfigRecord personalización del corretor (1:1 con Account).
// CorretorID es inmutable y se asigna en la creación.
type ConfigRecord struct {
	CorretorID string
	ConfigFields
	CreatedAt time.Time
	UpdatedAt time.Time
}
