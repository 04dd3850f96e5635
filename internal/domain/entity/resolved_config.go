package entity

// SocialLink enlace social resuelto; Visible=false cuando no hay URL o el plan no lo permite.
type SocialLink struct {
	URL     string `json:"url"`
	Visible bool   `json:"visible"`
}

// SocialLinks redes sociales de la landing.
type SocialLinks struct {
	Instagram SocialLink `json:"instagram"`
	Facebook  SocialLink `json:"facebook"`
	Linkedin  SocialLink `json:"linkedin"`
	Youtube   SocialLink `json:"youtube"`
}

// ResolvedLeadField campo del formulario ya normalizado.
type ResolvedLeadField struct {
	Visivel     bool `json:"visivel"`
	Obrigatorio bool `json:"obrigatorio"`
}

// ResolvedLeadForm formulario de captación resuelto.
type ResolvedLeadForm struct {
	Renda    ResolvedLeadField `json:"renda"`
	Objetivo ResolvedLeadField `json:"objetivo"`
	Entrada  ResolvedLeadField `json:"entrada"`
}

// ResolvedConfig configuración de solo lectura para render de la landing y del editor.
// No se persiste. Se entrega por valor con slices propios: puede compartirse entre renders
// concurrentes, pero los consumidores no deben modificarla.
type ResolvedConfig struct {
	CorretorID         string           `json:"corretor_id"`
	TemplateID         string           `json:"template_id"`
	TemplateFallback   bool             `json:"template_fallback"`
	Fallback           bool             `json:"fallback"`
	Nome               string           `json:"nome"`
	Creci              string           `json:"creci"`
	Whatsapp           string           `json:"whatsapp"`
	Telefone           string           `json:"telefone"`
	Email              string           `json:"email"`
	Social             SocialLinks      `json:"social"`
	Headline           string           `json:"headline"`
	Subheadline        string           `json:"subheadline"`
	BackgroundImageURL string           `json:"background_image_url"`
	LogoURL            string           `json:"logo_url"`
	Badges             []Badge          `json:"badges"`
	LeadForm           ResolvedLeadForm `json:"lead_form"`
	LandingPages       int              `json:"landing_pages"`
	Capabilities       CapabilitySet    `json:"capabilities"`
}

// ResolvedFromSchema convierte el esquema normalizado a su forma resuelta.
func ResolvedFromSchema(s LeadFormSchema) ResolvedLeadForm {
	s = s.Normalize()
	return ResolvedLeadForm{
		Renda:    ResolvedLeadField(s.Renda),
		Objetivo: ResolvedLeadField(s.Objetivo),
		Entrada:  ResolvedLeadField(s.Entrada),
	}
}
