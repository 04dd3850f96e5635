package landing

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

// Límites de campos editables.
const (
	maxNome        = 120
	maxCreci       = 20
	maxHeadline    = 120
	maxSubheadline = 240
	maxBadges      = 6
	maxBadgeLabel  = 40
)

// normalizeText recorta espacios y normaliza a NFC todos los textos presentes.
func normalizeText(f entity.ConfigFields) entity.ConfigFields {
	out := f.Clone()
	for _, p := range []*string{
		out.TemplateID, out.Nome, out.Creci, out.Whatsapp, out.Telefone, out.Email,
		out.Instagram, out.Facebook, out.Linkedin, out.Youtube,
		out.Headline, out.Subheadline, out.BackgroundImageURL, out.LogoURL,
	} {
		if p != nil {
			*p = norm.NFC.String(strings.TrimSpace(*p))
		}
	}
	for i := range out.Badges {
		out.Badges[i].Label = norm.NFC.String(strings.TrimSpace(out.Badges[i].Label))
		out.Badges[i].Icon = strings.TrimSpace(out.Badges[i].Icon)
	}
	return out
}

// validateFields valida cada campo presente y acumula todos los errores.
// Un string vacío es un override explícito en blanco y siempre es válido.
func validateFields(f entity.ConfigFields) *domain.ValidationError {
	verr := &domain.ValidationError{}

	if f.TemplateID != nil && *f.TemplateID == "" {
		verr.Add("template_id", "no puede estar vacío")
	}
	checkLen(verr, "nome", f.Nome, maxNome)
	checkLen(verr, "creci", f.Creci, maxCreci)
	checkLen(verr, "headline", f.Headline, maxHeadline)
	checkLen(verr, "subheadline", f.Subheadline, maxSubheadline)

	if v := f.Whatsapp; v != nil && *v != "" {
		if !isDigits(*v) || len(*v) < 10 || len(*v) > 15 {
			verr.Add("whatsapp", "debe tener entre 10 y 15 dígitos, con DDI y DDD")
		}
	}
	if v := f.Telefone; v != nil && *v != "" {
		digits := strings.Map(func(r rune) rune {
			switch {
			case r >= '0' && r <= '9':
				return r
			case strings.ContainsRune("+()- ", r):
				return -1
			}
			return 'x'
		}, *v)
		if !isDigits(digits) || len(digits) < 8 || len(digits) > 15 {
			verr.Add("telefone", "número de teléfono inválido")
		}
	}
	if v := f.Email; v != nil && *v != "" {
		addr, err := mail.ParseAddress(*v)
		if err != nil || addr.Address != *v {
			verr.Add("email", "email inválido")
		}
	}
	for _, u := range []struct {
		name string
		val  *string
	}{
		{"instagram", f.Instagram},
		{"facebook", f.Facebook},
		{"linkedin", f.Linkedin},
		{"youtube", f.Youtube},
		{"background_image_url", f.BackgroundImageURL},
		{"logo_url", f.LogoURL},
	} {
		if u.val != nil && *u.val != "" && !isHTTPURL(*u.val) {
			verr.Add(u.name, "debe ser una URL http(s) absoluta")
		}
	}

	if f.Badges != nil {
		if len(f.Badges) > maxBadges {
			verr.Add("badges", fmt.Sprintf("máximo %d selos", maxBadges))
		}
		for i, b := range f.Badges {
			if b.Label == "" {
				verr.Add(fmt.Sprintf("badges[%d].label", i), "es requerido")
			} else if utf8.RuneCountInString(b.Label) > maxBadgeLabel {
				verr.Add(fmt.Sprintf("badges[%d].label", i), fmt.Sprintf("máximo %d caracteres", maxBadgeLabel))
			}
		}
	}
	if f.LandingPages != nil && *f.LandingPages < 1 {
		verr.Add("landing_pages", "debe ser al menos 1")
	}
	return verr
}

func checkLen(verr *domain.ValidationError, field string, v *string, max int) {
	if v != nil && utf8.RuneCountInString(*v) > max {
		verr.Add(field, fmt.Sprintf("máximo %d caracteres", max))
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
