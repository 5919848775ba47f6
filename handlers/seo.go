package handlers

import (
	"turn2law_web/models"
	"turn2law_web/services/i18n"
)

const defaultOGImage = "/static/images/og-image.svg"

// SEO configurations for public pages. URLs are relative to APP_URL and
// filled in by GetSEO.
var pageSEO = map[string]*models.SEO{
	"landing": {
		Title:       "Turn2Law | Legal Help. Simplified.",
		Description: "Turn2Law offers AI-powered legal guidance, connects you with vetted lawyers, and simplifies legal document management. Join the waitlist for early access.",
		Keywords:    "legal help India, AI legal guidance, find a lawyer, legal tech, Turn2Law waitlist",
		OGType:      "website",
		TwitterCard: "summary_large_image",
		Locale:      "en",
		AltLocales:  []string{"hi"},
	},
}

// GetSEO returns the SEO configuration for a page, localized to lang and with
// absolute URLs under appURL
func GetSEO(page, appURL, lang string) *models.SEO {
	seo, ok := pageSEO[page]
	if !ok {
		return nil
	}

	// Return a copy to avoid mutations
	copy := *seo
	copy.Canonical = appURL + "/"
	copy.OGImage = appURL + defaultOGImage
	copy.Locale = lang
	copy.AltLocales = nil
	for _, other := range i18n.Languages() {
		if other != lang {
			copy.AltLocales = append(copy.AltLocales, other)
		}
	}
	return &copy
}
