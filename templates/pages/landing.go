package pages

import (
	"html/template"
	"time"

	"turn2law_web/models"
	"turn2law_web/services/i18n"
	"turn2law_web/templates"
	"turn2law_web/templates/components"
	"turn2law_web/templates/partials"

	"github.com/a-h/templ"
)

// LandingViewModel holds the data for the landing page
type LandingViewModel struct {
	SEO              *models.SEO
	StructuredData   template.JS
	Form             partials.WaitlistFormView
	NavLinks         []models.NavLink
	Features         []models.Card
	Steps            []models.Card
	Perks            []models.Card
	Testimonials     []models.Testimonial
	FAQs             []models.FAQ
	SocialLinks      []models.SocialLink
	Languages        []string
	ContactEmail     string
	CompanyName      string
	Year             int
	TurnstileSiteKey string
}

// NewLandingViewModel fills the static sections around a waitlist form
func NewLandingViewModel(seo *models.SEO, appURL string, form partials.WaitlistFormView) LandingViewModel {
	return LandingViewModel{
		SEO:              seo,
		StructuredData:   template.JS(components.JSON(components.OrganizationSchema(appURL))),
		Form:             form,
		NavLinks:         models.NavLinks,
		Features:         models.Features,
		Steps:            models.Steps,
		Perks:            models.Perks,
		Testimonials:     models.Testimonials,
		FAQs:             models.FAQs,
		SocialLinks:      models.SocialLinks,
		Languages:        i18n.Languages(),
		ContactEmail:     models.ContactEmail,
		CompanyName:      models.CompanyName,
		Year:             time.Now().Year(),
		TurnstileSiteKey: form.TurnstileSiteKey,
	}
}

// Landing renders the full scrolling page
func Landing(vm LandingViewModel) templ.Component {
	return templates.Render("landing", vm)
}
