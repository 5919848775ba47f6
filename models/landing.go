package models

import (
	"strings"
	"unicode"
)

// NavLink is an in-page anchor in the header and footer
type NavLink struct {
	LabelKey string
	Href     string
}

// Card is a titled paragraph used by the feature, step and perk sections.
// Title and body are i18n keys.
type Card struct {
	Icon     string
	TitleKey string
	BodyKey  string
}

// Testimonial is a team member quote. Quotes are shown as written.
type Testimonial struct {
	Quote       string
	Name        string
	Designation string
}

// Initials returns up to two letters for the avatar
func (t Testimonial) Initials() string {
	var out []rune
	for _, word := range strings.Fields(t.Name) {
		out = append(out, unicode.ToUpper([]rune(word)[0]))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

// FAQ is a question and answer pair of i18n keys
type FAQ struct {
	QuestionKey string
	AnswerKey   string
}

// SocialLink points at one of the company's profiles
type SocialLink struct {
	Name string
	Href string
}

const (
	ContactEmail = "turntwolaw@gmail.com"
	CompanyName  = "EFFIVIA TURN2LAW LEGAL PRIVATE LIMITED"
)

var NavLinks = []NavLink{
	{LabelKey: "nav.why", Href: "#why-turn2law"},
	{LabelKey: "nav.how", Href: "#how-it-works"},
	{LabelKey: "nav.early_access", Href: "#early-access"},
	{LabelKey: "nav.professionals", Href: "#for-professionals"},
	{LabelKey: "nav.faq", Href: "#faq"},
}

var Features = []Card{
	{Icon: "compass", TitleKey: "why.options_title", BodyKey: "why.options_body"},
	{Icon: "users", TitleKey: "why.experts_title", BodyKey: "why.experts_body"},
	{Icon: "clock", TitleKey: "why.save_title", BodyKey: "why.save_body"},
}

var Steps = []Card{
	{Icon: "1", TitleKey: "how.describe_title", BodyKey: "how.describe_body"},
	{Icon: "2", TitleKey: "how.guidance_title", BodyKey: "how.guidance_body"},
	{Icon: "3", TitleKey: "how.connect_title", BodyKey: "how.connect_body"},
	{Icon: "4", TitleKey: "how.resolve_title", BodyKey: "how.resolve_body"},
}

var Perks = []Card{
	{Icon: "percent", TitleKey: "perks.discount_title", BodyKey: "perks.discount_body"},
	{Icon: "star", TitleKey: "perks.priority_title", BodyKey: "perks.priority_body"},
	{Icon: "message", TitleKey: "perks.shape_title", BodyKey: "perks.shape_body"},
}

var Testimonials = []Testimonial{
	{
		Quote:       "Our mission at Turn2Law is to democratize access to legal services. We believe everyone deserves clear, reliable, and affordable legal help, and we're leveraging technology to make that a reality.",
		Name:        "Yash Phoghat",
		Designation: "Founder & CEO, Turn2Law",
	},
	{
		Quote:       "At Turn2Law, we're building more than just a legal-tech platform, we're building confidence for anyone facing legal uncertainty. Our goal is to make legal support as easy and approachable as ordering a cab or sending a message, and we're committed to designing that experience with empathy, clarity, and impact.",
		Name:        "Adhyayan Dubey",
		Designation: "Co-Founder, Turn2Law",
	},
	{
		Quote:       "Strategy isn't just about planning, it's about anticipating needs, solving real problems, and scaling with purpose. My role is to align our vision with actionable steps that create long-term impact, whether it's for the users seeking justice or the lawyers delivering it. We're not just building a product, we're shaping the future of legal access in India.",
		Name:        "Atharv Dwivedi",
		Designation: "Chief Strategy Officer, Turn2Law",
	},
	{
		Quote:       "At Turn2Law, I bring sharp legal insight and real-world exposure to the forefront, not just to interpret the law, but to empower people through it. My mission is to ensure every decision we make is legally sound, ethically driven, and built to last.",
		Name:        "Pranav Sri Krishna B",
		Designation: "Chief Legal Officer, Turn2Law",
	},
	{
		Quote:       "I don't just market a product, I champion a vision. At Turn2Law, I strive to translate legal innovation into meaningful stories, spark trust through every campaign, and lead conversations that bring law closer to the people. Strategy meets soul, and we lead with both.",
		Name:        "Abhilipsa Sahoo",
		Designation: "Chief Marketing Officer, Turn2Law",
	},
	{
		Quote:       "Our focus is not just on building a powerful platform, it's on delivering a seamless experience for every user who reaches out in need. From internal workflows to external support systems, I ensure our operations stay efficient, secure, and deeply human. Because when it comes to legal help, trust and reliability are everything.",
		Name:        "Aditi Prasanth",
		Designation: "Chief Operations Officer, Turn2Law",
	},
	{
		Quote:       "I don't just push pixels, I build legal clarity, one elegant interface at a time. At Turn2Law, I turn 'Huh?' into 'Aha!' by designing experiences so intuitive, even your lawyer's grandma could use them.",
		Name:        "Rahul Marban",
		Designation: "Chief Design Officer, Turn2Law",
	},
}

var FAQs = []FAQ{
	{QuestionKey: "faq.law_firm_q", AnswerKey: "faq.law_firm_a"},
	{QuestionKey: "faq.free_q", AnswerKey: "faq.free_a"},
	{QuestionKey: "faq.live_q", AnswerKey: "faq.live_a"},
	{QuestionKey: "faq.lawyer_q", AnswerKey: "faq.lawyer_a"},
}

var SocialLinks = []SocialLink{
	{Name: "Instagram", Href: "https://www.instagram.com/turn2law"},
	{Name: "LinkedIn", Href: "https://www.linkedin.com/company/turn2law"},
}
