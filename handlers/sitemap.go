package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"turn2law_web/config"
	"turn2law_web/services/i18n"

	"github.com/labstack/echo/v4"
)

type SitemapLink struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

type SitemapURL struct {
	Loc        string        `xml:"loc"`
	LastMod    string        `xml:"lastmod,omitempty"`
	ChangeFreq string        `xml:"changefreq,omitempty"`
	Priority   float32       `xml:"priority,omitempty"`
	Links      []SitemapLink `xml:"xhtml:link"`
}

type SitemapURLSet struct {
	XMLName    string       `xml:"urlset"`
	Xmlns      string       `xml:"xmlns,attr"`
	XmlnsXhtml string       `xml:"xmlns:xhtml,attr"`
	URLs       []SitemapURL `xml:"url"`
}

// GetSitemapHandler lists the landing page and its language variants
func GetSitemapHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	baseURL := cfg.AppURL

	var links []SitemapLink
	for _, lang := range i18n.Languages() {
		links = append(links, SitemapLink{
			Rel:      "alternate",
			HrefLang: lang,
			Href:     baseURL + "/?lang=" + lang,
		})
	}

	urlSet := SitemapURLSet{
		Xmlns:      "http://www.sitemaps.org/schemas/sitemap/0.9",
		XmlnsXhtml: "http://www.w3.org/1999/xhtml",
		URLs: []SitemapURL{
			{Loc: baseURL + "/", ChangeFreq: "weekly", Priority: 1.0, Links: links},
		},
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXML)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(c.Response().Writer)
	encoder.Indent("", "  ")
	return encoder.Encode(urlSet)
}

// GetRobotsHandler allows every crawler and points at the sitemap
func GetRobotsHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	body := "User-agent: *\nAllow: /\nDisallow: /waitlist\n"
	if !cfg.IsProduction() {
		body = "User-agent: *\nDisallow: /\n"
	}
	return c.String(http.StatusOK, fmt.Sprintf("%sSitemap: %s/sitemap.xml\n", body, cfg.AppURL))
}
