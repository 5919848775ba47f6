package components

import (
	"encoding/json"
	"log"

	"turn2law_web/models"
)

// JSON marshals an object to a JSON string, returning "{}" on error
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARNING] Error marshaling JSON: %v", err)
		return "{}"
	}
	return string(b)
}

// OrganizationSchema is the schema.org description embedded as JSON-LD
func OrganizationSchema(appURL string) map[string]interface{} {
	sameAs := make([]string, 0, len(models.SocialLinks))
	for _, link := range models.SocialLinks {
		sameAs = append(sameAs, link.Href)
	}
	return map[string]interface{}{
		"@context":  "https://schema.org",
		"@type":     "Organization",
		"name":      "Turn2Law",
		"legalName": models.CompanyName,
		"url":       appURL + "/",
		"logo":      appURL + "/static/images/favicon.svg",
		"email":     models.ContactEmail,
		"sameAs":    sameAs,
	}
}
