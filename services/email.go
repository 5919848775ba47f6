package services

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	htmltemplate "html/template"
	"io/fs"
	"log"
	"net/url"
	"path"
	"strings"
	texttemplate "text/template"
	"time"

	"turn2law_web/config"
	"turn2law_web/models"
	"turn2law_web/services/i18n"

	"github.com/microcosm-cc/bluemonday"
	"github.com/resend/resend-go/v2"
)

//go:embed emails/*
var embeddedEmails embed.FS

// emailTemplates is swapped in tests
var emailTemplates fs.FS = embeddedEmails

// resendBaseURL overrides the Resend API endpoint when set (tests only)
var resendBaseURL string

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// loadTemplate renders emails/<name>_<lang>.{html,txt}, falling back to
// emails/<name>.{html,txt} when no localized variant exists
func loadTemplate(templateName string, lang string, data interface{}) (htmlBody string, textBody string, err error) {
	read := func(ext string) (string, []byte, error) {
		name := path.Join("emails", fmt.Sprintf("%s_%s%s", templateName, lang, ext))
		content, err := fs.ReadFile(emailTemplates, name)
		if err != nil {
			name = path.Join("emails", templateName+ext)
			content, err = fs.ReadFile(emailTemplates, name)
			if err != nil {
				return "", nil, fmt.Errorf("failed to read template %s: %w", name, err)
			}
		}
		return name, content, nil
	}

	name, content, err := read(".html")
	if err != nil {
		return "", "", err
	}
	htmlTmpl, err := htmltemplate.New(path.Base(name)).Parse(string(content))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	name, content, err = read(".txt")
	if err != nil {
		return "", "", err
	}
	textTmpl, err := texttemplate.New(path.Base(name)).Parse(string(content))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

func setResendBaseURL(client *resend.Client, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid Resend base URL %q: %w", raw, err)
	}
	client.BaseURL = u
	return nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("[INFO] Email logged (test mode, not sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	if resendBaseURL != "" {
		if err := setResendBaseURL(client, resendBaseURL); err != nil {
			return err
		}
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("[INFO] Email sent via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode, not sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// SendEmailAsync sends an email in a goroutine so handlers don't block on Resend
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("[WARNING] Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// WaitlistSignupEmailData is the template data of the team notification
type WaitlistSignupEmailData struct {
	FullName    string
	Email       string
	Location    string
	Role        string
	Interests   string
	Lang        string
	SubmittedAt string
}

var plainText = bluemonday.StrictPolicy()

// stripMarkup drops any HTML a visitor typed into a free-text field. The
// result is plain text; templates escape it again on output.
func stripMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(s)))
}

// BuildWaitlistSignupEmail creates the team notification for an accepted signup
func BuildWaitlistSignupEmail(to string, s models.WaitlistSubmission, lang string, at time.Time) (*Email, error) {
	data := WaitlistSignupEmailData{
		FullName:    stripMarkup(s.FullName),
		Email:       stripMarkup(s.Email),
		Location:    stripMarkup(s.Location),
		Role:        models.RoleLabel(s.Role),
		Interests:   stripMarkup(s.Interests),
		Lang:        lang,
		SubmittedAt: at.UTC().Format(time.RFC1123),
	}

	htmlBody, textBody, err := loadTemplate("waitlist_signup", lang, data)
	if err != nil && lang != i18n.DefaultLang {
		htmlBody, textBody, err = loadTemplate("waitlist_signup", i18n.DefaultLang, data)
	}
	if err != nil {
		return nil, err
	}

	// The team reads notifications in English
	subject := i18n.Translate(i18n.DefaultLang, "email.subject.waitlist_signup", map[string]interface{}{
		"name": data.FullName,
	})

	return &Email{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	}, nil
}

// NotifyWaitlistSignup emails the team about a signup the backend accepted.
// It is a no-op when WAITLIST_NOTIFY_EMAIL is unset.
func NotifyWaitlistSignup(cfg *config.Config, s models.WaitlistSubmission, lang string) {
	if cfg == nil || cfg.WaitlistNotifyEmail == "" {
		return
	}
	email, err := BuildWaitlistSignupEmail(cfg.WaitlistNotifyEmail, s, lang, time.Now())
	if err != nil {
		log.Printf("[WARNING] Failed to build waitlist notification: %v", err)
		return
	}
	SendEmailAsync(cfg, email)
}
