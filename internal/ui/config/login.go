package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
)

// Login holds the values collected by the login form.
type Login struct {
	BaseURL string
	Cookie  string
}

// NewLoginForm builds the form that asks for the portal URL and the
// session cookie copied from a signed-in browser.
func NewLoginForm(l *Login, cookieName string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Portal URL").
				Description("Where the portal is served (e.g., https://portal.example.com)").
				Placeholder("http://localhost:8000").
				Value(&l.BaseURL).
				Validate(ValidateURL),
			huh.NewInput().
				Title("Session cookie").
				Description(fmt.Sprintf("Value of the %q cookie from a signed-in browser", cookieName)).
				EchoMode(huh.EchoModePassword).
				Value(&l.Cookie).
				Validate(validateRequired("Session cookie")),
		),
	).WithWidth(72)
}

// Normalize trims whitespace and a trailing slash from the collected values.
func (l *Login) Normalize() {
	l.BaseURL = strings.TrimRight(strings.TrimSpace(l.BaseURL), "/")
	l.Cookie = strings.TrimSpace(l.Cookie)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

// ValidateURL accepts absolute http and https URLs.
func ValidateURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("URL is required")
	}
	parsed, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("URL must include scheme and host (e.g., https://example.com)")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https")
	}
	return nil
}
