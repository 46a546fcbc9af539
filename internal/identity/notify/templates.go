package notify

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns notification data into email messages.
type Renderer struct {
	app      string
	loginURL string
	welcome  *pongo2.Template
	reset    *pongo2.Template
}

// NewRenderer compiles the embedded templates. app is the product name shown
// in subjects and bodies; frontendURL, if set, adds a sign-in link to the
// welcome mail.
func NewRenderer(app, frontendURL string) (*Renderer, error) {
	if app == "" {
		app = "Identity"
	}
	welcome, err := compile("templates/welcome.html")
	if err != nil {
		return nil, err
	}
	reset, err := compile("templates/password_reset.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{app: app, welcome: welcome, reset: reset}
	if frontendURL != "" {
		r.loginURL = strings.TrimRight(frontendURL, "/") + "/login"
	}
	return r, nil
}

func compile(name string) (*pongo2.Template, error) {
	b, err := templateFS.ReadFile(name)
	if err != nil {
		return nil, err
	}
	tpl, err := pongo2.FromBytes(b)
	if err != nil {
		return nil, fmt.Errorf("notify: compile %s: %w", name, err)
	}
	return tpl, nil
}

// Welcome renders the mail sent after an account is created.
func (r *Renderer) Welcome(email, name string) (Message, error) {
	body, err := r.welcome.Execute(pongo2.Context{
		"app":       r.app,
		"name":      name,
		"email":     email,
		"login_url": r.loginURL,
	})
	if err != nil {
		return Message{}, fmt.Errorf("notify: render welcome: %w", err)
	}
	return Message{
		To:      email,
		Subject: "Welcome to " + r.app,
		HTML:    body,
	}, nil
}

// PasswordReset renders the mail carrying a reset link valid for ttl.
func (r *Renderer) PasswordReset(email, name, link string, ttl time.Duration) (Message, error) {
	body, err := r.reset.Execute(pongo2.Context{
		"app":         r.app,
		"name":        name,
		"link":        link,
		"valid_hours": int(ttl.Hours()),
	})
	if err != nil {
		return Message{}, fmt.Errorf("notify: render password reset: %w", err)
	}
	return Message{
		To:      email,
		Subject: r.app + " password reset",
		HTML:    body,
	}, nil
}
