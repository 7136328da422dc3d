// Package resend sends outbound email through the Resend HTTP API.
package resend

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/checkbus/fleet-backend/internal/config"
)

// alertTemplate frames the alert body. The layout matches the rest of the
// product mail: logo header, title, body, automated-mail footer.
var alertTemplate = template.Must(template.New("alert").Parse(`<table width="100%" cellpadding="0" cellspacing="0" style="background:#0f172a;padding:32px 0;">
  <tr>
    <td align="center">
      <table width="100%" cellpadding="0" cellspacing="0" style="max-width:580px;background:#0b1120;border-radius:18px;padding:28px 24px;border:1px solid #1f2937;font-family:system-ui,-apple-system,sans-serif;color:#e5e7eb;">
        <tr>
          <td align="center" style="padding-bottom:22px;border-bottom:1px solid #1f2937;">
            {{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.AppName}}" style="max-width:160px;max-height:60px;margin-bottom:6px;display:block;"/>{{end}}
            <div style="font-size:12px;color:#9ca3af;margin-top:4px;">Sistema de Gestión de Flota</div>
          </td>
        </tr>
        <tr>
          <td style="padding-top:20px;">
            <h2 style="margin:0 0 10px;font-size:20px;font-weight:600;color:#f9fafb;">{{.Title}}</h2>
            <div style="font-size:14px;color:#d1d5db;line-height:1.5;">{{.Body}}</div>
          </td>
        </tr>
        <tr>
          <td style="padding-top:20px;border-top:1px solid #1f2937;text-align:center;">
            <p style="font-size:11px;color:#4b5563;margin:0 0 4px;">Correo automático generado por {{.AppName}} – no responder.</p>
            <p style="font-size:11px;color:#4b5563;margin:0;">© {{.Year}} <a href="{{.AppURL}}" style="color:#4b5563;">{{.AppName}}</a></p>
          </td>
        </tr>
      </table>
    </td>
  </tr>
</table>
`))

type alertData struct {
	AppName string
	AppURL  string
	LogoURL string
	Title   string
	Body    string
	Year    int
}

// Mailer sends alert email through Resend.
type Mailer struct {
	client *resend.Client
	cfg    config.MailConfig
	log    *slog.Logger
}

// NewMailer creates a Mailer from the mail configuration.
func NewMailer(log *slog.Logger, cfg config.MailConfig) *Mailer {
	return &Mailer{
		client: resend.NewClient(cfg.APIKey),
		cfg:    cfg,
		log:    log.With("adapter", "resend"),
	}
}

// SendAlertEmail sends one alert message to the given recipients. The body is
// plain text; the mailer wraps it in the shared HTML frame.
func (m *Mailer) SendAlertEmail(ctx context.Context, to []string, subject, title, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("send alert email: no recipients")
	}

	html, err := renderAlert(m.cfg, title, body)
	if err != nil {
		return fmt.Errorf("render alert email: %w", err)
	}

	_, err = m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.fromHeader(),
		To:      to,
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("send alert email: %w", err)
	}

	m.log.InfoContext(ctx, "alert email sent", "subject", subject, "recipients", len(to))
	return nil
}

func (m *Mailer) fromHeader() string {
	return fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.FromAddress)
}

func renderAlert(cfg config.MailConfig, title, body string) (string, error) {
	var sb strings.Builder
	err := alertTemplate.Execute(&sb, alertData{
		AppName: cfg.FromName,
		AppURL:  cfg.AppURL,
		LogoURL: cfg.LogoURL,
		Title:   title,
		Body:    body,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
