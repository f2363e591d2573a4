package report

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"lenovo-report/internal/config"
	"lenovo-report/internal/scrapers/lenovo"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lenovo-report/report")

// Mailer sends saved reports over SMTP.
type Mailer struct {
	Smtp config.SmtpConfig
}

func NewMailer(smtpConfig config.SmtpConfig) (Mailer, error) {
	if !smtpConfig.Configured() {
		return Mailer{}, fmt.Errorf("smtp server and email address must be configured to mail reports")
	}
	return Mailer{Smtp: smtpConfig}, nil
}

func (m Mailer) newMessage(to string, rec lenovo.Record, reportText, filename string) (*email.Email, error) {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Lenovo Report <%s>", m.Smtp.EmailAddress)
	mail.To = []string{strings.TrimSpace(to)}

	subject := "Lenovo report"
	if rec.Serial != "" {
		subject += ": " + rec.Serial
	}
	if title := DisplayTitle(rec); title != "" {
		subject += " (" + title + ")"
	}
	mail.Subject = subject
	mail.Text = []byte(reportText)

	_, err := mail.Attach(strings.NewReader(reportText), filename, "text/plain; charset=utf-8")
	if err != nil {
		return nil, err
	}
	return mail, nil
}

// Send mails `reportText` to `to`, inline and as an attachment named
// `filename`.
func (m Mailer) Send(ctx context.Context, to string, rec lenovo.Record, reportText, filename string) error {
	_, span := tracer.Start(ctx, "Mailer.Send")
	defer span.End()

	mail, err := m.newMessage(to, rec, reportText, filename)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to build email")
		return fmt.Errorf("build report email: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.Smtp.Server, m.Smtp.Port)
	err = mail.Send(
		addr,
		smtp.PlainAuth("", m.Smtp.EmailAddress, m.Smtp.Password, m.Smtp.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return fmt.Errorf("send report email: %w", err)
	}
	return nil
}
