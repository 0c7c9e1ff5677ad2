package utils

import (
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"veloura/config"
)

// EmailService sends transactional email. The default backend is plain SMTP
// through gomail; when a SendGrid API key is configured the SendGrid API is
// used instead. The SMTP dialer owns connection handling, this code only
// observes per-send success or failure.
type EmailService struct {
	dialer   *gomail.Dialer
	sendgrid *sendgrid.Client
	from     string
	shopURL  string
}

// NewEmailService builds an EmailService from the mail settings in cfg.
func NewEmailService(cfg *config.Config) *EmailService {
	es := &EmailService{
		from:    cfg.EmailFrom,
		shopURL: fmt.Sprintf("http://localhost:%s/shop", cfg.Port),
	}
	if cfg.SendGridAPIKey != "" {
		es.sendgrid = sendgrid.NewSendClient(cfg.SendGridAPIKey)
		return es
	}
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	dialer.SSL = cfg.SMTPSecure
	es.dialer = dialer
	return es
}

// Send delivers a single email with plain-text and HTML bodies.
func (es *EmailService) Send(to, subject, text, html string) error {
	if es.sendgrid != nil {
		message := mail.NewSingleEmail(
			mail.NewEmail("Veloura", es.from),
			subject,
			mail.NewEmail("", to),
			text,
			html,
		)
		resp, err := es.sendgrid.Send(message)
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("sendgrid rejected email: status %d", resp.StatusCode)
		}
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", es.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// VerifyConnection checks that the SMTP server accepts connections.
func (es *EmailService) VerifyConnection() error {
	if es.sendgrid != nil {
		// The SendGrid API is stateless, there is no connection to probe.
		return nil
	}
	if es.dialer == nil {
		return errors.New("no mail transport configured")
	}
	closer, err := es.dialer.Dial()
	if err != nil {
		return err
	}
	return closer.Close()
}

// SendWelcomeEmail sends the branded welcome mail to a new user.
func (es *EmailService) SendWelcomeEmail(to, name string) error {
	subject := "Welcome to Veloura - Your Luxury Jewelry Destination!"
	text := fmt.Sprintf(
		"Welcome to Veloura, %s!\n\nThank you for joining our community of jewelry enthusiasts. Discover our collection at %s",
		name, es.shopURL,
	)
	html := fmt.Sprintf(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;background:#faf7f2;">
  <div style="background:#1e1e1e;padding:40px;text-align:center;">
    <h1 style="color:#fff;margin:0;">VEL<span style="color:#fbbf24;">OURA</span></h1>
    <p style="color:#d1d5db;">Luxury Jewelry Collection</p>
  </div>
  <div style="padding:40px;background:white;">
    <h2 style="color:#1f2937;">Welcome to Veloura, %s!</h2>
    <p style="color:#4b5563;">Thank you for joining our exclusive community of jewelry
    enthusiasts. Discover our collection of premium chains, elegant rings and stunning
    bracelets.</p>
    <p style="text-align:center;">
      <a href="%s" style="background:#d4af37;color:black;padding:15px 30px;text-decoration:none;border-radius:8px;font-weight:bold;">Explore Our Collection</a>
    </p>
  </div>
</div>`, name, es.shopURL)

	return es.Send(to, subject, text, html)
}

// SendWelcomeEmailAsync sends the welcome mail without blocking the caller.
// Delivery failure is logged, never surfaced or retried.
func (es *EmailService) SendWelcomeEmailAsync(to, name string) {
	go func() {
		if err := es.SendWelcomeEmail(to, name); err != nil {
			zap.S().Errorf("failed to send welcome email to %s: %v", to, err)
			return
		}
		zap.S().Infof("welcome email sent to %s", to)
	}()
}
