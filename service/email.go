package service

import (
	"fmt"

	"kassabon/config"

	"gopkg.in/gomail.v2"
)

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates the mail service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendPasswordResetEmail mails the 6-digit reset code to the user.
func (s *EmailService) SendPasswordResetEmail(toEmail, username, code string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("e-mailservice is niet ingeschakeld")
	}

	subject := "Kassabon - Wachtwoord resetten"
	body := s.generateResetEmailBody(username, code)

	return s.sendEmail(toEmail, subject, body)
}

// generateResetEmailBody renders the reset mail. Dutch copy, the code is
// valid for 30 minutes.
func (s *EmailService) generateResetEmailBody(username, code string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .code-box { background: linear-gradient(135deg, #eff6ff, #dbeafe); border: 2px dashed #2563eb; border-radius: 12px; padding: 30px; text-align: center; margin: 30px 0; }
        .code { font-size: 36px; font-weight: bold; color: #1d4ed8; letter-spacing: 8px; font-family: 'Courier New', monospace; }
        .warning { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; border-radius: 4px; }
        .warning p { margin: 0; color: #856404; font-size: 14px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🧾 Kassabon</h1>
        </div>
        <div class="content">
            <p>Beste <strong>%s</strong>,</p>
            <p>We hebben een verzoek ontvangen om je wachtwoord te resetten. Gebruik de onderstaande code:</p>
            <div class="code-box">
                <span class="code">%s</span>
            </div>
            <div class="warning">
                <p>⚠️ Deze code is <strong>30 minuten</strong> geldig.</p>
                <p>⚠️ Heb je geen reset aangevraagd? Negeer dan deze e-mail.</p>
            </div>
        </div>
        <div class="footer">
            <p>Deze e-mail is automatisch verzonden, antwoorden is niet mogelijk.</p>
            <p>© Kassabon - jouw bonnetjes, overzichtelijk</p>
        </div>
    </div>
</body>
</html>
`, username, code)
}

// sendEmail delivers one HTML mail via the configured SMTP server.
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}

	return nil
}

// SendTestEmail verifies the SMTP configuration end to end.
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("e-mailservice is niet ingeschakeld")
	}

	subject := "Kassabon - Testmail"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ E-mailconfiguratie werkt</h2>
    <p>Als je deze e-mail ontvangt, is de mailservice correct ingesteld.</p>
    <p style="color: #666;">— Kassabon</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body)
}
