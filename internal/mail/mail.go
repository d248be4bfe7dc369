package mail

import (
	"fmt"
	"log/slog"

	"github.com/mercadinho/gestao/internal"
	gomail "gopkg.in/gomail.v2"
)

// SMTPMailer sends transactional mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
	logger *slog.Logger
}

func NewSMTPMailer(cfg internal.MailConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		sender: cfg.Sender,
		logger: logger,
	}
}

// SendPasswordReset emails the reset link to the given address.
func (m *SMTPMailer) SendPasswordReset(to, link string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Redefinição de Senha")
	msg.SetBody("text/plain", fmt.Sprintf("Clique no link para redefinir sua senha: %s", link))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("failed to send mail", "error", err, "to", to)
		return internal.NewMailError("falha ao enviar e-mail", err)
	}

	m.logger.Info("password reset mail sent", "to", to)
	return nil
}
