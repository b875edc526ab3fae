package mail

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func NewMailer(host string, port int, user, pass string) *Mailer {
	return &Mailer{
		Host: host,
		Port: port,
		User: user,
		Pass: pass,
		From: fmt.Sprintf("Medicine Shop <%s>", user),
	}
}

// Send delivers a plain text mail. With no SMTP credentials configured the
// body is logged instead so OTP flows stay usable in development.
func (m *Mailer) Send(to, subject, body string) error {
	if m == nil || m.User == "" {
		log.Printf("SMTP not configured, mail to %s: %s: %s", to, subject, body)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.Host, m.Port, m.User, m.Pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email sent to %s", to)
	return nil
}
