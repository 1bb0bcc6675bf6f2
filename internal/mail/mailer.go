// Package mail delivers dispatch notifications. The content contract lives
// in the services layer; this package only moves bytes.
package mail

import (
	"fmt"
	"log"
	"mime"
	"net/smtp"
	"strings"

	"github.com/tomward0606/StockSystem/internal/config"
)

// Provider is an interface for sending notification emails.
type Provider interface {
	Send(to, subject, textBody, htmlBody string) error
}

// SMTPMailer implements Provider over plain SMTP with STARTTLS auth.
type SMTPMailer struct {
	host        string
	port        int
	username    string
	password    string
	fromName    string
	fromAddress string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:        cfg.Mail.Host,
		port:        cfg.Mail.Port,
		username:    cfg.Mail.Username,
		password:    cfg.Mail.Password,
		fromName:    cfg.Mail.FromName,
		fromAddress: cfg.Mail.FromAddress,
	}
}

// Send delivers a multipart/alternative message so plain-text clients get
// the text body and everything else renders the HTML table.
func (m *SMTPMailer) Send(to, subject, textBody, htmlBody string) error {
	boundary := "stock-system-alt-boundary"

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", m.fromName), m.fromAddress)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(textBody)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.fromAddress, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	log.Printf("[Mail] Sent %q to %s", subject, to)
	return nil
}

// MockMailer logs instead of sending. Used when MAIL_HOST is not set so the
// system stays usable in development.
type MockMailer struct{}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(to, subject, textBody, htmlBody string) error {
	log.Printf("[MockMail] To: %s", to)
	log.Printf("[MockMail] Subject: %s", subject)
	log.Printf("[MockMail] Body:\n%s", textBody)
	return nil
}
