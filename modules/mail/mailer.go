package mail

import (
	"context"
	"fmt"
	"log"
	"mime"
	"net/smtp"
	"strings"
	"sync"
	"time"
)

// Message is one outgoing email.
type Message struct {
	ID      string    `json:"id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	QueueAt time.Time `json:"queued_at"`
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer logs every message and keeps it in an in-memory outbox.
type LogMailer struct {
	mu   sync.RWMutex
	sent []Message
}

var _ Mailer = (*LogMailer)(nil)

// NewLogMailer creates an empty LogMailer.
func NewLogMailer() *LogMailer {
	return &LogMailer{sent: make([]Message, 0)}
}

// Send records msg.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, msg)
	log.Printf("[mail] To: %s | Subject: %s", msg.To, msg.Subject)
	return nil
}

// Sent returns a copy of the outbox.
func (m *LogMailer) Sent() []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}

// SMTPConfig configures an SMTPMailer.
type SMTPConfig struct {
	Addr     string
	Username string
	Password string
}

// SMTPMailer delivers over SMTP, with PLAIN auth when a username is set.
type SMTPMailer struct {
	cfg SMTPConfig
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates an SMTPMailer.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers msg. net/smtp has no context support, so ctx is only checked up front.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		host, _, _ := strings.Cut(m.cfg.Addr, ":")
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, host)
	}

	if err := smtp.SendMail(m.cfg.Addr, auth, msg.From, []string{msg.To}, encode(msg)); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", msg.To, err)
	}
	return nil
}

func encode(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Message-ID: <%s@pastelaria>\r\n", msg.ID)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}
